package domain

// KPIs holds the aggregate metrics served by the catalog
type KPIs struct {
	TotalProducts       int
	AvgPrice            float64
	AvgRating           float64
	LatestRevenue       float64
	TotalBrands         int
	TotalModelsFlipkart int
	MaxUnitsSold        float64
	MaxActiveUsers      float64
}

// Slot identifies one KPI display element
type Slot string

const (
	SlotProducts Slot = "products"
	SlotPrice    Slot = "price"
	SlotRating   Slot = "rating"
	SlotRevenue  Slot = "revenue"
)

// Slots returns the KPI slots in display order
func Slots() []Slot {
	return []Slot{SlotProducts, SlotPrice, SlotRating, SlotRevenue}
}

// Pending is the animation target attached to a slot. Nothing is displayed
// until the count-up runs.
type Pending struct {
	Target int
	Prefix string
	Suffix string
}

// Text renders a counter value with the slot decoration
func (p Pending) Text(value int) string {
	return p.Prefix + itoa(value) + p.Suffix
}
