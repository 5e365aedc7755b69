package domain

// Product is one row of the apple products sheet
type Product struct {
	Name               string
	SalePrice          Value
	MRP                Value
	DiscountPercentage Value
	NumberOfRatings    Value
	StarRating         Value
	Ram                Value
}

// ProductRow is a product formatted for display. Index is 1-based.
type ProductRow struct {
	Index     int
	Name      string
	SalePrice string
	MRP       string
	Discount  string
	Ratings   string
	Stars     string
	Ram       string
}

// Cells returns the row as display columns
func (r ProductRow) Cells() []string {
	return []string{
		itoa(r.Index),
		r.Name,
		r.SalePrice,
		r.MRP,
		r.Discount,
		r.Ratings,
		r.Stars,
		r.Ram,
	}
}

// ProductColumns are the table headers matching ProductRow.Cells
var ProductColumns = []string{"#", "Product", "Sale Price", "MRP", "Discount", "Ratings", "Stars", "RAM"}
