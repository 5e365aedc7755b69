package api

type KPIs struct {
	TotalProducts       int     `json:"totalProducts"`
	AvgPrice            float64 `json:"avgPrice"`
	AvgRating           float64 `json:"avgRating"`
	LatestRevenue       float64 `json:"latestRevenue"`
	TotalBrands         int     `json:"totalBrands"`
	TotalModelsFlipkart int     `json:"totalModelsFlipkart"`
	MaxUnitsSold        float64 `json:"maxUnitsSold"`
	MaxActiveUsers      float64 `json:"maxActiveUsers"`
}
