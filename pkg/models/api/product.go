package api

import "github.com/de-tools/irevolution/pkg/models/domain"

// Product mirrors the column names of the source sheet
type Product struct {
	ProductName        string       `json:"Product Name"`
	SalePrice          domain.Value `json:"Sale Price"`
	Mrp                domain.Value `json:"Mrp"`
	DiscountPercentage domain.Value `json:"Discount Percentage"`
	NumberOfRatings    domain.Value `json:"Number Of Ratings"`
	StarRating         domain.Value `json:"Star Rating"`
	Ram                domain.Value `json:"Ram"`
}
