// Package catalog serves the product table and the aggregate KPIs computed
// from the exported dataset sheets.
package catalog

import (
	"context"
	"math"
	"strings"

	"github.com/de-tools/irevolution/pkg/dataset"
	"github.com/de-tools/irevolution/pkg/models/domain"
)

// Column names of the source sheets
const (
	ColProductName        = "Product Name"
	ColSalePrice          = "Sale Price"
	ColMrp                = "Mrp"
	ColDiscountPercentage = "Discount Percentage"
	ColNumberOfRatings    = "Number Of Ratings"
	ColStarRating         = "Star Rating"
	ColRam                = "Ram"

	ColBrand       = "brand"
	ColModel       = "model"
	ColRevenue     = "Revenue ($bn)"
	ColUnitsSold   = "Units sold (mm)"
	ColActiveUsers = "Active Users (mm)"
)

// Store is the read side used by the HTTP API
type Store interface {
	Products(ctx context.Context) ([]domain.Product, error)
	KPIs(ctx context.Context) (domain.KPIs, error)
}

// Tables holds the raw rows of the sheets the catalog reads
type Tables struct {
	Products          []dataset.Row
	Flipkart          []dataset.Row
	Revenue           []dataset.Row
	MarketPenetration []dataset.Row
}

// Files names the CSV export of each table inside the data dir
type Files struct {
	Products          string
	Flipkart          string
	Revenue           string
	MarketPenetration string
}

func DefaultFiles() Files {
	return Files{
		Products:          dataset.CSVName("apple_products"),
		Flipkart:          dataset.CSVName("Flipkart_smartphone"),
		Revenue:           dataset.CSVName("Annual revenue"),
		MarketPenetration: dataset.CSVName("Market penetration (iPhone)"),
	}
}

// ProductFromRow converts a sheet row; numeric cells stay numbers and
// missing cells become empty text.
func ProductFromRow(row dataset.Row) domain.Product {
	return domain.Product{
		Name:               row[ColProductName],
		SalePrice:          domain.ParseValue(row[ColSalePrice]),
		MRP:                domain.ParseValue(row[ColMrp]),
		DiscountPercentage: domain.ParseValue(row[ColDiscountPercentage]),
		NumberOfRatings:    domain.ParseValue(row[ColNumberOfRatings]),
		StarRating:         domain.ParseValue(row[ColStarRating]),
		Ram:                domain.ParseValue(row[ColRam]),
	}
}

// ComputeKPIs aggregates the tables. Empty and non-numeric cells are
// skipped by means and maxima.
func ComputeKPIs(t Tables) domain.KPIs {
	return domain.KPIs{
		TotalProducts:       len(t.Products),
		AvgPrice:            math.Trunc(mean(t.Products, ColSalePrice)),
		AvgRating:           roundTo(mean(t.Products, ColStarRating), 1),
		LatestRevenue:       last(t.Revenue, ColRevenue),
		TotalBrands:         distinct(t.Flipkart, ColBrand),
		TotalModelsFlipkart: distinct(t.Flipkart, ColModel),
		MaxUnitsSold:        maximum(t.MarketPenetration, ColUnitsSold),
		MaxActiveUsers:      maximum(t.MarketPenetration, ColActiveUsers),
	}
}

func mean(rows []dataset.Row, column string) float64 {
	var sum float64
	var n int
	for _, r := range rows {
		if v, ok := r.Float(column); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func last(rows []dataset.Row, column string) float64 {
	for i := len(rows) - 1; i >= 0; i-- {
		if v, ok := rows[i].Float(column); ok {
			return v
		}
	}
	return 0
}

func maximum(rows []dataset.Row, column string) float64 {
	found := false
	var max float64
	for _, r := range rows {
		if v, ok := r.Float(column); ok && (!found || v > max) {
			max = v
			found = true
		}
	}
	return max
}

func distinct(rows []dataset.Row, column string) int {
	seen := make(map[string]struct{})
	for _, r := range rows {
		v := strings.TrimSpace(r[column])
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}

func roundTo(f float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(f*p) / p
}
