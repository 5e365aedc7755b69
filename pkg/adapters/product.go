package adapters

import (
	"github.com/de-tools/irevolution/pkg/models/api"
	"github.com/de-tools/irevolution/pkg/models/domain"
)

func MapProductDomainToApi(p domain.Product) api.Product {
	return api.Product{
		ProductName:        p.Name,
		SalePrice:          p.SalePrice,
		Mrp:                p.MRP,
		DiscountPercentage: p.DiscountPercentage,
		NumberOfRatings:    p.NumberOfRatings,
		StarRating:         p.StarRating,
		Ram:                p.Ram,
	}
}

func MapProductApiToDomain(p api.Product) domain.Product {
	return domain.Product{
		Name:               p.ProductName,
		SalePrice:          p.SalePrice,
		MRP:                p.Mrp,
		DiscountPercentage: p.DiscountPercentage,
		NumberOfRatings:    p.NumberOfRatings,
		StarRating:         p.StarRating,
		Ram:                p.Ram,
	}
}

// MapProductsDomainToApi never returns nil so an empty catalog encodes as [].
func MapProductsDomainToApi(products []domain.Product) []api.Product {
	out := make([]api.Product, 0, len(products))
	for _, p := range products {
		out = append(out, MapProductDomainToApi(p))
	}
	return out
}

func MapProductsApiToDomain(products []api.Product) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		out = append(out, MapProductApiToDomain(p))
	}
	return out
}
