package adapters

import (
	"github.com/de-tools/irevolution/pkg/models/api"
	"github.com/de-tools/irevolution/pkg/models/domain"
)

func MapKPIsDomainToApi(k domain.KPIs) api.KPIs {
	return api.KPIs{
		TotalProducts:       k.TotalProducts,
		AvgPrice:            k.AvgPrice,
		AvgRating:           k.AvgRating,
		LatestRevenue:       k.LatestRevenue,
		TotalBrands:         k.TotalBrands,
		TotalModelsFlipkart: k.TotalModelsFlipkart,
		MaxUnitsSold:        k.MaxUnitsSold,
		MaxActiveUsers:      k.MaxActiveUsers,
	}
}

func MapKPIsApiToDomain(k api.KPIs) domain.KPIs {
	return domain.KPIs{
		TotalProducts:       k.TotalProducts,
		AvgPrice:            k.AvgPrice,
		AvgRating:           k.AvgRating,
		LatestRevenue:       k.LatestRevenue,
		TotalBrands:         k.TotalBrands,
		TotalModelsFlipkart: k.TotalModelsFlipkart,
		MaxUnitsSold:        k.MaxUnitsSold,
		MaxActiveUsers:      k.MaxActiveUsers,
	}
}
