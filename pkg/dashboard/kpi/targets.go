package kpi

import (
	"math"
	"strconv"
	"strings"

	"github.com/de-tools/irevolution/pkg/models/domain"
)

// Targets turns the API metrics into the pending counter state of each slot.
func Targets(k domain.KPIs) map[domain.Slot]domain.Pending {
	return map[domain.Slot]domain.Pending{
		domain.SlotProducts: {Target: k.TotalProducts, Suffix: "+"},
		domain.SlotPrice:    {Target: roundHalfUp(k.AvgPrice / 1000), Prefix: "₹", Suffix: "K"},
		domain.SlotRating:   {Target: int(math.Floor(k.AvgRating)), Suffix: fractionSuffix(k.AvgRating)},
		domain.SlotRevenue:  {Target: roundHalfUp(k.LatestRevenue), Prefix: "$", Suffix: "B"},
	}
}

// DefaultTargets is the counter state shown when the API cannot be reached.
func DefaultTargets() map[domain.Slot]domain.Pending {
	return map[domain.Slot]domain.Pending{
		domain.SlotProducts: {Target: 62, Suffix: "+"},
		domain.SlotPrice:    {Target: 80, Prefix: "₹", Suffix: "K"},
		domain.SlotRating:   {Target: 4, Suffix: ".6"},
		domain.SlotRevenue:  {Target: 394, Prefix: "$", Suffix: "B"},
	}
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(f float64) int {
	return int(math.Floor(f + 0.5))
}

// fractionSuffix keeps the digits after the decimal point of the shortest
// rendering of f. The integer part comes from floor, so negative ratings
// pair the floored integer with the unfloored fraction. An integral f has
// no fraction digits and gets no suffix, so 4 renders as "4" and not
// "4.undefined".
func fractionSuffix(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return ""
	}
	return "." + s[i+1:]
}
