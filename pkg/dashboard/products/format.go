package products

import (
	"math"

	"github.com/de-tools/irevolution/pkg/models/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale groups digits the Indian way (1,23,456)
const DefaultLocale = "en-IN"

// Formatter renders products as table rows
type Formatter struct {
	printer *message.Printer
}

// NewFormatter parses locale as a BCP 47 tag and falls back to DefaultLocale.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Row formats p as the index-th row, index starting at 1.
func (f *Formatter) Row(index int, p domain.Product) domain.ProductRow {
	return domain.ProductRow{
		Index:     index,
		Name:      p.Name,
		SalePrice: "₹" + f.Grouped(p.SalePrice.Float()),
		MRP:       "₹" + f.Grouped(p.MRP.Float()),
		Discount:  p.DiscountPercentage.String() + "%",
		Ratings:   f.Grouped(p.NumberOfRatings.Float()),
		Stars:     "⭐ " + p.StarRating.String(),
		Ram:       p.Ram.String(),
	}
}

// Rows formats the whole sequence with indexes restarting at 1.
func (f *Formatter) Rows(products []domain.Product) []domain.ProductRow {
	rows := make([]domain.ProductRow, 0, len(products))
	for i, p := range products {
		rows = append(rows, f.Row(i+1, p))
	}
	return rows
}

// Grouped prints v with the locale's thousands separators and at most three
// fraction digits.
func (f *Formatter) Grouped(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	}
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}
