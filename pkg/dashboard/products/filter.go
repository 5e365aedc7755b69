package products

import (
	"strings"

	"github.com/de-tools/irevolution/pkg/models/domain"
)

// Filter returns the products whose name contains query, ignoring case.
// records is never modified; an empty query returns every record.
func Filter(records []domain.Product, query string) []domain.Product {
	q := strings.ToLower(query)
	filtered := make([]domain.Product, 0, len(records))
	for _, p := range records {
		if strings.Contains(strings.ToLower(p.Name), q) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
