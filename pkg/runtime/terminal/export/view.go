package export

import (
	"sync"

	"github.com/de-tools/irevolution/pkg/models/domain"
)

// ConsoleView collects what the dashboard displays and prints it on Flush.
// It is safe for concurrent use by the loaders and the counters.
type ConsoleView struct {
	reporter *Reporter

	mu     sync.Mutex
	rows   []domain.ProductRow
	values map[domain.Slot]string
	query  string
}

func NewConsoleView(reporter *Reporter) *ConsoleView {
	return &ConsoleView{
		reporter: reporter,
		values:   map[domain.Slot]string{},
	}
}

func (v *ConsoleView) SetRows(rows []domain.ProductRow) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rows = append([]domain.ProductRow(nil), rows...)
}

func (v *ConsoleView) SetValue(slot domain.Slot, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values[slot] = text
}

// SetQuery sets the search shown in the table title
func (v *ConsoleView) SetQuery(query string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = query
}

func (v *ConsoleView) Rows() []domain.ProductRow {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]domain.ProductRow(nil), v.rows...)
}

func (v *ConsoleView) Value(slot domain.Slot) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	text, ok := v.values[slot]
	return text, ok
}

// FlushKPIs prints the KPI panel
func (v *ConsoleView) FlushKPIs() error {
	v.mu.Lock()
	values := make(map[domain.Slot]string, len(v.values))
	for slot, text := range v.values {
		values[slot] = text
	}
	v.mu.Unlock()
	return v.reporter.KPIs(values)
}

// FlushProducts prints the product table
func (v *ConsoleView) FlushProducts() error {
	v.mu.Lock()
	rows, query := v.rows, v.query
	v.mu.Unlock()
	return v.reporter.Products(rows, query)
}
