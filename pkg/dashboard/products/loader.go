package products

import (
	"context"
	"sync"

	"github.com/de-tools/irevolution/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Source provides the product records
type Source interface {
	Products(ctx context.Context) ([]domain.Product, error)
}

// RowSetter replaces every displayed table row
type RowSetter interface {
	SetRows(rows []domain.ProductRow)
}

// SearchInput notifies about query changes
type SearchInput interface {
	OnChange(func(query string))
}

type Option func(*Loader)

func WithSearch(input SearchInput) Option {
	return func(l *Loader) {
		l.search = input
	}
}

func WithFormatter(f *Formatter) Option {
	return func(l *Loader) {
		l.formatter = f
	}
}

// Loader fetches the product table once and re-renders it on every search.
type Loader struct {
	source    Source
	view      RowSetter
	search    SearchInput
	formatter *Formatter

	mu      sync.Mutex
	records []domain.Product
	loaded  bool
	query   string
}

func NewLoader(source Source, view RowSetter, opts ...Option) *Loader {
	l := &Loader{
		source:    source,
		view:      view,
		formatter: NewFormatter(DefaultLocale),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the records, renders all of them and wires the search input.
// On failure the table is left as it was.
func (l *Loader) Load(ctx context.Context) domain.LoadResult {
	logger := zerolog.Ctx(ctx)
	result := domain.LoadResult{Pipeline: domain.PipelineProducts}

	records, err := l.source.Products(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Products API unavailable")
		result.Err = err
		return result
	}

	l.mu.Lock()
	l.records = records
	l.loaded = true
	l.query = ""
	l.render(records)
	l.mu.Unlock()

	if l.search != nil {
		l.search.OnChange(func(query string) {
			l.Search(query)
		})
	}

	result.Records = len(records)
	logger.Debug().Int("products", len(records)).Msg("product table rendered")
	return result
}

// Search filters the fetched records by name and renders the match. It
// always starts from the full fetched sequence and returns the row count.
// Before a successful load it does nothing.
func (l *Loader) Search(query string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		return 0
	}

	l.query = query
	filtered := Filter(l.records, query)
	l.render(filtered)
	return len(filtered)
}

// render replaces the table with records. Callers hold mu so renders reach
// the view in the order Search was called.
func (l *Loader) render(records []domain.Product) {
	if l.view == nil {
		return
	}
	l.view.SetRows(l.formatter.Rows(records))
}

// Records returns the fetched, unfiltered sequence
func (l *Loader) Records() []domain.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Product(nil), l.records...)
}

// Query returns the last applied search
func (l *Loader) Query() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}
