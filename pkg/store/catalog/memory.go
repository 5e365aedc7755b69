package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/de-tools/irevolution/pkg/dataset"
	"github.com/de-tools/irevolution/pkg/models/domain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Memory keeps the tables in memory for the lifetime of the process
type Memory struct {
	mu       sync.RWMutex
	tables   Tables
	products []domain.Product
	kpis     domain.KPIs
}

func NewMemory(tables Tables) *Memory {
	m := &Memory{}
	m.Replace(tables)
	return m
}

// ReadTables loads the four CSV exports from dir concurrently. The first
// failure cancels the reads that have not started yet.
func ReadTables(ctx context.Context, dir string, files Files) (Tables, error) {
	var t Tables
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(2)

	read := func(name string, into *[]dataset.Row) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows, err := dataset.ReadCSV(filepath.Join(dir, name))
			if err != nil {
				return err
			}
			*into = rows
			return nil
		})
	}
	read(files.Products, &t.Products)
	read(files.Flipkart, &t.Flipkart)
	read(files.Revenue, &t.Revenue)
	read(files.MarketPenetration, &t.MarketPenetration)

	if err := g.Wait(); err != nil {
		return Tables{}, fmt.Errorf("failed to load dataset: %w", err)
	}
	return t, nil
}

// LoadMemory reads the CSV exports under dir into a Memory catalog
func LoadMemory(ctx context.Context, dir string, files Files) (*Memory, error) {
	tables, err := ReadTables(ctx, dir, files)
	if err != nil {
		return nil, err
	}

	m := NewMemory(tables)
	zerolog.Ctx(ctx).Info().
		Str("dir", dir).
		Int("products", len(tables.Products)).
		Int("flipkart", len(tables.Flipkart)).
		Msg("dataset loaded")
	return m, nil
}

// Replace swaps the whole dataset
func (m *Memory) Replace(tables Tables) {
	products := make([]domain.Product, 0, len(tables.Products))
	for _, row := range tables.Products {
		products = append(products, ProductFromRow(row))
	}
	kpis := ComputeKPIs(tables)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables = tables
	m.products = products
	m.kpis = kpis
}

func (m *Memory) Tables() Tables {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tables
}

func (m *Memory) Products(_ context.Context) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Product(nil), m.products...), nil
}

func (m *Memory) KPIs(_ context.Context) (domain.KPIs, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.kpis, nil
}
