// Package dashboard wires the KPI counters and the product table to a view.
package dashboard

import (
	"context"
	"sync"

	"github.com/de-tools/irevolution/pkg/dashboard/kpi"
	"github.com/de-tools/irevolution/pkg/dashboard/products"
	"github.com/de-tools/irevolution/pkg/models/domain"
)

// View is the display surface of the dashboard
type View interface {
	SetRows(rows []domain.ProductRow)
	SetValue(slot domain.Slot, text string)
}

// Source serves both pipelines; the API client implements it.
type Source interface {
	kpi.Source
	products.Source
}

type Options struct {
	Source    Source
	View      View
	Search    products.SearchInput
	Locale    string
	Animation kpi.Animation
	Threshold float64
	Defaults  map[domain.Slot]domain.Pending
}

// Dashboard owns one KPI loader and one product loader. They share no state.
type Dashboard struct {
	KPIs     *kpi.Loader
	Products *products.Loader

	threshold float64
}

func New(opts Options) *Dashboard {
	var values kpi.ValueSetter
	var rows products.RowSetter
	if opts.View != nil {
		values, rows = opts.View, opts.View
	}

	defaults := opts.Defaults
	if defaults == nil {
		defaults = kpi.DefaultTargets()
	}

	productOpts := []products.Option{products.WithFormatter(products.NewFormatter(opts.Locale))}
	if opts.Search != nil {
		productOpts = append(productOpts, products.WithSearch(opts.Search))
	}

	return &Dashboard{
		KPIs: kpi.NewLoader(opts.Source, values,
			kpi.WithAnimation(opts.Animation),
			kpi.WithDefaults(defaults),
		),
		Products:  products.NewLoader(opts.Source, rows, productOpts...),
		threshold: opts.Threshold,
	}
}

// Results holds the outcome of both pipelines
type Results struct {
	KPIs     domain.LoadResult
	Products domain.LoadResult
}

func (r Results) OK() bool {
	return r.KPIs.OK() && r.Products.OK()
}

// Load runs both loaders concurrently. A failure in one never affects the
// other, and neither is retried.
func (d *Dashboard) Load(ctx context.Context) Results {
	var results Results
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		results.KPIs = d.KPIs.Load(ctx)
	}()
	go func() {
		defer wg.Done()
		results.Products = d.Products.Load(ctx)
	}()
	wg.Wait()

	return results
}

// Trigger returns the visibility trigger of the KPI panel.
func (d *Dashboard) Trigger(ctx context.Context) *kpi.Trigger {
	return d.KPIs.Trigger(ctx, d.threshold)
}
