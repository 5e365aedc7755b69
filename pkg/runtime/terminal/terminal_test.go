package terminal

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/irevolution/pkg/client"
	"github.com/de-tools/irevolution/pkg/config"
	"github.com/de-tools/irevolution/pkg/dashboard"
	"github.com/de-tools/irevolution/pkg/dataset"
	"github.com/de-tools/irevolution/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeSource struct {
	kpis     domain.KPIs
	products []domain.Product
	err      error
}

func (f *fakeSource) KPIs(context.Context) (domain.KPIs, error) {
	return f.kpis, f.err
}

func (f *fakeSource) Products(context.Context) ([]domain.Product, error) {
	return f.products, f.err
}

func sampleSource() *fakeSource {
	return &fakeSource{
		kpis: domain.KPIs{TotalProducts: 62, AvgPrice: 80073, AvgRating: 4.6, LatestRevenue: 394.3},
		products: []domain.Product{
			{
				Name:               "APPLE iPhone 8 Plus (Gold, 64 GB)",
				SalePrice:          domain.NumberValue(49900),
				MRP:                domain.NumberValue(49900),
				DiscountPercentage: domain.NumberValue(0),
				NumberOfRatings:    domain.NumberValue(3431),
				StarRating:         domain.NumberValue(4.6),
				Ram:                domain.TextValue("2 GB"),
			},
			{
				Name:               "APPLE iPhone 12 (Blue, 128 GB)",
				SalePrice:          domain.NumberValue(59999),
				MRP:                domain.NumberValue(64900),
				DiscountPercentage: domain.NumberValue(7),
				NumberOfRatings:    domain.NumberValue(210103),
				StarRating:         domain.NumberValue(4.6),
				Ram:                domain.TextValue("4 GB"),
			},
		},
	}
}

func runCLI(t *testing.T, source *fakeSource, args ...string) (string, error) {
	t.Helper()
	t.Setenv("IREV_ANIMATION_INTERVAL", "1ms")

	var out, logs bytes.Buffer
	cli := NewCLI(Options{
		Output: &out,
		Logs:   &logs,
		Source: func(*config.Config) dashboard.Source { return source },
	})
	cli.SetArgs(args)
	err := cli.Execute()
	return out.String(), err
}

func TestCLI_KPIs(t *testing.T) {
	out, err := runCLI(t, sampleSource(), "kpis")
	require.NoError(t, err)

	assert.Contains(t, out, "62+")
	assert.Contains(t, out, "₹80K")
	assert.Contains(t, out, "4.6")
	assert.Contains(t, out, "$394B")
}

func TestCLI_KPIs_FallsBackToDefaults(t *testing.T) {
	out, err := runCLI(t, &fakeSource{err: client.ErrSourceUnavailable}, "kpis")
	require.NoError(t, err)

	assert.Contains(t, out, "62+")
	assert.Contains(t, out, "$394B")
}

func TestCLI_Products(t *testing.T) {
	out, err := runCLI(t, sampleSource(), "products")
	require.NoError(t, err)

	assert.Contains(t, out, "Apple Products (2)")
	assert.Contains(t, out, "APPLE iPhone 12 (Blue, 128 GB)")
	assert.Contains(t, out, "2,10,103")
	assert.Contains(t, out, "₹59,999")
	assert.Contains(t, out, "⭐ 4.6")
}

func TestCLI_Products_Search(t *testing.T) {
	out, err := runCLI(t, sampleSource(), "products", "--search", "PLUS")
	require.NoError(t, err)

	assert.Contains(t, out, `Apple Products (1 matching "PLUS")`)
	assert.Contains(t, out, "APPLE iPhone 8 Plus")
	assert.NotContains(t, out, "APPLE iPhone 12")
}

func TestCLI_Products_SourceError(t *testing.T) {
	_, err := runCLI(t, &fakeSource{err: client.ErrSourceUnavailable}, "products")
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrSourceUnavailable))
}

func TestCLI_PlainDashboard(t *testing.T) {
	out, err := runCLI(t, sampleSource(), "dashboard", "--plain")
	require.NoError(t, err)

	assert.Contains(t, out, "Key Metrics")
	assert.Contains(t, out, "62+")
	assert.Contains(t, out, "APPLE iPhone 8 Plus")
}

func TestCLI_InvalidConfig(t *testing.T) {
	_, err := runCLI(t, sampleSource(), "kpis", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to load config")
}

func TestCLI_FetchData(t *testing.T) {
	src := t.TempDir()
	workbook := filepath.Join(src, "source.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Annual revenue"))
	require.NoError(t, f.SetSheetRow("Annual revenue", "A1", &[]interface{}{" Year ", "Revenue ($bn)"}))
	require.NoError(t, f.SetSheetRow("Annual revenue", "A2", &[]interface{}{2022, 394.3}))
	require.NoError(t, f.SaveAs(workbook))
	require.NoError(t, f.Close())

	dataDir := t.TempDir()
	t.Setenv("IREV_DATA_DIR", dataDir)

	var out, logs bytes.Buffer
	cli := NewCLI(Options{Output: &out, Logs: &logs, Fetchers: dataset.DefaultRegistry(nil)})
	cli.SetArgs([]string{"fetch-data", "--source", "file://" + workbook})
	require.NoError(t, cli.Execute())

	assert.Contains(t, out.String(), "Annual revenue")
	_, err := os.Stat(filepath.Join(dataDir, "Annual_revenue.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dataDir, "apple_products.xlsx"))
	assert.NoError(t, err)
}
