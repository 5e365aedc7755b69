package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/de-tools/irevolution/pkg/dashboard"
	"github.com/de-tools/irevolution/pkg/dashboard/products"
	"github.com/de-tools/irevolution/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(names ...string) []domain.ProductRow {
	out := make([]domain.ProductRow, len(names))
	for i, n := range names {
		out[i] = domain.ProductRow{Index: i + 1, Name: n, SalePrice: "₹49,900", Stars: "⭐ 4.6"}
	}
	return out
}

type observations struct {
	mu     sync.Mutex
	ratios []float64
}

func (o *observations) observe(r float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ratios = append(o.ratios, r)
}

func loaded(kpisErr, productsErr error, records int) LoadedMsg {
	return LoadedMsg{Results: dashboard.Results{
		KPIs:     domain.LoadResult{Pipeline: domain.PipelineKPIs, Err: kpisErr, Records: 4},
		Products: domain.LoadResult{Pipeline: domain.PipelineProducts, Err: productsErr, Records: records},
	}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModel_ValuesAndRows(t *testing.T) {
	m := NewModel(nil, nil, nil)
	m.SetSize(120, 30)

	m, _ = update(t, m, valueMsg{slot: domain.SlotPrice, text: "₹80K"})
	assert.Equal(t, "₹80K", m.Value(domain.SlotPrice))
	assert.Contains(t, m.View(), "₹80K")

	m, _ = update(t, m, rowsMsg{rows: rows("APPLE iPhone 12", "APPLE iPhone SE")})
	m.SetTab(TabProducts)
	require.Len(t, m.Rows(), 2)
	assert.Equal(t, "1", m.Rows()[0][0])
	assert.Contains(t, m.View(), "APPLE iPhone SE")
}

func TestModel_VisibilityReportedAfterLoad(t *testing.T) {
	obs := &observations{}
	m := NewModel(nil, obs.observe, nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Empty(t, obs.ratios, "nothing is reported before the targets are loaded")

	m, _ = update(t, m, loaded(nil, nil, 2))
	require.Len(t, obs.ratios, 1)
	assert.Equal(t, 1.0, obs.ratios[0])

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabProducts, m.Tab())
	assert.Equal(t, 0.0, obs.ratios[1])
}

func TestModel_Visibility(t *testing.T) {
	tests := []struct {
		name   string
		height int
		tab    Tab
		want   float64
	}{
		{"unknown size", 0, TabOverview, 1},
		{"tall terminal", 40, TabOverview, 1},
		{"half visible", chrome + kpiPanelHeight/2, TabOverview, 0.5},
		{"no room", chrome, TabOverview, 0},
		{"products page", 40, TabProducts, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(nil, nil, nil)
			m.SetSize(100, tt.height)
			m.tab = tt.tab
			assert.Equal(t, tt.want, m.Visibility())
		})
	}
}

func TestModel_LoadWarnings(t *testing.T) {
	m := NewModel(nil, nil, nil)
	assert.Contains(t, m.View(), "Loading...")

	m, _ = update(t, m, loaded(errors.New("down"), errors.New("down"), 0))
	view := m.View()
	assert.NotContains(t, view, "Loading...")
	assert.Contains(t, view, "KPI API unavailable, showing defaults")
	assert.Contains(t, view, "Products API unavailable")
}

func TestModel_SearchEmitsQuery(t *testing.T) {
	bridge := &SearchBridge{}
	var got []string
	bridge.OnChange(func(q string) { got = append(got, q) })

	m := NewModel(bridge, nil, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("se")})
	assert.Equal(t, "se", m.Query())
	require.NotNil(t, cmd)
	runCmd(cmd)
	assert.Equal(t, []string{"se"}, got)

	// while typing, q is text and not quit
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Equal(t, "seq", m.Query())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_FilterCount(t *testing.T) {
	m := NewModel(nil, nil, nil)
	m, _ = update(t, m, loaded(nil, nil, 3))
	m, _ = update(t, m, rowsMsg{rows: rows("APPLE iPhone 12", "APPLE iPhone SE", "APPLE iPhone 8")})
	m.SetTab(TabProducts)
	assert.Contains(t, m.View(), "3 products")

	m, _ = update(t, m, rowsMsg{rows: rows("APPLE iPhone SE")})
	assert.Contains(t, m.View(), "Showing 1 of 3 products")
}

func TestSearchBridge_NoHandler(t *testing.T) {
	b := &SearchBridge{}
	assert.False(t, b.Emit(1, "x"))

	var got string
	b.OnChange(func(q string) { got = q })
	assert.True(t, b.Emit(2, "x"))
	assert.Equal(t, "x", got)
}

func TestSearchBridge_DropsOlderQueries(t *testing.T) {
	b := &SearchBridge{}
	var got []string
	b.OnChange(func(q string) { got = append(got, q) })

	assert.True(t, b.Emit(2, "pl"))
	assert.False(t, b.Emit(1, "p"))
	assert.True(t, b.Emit(3, "plu"))
	assert.Equal(t, []string{"pl", "plu"}, got)
}

type productSource struct {
	products []domain.Product
}

func (s productSource) Products(context.Context) ([]domain.Product, error) {
	return s.products, nil
}

type recordingRows struct {
	mu   sync.Mutex
	rows []domain.ProductRow
}

func (r *recordingRows) SetRows(rows []domain.ProductRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = rows
}

func (r *recordingRows) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.rows))
	for i, row := range r.rows {
		names[i] = row.Name
	}
	return names
}

func TestModel_SearchOutOfOrderKeepsNewestQuery(t *testing.T) {
	bridge := &SearchBridge{}
	view := &recordingRows{}
	loader := products.NewLoader(productSource{products: []domain.Product{
		{Name: "iPhone 8 Plus (Gold, 64 GB)"},
		{Name: "iPhone 12 (Blue, 128 GB)"},
		{Name: "iPhone SE (Black, 64 GB)"},
	}}, view, products.WithSearch(bridge))
	require.True(t, loader.Load(context.Background()).OK())

	m := NewModel(bridge, nil, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m, first := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m, second := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	require.Equal(t, "pl", m.Query())

	// the "l" search completes before the "p" search
	runCmd(second)
	runCmd(first)

	assert.Equal(t, "pl", loader.Query())
	assert.Equal(t, []string{"iPhone 8 Plus (Gold, 64 GB)"}, view.names())
}

func TestProgramView_DetachedDropsMessages(t *testing.T) {
	v := &ProgramView{}
	assert.NotPanics(t, func() {
		v.SetRows(rows("a"))
		v.SetValue(domain.SlotProducts, "1+")
	})
}

// runCmd executes cmd and every command of a batch
func runCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(c)
		}
	}
}

func TestModel_ViewHasTabs(t *testing.T) {
	m := NewModel(nil, nil, nil)
	view := m.View()
	assert.True(t, strings.Contains(view, "1 Overview") && strings.Contains(view, "2 Products"))
}
