package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/de-tools/irevolution/pkg/dashboard"
	"github.com/de-tools/irevolution/pkg/models/domain"
)

type Tab int

const (
	TabOverview Tab = iota
	TabProducts
)

// chrome is the number of lines above the active page
const chrome = 4

// kpiPanelHeight is the rendered height of the KPI cards
const kpiPanelHeight = 4

// LoadedMsg carries the outcome of the initial load
type LoadedMsg struct {
	Results dashboard.Results
}

var slotLabels = map[domain.Slot]string{
	domain.SlotProducts: "Products",
	domain.SlotPrice:    "Avg. Price",
	domain.SlotRating:   "Avg. Rating",
	domain.SlotRevenue:  "Revenue",
}

// Model is the interactive dashboard: a KPI overview and a filterable
// product table.
type Model struct {
	width  int
	height int
	tab    Tab

	values map[domain.Slot]string

	table     table.Model
	shown     int
	total     int
	lastQuery string
	searchSeq uint64

	filterInput   textinput.Model
	filterFocused bool

	loaded   bool
	warnings []string

	search  *SearchBridge
	observe func(ratio float64)
	load    tea.Cmd

	styles Styles
}

// NewModel builds the model. observe receives the visible fraction of the
// KPI panel; load runs once when the program starts and should return a
// LoadedMsg.
func NewModel(search *SearchBridge, observe func(ratio float64), load tea.Cmd) Model {
	widths := []int{4, 36, 12, 12, 9, 10, 8, 6}
	columns := make([]table.Column, len(domain.ProductColumns))
	for i, title := range domain.ProductColumns {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	fi := textinput.New()
	fi.Placeholder = "Search products..."
	fi.CharLimit = 64
	fi.Width = 40

	values := make(map[domain.Slot]string, len(domain.Slots()))
	for _, slot := range domain.Slots() {
		values[slot] = "0"
	}

	return Model{
		tab:         TabOverview,
		values:      values,
		table:       t,
		filterInput: fi,
		search:      search,
		observe:     observe,
		load:        load,
		styles:      DefaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.load
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.reportVisibility()
		return m, nil

	case LoadedMsg:
		m.loaded = true
		m.warnings = nil
		if !msg.Results.KPIs.OK() {
			m.warnings = append(m.warnings, "KPI API unavailable, showing defaults")
		}
		if msg.Results.Products.OK() {
			m.total = msg.Results.Products.Records
		} else {
			m.warnings = append(m.warnings, "Products API unavailable")
		}
		m.reportVisibility()
		return m, nil

	case rowsMsg:
		m.setRows(msg.rows)
		return m, nil

	case valueMsg:
		m.values[msg.slot] = msg.text
		return m, nil

	case tea.KeyMsg:
		if m.filterFocused {
			switch msg.String() {
			case "esc", "enter":
				m.filterFocused = false
				m.filterInput.Blur()
				return m, nil
			}
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.SetTab((m.tab + 1) % 2)
			return m, nil
		case "1":
			m.SetTab(TabOverview)
			return m, nil
		case "2":
			m.SetTab(TabProducts)
			return m, nil
		case "/":
			if m.tab == TabProducts {
				m.filterFocused = true
				return m, m.filterInput.Focus()
			}
		}
	}

	if m.filterFocused {
		m.filterInput, cmd = m.filterInput.Update(msg)
		cmds = append(cmds, cmd)
		if q := m.filterInput.Value(); q != m.lastQuery {
			m.lastQuery = q
			m.searchSeq++
			cmds = append(cmds, m.emitSearch(m.searchSeq, q))
		}
	} else if m.tab == TabProducts {
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// emitSearch hands the query to the loader outside the update loop; the
// filtered rows come back as a rowsMsg. Commands run concurrently, so seq
// lets the bridge drop a query that arrives after a newer one.
func (m Model) emitSearch(seq uint64, query string) tea.Cmd {
	search := m.search
	if search == nil {
		return nil
	}
	return func() tea.Msg {
		search.Emit(seq, query)
		return nil
	}
}

func (m *Model) setRows(rows []domain.ProductRow) {
	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		tableRows[i] = r.Cells()
	}
	m.table.SetRows(tableRows)
	m.table.GotoTop()
	m.shown = len(rows)
	if m.total < m.shown {
		m.total = m.shown
	}
}

// SetTab switches pages and reports the new KPI panel visibility.
func (m *Model) SetTab(tab Tab) {
	m.tab = tab
	if tab != TabProducts && m.filterFocused {
		m.filterFocused = false
		m.filterInput.Blur()
	}
	m.reportVisibility()
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.table.SetWidth(w - 4)
	if h > chrome+8 {
		m.table.SetHeight(h - chrome - 6)
	}
}

// Visibility is the fraction of the KPI panel that fits on screen
func (m Model) Visibility() float64 {
	if m.tab != TabOverview {
		return 0
	}
	if m.height == 0 {
		return 1
	}
	available := m.height - chrome
	if available <= 0 {
		return 0
	}
	if available >= kpiPanelHeight {
		return 1
	}
	return float64(available) / float64(kpiPanelHeight)
}

// reportVisibility only reports once the targets are loaded, so the
// counters never run towards defaults that are about to be replaced.
func (m Model) reportVisibility() {
	if !m.loaded || m.observe == nil {
		return
	}
	m.observe(m.Visibility())
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render(" iRevolution ") + "\n")
	sb.WriteString(m.renderTabs() + "\n\n")

	if m.tab == TabOverview {
		sb.WriteString(m.renderKPIs())
	} else {
		sb.WriteString(m.renderProducts())
	}
	sb.WriteString("\n")

	if !m.loaded {
		sb.WriteString(m.styles.Muted.Render("Loading...") + "\n")
	}
	for _, w := range m.warnings {
		sb.WriteString(m.styles.Warning.Render(w) + "\n")
	}

	sb.WriteString(m.styles.Muted.Render("[Tab] Switch  [/] Search  [Esc] Done  [q] Quit"))
	return sb.String()
}

func (m Model) renderTabs() string {
	tabs := []struct {
		tab   Tab
		label string
	}{
		{TabOverview, "1 Overview"},
		{TabProducts, "2 Products"},
	}

	parts := make([]string, len(tabs))
	for i, t := range tabs {
		style := m.styles.Tab
		if m.tab == t.tab {
			style = m.styles.ActiveTab
		}
		parts[i] = style.Render(t.label)
	}
	return strings.Join(parts, " ")
}

func (m Model) renderKPIs() string {
	cards := make([]string, 0, len(domain.Slots()))
	for _, slot := range domain.Slots() {
		body := m.styles.CardValue.Render(m.values[slot]) + "\n" +
			m.styles.CardLabel.Render(slotLabels[slot])
		cards = append(cards, m.styles.Card.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) renderProducts() string {
	var sb strings.Builder

	filter := m.styles.Filter
	if m.filterFocused {
		filter = filter.BorderForeground(primary)
	}
	sb.WriteString(filter.Render(m.filterInput.View()) + "\n")
	sb.WriteString(m.table.View() + "\n")

	if m.shown != m.total {
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("Showing %d of %d products", m.shown, m.total)))
	} else {
		sb.WriteString(m.styles.Muted.Render(strconv.Itoa(m.shown) + " products"))
	}
	return sb.String()
}

// Value returns the text displayed on slot
func (m Model) Value(slot domain.Slot) string {
	return m.values[slot]
}

// Rows returns the displayed table rows
func (m Model) Rows() []table.Row {
	return m.table.Rows()
}

func (m Model) Tab() Tab {
	return m.tab
}

func (m Model) Query() string {
	return m.filterInput.Value()
}
