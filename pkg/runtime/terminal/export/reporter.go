package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/de-tools/irevolution/pkg/dataset"
	"github.com/de-tools/irevolution/pkg/models/domain"
)

// TableConfig holds the column widths of the product table
type TableConfig struct {
	IndexWidth    int
	NameWidth     int
	PriceWidth    int
	DiscountWidth int
	RatingsWidth  int
	StarsWidth    int
	RamWidth      int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		IndexWidth:    4,
		NameWidth:     42,
		PriceWidth:    12,
		DiscountWidth: 8,
		RatingsWidth:  10,
		StarsWidth:    7,
		RamWidth:      6,
	}
}

func (c TableConfig) widths() []int {
	return []int{
		c.IndexWidth, c.NameWidth, c.PriceWidth, c.PriceWidth,
		c.DiscountWidth, c.RatingsWidth, c.StarsWidth, c.RamWidth,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

// pad left-aligns s in width runes. fmt counts bytes, which breaks "₹" and "⭐".
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func (c *Reporter) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(cells []string) string {
			widths := c.config.widths()
			parts := make([]string, len(widths))
			for i, w := range widths {
				cell := ""
				if i < len(cells) {
					cell = cells[i]
				}
				parts[i] = pad(cell, w)
			}
			return "| " + strings.Join(parts, " | ") + " |"
		},
		"separator": func() string {
			widths := c.config.widths()
			parts := make([]string, len(widths))
			for i, w := range widths {
				parts[i] = strings.Repeat("-", w+2)
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
		"pad": pad,
	}
}

const productsTemplate = `
=== Apple Products ({{len .Rows}}{{if .Query}} matching "{{.Query}}"{{end}}) ===

{{separator}}
{{formatRow .Columns}}
{{separator}}
{{range .Rows}}{{formatRow .Cells}}
{{end}}{{separator}}
`

const kpisTemplate = `
=== Key Metrics ===
{{range .}}{{pad .Label 16}} {{.Text}}
{{end}}`

const sheetsTemplate = `
=== Exported Sheets ===
{{range .}}{{pad .Sheet 30}} {{printf "%6d" .Rows}} rows  {{.Path}}
{{end}}`

// KPILine is one rendered slot
type KPILine struct {
	Label string
	Text  string
}

var slotLabels = map[domain.Slot]string{
	domain.SlotProducts: "Products",
	domain.SlotPrice:    "Average Price",
	domain.SlotRating:   "Average Rating",
	domain.SlotRevenue:  "Latest Revenue",
}

// KPILines orders values by slot, skipping slots without a value
func KPILines(values map[domain.Slot]string) []KPILine {
	lines := make([]KPILine, 0, len(values))
	for _, slot := range domain.Slots() {
		text, ok := values[slot]
		if !ok {
			continue
		}
		lines = append(lines, KPILine{Label: slotLabels[slot], Text: text})
	}
	return lines
}

func (c *Reporter) render(name, tmpl string, data interface{}) error {
	t, err := template.New(name).Funcs(c.funcMap()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, data)
}

// Products prints the product table. query is shown in the title when set.
func (c *Reporter) Products(rows []domain.ProductRow, query string) error {
	return c.render("products", productsTemplate, struct {
		Columns []string
		Rows    []domain.ProductRow
		Query   string
	}{domain.ProductColumns, rows, query})
}

func (c *Reporter) KPIs(values map[domain.Slot]string) error {
	return c.render("kpis", kpisTemplate, KPILines(values))
}

func (c *Reporter) Sheets(summaries []dataset.SheetSummary) error {
	return c.render("sheets", sheetsTemplate, summaries)
}
