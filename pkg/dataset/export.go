package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Sheets the source workbook is expected to carry
var Sheets = []string{
	"apple_products",
	"Flipkart_smartphone",
	"Annual revenue",
	"Market penetration (iPhone)",
	"Country wise share",
	"Quarterly-share",
	"Model-wise share",
}

// SheetSummary describes one exported sheet
type SheetSummary struct {
	Sheet   string
	Rows    int
	Columns []string
	Path    string
}

// CSVName maps a sheet name to its export file name: spaces become
// underscores and parentheses are dropped.
func CSVName(sheet string) string {
	name := strings.ReplaceAll(sheet, " ", "_")
	name = strings.ReplaceAll(name, "(", "")
	name = strings.ReplaceAll(name, ")", "")
	return name + ".csv"
}

// ExportSheets writes every sheet of the workbook at xlsxPath to dir as CSV.
// Header names are trimmed and fully empty rows dropped.
func ExportSheets(ctx context.Context, xlsxPath, dir string) ([]SheetSummary, error) {
	logger := zerolog.Ctx(ctx)

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	sheets := f.GetSheetList()
	logger.Info().Strs("sheets", sheets).Msg("sheets found in workbook")

	summaries := make([]SheetSummary, 0, len(sheets))
	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}

		// stored values, not the formatted text ("49,900", "14%")
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return summaries, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}

		header, records := cleanSheet(rows)
		path := filepath.Join(dir, CSVName(sheet))
		if err := writeCSV(path, header, records); err != nil {
			return summaries, fmt.Errorf("failed to export sheet %q: %w", sheet, err)
		}

		summary := SheetSummary{Sheet: sheet, Rows: len(records), Columns: header, Path: path}
		summaries = append(summaries, summary)
		logger.Info().
			Str("sheet", sheet).
			Int("rows", summary.Rows).
			Strs("columns", summary.Columns).
			Str("path", path).
			Msg("sheet exported")
	}

	return summaries, nil
}

// cleanSheet splits the header from the data rows, pads ragged rows to the
// header width and drops rows without any value.
func cleanSheet(rows [][]string) ([]string, [][]string) {
	if len(rows) == 0 {
		return nil, nil
	}

	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}

	header := make([]string, width)
	for i := range header {
		if i < len(rows[0]) {
			header[i] = strings.TrimSpace(rows[0][i])
		}
	}

	var records [][]string
	for _, r := range rows[1:] {
		if isEmptyRow(r) {
			continue
		}
		record := make([]string, width)
		copy(record, r)
		records = append(records, record)
	}
	return header, records
}

func isEmptyRow(r []string) bool {
	for _, cell := range r {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func writeCSV(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if len(header) > 0 {
		if err := w.Write(header); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
