// Package export writes the pivoted product view to spreadsheet-friendly
// formats.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/monolog-ai/monolog/domain/catalog"
)

// utf8BOM makes Excel open the file as UTF-8 so the Korean headers render.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVExporter streams the pivoted catalog as CSV.
type CSVExporter struct {
	store catalog.Store
}

// NewCSVExporter creates a CSVExporter.
func NewCSVExporter(store catalog.Store) *CSVExporter {
	return &CSVExporter{store: store}
}

// Write exports every product to w and returns the number of data rows
// written. The header row uses the pivot's display labels; OCR lines are
// flattened to readable text.
func (e *CSVExporter) Write(ctx context.Context, w io.Writer, options ...catalog.Option) (int, error) {
	products, err := e.store.Pivot(ctx, options...)
	if err != nil {
		return 0, fmt.Errorf("load products: %w", err)
	}

	if _, err := w.Write(utf8BOM); err != nil {
		return 0, fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"id"}
	for _, f := range catalog.Fields() {
		header = append(header, f.Label())
	}
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	rows := 0
	for _, p := range products {
		if err := cw.Write(record(p)); err != nil {
			return rows, fmt.Errorf("write row: %w", err)
		}
		rows++
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return rows, fmt.Errorf("flush csv: %w", err)
	}
	return rows, nil
}

func record(p catalog.Product) []string {
	row := []string{strconv.FormatInt(p.ID(), 10)}
	for _, f := range catalog.Fields() {
		switch {
		case f.IsInt():
			if v, ok := p.Price(); ok {
				row = append(row, strconv.FormatInt(v, 10))
			} else {
				row = append(row, "")
			}
		case f == catalog.FieldOCRLines:
			row = append(row, p.OCRText())
		default:
			v, _ := p.Text(f)
			row = append(row, v)
		}
	}
	return row
}
