// Package sheet adapts the spreadsheet library: it decodes workbook bytes
// into a grid of untyped cells and builds the workbooks the portal serves.
package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/acreis/pericias-portal/internal/normalize"
)

// headerScanLimit bounds the search for a header row; spreadsheets carry a
// variable number of title rows above the real header.
const headerScanLimit = 20

// Sheet is the first worksheet of a workbook, decoded as rows of cells in
// physical order.
type Sheet struct {
	Rows [][]normalize.Cell

	f    *excelize.File
	name string
}

// Decode reads workbook bytes and returns its first worksheet.
func Decode(b []byte) (*Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	name := f.GetSheetName(0)
	if name == "" {
		_ = f.Close()
		return nil, errors.New("workbook has no sheets")
	}
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("read rows: %w", err)
	}

	rows := make([][]normalize.Cell, len(raw))
	for i, rawRow := range raw {
		cells := make([]normalize.Cell, len(rawRow))
		for j, v := range rawRow {
			cells[j] = typedCell(f, name, i, j, v)
		}
		rows[i] = cells
	}
	return &Sheet{Rows: rows, f: f, name: name}, nil
}

// typedCell decides whether a raw value is a string or a numeric serial.
// Shared and inline strings stay strings even when they look numeric.
func typedCell(f *excelize.File, sheet string, row, col int, raw string) normalize.Cell {
	if strings.TrimSpace(raw) == "" {
		return normalize.EmptyCell()
	}
	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err == nil {
		if ct, err := f.GetCellType(sheet, axis); err == nil {
			if ct == excelize.CellTypeSharedString || ct == excelize.CellTypeInlineString {
				return normalize.StringCell(raw)
			}
		}
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return normalize.NumberCell(n)
	}
	return normalize.StringCell(raw)
}

// Close releases the underlying workbook.
func (s *Sheet) Close() error {
	return s.f.Close()
}

// HyperlinkAt returns the hyperlink target embedded in the cell at the given
// zero-based row and column, or "" when none is set.
func (s *Sheet) HyperlinkAt(row, col int) string {
	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return ""
	}
	ok, link, err := s.f.GetCellHyperLink(s.name, axis)
	if err != nil || !ok {
		return ""
	}
	return link
}

// FindHeaderRow scans the first rows for one containing the marker label and
// returns its index, defaulting to 0 when the marker never appears.
func (s *Sheet) FindHeaderRow(marker string) int {
	limit := len(s.Rows)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}
	for i := 0; i < limit; i++ {
		for _, c := range s.Rows[i] {
			if c.Kind == normalize.KindString && strings.Contains(c.String, marker) {
				return i
			}
		}
	}
	return 0
}

// CellAt returns the cell at the given zero-based coordinates, tolerating
// short rows: anything out of range is an empty cell.
func (s *Sheet) CellAt(row, col int) normalize.Cell {
	if row < 0 || row >= len(s.Rows) {
		return normalize.EmptyCell()
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return normalize.EmptyCell()
	}
	return r[col]
}
