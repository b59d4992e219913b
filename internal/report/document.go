// Package report lays out the printable spreadsheet reports that reproduce
// the office's paper templates: fixed titles, merged header regions, rows
// grouped by barangay, re-summed totals, blank padding to a constant row
// count and a signature block. The package builds a logical grid document;
// translating it to an actual workbook is the xlsx adapter's job, which
// keeps the layout policy testable without a spreadsheet engine.
package report

import (
	"fmt"
	"time"
)

// Align is a horizontal cell alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Style carries the subset of cell styling the templates use. The zero
// value is an unstyled cell.
type Style struct {
	Bold   bool
	Italic bool
	Align  Align
	Border bool
	Fill   string // RGB hex, e.g. "DDEBF7"
	NumFmt string // number format, e.g. "#,##0.00"
}

// Cell is one addressed grid value.
type Cell struct {
	Value any
	Style Style
}

// Merge is an inclusive rectangular merge span. Spans never overlap; the
// builders place them on disjoint regions by construction.
type Merge struct {
	StartRow, StartCol, EndRow, EndCol int
}

// Sheet is a 2-D grid addressed by 1-based (row, column).
type Sheet struct {
	Name      string
	Merges    []Merge
	ColWidths map[int]float64

	cells  map[[2]int]Cell
	maxRow int
	maxCol int
}

// Document is an ordered sequence of sheets for one report kind.
type Document struct {
	Kind   string
	Sheets []*Sheet
}

// NewDocument returns an empty document for the given report kind.
func NewDocument(kind string) *Document {
	return &Document{Kind: kind, Sheets: make([]*Sheet, 0)}
}

// AddSheet appends a named empty sheet and returns it.
func (d *Document) AddSheet(name string) *Sheet {
	s := &Sheet{
		Name:      name,
		Merges:    make([]Merge, 0),
		ColWidths: make(map[int]float64),
		cells:     make(map[[2]int]Cell),
	}
	d.Sheets = append(d.Sheets, s)
	return s
}

// Filename returns the export filename convention: {kind}_export_{ISO-date}.xlsx.
func (d *Document) Filename(now time.Time) string {
	return fmt.Sprintf("%s_export_%s.xlsx", d.Kind, now.Format("2006-01-02"))
}

// Set places a plain value at (row, col).
func (s *Sheet) Set(row, col int, v any) {
	s.SetStyled(row, col, v, Style{})
}

// SetStyled places a value with styling at (row, col).
func (s *Sheet) SetStyled(row, col int, v any, st Style) {
	s.cells[[2]int{row, col}] = Cell{Value: v, Style: st}
	if row > s.maxRow {
		s.maxRow = row
	}
	if col > s.maxCol {
		s.maxCol = col
	}
}

// Cell returns the cell at (row, col), if set.
func (s *Sheet) Cell(row, col int) (Cell, bool) {
	c, ok := s.cells[[2]int{row, col}]
	return c, ok
}

// Value returns the value at (row, col), or nil.
func (s *Sheet) Value(row, col int) any {
	c, _ := s.Cell(row, col)
	return c.Value
}

// MergeRange records a rectangular merge span.
func (s *Sheet) MergeRange(startRow, startCol, endRow, endCol int) {
	s.Merges = append(s.Merges, Merge{StartRow: startRow, StartCol: startCol, EndRow: endRow, EndCol: endCol})
	if endRow > s.maxRow {
		s.maxRow = endRow
	}
	if endCol > s.maxCol {
		s.maxCol = endCol
	}
}

// MergeAcross merges one row from startCol through endCol.
func (s *Sheet) MergeAcross(row, startCol, endCol int) {
	s.MergeRange(row, startCol, row, endCol)
}

// Dimensions reports the extent of the populated grid.
func (s *Sheet) Dimensions() (rows, cols int) {
	return s.maxRow, s.maxCol
}
