// Package xlsx translates a logical report document into an .xlsx workbook
// via excelize. It is the only place the spreadsheet library is touched, so
// layout policy stays testable without a real spreadsheet engine.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"agritrack/backend/internal/report"
)

// Render builds the workbook for a document. Any excelize failure surfaces
// to the caller: export is the path where a silently degraded artifact is
// worse than an error.
func Render(doc *report.Document) (*excelize.File, error) {
	if doc == nil || len(doc.Sheets) == 0 {
		return nil, fmt.Errorf("render: document has no sheets")
	}

	f := excelize.NewFile()
	styles := make(map[report.Style]int)

	for i, sheet := range doc.Sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return nil, fmt.Errorf("render sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, fmt.Errorf("render sheet %q: %w", sheet.Name, err)
		}
		if err := renderSheet(f, sheet, styles); err != nil {
			return nil, fmt.Errorf("render sheet %q: %w", sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write renders the document and writes the workbook bytes to w.
func Write(doc *report.Document, w io.Writer) error {
	f, err := Render(doc)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func renderSheet(f *excelize.File, sheet *report.Sheet, styles map[report.Style]int) error {
	rows, cols := sheet.Dimensions()
	for row := 1; row <= rows; row++ {
		for col := 1; col <= cols; col++ {
			cell, ok := sheet.Cell(row, col)
			if !ok {
				continue
			}
			name, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet.Name, name, cell.Value); err != nil {
				return err
			}
			if cell.Style != (report.Style{}) {
				styleID, err := styleID(f, styles, cell.Style)
				if err != nil {
					return err
				}
				if err := f.SetCellStyle(sheet.Name, name, name, styleID); err != nil {
					return err
				}
			}
		}
	}

	for _, m := range sheet.Merges {
		start, err := excelize.CoordinatesToCellName(m.StartCol, m.StartRow)
		if err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(m.EndCol, m.EndRow)
		if err != nil {
			return err
		}
		if err := f.MergeCell(sheet.Name, start, end); err != nil {
			return err
		}
	}

	for col, width := range sheet.ColWidths {
		letter, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, letter, letter, width); err != nil {
			return err
		}
	}
	return nil
}

// styleID resolves a logical style to an excelize style, caching by value so
// identical cells share one workbook style entry.
func styleID(f *excelize.File, cache map[report.Style]int, st report.Style) (int, error) {
	if id, ok := cache[st]; ok {
		return id, nil
	}

	xs := &excelize.Style{}
	if st.Bold || st.Italic {
		xs.Font = &excelize.Font{Bold: st.Bold, Italic: st.Italic}
	}
	if st.Align != "" {
		xs.Alignment = &excelize.Alignment{
			Horizontal: string(st.Align),
			Vertical:   "center",
			WrapText:   true,
		}
	}
	if st.Border {
		sides := []string{"left", "right", "top", "bottom"}
		for _, side := range sides {
			xs.Border = append(xs.Border, excelize.Border{Type: side, Color: "000000", Style: 1})
		}
	}
	if st.Fill != "" {
		xs.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{st.Fill}}
	}
	if st.NumFmt != "" {
		fmtStr := st.NumFmt
		xs.CustomNumFmt = &fmtStr
	}

	id, err := f.NewStyle(xs)
	if err != nil {
		return 0, fmt.Errorf("new style: %w", err)
	}
	cache[st] = id
	return id, nil
}
