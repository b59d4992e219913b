package report

import "math"

// Meta is the administrative header every template carries.
type Meta struct {
	Region       string
	Province     string
	Municipality string
}

// DivZeroMarker is the literal the paper templates show for average yield
// when the harvested area is zero. It must render verbatim, never a numeric
// zero or a computed infinity.
const DivZeroMarker = "#DIV/0!"

const numberFormat = "#,##0.00"

var (
	titleStyle  = Style{Bold: true, Align: AlignCenter}
	metaStyle   = Style{Align: AlignLeft}
	headerStyle = Style{Bold: true, Align: AlignCenter, Border: true, Fill: "DDEBF7"}
	textStyle   = Style{Align: AlignLeft, Border: true}
	numberStyle = Style{Align: AlignRight, Border: true, NumFmt: numberFormat}
	totalStyle  = Style{Bold: true, Align: AlignRight, Border: true, Fill: "FCE4D6", NumFmt: numberFormat}
	labelStyle  = Style{Bold: true, Align: AlignLeft, Border: true, Fill: "FCE4D6"}
	signStyle   = Style{Bold: true, Align: AlignCenter}
	roleStyle   = Style{Italic: true, Align: AlignCenter}
)

// yieldValue computes production over area, or the divide-by-zero marker
// when area is zero or unresolved.
func yieldValue(production, area float64) any {
	if area <= 0 {
		return DivZeroMarker
	}
	return round2(production / area)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// columnGroup describes one group of the two-row header: a top-row title
// merged across its sub-columns. A group with no subs is a single column
// merged vertically across both header rows.
type columnGroup struct {
	title string
	subs  []string
}

func (g columnGroup) width() int {
	if len(g.subs) == 0 {
		return 1
	}
	return len(g.subs)
}

func headerWidth(groups []columnGroup) int {
	w := 0
	for _, g := range groups {
		w += g.width()
	}
	return w
}

// writeTitleBlock writes the merged title lines at the top of a sheet and
// returns the next free row.
func writeTitleBlock(sh *Sheet, width int, lines ...string) int {
	row := 1
	for _, line := range lines {
		sh.SetStyled(row, 1, line, titleStyle)
		sh.MergeAcross(row, 1, width)
		row++
	}
	return row + 1 // one blank spacer row
}

// writeMetaBlock writes the region/province/municipality block, plus the
// barangay restriction when the report is filtered to one area.
func writeMetaBlock(sh *Sheet, row, width int, meta Meta, f Filters) int {
	lines := []string{
		"Region: " + meta.Region,
		"Province: " + meta.Province,
		"Municipality: " + meta.Municipality,
	}
	if f.Barangay != "" {
		lines = append(lines, "Barangay: "+f.Barangay)
	}
	for _, line := range lines {
		sh.SetStyled(row, 1, line, metaStyle)
		sh.MergeAcross(row, 1, width)
		row++
	}
	return row + 1
}

// writeHeader lays out the two-row grouped column header and returns the
// first data row.
func writeHeader(sh *Sheet, row int, groups []columnGroup) int {
	col := 1
	for _, g := range groups {
		if len(g.subs) == 0 {
			sh.SetStyled(row, col, g.title, headerStyle)
			sh.MergeRange(row, col, row+1, col)
			col++
			continue
		}
		sh.SetStyled(row, col, g.title, headerStyle)
		if len(g.subs) > 1 {
			sh.MergeAcross(row, col, col+len(g.subs)-1)
		}
		for i, sub := range g.subs {
			sh.SetStyled(row+1, col+i, sub, headerStyle)
		}
		col += len(g.subs)
	}
	return row + 2
}

// padRows fills the region between the last real data row and the template's
// fixed row count with blank numbered rows so printed forms keep a constant
// page layout. When the data outgrows the template the totals row moves
// below the last written row instead of overwriting it.
func padRows(sh *Sheet, firstDataRow, written, fixedRows, width int) int {
	for i := written; i < fixedRows; i++ {
		row := firstDataRow + i
		sh.SetStyled(row, 1, i+1, Style{Align: AlignCenter, Border: true})
		for col := 2; col <= width; col++ {
			sh.SetStyled(row, col, "", Style{Border: true})
		}
	}
	if written > fixedRows {
		return firstDataRow + written
	}
	return firstDataRow + fixedRows
}

// signatory names the three-column signature block appended after the
// padded region.
type signatory struct {
	caption string
	role    string
}

var defaultSignatories = []signatory{
	{"Prepared by:", "Agricultural Technician"},
	{"Certified correct:", "Municipal Agriculturist"},
	{"Noted by:", "Municipal Mayor"},
}

// writeSignatureBlock appends the fixed three-signatory block.
func writeSignatureBlock(sh *Sheet, row, width int) {
	row += 2
	span := width / 3
	if span < 1 {
		span = 1
	}
	for i, sig := range defaultSignatories {
		col := 1 + i*span
		end := col + span - 1
		if i == len(defaultSignatories)-1 {
			end = width
		}
		sh.SetStyled(row, col, sig.caption, metaStyle)
		sh.SetStyled(row+2, col, "_________________________", signStyle)
		sh.SetStyled(row+3, col, sig.role, roleStyle)
		if end > col {
			sh.MergeAcross(row, col, end)
			sh.MergeAcross(row+2, col, end)
			sh.MergeAcross(row+3, col, end)
		}
	}
}
