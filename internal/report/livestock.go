package report

import (
	"sort"
	"strings"

	"agritrack/backend/internal/records"
)

var livestockColumns = []string{"Carabao", "Cattle", "Swine", "Goat", "Sheep", "Poultry", "Others"}

var livestockHeader = []columnGroup{
	{title: "No."},
	{title: "Barangay"},
	{title: "Number of Heads", subs: livestockColumns},
	{title: "Total"},
}

// animalColumn maps an animal-type string onto one of the template's fixed
// inventory columns.
func animalColumn(animalType string) int {
	v := strings.ToLower(strings.TrimSpace(animalType))
	switch {
	case strings.Contains(v, "carabao"):
		return 0
	case strings.Contains(v, "cattle") || strings.Contains(v, "cow"):
		return 1
	case strings.Contains(v, "swine") || strings.Contains(v, "pig") || strings.Contains(v, "hog"):
		return 2
	case strings.Contains(v, "goat"):
		return 3
	case strings.Contains(v, "sheep"):
		return 4
	case strings.Contains(v, "chicken") || strings.Contains(v, "poultry") || strings.Contains(v, "duck") || strings.Contains(v, "turkey") || strings.Contains(v, "quail"):
		return 5
	default:
		return 6
	}
}

// buildLivestockReport emits the per-barangay livestock inventory sheet.
func buildLivestockReport(livestock []records.RawRecord, f Filters, meta Meta) *Document {
	filtered := filterRecords(livestock, f)
	width := headerWidth(livestockHeader)

	doc := NewDocument(KindLivestock)
	sh := doc.AddSheet("Livestock Inventory")

	row := writeTitleBlock(sh, width, "LIVESTOCK PROGRAM", "Livestock and Poultry Inventory")
	row = writeMetaBlock(sh, row, width, meta, f)
	firstDataRow := writeHeader(sh, row, livestockHeader)

	type invRow struct {
		barangay string
		heads    [7]float64
	}
	byBarangay := make(map[string]*invRow)
	for _, rec := range filtered {
		name := records.ResolveString(rec, records.BarangayKeys...)
		if name == "" {
			continue
		}
		r := byBarangay[name]
		if r == nil {
			r = &invRow{barangay: name}
			byBarangay[name] = r
		}
		col := animalColumn(records.ResolveString(rec, records.AnimalTypeKeys...))
		r.heads[col] += records.ResolveNumber(rec, "", records.HeadCountKeys...)
	}

	names := make([]string, 0, len(byBarangay))
	for name := range byBarangay {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		r := byBarangay[name]
		row := firstDataRow + i
		sh.SetStyled(row, 1, i+1, Style{Align: AlignCenter, Border: true})
		sh.SetStyled(row, 2, r.barangay, textStyle)
		rowTotal := 0.0
		for j, heads := range r.heads {
			sh.SetStyled(row, 3+j, heads, Style{Align: AlignRight, Border: true, NumFmt: "#,##0"})
			rowTotal += heads
		}
		sh.SetStyled(row, 3+len(livestockColumns), rowTotal, Style{Bold: true, Align: AlignRight, Border: true, NumFmt: "#,##0"})
	}

	totalsRow := padRows(sh, firstDataRow, len(names), livestockFixedRows, width)
	sh.SetStyled(totalsRow, 1, "TOTAL", labelStyle)
	sh.MergeAcross(totalsRow, 1, 2)
	for col := 3; col <= width; col++ {
		sum := 0.0
		for i := 0; i < len(names); i++ {
			sum += numericAt(sh, firstDataRow+i, col)
		}
		sh.SetStyled(totalsRow, col, sum, Style{Bold: true, Align: AlignRight, Border: true, Fill: "FCE4D6", NumFmt: "#,##0"})
	}
	writeSignatureBlock(sh, totalsRow+1, width)

	sh.ColWidths[1] = 6
	sh.ColWidths[2] = 22
	for col := 3; col <= width; col++ {
		sh.ColWidths[col] = 11
	}
	return doc
}
