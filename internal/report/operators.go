package report

import (
	"sort"

	"agritrack/backend/internal/records"
)

var operatorHeader = []columnGroup{
	{title: "No."},
	{title: "Name of Operator"},
	{title: "Barangay"},
	{title: "Type of Operation"},
	{title: "Cultured Species"},
	{title: "Pond Area (ha)"},
	{title: "Production (kg)"},
	{title: "Ave Yield (kg/ha)"},
}

// buildOperatorReport emits the aquaculture operator listing: one row per
// operator record, ordered by barangay then operator name.
func buildOperatorReport(operators []records.RawRecord, f Filters, meta Meta) *Document {
	filtered := filterRecords(operators, f)
	width := headerWidth(operatorHeader)

	doc := NewDocument(KindOperators)
	sh := doc.AddSheet("Operators")

	row := writeTitleBlock(sh, width, "FISHERIES PROGRAM", "List of Aquaculture Operators and Production")
	row = writeMetaBlock(sh, row, width, meta, f)
	firstDataRow := writeHeader(sh, row, operatorHeader)

	sort.SliceStable(filtered, func(i, j int) bool {
		bi := records.ResolveString(filtered[i], records.BarangayKeys...)
		bj := records.ResolveString(filtered[j], records.BarangayKeys...)
		if bi != bj {
			return bi < bj
		}
		return records.ResolveString(filtered[i], records.FarmerNameKeys...) < records.ResolveString(filtered[j], records.FarmerNameKeys...)
	})

	for i, rec := range filtered {
		row := firstDataRow + i
		area := records.ResolveNumber(rec, "", records.AreaKeys...)
		prod := records.ResolveNumber(rec, "", records.ProductionKeys...)
		sh.SetStyled(row, 1, i+1, Style{Align: AlignCenter, Border: true})
		sh.SetStyled(row, 2, records.ResolveString(rec, records.FarmerNameKeys...), textStyle)
		sh.SetStyled(row, 3, records.ResolveString(rec, records.BarangayKeys...), textStyle)
		sh.SetStyled(row, 4, records.ResolveString(rec, records.OperationTypeKeys...), textStyle)
		sh.SetStyled(row, 5, records.ResolveString(rec, records.SpeciesKeys...), textStyle)
		sh.SetStyled(row, 6, round2(area), numberStyle)
		sh.SetStyled(row, 7, round2(prod), numberStyle)
		sh.SetStyled(row, 8, yieldValue(prod, area), numberStyle)
	}

	totalsRow := padRows(sh, firstDataRow, len(filtered), operatorFixedRows, width)
	sh.SetStyled(totalsRow, 1, "TOTAL", labelStyle)
	sh.MergeAcross(totalsRow, 1, 5)
	var area, prod float64
	for i := 0; i < len(filtered); i++ {
		area += numericAt(sh, firstDataRow+i, 6)
		prod += numericAt(sh, firstDataRow+i, 7)
	}
	sh.SetStyled(totalsRow, 6, round2(area), totalStyle)
	sh.SetStyled(totalsRow, 7, round2(prod), totalStyle)
	sh.SetStyled(totalsRow, 8, yieldValue(prod, area), totalStyle)
	writeSignatureBlock(sh, totalsRow+1, width)

	sh.ColWidths[1] = 6
	sh.ColWidths[2] = 26
	sh.ColWidths[3] = 18
	sh.ColWidths[4] = 18
	sh.ColWidths[5] = 18
	for col := 6; col <= width; col++ {
		sh.ColWidths[col] = 15
	}
	return doc
}
