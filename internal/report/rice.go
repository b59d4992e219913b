package report

import (
	"sort"
	"strings"

	"agritrack/backend/internal/records"
)

// seed classes of the rice template, in column order.
const (
	seedHybrid = iota
	seedCertified
	seedFarmerSaved
	seedClassCount
)

var riceHeader = []columnGroup{
	{title: "No."},
	{title: "Barangay"},
	{title: "Hybrid Seeds", subs: []string{"Area (ha)", "Production (MT)", "Ave Yield (MT/ha)"}},
	{title: "Certified Seeds", subs: []string{"Area (ha)", "Production (MT)", "Ave Yield (MT/ha)"}},
	{title: "Farmer-Saved Seeds", subs: []string{"Area (ha)", "Production (MT)", "Ave Yield (MT/ha)"}},
	{title: "Total", subs: []string{"Area (ha)", "Production (MT)", "Ave Yield (MT/ha)"}},
}

type riceRow struct {
	barangay string
	area     [seedClassCount]float64
	prod     [seedClassCount]float64
}

// buildRiceReport emits one sheet per irrigation ecosystem. The template
// mandates both the Irrigated and the Rainfed sheet even when a partition
// is empty.
func buildRiceReport(rice []records.RawRecord, f Filters, meta Meta) *Document {
	filtered := filterRecords(rice, f)

	irrigated := make([]records.RawRecord, 0, len(filtered))
	rainfed := make([]records.RawRecord, 0)
	for _, rec := range filtered {
		if isRainfed(rec) {
			rainfed = append(rainfed, rec)
		} else {
			irrigated = append(irrigated, rec)
		}
	}
	if strings.EqualFold(f.AreaType, "irrigated") {
		rainfed = nil
	}
	if strings.EqualFold(f.AreaType, "rainfed") {
		irrigated = nil
	}

	doc := NewDocument(KindRice)
	writeRiceSheet(doc.AddSheet("Irrigated"), "Irrigated Ecosystem", irrigated, f, meta)
	writeRiceSheet(doc.AddSheet("Rainfed"), "Rainfed Ecosystem", rainfed, f, meta)
	return doc
}

func isRainfed(rec records.RawRecord) bool {
	return strings.Contains(strings.ToLower(records.ResolveString(rec, records.IrrigationKeys...)), "rain")
}

func seedClass(rec records.RawRecord) int {
	v := strings.ToLower(records.ResolveString(rec, records.SeedClassKeys...))
	switch {
	case strings.Contains(v, "hybrid"):
		return seedHybrid
	case strings.Contains(v, "certified") || strings.Contains(v, "registered"):
		return seedCertified
	default:
		return seedFarmerSaved
	}
}

func writeRiceSheet(sh *Sheet, subtitle string, recs []records.RawRecord, f Filters, meta Meta) {
	width := headerWidth(riceHeader)

	row := writeTitleBlock(sh, width, "RICE PROGRAM", "Rice Production Report by Seed Class", subtitle)
	row = writeMetaBlock(sh, row, width, meta, f)
	firstDataRow := writeHeader(sh, row, riceHeader)

	rows := groupRiceRows(recs)
	for i, r := range rows {
		writeRiceRow(sh, firstDataRow+i, i+1, r)
	}

	totalsRow := padRows(sh, firstDataRow, len(rows), riceFixedRows, width)
	writeRiceTotals(sh, firstDataRow, totalsRow, len(rows), width)
	writeSignatureBlock(sh, totalsRow+1, width)

	sh.ColWidths[1] = 6
	sh.ColWidths[2] = 22
	for col := 3; col <= width; col++ {
		sh.ColWidths[col] = 14
	}
}

func groupRiceRows(recs []records.RawRecord) []riceRow {
	byBarangay := make(map[string]*riceRow)
	for _, rec := range recs {
		name := records.ResolveString(rec, records.BarangayKeys...)
		if name == "" {
			continue
		}
		r := byBarangay[name]
		if r == nil {
			r = &riceRow{barangay: name}
			byBarangay[name] = r
		}
		class := seedClass(rec)
		r.area[class] += records.ResolveNumber(rec, "", records.AreaKeys...)
		r.prod[class] += records.ResolveNumber(rec, "", records.ProductionKeys...)
	}

	names := make([]string, 0, len(byBarangay))
	for name := range byBarangay {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]riceRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, *byBarangay[name])
	}
	return rows
}

func writeRiceRow(sh *Sheet, row, number int, r riceRow) {
	sh.SetStyled(row, 1, number, Style{Align: AlignCenter, Border: true})
	sh.SetStyled(row, 2, r.barangay, textStyle)

	var totalArea, totalProd float64
	col := 3
	for class := 0; class < seedClassCount; class++ {
		sh.SetStyled(row, col, round2(r.area[class]), numberStyle)
		sh.SetStyled(row, col+1, round2(r.prod[class]), numberStyle)
		sh.SetStyled(row, col+2, yieldValue(r.prod[class], r.area[class]), numberStyle)
		totalArea += r.area[class]
		totalProd += r.prod[class]
		col += 3
	}
	sh.SetStyled(row, col, round2(totalArea), numberStyle)
	sh.SetStyled(row, col+1, round2(totalProd), numberStyle)
	sh.SetStyled(row, col+2, yieldValue(totalProd, totalArea), numberStyle)
}

// writeRiceTotals re-sums the area and production columns directly from the
// written data rows; the totals row never reuses dashboard aggregates.
func writeRiceTotals(sh *Sheet, firstDataRow, totalsRow, dataRows, width int) {
	sh.SetStyled(totalsRow, 1, "TOTAL", labelStyle)
	sh.MergeAcross(totalsRow, 1, 2)

	for group := 0; group < 4; group++ {
		areaCol := 3 + group*3
		var area, prod float64
		for i := 0; i < dataRows; i++ {
			area += numericAt(sh, firstDataRow+i, areaCol)
			prod += numericAt(sh, firstDataRow+i, areaCol+1)
		}
		sh.SetStyled(totalsRow, areaCol, round2(area), totalStyle)
		sh.SetStyled(totalsRow, areaCol+1, round2(prod), totalStyle)
		yield := yieldValue(prod, area)
		sh.SetStyled(totalsRow, areaCol+2, yield, totalStyle)
	}
}

func numericAt(sh *Sheet, row, col int) float64 {
	if v, ok := sh.Value(row, col).(float64); ok {
		return v
	}
	return 0
}
