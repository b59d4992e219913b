package report

import (
	"sort"
	"strings"

	"agritrack/backend/internal/records"
)

var profileHeader = []columnGroup{
	{title: "No."},
	{title: "Barangay"},
	{title: "No. of Farmers"},
	{title: "Area Planted (ha)"},
	{title: "Production (MT)"},
	{title: "Ave Yield (MT/ha)"},
}

var vegetableHeader = []columnGroup{
	{title: "No."},
	{title: "Barangay"},
	{title: "Crop"},
	{title: "Area Planted (ha)"},
	{title: "Production (MT)"},
	{title: "Ave Yield (MT/ha)"},
}

type profileRow struct {
	barangay string
	farmers  map[string]struct{}
	area     float64
	prod     float64
}

// buildHighValueReport fans out one sheet per crop present in the filtered
// record set. Partitions with zero rows are skipped; with no data at all a
// single empty sheet keeps the workbook well-formed.
func buildHighValueReport(crops []records.RawRecord, f Filters, meta Meta) *Document {
	filtered := filterRecords(crops, f)

	byCrop := make(map[string][]records.RawRecord)
	for _, rec := range filtered {
		name := records.ResolveString(rec, records.CropNameKeys...)
		if name == "" {
			continue
		}
		if f.CropType != "" && !strings.EqualFold(name, f.CropType) {
			continue
		}
		byCrop[name] = append(byCrop[name], rec)
	}

	cropNames := make([]string, 0, len(byCrop))
	for name := range byCrop {
		cropNames = append(cropNames, name)
	}
	sort.Strings(cropNames)

	doc := NewDocument(KindHighValue)
	if len(cropNames) == 0 {
		writeProfileSheet(doc.AddSheet("High Value Crops"), "High Value Crops Production Profile", nil, f, meta)
		return doc
	}
	for _, name := range cropNames {
		writeProfileSheet(doc.AddSheet(name), name+" Production Profile", byCrop[name], f, meta)
	}
	return doc
}

func writeProfileSheet(sh *Sheet, subtitle string, recs []records.RawRecord, f Filters, meta Meta) {
	width := headerWidth(profileHeader)

	row := writeTitleBlock(sh, width, "HIGH VALUE CROPS DEVELOPMENT PROGRAM", subtitle)
	row = writeMetaBlock(sh, row, width, meta, f)
	firstDataRow := writeHeader(sh, row, profileHeader)

	byBarangay := make(map[string]*profileRow)
	for _, rec := range recs {
		name := records.ResolveString(rec, records.BarangayKeys...)
		if name == "" {
			continue
		}
		r := byBarangay[name]
		if r == nil {
			r = &profileRow{barangay: name, farmers: make(map[string]struct{})}
			byBarangay[name] = r
		}
		if farmer := records.ResolveString(rec, records.FarmerNameKeys...); farmer != "" {
			r.farmers[farmer] = struct{}{}
		}
		r.area += records.ResolveNumber(rec, "", records.AreaKeys...)
		r.prod += records.ResolveNumber(rec, "", records.ProductionKeys...)
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
		sh.SetStyled(row, 3, len(r.farmers), Style{Align: AlignCenter, Border: true})
		sh.SetStyled(row, 4, round2(r.area), numberStyle)
		sh.SetStyled(row, 5, round2(r.prod), numberStyle)
		sh.SetStyled(row, 6, yieldValue(r.prod, r.area), numberStyle)
	}

	totalsRow := padRows(sh, firstDataRow, len(names), profileFixedRows, width)
	sh.SetStyled(totalsRow, 1, "TOTAL", labelStyle)
	sh.MergeAcross(totalsRow, 1, 3)
	var area, prod float64
	for i := 0; i < len(names); i++ {
		area += numericAt(sh, firstDataRow+i, 4)
		prod += numericAt(sh, firstDataRow+i, 5)
	}
	sh.SetStyled(totalsRow, 4, round2(area), totalStyle)
	sh.SetStyled(totalsRow, 5, round2(prod), totalStyle)
	sh.SetStyled(totalsRow, 6, yieldValue(prod, area), totalStyle)
	writeSignatureBlock(sh, totalsRow+1, width)

	sh.ColWidths[1] = 6
	sh.ColWidths[2] = 22
	for col := 3; col <= width; col++ {
		sh.ColWidths[col] = 16
	}
}

// buildVegetableReport emits the vegetable production profile: general crop
// records that classify as vegetables, one row per barangay and crop.
func buildVegetableReport(crops []records.RawRecord, f Filters, meta Meta) *Document {
	filtered := filterRecords(crops, f)
	width := headerWidth(vegetableHeader)

	doc := NewDocument(KindVegetables)
	sh := doc.AddSheet("Vegetables")

	row := writeTitleBlock(sh, width, "VEGETABLE PROGRAM", "Vegetable Production Profile")
	row = writeMetaBlock(sh, row, width, meta, f)
	firstDataRow := writeHeader(sh, row, vegetableHeader)

	type vegKey struct {
		barangay string
		crop     string
	}
	type vegRow struct {
		area float64
		prod float64
	}
	byKey := make(map[vegKey]*vegRow)
	for _, rec := range filtered {
		if records.Classify(records.DomainCrop, rec) != records.CategoryVegetables {
			continue
		}
		key := vegKey{
			barangay: records.ResolveString(rec, records.BarangayKeys...),
			crop:     records.ResolveString(rec, records.CropNameKeys...),
		}
		if key.barangay == "" || key.crop == "" {
			continue
		}
		if f.CropType != "" && !strings.EqualFold(key.crop, f.CropType) {
			continue
		}
		r := byKey[key]
		if r == nil {
			r = &vegRow{}
			byKey[key] = r
		}
		r.area += records.ResolveNumber(rec, "", records.AreaKeys...)
		r.prod += records.ResolveNumber(rec, records.HarvestKey, records.ProductionKeys...)
	}

	keys := make([]vegKey, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].barangay != keys[j].barangay {
			return keys[i].barangay < keys[j].barangay
		}
		return keys[i].crop < keys[j].crop
	})

	for i, key := range keys {
		r := byKey[key]
		row := firstDataRow + i
		sh.SetStyled(row, 1, i+1, Style{Align: AlignCenter, Border: true})
		sh.SetStyled(row, 2, key.barangay, textStyle)
		sh.SetStyled(row, 3, key.crop, textStyle)
		sh.SetStyled(row, 4, round2(r.area), numberStyle)
		sh.SetStyled(row, 5, round2(r.prod), numberStyle)
		sh.SetStyled(row, 6, yieldValue(r.prod, r.area), numberStyle)
	}

	totalsRow := padRows(sh, firstDataRow, len(keys), profileFixedRows, width)
	sh.SetStyled(totalsRow, 1, "TOTAL", labelStyle)
	sh.MergeAcross(totalsRow, 1, 3)
	var area, prod float64
	for i := 0; i < len(keys); i++ {
		area += numericAt(sh, firstDataRow+i, 4)
		prod += numericAt(sh, firstDataRow+i, 5)
	}
	sh.SetStyled(totalsRow, 4, round2(area), totalStyle)
	sh.SetStyled(totalsRow, 5, round2(prod), totalStyle)
	sh.SetStyled(totalsRow, 6, yieldValue(prod, area), totalStyle)
	writeSignatureBlock(sh, totalsRow+1, width)

	sh.ColWidths[1] = 6
	sh.ColWidths[2] = 22
	sh.ColWidths[3] = 18
	for col := 4; col <= width; col++ {
		sh.ColWidths[col] = 16
	}
	return doc
}
