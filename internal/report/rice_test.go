package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agritrack/backend/internal/records"
)

func riceTestRecords() []records.RawRecord {
	return []records.RawRecord{
		{
			"barangay":       "Poblacion",
			"seed_type":      "Hybrid",
			"area_type":      "irrigated",
			"area_harvested": 2.0,
			"production":     10.0,
		},
		{
			"barangay":       "Poblacion",
			"seed_type":      "Certified",
			"area_type":      "irrigated",
			"area_harvested": 1.0,
			"production":     4.0,
		},
		{
			"barangay":       "San Jose",
			"seed_type":      "Good seeds",
			"area_type":      "rainfed lowland",
			"area_harvested": 3.0,
			"production":     6.0,
		},
	}
}

func TestRiceReportAlwaysTwoSheets(t *testing.T) {
	doc, err := Build(KindRice, records.Dataset{}, Filters{}, testMeta)
	require.NoError(t, err)
	require.Len(t, doc.Sheets, 2)
	assert.Equal(t, "Irrigated", doc.Sheets[0].Name)
	assert.Equal(t, "Rainfed", doc.Sheets[1].Name)
}

func TestRiceReportPartitionsByEcosystem(t *testing.T) {
	doc, err := Build(KindRice, records.Dataset{Rice: riceTestRecords()}, Filters{}, testMeta)
	require.NoError(t, err)

	irrigated, rainfed := doc.Sheets[0], doc.Sheets[1]

	// Title 3 rows, spacer, meta 3 rows, spacer, header 2 rows.
	firstDataRow := 11
	assert.Equal(t, "Poblacion", irrigated.Value(firstDataRow, 2))
	assert.Equal(t, 2.0, irrigated.Value(firstDataRow, 3))  // hybrid area
	assert.Equal(t, 10.0, irrigated.Value(firstDataRow, 4)) // hybrid production
	assert.Equal(t, 5.0, irrigated.Value(firstDataRow, 5))  // hybrid yield
	assert.Equal(t, 1.0, irrigated.Value(firstDataRow, 6))  // certified area
	assert.Equal(t, 4.0, irrigated.Value(firstDataRow, 7))
	assert.Equal(t, 3.0, irrigated.Value(firstDataRow, 12))  // total area
	assert.Equal(t, 14.0, irrigated.Value(firstDataRow, 13)) // total production

	// Farmer-saved is the default seed class.
	assert.Equal(t, "San Jose", rainfed.Value(firstDataRow, 2))
	assert.Equal(t, 3.0, rainfed.Value(firstDataRow, 9))
	assert.Equal(t, 6.0, rainfed.Value(firstDataRow, 10))
	assert.Equal(t, 2.0, rainfed.Value(firstDataRow, 11))
}

func TestRiceReportTotalsResummedFromRows(t *testing.T) {
	doc, err := Build(KindRice, records.Dataset{Rice: riceTestRecords()}, Filters{}, testMeta)
	require.NoError(t, err)
	irrigated := doc.Sheets[0]

	firstDataRow := 11
	totalsRow := firstDataRow + riceFixedRows
	assert.Equal(t, "TOTAL", irrigated.Value(totalsRow, 1))
	assert.Equal(t, 2.0, irrigated.Value(totalsRow, 3))
	assert.Equal(t, 10.0, irrigated.Value(totalsRow, 4))
	assert.Equal(t, 5.0, irrigated.Value(totalsRow, 5))
	assert.Equal(t, 3.0, irrigated.Value(totalsRow, 12))
	assert.Equal(t, 14.0, irrigated.Value(totalsRow, 13))
}

func TestRiceReportEmptyPartitionZeroTotals(t *testing.T) {
	doc, err := Build(KindRice, records.Dataset{}, Filters{}, testMeta)
	require.NoError(t, err)
	irrigated := doc.Sheets[0]

	firstDataRow := 11
	totalsRow := firstDataRow + riceFixedRows
	assert.Equal(t, 0.0, irrigated.Value(totalsRow, 3))
	assert.Equal(t, 0.0, irrigated.Value(totalsRow, 4))
	assert.Equal(t, DivZeroMarker, irrigated.Value(totalsRow, 5))

	// All 30 template rows stay numbered even with no data.
	for i := 0; i < riceFixedRows; i++ {
		assert.Equal(t, i+1, irrigated.Value(firstDataRow+i, 1))
	}
}

func TestRiceReportDivZeroMarkerOnRow(t *testing.T) {
	rice := []records.RawRecord{
		{"barangay": "Poblacion", "seed_type": "Hybrid", "area_harvested": 0.0, "production": 5.0},
	}

	doc, err := Build(KindRice, records.Dataset{Rice: rice}, Filters{}, testMeta)
	require.NoError(t, err)
	irrigated := doc.Sheets[0]

	firstDataRow := 11
	assert.Equal(t, DivZeroMarker, irrigated.Value(firstDataRow, 5))
	// Certified group saw no records at all.
	assert.Equal(t, DivZeroMarker, irrigated.Value(firstDataRow, 8))
}

func TestRiceReportAreaTypeFilter(t *testing.T) {
	doc, err := Build(KindRice, records.Dataset{Rice: riceTestRecords()}, Filters{AreaType: "rainfed"}, testMeta)
	require.NoError(t, err)
	require.Len(t, doc.Sheets, 2)

	irrigated, rainfed := doc.Sheets[0], doc.Sheets[1]
	firstDataRow := 11

	// The irrigated sheet is still emitted but carries no data rows.
	assert.Equal(t, 1, irrigated.Value(firstDataRow, 1))
	assert.Equal(t, "", irrigated.Value(firstDataRow, 2))
	assert.Equal(t, "San Jose", rainfed.Value(firstDataRow, 2))
}

func TestRiceReportBarangayFilter(t *testing.T) {
	doc, err := Build(KindRice, records.Dataset{Rice: riceTestRecords()}, Filters{Barangay: "Poblacion"}, testMeta)
	require.NoError(t, err)
	rainfed := doc.Sheets[1]

	// The barangay line shifts the grid down one row.
	firstDataRow := 12
	assert.Equal(t, "", rainfed.Value(firstDataRow, 2))
}

func TestRiceReportRowsBeyondTemplateKeepTotalsIntact(t *testing.T) {
	var rice []records.RawRecord
	for i := 0; i < riceFixedRows+1; i++ {
		rice = append(rice, records.RawRecord{
			"barangay":   fmt.Sprintf("Brgy %02d", i),
			"seed_type":  "Hybrid",
			"production": 1.0,
		})
	}

	doc, err := Build(KindRice, records.Dataset{Rice: rice}, Filters{}, testMeta)
	require.NoError(t, err)
	irrigated := doc.Sheets[0]

	firstDataRow := 11
	// The overflow row survives below the template's fixed count.
	lastDataRow := firstDataRow + riceFixedRows
	assert.Equal(t, "Brgy 30", irrigated.Value(lastDataRow, 2))

	// Totals sit after the last written row and sum every visible row.
	totalsRow := lastDataRow + 1
	assert.Equal(t, "TOTAL", irrigated.Value(totalsRow, 1))
	assert.Equal(t, float64(riceFixedRows+1), irrigated.Value(totalsRow, 4))
}

func TestRiceReportBarangaysAlphabetical(t *testing.T) {
	rice := []records.RawRecord{
		{"barangay": "Zamora", "seed_type": "Hybrid", "production": 1.0},
		{"barangay": "Aquino", "seed_type": "Hybrid", "production": 2.0},
	}

	doc, err := Build(KindRice, records.Dataset{Rice: rice}, Filters{}, testMeta)
	require.NoError(t, err)
	irrigated := doc.Sheets[0]

	firstDataRow := 11
	assert.Equal(t, "Aquino", irrigated.Value(firstDataRow, 2))
	assert.Equal(t, "Zamora", irrigated.Value(firstDataRow+1, 2))
}
