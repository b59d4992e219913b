package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agritrack/backend/internal/records"
)

func TestAggregateEmptyDatasetFullyShaped(t *testing.T) {
	agg := Aggregate(records.Dataset{}, Options{Year: 2024})

	assert.Zero(t, agg.TotalProduction)
	assert.Zero(t, agg.TotalFarmers)
	assert.Zero(t, agg.TotalArea)
	assert.Zero(t, agg.ProductionTrend)

	require.Len(t, agg.MonthlyProduction, 12)
	assert.Equal(t, "Jan", agg.MonthlyProduction[0].Month)
	assert.Equal(t, "Dec", agg.MonthlyProduction[11].Month)
	for _, m := range agg.MonthlyProduction {
		assert.Zero(t, m.Value)
	}

	require.Len(t, agg.YearlyProduction, 3)
	assert.Equal(t, 2022, agg.YearlyProduction[0].Year)
	assert.Equal(t, 2024, agg.YearlyProduction[2].Year)

	require.Len(t, agg.CategoryData, 8)
	for _, c := range records.Categories() {
		ca, ok := agg.CategoryData[c]
		require.True(t, ok, "category %q missing", c)
		assert.Zero(t, ca.Total)
		assert.NotNil(t, ca.Items)
	}

	assert.NotNil(t, agg.CropProduction)
	assert.NotNil(t, agg.ProductionByBarangay)
	assert.NotNil(t, agg.TopBarangays)
	assert.NotNil(t, agg.TopPerformingItems)
	assert.NotNil(t, agg.RecentHarvests)
	require.Len(t, agg.FarmerTypeDistribution, 3)
}

func TestAggregateSingleRiceRecord(t *testing.T) {
	data := records.Dataset{
		Farmers: []records.RawRecord{
			{"farmer_id": int64(1), "farmer_name": "Juan Dela Cruz", "barangay": "Libertad"},
		},
		Rice: []records.RawRecord{
			{
				"farmer_id":      int64(1),
				"farmer_name":    "Juan Dela Cruz",
				"barangay":       "Libertad",
				"variety":        "NSIC Rc 222",
				"area_harvested": 2.0,
				"production":     10.0,
				"harvest_date":   "2024-03-01",
			},
		},
	}

	agg := Aggregate(data, Options{Year: 2024})

	assert.Equal(t, 10.0, agg.TotalProduction)
	assert.Equal(t, 1, agg.TotalFarmers)
	assert.Equal(t, 2.0, agg.TotalArea)

	rice := agg.CategoryData[records.CategoryRice]
	assert.Equal(t, 10.0, rice.Total)
	require.Len(t, rice.Items, 1)
	assert.Equal(t, "NSIC Rc 222", rice.Items[0].Name)

	require.Len(t, agg.ProductionByBarangay, 1)
	assert.Equal(t, "Libertad", agg.ProductionByBarangay[0].Name)
	assert.Equal(t, 10.0, agg.ProductionByBarangay[0].Value)
	assert.Equal(t, records.CategoryRice, agg.ProductionByBarangay[0].HighestCategory)

	assert.Equal(t, 10.0, agg.MonthlyProduction[2].Value) // March
	assert.Equal(t, 10.0, agg.YearlyProduction[2].Value)  // 2024

	require.Len(t, agg.RecentHarvests, 1)
	assert.Equal(t, "Juan Dela Cruz", agg.RecentHarvests[0].Farmer)
	assert.Equal(t, "5.00", agg.RecentHarvests[0].YieldPerHectare)
}

func TestAggregateTotalEqualsSumOfCategoryTotals(t *testing.T) {
	data := records.Dataset{
		Rice: []records.RawRecord{
			{"barangay": "Poblacion", "production": 4.0},
		},
		Crops: []records.RawRecord{
			{"barangay": "Poblacion", "crop": "Lakatan", "quantity": 3.0},
			{"barangay": "San Isidro", "crop": "Ginger", "quantity": 2.5},
		},
		Livestock: []records.RawRecord{
			{"barangay": "San Isidro", "animal_type": "Swine", "quantity": 6.0},
		},
	}

	agg := Aggregate(data, Options{Year: 2024})

	var catSum float64
	for _, ca := range agg.CategoryData {
		catSum += ca.Total
	}
	assert.InDelta(t, catSum, agg.TotalProduction, 1e-9)
	assert.InDelta(t, 15.5, agg.TotalProduction, 1e-9)

	var brgySum float64
	for _, b := range agg.ProductionByBarangay {
		brgySum += b.Value
	}
	assert.InDelta(t, agg.TotalProduction, brgySum, 1e-9)
}

func TestAggregateCategoryItemsSortedDescending(t *testing.T) {
	data := records.Dataset{
		Crops: []records.RawRecord{
			{"crop": "Okra", "quantity": 2.0, "barangay": "A"},
			{"crop": "Eggplant", "quantity": 5.0, "barangay": "A"},
			{"crop": "Okra", "quantity": 1.0, "barangay": "B"},
		},
	}

	agg := Aggregate(data, Options{Year: 2024})

	veg := agg.CategoryData[records.CategoryVegetables]
	require.Len(t, veg.Items, 2)
	assert.Equal(t, "Eggplant", veg.Items[0].Name)
	assert.Equal(t, 5.0, veg.Items[0].Value)
	assert.Equal(t, "Okra", veg.Items[1].Name)
	assert.Equal(t, 3.0, veg.Items[1].Value)
	assert.Equal(t, 8.0, veg.Total)
}

func TestAggregateZeroQuantityExcluded(t *testing.T) {
	data := records.Dataset{
		Crops: []records.RawRecord{
			{"crop": "Okra", "quantity": 0.0, "barangay": "A"},
		},
	}

	agg := Aggregate(data, Options{Year: 2024})

	assert.Empty(t, agg.CategoryData[records.CategoryVegetables].Items)
	assert.Empty(t, agg.ProductionByBarangay)
	assert.Empty(t, agg.RecentHarvests)
}

func TestAggregateBarangayHighestLowest(t *testing.T) {
	data := records.Dataset{
		Rice: []records.RawRecord{
			{"barangay": "Poblacion", "production": 9.0},
		},
		Crops: []records.RawRecord{
			{"barangay": "Poblacion", "crop": "Ginger", "quantity": 1.0},
		},
	}

	agg := Aggregate(data, Options{Year: 2024})

	require.Len(t, agg.ProductionByBarangay, 1)
	b := agg.ProductionByBarangay[0]
	assert.Equal(t, records.CategoryRice, b.HighestCategory)
	assert.Equal(t, 9.0, b.HighestValue)
	assert.Equal(t, records.CategorySpices, b.LowestCategory)
	assert.Equal(t, 1.0, b.LowestValue)
}

func TestAggregateTopBarangaysCapped(t *testing.T) {
	var crops []records.RawRecord
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	for i, name := range names {
		crops = append(crops, records.RawRecord{
			"barangay": name, "crop": "Okra", "quantity": float64(10 - i),
		})
	}

	agg := Aggregate(records.Dataset{Crops: crops}, Options{Year: 2024})

	assert.Len(t, agg.ProductionByBarangay, 10)
	require.Len(t, agg.TopBarangays, TopBarangayLimit)
	assert.Equal(t, "A", agg.TopBarangays[0].Name)
	assert.Equal(t, 10.0, agg.TopBarangays[0].Value)
}

func TestAggregateProductionTrend(t *testing.T) {
	data := records.Dataset{
		Rice: []records.RawRecord{
			{"barangay": "A", "production": 10.0, "harvest_date": "2023-06-01"},
			{"barangay": "A", "production": 15.0, "harvest_date": "2024-06-01"},
		},
	}

	agg := Aggregate(data, Options{Year: 2024})
	assert.InDelta(t, 50.0, agg.ProductionTrend, 1e-9)
}

func TestAggregateTrendZeroWhenNoPreviousYear(t *testing.T) {
	data := records.Dataset{
		Rice: []records.RawRecord{
			{"barangay": "A", "production": 15.0, "harvest_date": "2024-06-01"},
		},
	}

	agg := Aggregate(data, Options{Year: 2024})
	assert.Zero(t, agg.ProductionTrend)
}

func TestAggregateMonthlyExcludesOtherYears(t *testing.T) {
	data := records.Dataset{
		Rice: []records.RawRecord{
			{"barangay": "A", "production": 5.0, "harvest_date": "2023-03-10"},
			{"barangay": "A", "production": 7.0, "harvest_date": "2024-03-10"},
		},
	}

	agg := Aggregate(data, Options{Year: 2024})
	assert.Equal(t, 7.0, agg.MonthlyProduction[2].Value)
	assert.Equal(t, 5.0, agg.YearlyProduction[1].Value)
}

func TestAggregateLivestockHeadCount(t *testing.T) {
	data := records.Dataset{
		Livestock: []records.RawRecord{
			{"barangay": "Poblacion", "animal_type": "Swine", "no_of_heads": 5.0},
		},
	}

	agg := Aggregate(data, Options{Year: 2024})

	livestock := agg.CategoryData[records.CategoryLivestock]
	assert.Equal(t, 5.0, livestock.Total)
	require.Len(t, livestock.Items, 1)
	assert.Equal(t, "Swine", livestock.Items[0].Name)

	require.Len(t, agg.ProductionByBarangay, 1)
	assert.Equal(t, "Poblacion", agg.ProductionByBarangay[0].Name)
	assert.Equal(t, 5.0, agg.ProductionByBarangay[0].Value)
}

func TestAggregateFarmerTypesSetBased(t *testing.T) {
	data := records.Dataset{
		Rice: []records.RawRecord{
			{"farmer_id": int64(1), "production": 1.0},
			{"farmer_id": int64(1), "production": 2.0}, // same grower twice
		},
		Livestock: []records.RawRecord{
			{"farmer_id": int64(1), "quantity": 3.0}, // grower is also a raiser
		},
		Operators: []records.RawRecord{
			{"farmer_id": int64(2), "production": 4.0},
		},
	}

	agg := Aggregate(data, Options{Year: 2024})

	byType := make(map[string]int)
	for _, ft := range agg.FarmerTypeDistribution {
		byType[ft.Type] = ft.Count
	}
	assert.Equal(t, 1, byType["Grower"])
	assert.Equal(t, 1, byType["Raiser"])
	assert.Equal(t, 1, byType["Operator"])
}

func TestAggregateTopItemsCrossCategory(t *testing.T) {
	data := records.Dataset{
		Rice: []records.RawRecord{
			{"barangay": "A", "variety": "Rc 160", "production": 20.0},
		},
		Crops: []records.RawRecord{
			{"barangay": "A", "crop": "Lakatan", "quantity": 30.0},
			{"barangay": "A", "crop": "Okra", "quantity": 10.0},
			{"barangay": "A", "crop": "Ginger", "quantity": 5.0},
			{"barangay": "A", "crop": "Mungbean", "quantity": 4.0},
			{"barangay": "A", "crop": "Tomato", "quantity": 3.0},
		},
	}

	agg := Aggregate(data, Options{Year: 2024})

	require.Len(t, agg.TopPerformingItems, TopItemLimit)
	assert.Equal(t, "Lakatan", agg.TopPerformingItems[0].Name)
	assert.Equal(t, records.CategoryBanana, agg.TopPerformingItems[0].Category)
	assert.Equal(t, "Rc 160", agg.TopPerformingItems[1].Name)
}

func TestAggregateRecentHarvestsNewestFirstCapped(t *testing.T) {
	var rice []records.RawRecord
	for day := 1; day <= 7; day++ {
		rice = append(rice, records.RawRecord{
			"barangay":       "A",
			"production":     float64(day),
			"area_harvested": 0.0,
			"harvest_date":   time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC),
		})
	}

	agg := Aggregate(records.Dataset{Rice: rice}, Options{Year: 2024})

	require.Len(t, agg.RecentHarvests, 5)
	assert.Equal(t, 7.0, agg.RecentHarvests[0].YieldAmount)
	assert.Equal(t, 3.0, agg.RecentHarvests[4].YieldAmount)
	assert.Equal(t, YieldPlaceholder, agg.RecentHarvests[0].YieldPerHectare)
}

func TestAggregateNestedHarvestQuantity(t *testing.T) {
	data := records.Dataset{
		Crops: []records.RawRecord{
			{
				"barangay": "A",
				"harvest":  `{"crop":"Lakatan","quantity":6,"month":"April"}`,
			},
		},
	}

	agg := Aggregate(data, Options{Year: 2024})

	banana := agg.CategoryData[records.CategoryBanana]
	assert.Equal(t, 6.0, banana.Total)
	require.Len(t, banana.Items, 1)
	assert.Equal(t, "Lakatan", banana.Items[0].Name)
}
