// Package analytics computes the dashboard aggregate consumed by the chart
// surfaces: category totals, barangay breakdowns, time series, rankings and
// the recent-harvests feed. All computation is a deterministic, synchronous
// pass over an in-memory record snapshot; the package never touches I/O.
package analytics

import (
	"time"

	"agritrack/backend/internal/records"
)

// NameValue is the generic chart item: a label and its numeric value.
type NameValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MonthValue is one bucket of the fixed 12-month production series.
type MonthValue struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// YearValue is one bucket of the fixed 3-year comparison series.
type YearValue struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// CategoryAggregate holds one canonical category's total and its item
// breakdown, items ordered descending by value. Total is always the sum of
// the items, never independently computed.
type CategoryAggregate struct {
	Total float64     `json:"total"`
	Items []NameValue `json:"items"`
}

// BarangayAggregate is one administrative area's production snapshot.
// Lowest excludes zero-valued categories: a category the area has no
// production in is absent, not lowest.
type BarangayAggregate struct {
	Name            string                       `json:"name"`
	Value           float64                      `json:"value"`
	PerCategory     map[records.Category]float64 `json:"perCategory"`
	HighestCategory records.Category             `json:"highestCategory"`
	HighestValue    float64                      `json:"highestValue"`
	LowestCategory  records.Category             `json:"lowestCategory"`
	LowestValue     float64                      `json:"lowestValue"`
}

// RankedItem is one entry of the cross-category top-N ranking, tagged with
// its source category.
type RankedItem struct {
	Name     string           `json:"name"`
	Category records.Category `json:"category"`
	Value    float64          `json:"value"`
}

// Harvest is one entry of the recent-harvests feed. YieldPerHectare is a
// display string so that a zero or unresolved area renders the fixed
// placeholder instead of a division artifact.
type Harvest struct {
	Farmer          string    `json:"farmer"`
	Type            string    `json:"type"`
	CropOrSpecies   string    `json:"cropOrSpecies"`
	YieldAmount     float64   `json:"yieldAmount"`
	Area            float64   `json:"area"`
	YieldPerHectare string    `json:"yieldPerHectare"`
	Date            time.Time `json:"date"`
	Barangay        string    `json:"barangay"`
}

// FarmerTypeCount is one bucket of the set-based farmer-type distribution.
// A farmer may appear in more than one bucket, so the counts need not sum
// to the total farmer count.
type FarmerTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// DashboardAggregate is the stable output contract toward chart consumers.
// Every field is always populated (zeroed or empty, never nil maps) so
// downstream renderers do not null-check.
type DashboardAggregate struct {
	TotalProduction        float64                                `json:"totalProduction"`
	TotalFarmers           int                                    `json:"totalFarmers"`
	TotalArea              float64                                `json:"totalArea"`
	CropProduction         []NameValue                            `json:"cropProduction"`
	MonthlyProduction      []MonthValue                           `json:"monthlyProduction"`
	YearlyProduction       []YearValue                            `json:"yearlyProduction"`
	ProductionTrend        float64                                `json:"productionTrend"`
	ProductionByBarangay   []BarangayAggregate                    `json:"productionByBarangay"`
	TopBarangays           []NameValue                            `json:"topBarangays"`
	TopPerformingItems     []RankedItem                           `json:"topPerformingItems"`
	RecentHarvests         []Harvest                              `json:"recentHarvests"`
	FarmerTypeDistribution []FarmerTypeCount                      `json:"farmerTypeDistribution"`
	CategoryData           map[records.Category]CategoryAggregate `json:"categoryData"`
}
