package analytics

import (
	"fmt"
	"log"
	"sort"
	"time"

	"agritrack/backend/internal/records"
)

// Options narrows the time-bucketed views. A zero Year means the current
// calendar year.
type Options struct {
	Year int
}

// TopItemLimit and TopBarangayLimit fix the ranking sizes consumed by the
// dashboard cards.
const (
	TopItemLimit     = 5
	TopBarangayLimit = 8
	recentFeedLimit  = 5
)

// YieldPlaceholder renders in place of yield-per-hectare whenever the
// harvested area is zero or unresolved.
const YieldPlaceholder = "N/A"

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// entry is one raw record after field resolution and classification: the
// normalized view every sub-computation consumes.
type entry struct {
	domain   records.Domain
	category records.Category
	name     string
	farmerID string
	farmer   string
	barangay string
	qty      float64
	area     float64
	date     time.Time
	hasDate  bool
}

// Aggregate produces the full dashboard aggregate from one record snapshot.
// Each sub-computation is independently recoverable: a panic in one step is
// logged and leaves that section zeroed while the rest still compute. The
// returned value is always fully shaped.
func Aggregate(data records.Dataset, opts Options) DashboardAggregate {
	year := opts.Year
	if year == 0 {
		year = time.Now().Year()
	}

	agg := emptyAggregate(year)
	agg.TotalFarmers = len(data.Farmers)

	var entries []entry
	runStep("normalize", func() {
		entries = normalize(data)
	})

	runStep("categories", func() {
		agg.CategoryData = aggregateCategories(entries)
		for _, c := range records.Categories() {
			ca := agg.CategoryData[c]
			agg.TotalProduction += ca.Total
			if ca.Total > 0 {
				agg.CropProduction = append(agg.CropProduction, NameValue{Name: records.CategoryLabel(c), Value: ca.Total})
			}
		}
	})

	runStep("total-area", func() {
		for _, e := range entries {
			agg.TotalArea += e.area
		}
	})

	runStep("barangays", func() {
		agg.ProductionByBarangay = aggregateBarangays(entries)
		for i, b := range agg.ProductionByBarangay {
			if i == TopBarangayLimit {
				break
			}
			agg.TopBarangays = append(agg.TopBarangays, NameValue{Name: b.Name, Value: b.Value})
		}
	})

	runStep("monthly", func() {
		for _, e := range entries {
			if !e.hasDate || e.date.Year() != year {
				continue
			}
			agg.MonthlyProduction[int(e.date.Month())-1].Value += e.qty
		}
	})

	runStep("yearly", func() {
		byYear := make(map[int]float64)
		for _, e := range entries {
			if e.hasDate {
				byYear[e.date.Year()] += e.qty
			}
		}
		for i := range agg.YearlyProduction {
			agg.YearlyProduction[i].Value = byYear[agg.YearlyProduction[i].Year]
		}
		current, previous := byYear[year], byYear[year-1]
		if previous > 0 {
			agg.ProductionTrend = (current - previous) / previous * 100
		}
	})

	runStep("farmer-types", func() {
		agg.FarmerTypeDistribution = farmerTypes(data)
	})

	runStep("top-items", func() {
		agg.TopPerformingItems = rankItems(agg.CategoryData, TopItemLimit)
	})

	runStep("recent-harvests", func() {
		agg.RecentHarvests = recentHarvests(entries)
	})

	return agg
}

// runStep isolates one sub-computation: a failure is absorbed and logged so
// the dashboard path always returns a usable result.
func runStep(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("aggregation step %s failed: %v", name, r)
		}
	}()
	fn()
}

func emptyAggregate(year int) DashboardAggregate {
	agg := DashboardAggregate{
		CropProduction:         make([]NameValue, 0),
		MonthlyProduction:      make([]MonthValue, 12),
		YearlyProduction:       make([]YearValue, 3),
		ProductionByBarangay:   make([]BarangayAggregate, 0),
		TopBarangays:           make([]NameValue, 0),
		TopPerformingItems:     make([]RankedItem, 0),
		RecentHarvests:         make([]Harvest, 0),
		FarmerTypeDistribution: make([]FarmerTypeCount, 0),
		CategoryData:           make(map[records.Category]CategoryAggregate),
	}
	for i, m := range monthNames {
		agg.MonthlyProduction[i].Month = m
	}
	for i := range agg.YearlyProduction {
		agg.YearlyProduction[i].Year = year - 2 + i
	}
	for _, c := range records.Categories() {
		agg.CategoryData[c] = CategoryAggregate{Items: make([]NameValue, 0)}
	}
	return agg
}

func normalize(data records.Dataset) []entry {
	out := make([]entry, 0, len(data.Rice)+len(data.Crops)+len(data.HighValueCrops)+len(data.Livestock)+len(data.Operators))

	add := func(domain records.Domain, recs []records.RawRecord, nameKeys, qtyKeys []string, fallback string) {
		for _, rec := range recs {
			nested := ""
			if domain == records.DomainCrop {
				nested = records.HarvestKey
			}
			name := ""
			if nested != "" {
				name = records.NestedString(rec, nested, "crop")
			}
			if name == "" {
				name = records.ResolveString(rec, nameKeys...)
			}
			if name == "" {
				name = fallback
			}
			date, hasDate := records.ResolveDate(rec, records.DateKeys...)
			out = append(out, entry{
				domain:   domain,
				category: records.Classify(domain, rec),
				name:     name,
				farmerID: farmerKey(rec),
				farmer:   records.ResolveString(rec, records.FarmerNameKeys...),
				barangay: records.ResolveString(rec, records.BarangayKeys...),
				qty:      records.ResolveNumber(rec, nested, qtyKeys...),
				area:     records.ResolveNumber(rec, "", records.AreaKeys...),
				date:     date,
				hasDate:  hasDate,
			})
		}
	}

	add(records.DomainRice, data.Rice, records.RiceVarietyKeys, records.ProductionKeys, "Rice")
	add(records.DomainCrop, data.Crops, records.CropNameKeys, records.ProductionKeys, "")
	add(records.DomainHighValue, data.HighValueCrops, records.CropNameKeys, records.ProductionKeys, "")
	// Livestock quantity is a head count, the same key list the printed
	// inventory uses.
	add(records.DomainLivestock, data.Livestock, records.AnimalTypeKeys, records.HeadCountKeys, "")
	add(records.DomainOperator, data.Operators, records.SpeciesKeys, records.ProductionKeys, "Fish")
	return out
}

func farmerKey(rec records.RawRecord) string {
	if n := records.ResolveNumber(rec, "", records.FarmerIDKeys...); n > 0 {
		return fmt.Sprintf("id:%d", int64(n))
	}
	return records.ResolveString(rec, records.FarmerNameKeys...)
}

// aggregateCategories builds the per-category item breakdowns. A record
// resolving to exactly zero contributes nothing: zero means "no production
// recorded", not a measured value. Encounter order is preserved under the
// stable sort so equal values rank by first appearance.
func aggregateCategories(entries []entry) map[records.Category]CategoryAggregate {
	sums := make(map[records.Category]map[string]float64)
	order := make(map[records.Category][]string)
	for _, e := range entries {
		if e.category == records.CategoryNone || e.qty <= 0 || e.name == "" {
			continue
		}
		if sums[e.category] == nil {
			sums[e.category] = make(map[string]float64)
		}
		if _, seen := sums[e.category][e.name]; !seen {
			order[e.category] = append(order[e.category], e.name)
		}
		sums[e.category][e.name] += e.qty
	}

	out := make(map[records.Category]CategoryAggregate, len(records.Categories()))
	for _, c := range records.Categories() {
		items := make([]NameValue, 0, len(order[c]))
		total := 0.0
		for _, name := range order[c] {
			v := sums[c][name]
			items = append(items, NameValue{Name: name, Value: v})
			total += v
		}
		sort.SliceStable(items, func(i, j int) bool { return items[i].Value > items[j].Value })
		out[c] = CategoryAggregate{Total: total, Items: items}
	}
	return out
}

// aggregateBarangays rebuilds the per-area snapshot from scratch. Areas with
// no attributable records are omitted rather than emitted as zero rows.
func aggregateBarangays(entries []entry) []BarangayAggregate {
	byName := make(map[string]*BarangayAggregate)
	order := make([]string, 0)
	for _, e := range entries {
		if e.qty <= 0 || e.barangay == "" {
			continue
		}
		b := byName[e.barangay]
		if b == nil {
			b = &BarangayAggregate{Name: e.barangay, PerCategory: make(map[records.Category]float64)}
			byName[e.barangay] = b
			order = append(order, e.barangay)
		}
		b.Value += e.qty
		if e.category != records.CategoryNone {
			b.PerCategory[e.category] += e.qty
		}
	}

	out := make([]BarangayAggregate, 0, len(order))
	for _, name := range order {
		b := byName[name]
		b.HighestCategory, b.HighestValue, b.LowestCategory, b.LowestValue = rankCategories(b.PerCategory)
		out = append(out, *b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// rankCategories finds the highest and lowest non-zero category for an area.
// With no non-zero category at all, both stay empty for determinism.
func rankCategories(perCategory map[records.Category]float64) (records.Category, float64, records.Category, float64) {
	var highCat, lowCat records.Category
	var high, low float64
	for _, c := range records.Categories() {
		v := perCategory[c]
		if v <= 0 {
			continue
		}
		if highCat == records.CategoryNone || v > high {
			highCat, high = c, v
		}
		if lowCat == records.CategoryNone || v < low {
			lowCat, low = c, v
		}
	}
	return highCat, high, lowCat, low
}

// farmerTypes counts set-based membership: Raiser for livestock owners,
// Operator for fishpond operators, Grower for rice/crop/high-value growers.
// A farmer may count in several buckets at once.
func farmerTypes(data records.Dataset) []FarmerTypeCount {
	raisers := make(map[string]struct{})
	operators := make(map[string]struct{})
	growers := make(map[string]struct{})

	collect := func(recs []records.RawRecord, into map[string]struct{}) {
		for _, rec := range recs {
			if key := farmerKey(rec); key != "" {
				into[key] = struct{}{}
			}
		}
	}
	collect(data.Livestock, raisers)
	collect(data.Operators, operators)
	collect(data.Rice, growers)
	collect(data.Crops, growers)
	collect(data.HighValueCrops, growers)

	return []FarmerTypeCount{
		{Type: "Grower", Count: len(growers)},
		{Type: "Raiser", Count: len(raisers)},
		{Type: "Operator", Count: len(operators)},
	}
}

// rankItems flattens every category's items into one ranking, stable-sorted
// descending so ties keep encounter order.
func rankItems(categoryData map[records.Category]CategoryAggregate, limit int) []RankedItem {
	flat := make([]RankedItem, 0)
	for _, c := range records.Categories() {
		for _, item := range categoryData[c].Items {
			flat = append(flat, RankedItem{Name: item.Name, Category: c, Value: item.Value})
		}
	}
	sort.SliceStable(flat, func(i, j int) bool { return flat[i].Value > flat[j].Value })
	if len(flat) > limit {
		flat = flat[:limit]
	}
	return flat
}

func recentHarvests(entries []entry) []Harvest {
	feed := make([]Harvest, 0)
	for _, e := range entries {
		if e.qty <= 0 {
			continue
		}
		date := e.date
		if !e.hasDate {
			date = time.Now()
		}
		perHectare := YieldPlaceholder
		if e.area > 0 {
			perHectare = fmt.Sprintf("%.2f", e.qty/e.area)
		}
		feed = append(feed, Harvest{
			Farmer:          e.farmer,
			Type:            records.CategoryLabel(e.category),
			CropOrSpecies:   e.name,
			YieldAmount:     e.qty,
			Area:            e.area,
			YieldPerHectare: perHectare,
			Date:            date,
			Barangay:        e.barangay,
		})
	}
	sort.SliceStable(feed, func(i, j int) bool { return feed[i].Date.After(feed[j].Date) })
	if len(feed) > recentFeedLimit {
		feed = feed[:recentFeedLimit]
	}
	return feed
}
