package records

import "strings"

// Category is one of the closed set of canonical production classifications.
type Category string

const (
	CategoryRice       Category = "rice"
	CategoryBanana     Category = "banana"
	CategoryVegetables Category = "vegetables"
	CategoryLegumes    Category = "legumes"
	CategorySpices     Category = "spices"
	CategoryFish       Category = "fish"
	CategoryHighValue  Category = "highValueCrops"
	CategoryLivestock  Category = "livestock"

	// CategoryNone marks a record matching no keyword set. Such records are
	// excluded from category views but still count toward farmer and
	// barangay totals.
	CategoryNone Category = ""
)

// Domain identifies which of the six record shapes a raw record belongs to.
type Domain string

const (
	DomainRice      Domain = "rice"
	DomainCrop      Domain = "crop"
	DomainHighValue Domain = "highValueCrop"
	DomainLivestock Domain = "livestock"
	DomainOperator  Domain = "operator"
	DomainFarmer    Domain = "farmer"
)

// Categories returns the canonical categories in their fixed display order.
func Categories() []Category {
	return []Category{
		CategoryRice,
		CategoryBanana,
		CategoryVegetables,
		CategoryLegumes,
		CategorySpices,
		CategoryFish,
		CategoryHighValue,
		CategoryLivestock,
	}
}

// CategoryLabel maps a category to its chart/report display name.
func CategoryLabel(c Category) string {
	switch c {
	case CategoryRice:
		return "Rice"
	case CategoryBanana:
		return "Banana"
	case CategoryVegetables:
		return "Vegetables"
	case CategoryLegumes:
		return "Legumes"
	case CategorySpices:
		return "Spices"
	case CategoryFish:
		return "Fish"
	case CategoryHighValue:
		return "High Value Crops"
	case CategoryLivestock:
		return "Livestock"
	default:
		return ""
	}
}

// textRule pairs a category with a keyword predicate. Rules are evaluated
// top to bottom and the first match wins, so specific keyword sets (banana
// varieties, named legumes, named spices) sit above the generic vegetable
// set: a "Lakatan" crop record must land on banana even though it would also
// loosely match a crop keyword further down. keywords match by substring
// containment; words match only on whole-word boundaries, for keywords that
// are substrings of unrelated crop names ("palay" inside "ampalaya").
type textRule struct {
	category Category
	keywords []string
	words    []string
}

var cropTextRules = []textRule{
	{category: CategoryBanana, keywords: []string{"lakatan", "latundan", "saba", "cardava", "cavendish", "banana"}},
	{category: CategoryLegumes, keywords: []string{"mungbean", "mung bean", "munggo", "peanut", "sitao", "cowpea", "soybean", "kadyos", "patani", "legume", "bean"}},
	{category: CategorySpices, keywords: []string{"ginger", "luya", "garlic", "bawang", "onion", "sibuyas", "chili", "sili", "pepper", "turmeric", "lemongrass", "tanglad", "spice"}},
	{category: CategoryFish, keywords: []string{"tilapia", "bangus", "milkfish", "catfish", "hito", "shrimp", "hipon", "prawn", "crab", "fishpond", "fish"}},
	{category: CategoryRice, keywords: []string{"rice"}, words: []string{"palay"}},
	{category: CategoryVegetables, keywords: []string{"vegetable", "eggplant", "talong", "tomato", "kamatis", "squash", "kalabasa", "ampalaya", "okra", "kangkong", "pechay", "cabbage", "repolyo", "carrot", "gourd", "upo", "patola", "radish", "labanos", "cucumber", "pipino", "gabi", "sayote", "chayote", "camote"}},
}

// literal category names short-circuit on exact equality before any
// containment rule runs.
var literalCategories = map[string]Category{
	"legumes":    CategoryLegumes,
	"spices":     CategorySpices,
	"vegetables": CategoryVegetables,
}

// ClassifyText maps free text (crop name, commodity, type field) to a
// canonical category. Matching is case-insensitive substring containment.
func ClassifyText(text string) Category {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return CategoryNone
	}
	if c, ok := literalCategories[t]; ok {
		return c
	}
	for _, rule := range cropTextRules {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return rule.category
			}
		}
		for _, w := range rule.words {
			if containsWord(t, w) {
				return rule.category
			}
		}
	}
	return CategoryNone
}

// containsWord reports whether word occurs in text delimited by non-letter,
// non-digit boundaries. text is already lowercased by the caller.
func containsWord(text, word string) bool {
	for i := 0; ; i++ {
		j := strings.Index(text[i:], word)
		if j < 0 {
			return false
		}
		i += j
		end := i + len(word)
		startOK := i == 0 || !isWordByte(text[i-1])
		endOK := end == len(text) || !isWordByte(text[end])
		if startOK && endOK {
			return true
		}
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

// Classify maps a raw record to exactly one canonical category. The explicit
// domain tag takes priority over free-text matching: an operator record is
// always aquaculture, a livestock record always livestock, regardless of
// what its text fields say. Only general crop records fall through to the
// keyword rules.
func Classify(domain Domain, rec RawRecord) Category {
	switch domain {
	case DomainOperator:
		return CategoryFish
	case DomainLivestock:
		return CategoryLivestock
	case DomainRice:
		return CategoryRice
	case DomainHighValue:
		return CategoryHighValue
	case DomainCrop:
		if c := ClassifyText(ResolveString(rec, "crop_type", "type", "category")); c != CategoryNone {
			return c
		}
		if c := ClassifyText(NestedString(rec, HarvestKey, "crop")); c != CategoryNone {
			return c
		}
		return ClassifyText(ResolveString(rec, CropNameKeys...))
	default:
		return CategoryNone
	}
}
