package records

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// coerceNumber converts the dynamic value shapes a raw record can carry into
// a finite float64. Strings are trimmed and parsed; NaN and infinities are
// rejected so they never leak into totals.
func coerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		return coerceNumber(float64(n))
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return coerceNumber(f)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(n, ",", ""))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return coerceNumber(f)
	default:
		return 0, false
	}
}

// nestedObject returns the sub-object stored under key. A string value is
// parsed as JSON; malformed JSON degrades to an empty object, never an error.
func nestedObject(rec RawRecord, key string) map[string]any {
	if key == "" {
		return nil
	}
	switch v := rec[key].(type) {
	case map[string]any:
		return v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		out := make(map[string]any)
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return map[string]any{}
		}
		return out
	default:
		return nil
	}
}

// ResolveNumber extracts a numeric value for a logical attribute. A value
// under the conventional "quantity" key of the nested sub-object wins; then
// the first candidate key with a coercible value; otherwise 0, which callers
// treat as "absent" rather than "measured zero".
func ResolveNumber(rec RawRecord, nestedKey string, keys ...string) float64 {
	if sub := nestedObject(rec, nestedKey); sub != nil {
		if n, ok := coerceNumber(sub["quantity"]); ok {
			return n
		}
	}
	for _, k := range keys {
		v, present := rec[k]
		if !present {
			continue
		}
		if n, ok := coerceNumber(v); ok {
			return n
		}
	}
	return 0
}

// ResolveString returns the first non-empty trimmed string among the
// candidate keys.
func ResolveString(rec RawRecord, keys ...string) string {
	for _, k := range keys {
		if s, ok := rec[k].(string); ok {
			if t := strings.TrimSpace(s); t != "" {
				return t
			}
		}
	}
	return ""
}

// NestedString returns a string field from the nested sub-object, if any.
func NestedString(rec RawRecord, nestedKey, field string) string {
	sub := nestedObject(rec, nestedKey)
	if sub == nil {
		return ""
	}
	if s, ok := sub[field].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"January 2, 2006",
}

func coerceDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return d, true
	case *time.Time:
		if d == nil || d.IsZero() {
			return time.Time{}, false
		}
		return *d, true
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// ResolveDate follows the same candidate-key precedence for harvest and
// creation timestamps. The second return reports whether any key resolved;
// records that fail resolution are excluded from date-bucketed views.
func ResolveDate(rec RawRecord, keys ...string) (time.Time, bool) {
	for _, k := range keys {
		v, present := rec[k]
		if !present {
			continue
		}
		if t, ok := coerceDate(v); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// ResolveDateOrNow is for consumers that cannot tolerate a missing date,
// such as the recent-harvests feed.
func ResolveDateOrNow(rec RawRecord, keys ...string) time.Time {
	if t, ok := ResolveDate(rec, keys...); ok {
		return t
	}
	return time.Now()
}
