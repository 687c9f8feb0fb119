// Package normalize converts raw, loosely-typed movie records into
// validated, typed values. Every field-level coercion degrades to the
// unknown marker (nil) on invalid input; only a missing, zero or
// non-integer identifier rejects a whole record.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Column length caps, matching the persisted schema.
const (
	maxShortText = 255
	maxLanguage  = 10
	maxStatus    = 50
	maxOrigTitle = 500
	maxOverview  = 2000
	maxTagline   = 1000
)

// Accepted release-date window. The lower bound is the year of the first
// commercial film; the upper bound guards against far-future junk dates.
const (
	minReleaseYear = 1888
	maxReleaseYear = 2030
)

// intValue extracts an integer from a raw JSON value. JSON decoding yields
// float64 for all numbers, so integral floats are accepted; fractional
// values and non-numeric types are not.
func intValue(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}

		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}

		return i, true
	default:
		return 0, false
	}
}

// String trims a short text value and caps it at maxLen runes.
// Empty after trimming, or not a string at all, is unknown.
func String(v any, maxLen int) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if r := []rune(s); len(r) > maxLen {
		s = string(r[:maxLen])
	}

	return &s
}

// Integer parses a non-negative integer. Fractional, negative, or
// unparseable values are unknown.
func Integer(v any, minVal int) *int {
	if v == nil {
		return nil
	}

	n, ok := intValue(v)
	if !ok || n < int64(minVal) {
		return nil
	}

	i := int(n)

	return &i
}

// BigInt parses a monetary amount. Zero or negative parses to unknown:
// the upstream reports missing revenue/budget as 0, so a stored 0 would
// conflate "no data" with "earned nothing". Genuinely free productions
// are indistinguishable here; that simplification is inherited from the
// data source.
func BigInt(v any) *int64 {
	if v == nil {
		return nil
	}

	n, ok := intValue(v)
	if !ok || n <= 0 {
		return nil
	}

	return &n
}

// Float parses a bounded float. Values below minVal are unknown; values
// above maxVal (when maxVal > 0) clamp to it. The result is rounded to
// the given number of decimal places.
func Float(v any, minVal, maxVal float64, decimals int) *float64 {
	if v == nil {
		return nil
	}

	var f float64

	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil
		}

		f = parsed
	default:
		return nil
	}

	if f < minVal {
		return nil
	}

	if maxVal > 0 && f > maxVal {
		f = maxVal
	}

	pow := math.Pow(10, float64(decimals))
	f = math.Round(f*pow) / pow

	return &f
}

// Bool coerces a raw value to a boolean. Native booleans pass through,
// the textual tokens "true"/"1"/"yes" (case-insensitive) are true and any
// other string false, and everything else follows general truthiness:
// zero numbers and empty collections are false, any other present value
// is true. Only an absent value is unknown.
func Bool(v any) *bool {
	if v == nil {
		return nil
	}

	var b bool

	switch t := v.(type) {
	case bool:
		b = t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes":
			b = true
		default:
			b = false
		}
	case float64:
		b = t != 0
	case []any:
		b = len(t) > 0
	case map[string]any:
		b = len(t) > 0
	default:
		b = true
	}

	return &b
}

// Date parses a YYYY-MM-DD string with the year inside the accepted
// window. Anything else, including real dates outside the window, is
// unknown.
func Date(v any) *time.Time {
	s, ok := v.(string)
	if !ok {
		return nil
	}

	s = strings.TrimSpace(s)

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}

	if y := t.Year(); y < minReleaseYear || y > maxReleaseYear {
		return nil
	}

	return &t
}

// NamedList extracts the "name" of every structured entry in a raw list
// and joins them with commas. Entries that are not objects or have a
// blank name are dropped. An empty or absent list is unknown, never the
// empty string.
func NamedList(v any) *string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	names := make([]string, 0, len(items))

	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		name, ok := obj["name"].(string)
		if !ok {
			continue
		}

		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		names = append(names, name)
	}

	if len(names) == 0 {
		return nil
	}

	joined := strings.Join(names, ",")

	return &joined
}

// CodeList joins a raw list of plain strings (country codes) with commas.
// Empty or absent is unknown.
func CodeList(v any) *string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	codes := make([]string, 0, len(items))

	for _, item := range items {
		code, ok := item.(string)
		if !ok {
			continue
		}

		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}

		codes = append(codes, code)
	}

	if len(codes) == 0 {
		return nil
	}

	joined := strings.Join(codes, ",")

	return &joined
}
