package normalize_test

import (
	"testing"
	"time"

	"github.com/cinelake/cinelake/internal/normalize"
)

func TestString_TrimAndTruncate(t *testing.T) {
	t.Parallel()

	got := normalize.String("  Inception  ", 255)
	if got == nil || *got != "Inception" {
		t.Fatalf("expected trimmed value, got %v", got)
	}

	got = normalize.String("abcdef", 3)
	if got == nil || *got != "abc" {
		t.Fatalf("expected truncation to 3 runes, got %v", got)
	}
}

func TestString_UnknownCases(t *testing.T) {
	t.Parallel()

	for name, v := range map[string]any{
		"nil":        nil,
		"empty":      "",
		"whitespace": "   ",
		"number":     42.0,
		"bool":       true,
	} {
		if got := normalize.String(v, 255); got != nil {
			t.Errorf("%s: expected unknown, got %q", name, *got)
		}
	}
}

func TestInteger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want *int
	}{
		{"integral float", 142.0, ptr(142)},
		{"zero", 0.0, ptr(0)},
		{"negative", -5.0, nil},
		{"fractional", 90.5, nil},
		{"numeric string", "120", ptr(120)},
		{"garbage string", "two hours", nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		got := normalize.Integer(tt.in, 0)
		if !eqInt(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, deref(got), deref(tt.want))
		}
	}
}

func TestBigInt_ZeroMeansUnknown(t *testing.T) {
	t.Parallel()

	if got := normalize.BigInt(0.0); got != nil {
		t.Errorf("budget of exactly 0 must be unknown, got %d", *got)
	}

	if got := normalize.BigInt(-100.0); got != nil {
		t.Errorf("negative amount must be unknown, got %d", *got)
	}

	got := normalize.BigInt(2320000000.0)
	if got == nil || *got != 2320000000 {
		t.Fatalf("expected 2320000000, got %v", got)
	}
}

func TestFloat_ClampAndRound(t *testing.T) {
	t.Parallel()

	got := normalize.Float(11.2, 0.0, 10.0, 1)
	if got == nil || *got != 10.0 {
		t.Fatalf("rating 11.2 must clamp to 10.0, got %v", deref64(got))
	}

	got = normalize.Float(7.647, 0.0, 10.0, 1)
	if got == nil || *got != 7.6 {
		t.Fatalf("expected 7.6, got %v", deref64(got))
	}

	if got := normalize.Float(-0.5, 0.0, 10.0, 1); got != nil {
		t.Errorf("below-minimum value must be unknown, got %v", *got)
	}

	got = normalize.Float(85.375, 0.0, 0, 2)
	if got == nil || *got != 85.38 {
		t.Fatalf("expected 85.38 with no max, got %v", deref64(got))
	}
}

func TestBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want *bool
	}{
		{"native true", true, ptr(true)},
		{"native false", false, ptr(false)},
		{"token true", "true", ptr(true)},
		{"token one", "1", ptr(true)},
		{"token yes", "YES", ptr(true)},
		{"other string", "nope", ptr(false)},
		{"nonzero number", 1.0, ptr(true)},
		{"zero number", 0.0, ptr(false)},
		{"empty list", []any{}, ptr(false)},
		{"non-empty list", []any{"x"}, ptr(true)},
		{"empty object", map[string]any{}, ptr(false)},
		{"non-empty object", map[string]any{"k": 1}, ptr(true)},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		got := normalize.Bool(tt.in)
		if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDate_YearWindow(t *testing.T) {
	t.Parallel()

	got := normalize.Date("2009-12-18")
	if got == nil || !got.Equal(time.Date(2009, 12, 18, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 2009-12-18, got %v", got)
	}

	for name, in := range map[string]any{
		"before first film": "1887-12-31",
		"beyond window":     "2031-01-01",
		"not a date":        "soon",
		"wrong format":      "18/12/2009",
		"month overflow":    "2009-13-01",
		"nil":               nil,
	} {
		if got := normalize.Date(in); got != nil {
			t.Errorf("%s: expected unknown, got %v", name, *got)
		}
	}
}

func TestNamedList(t *testing.T) {
	t.Parallel()

	in := []any{
		map[string]any{"id": 1.0, "name": "Warner Bros. Pictures"},
		map[string]any{"id": 2.0, "name": "Legendary Entertainment"},
		map[string]any{"id": 3.0},       // no name, dropped
		"loose string",                  // not an object, dropped
		map[string]any{"name": "   "},   // blank name, dropped
	}

	got := normalize.NamedList(in)
	if got == nil || *got != "Warner Bros. Pictures,Legendary Entertainment" {
		t.Fatalf("unexpected join: %v", deref(got))
	}

	if got := normalize.NamedList([]any{}); got != nil {
		t.Errorf("empty list must be unknown (nil), not empty string")
	}

	if got := normalize.NamedList(nil); got != nil {
		t.Errorf("absent list must be unknown")
	}
}

func TestCodeList(t *testing.T) {
	t.Parallel()

	got := normalize.CodeList([]any{"US", "GB", ""})
	if got == nil || *got != "US,GB" {
		t.Fatalf("unexpected join: %v", deref(got))
	}

	if got := normalize.CodeList([]any{}); got != nil {
		t.Errorf("empty list must be unknown")
	}
}

func ptr[T any](v T) *T { return &v }

func eqInt(a, b *int) bool {
	if (a == nil) != (b == nil) {
		return false
	}

	return a == nil || *a == *b
}

func deref(v any) any {
	switch p := v.(type) {
	case *int:
		if p == nil {
			return nil
		}

		return *p
	case *string:
		if p == nil {
			return nil
		}

		return *p
	default:
		return v
	}
}

func deref64(p *float64) any {
	if p == nil {
		return nil
	}

	return *p
}
