package ui

import (
	"testing"
	"time"
)

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	if got, want := formatPrice(199.9), "$199.90"; got != want {
		t.Fatalf("formatPrice = %q, want %q", got, want)
	}
}

func TestFormatDrop(t *testing.T) {
	t.Parallel()

	if got, want := formatDrop(0.2), "-20%"; got != want {
		t.Fatalf("formatDrop = %q, want %q", got, want)
	}
}

func TestFormatAge(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		at   time.Time
		want string
	}{
		{"zero time", time.Time{}, "—"},
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-49 * time.Hour), "2d ago"},
	}
	for _, tc := range cases {
		if got := formatAge(tc.at, now); got != tc.want {
			t.Fatalf("%s: formatAge = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a very long product name", 10, "a very lo…"},
		{"héllo wörld", 6, "héllo…"},
		{"ab", 1, "a"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.max); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
