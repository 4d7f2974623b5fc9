package storefront

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want time.Time
	}{
		{"backend layout", "2026-08-30 10:05:00", time.Date(2026, 8, 30, 10, 5, 0, 0, time.UTC)},
		{"rfc3339", "2026-08-30T10:05:00Z", time.Date(2026, 8, 30, 10, 5, 0, 0, time.UTC)},
		{"rfc3339 nano", "2026-08-30T10:05:00.25Z", time.Date(2026, 8, 30, 10, 5, 0, 250000000, time.UTC)},
		{"empty", "", time.Time{}},
		{"garbage", "yesterday-ish", time.Time{}},
	}
	for _, tc := range cases {
		if got := ParseTimestamp(tc.in); !got.Equal(tc.want) {
			t.Fatalf("%s: ParseTimestamp(%q) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	withMsg := &APIError{StatusCode: 400, Message: "Product already in wishlist"}
	if got, want := withMsg.Error(), "storefront api returned status 400: Product already in wishlist"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	bare := &APIError{StatusCode: 500}
	if got, want := bare.Error(), "storefront api returned status 500"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
