package alerts

import (
	"context"
	"errors"
	"testing"

	"github.com/avries/shopwatch/internal/collection"
	"github.com/avries/shopwatch/internal/storefront"
)

type fakeSource struct {
	alerts    []map[string]any
	listErr   error
	created   map[string]any
	createErr error

	createCalls int
	lastPayload storefront.AlertPayload
}

func (f *fakeSource) ListAlerts(context.Context) ([]map[string]any, error) {
	return f.alerts, f.listErr
}

func (f *fakeSource) CreateAlert(_ context.Context, payload storefront.AlertPayload) (map[string]any, error) {
	f.createCalls++
	f.lastPayload = payload
	return f.created, f.createErr
}

func rawAlert(id float64, name, ts string) map[string]any {
	return map[string]any{
		"id":           id,
		"product_id":   "p1",
		"product_name": name,
		"old_price":    100.0,
		"new_price":    80.0,
		"timestamp":    ts,
	}
}

func TestFeed_LoadOrdersNewestFirst(t *testing.T) {
	t.Parallel()

	src := &fakeSource{alerts: []map[string]any{
		rawAlert(1, "middle", "2026-08-30 10:00:00"),
		rawAlert(2, "newest", "2026-08-30 10:05:00"),
		rawAlert(3, "oldest", "2026-08-30 09:55:00"),
	}}
	feed := NewFeed(src)

	snap := feed.Load(context.Background())
	if snap.Status != collection.StatusLoaded {
		t.Fatalf("status = %v, want loaded", snap.Status)
	}
	var got []string
	for _, e := range snap.Items {
		got = append(got, e.Value.ProductName)
	}
	want := []string{"newest", "middle", "oldest"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestFeed_LoadBreaksTimestampTiesByIDDescending(t *testing.T) {
	t.Parallel()

	src := &fakeSource{alerts: []map[string]any{
		rawAlert(3, "third", "2026-08-30 10:00:00"),
		rawAlert(12, "twelfth", "2026-08-30 10:00:00"),
		rawAlert(5, "fifth", "2026-08-30 10:00:00"),
	}}
	feed := NewFeed(src)

	snap := feed.Load(context.Background())
	var got []string
	for _, e := range snap.Items {
		got = append(got, e.Key)
	}
	want := []string{"12", "5", "3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tie-break order = %v, want %v (numeric descending)", got, want)
		}
	}
}

func TestFeed_LoadFailure(t *testing.T) {
	t.Parallel()

	listErr := errors.New("offline")
	feed := NewFeed(&fakeSource{listErr: listErr})

	snap := feed.Load(context.Background())
	if snap.Status != collection.StatusFailed {
		t.Fatalf("status = %v, want failed", snap.Status)
	}
	if !errors.Is(snap.Err, listErr) {
		t.Fatalf("err = %v, want %v", snap.Err, listErr)
	}
}

func TestFeed_SubmitPrependsCreatedAlert(t *testing.T) {
	t.Parallel()

	src := &fakeSource{
		alerts:  []map[string]any{rawAlert(1, "existing", "2026-08-30 10:00:00")},
		created: rawAlert(2, "created", "2026-08-30 11:00:00"),
	}
	feed := NewFeed(src)
	feed.Load(context.Background())

	err := feed.Submit(context.Background(), storefront.AlertPayload{
		ProductID: "p1", ProductName: "created", OldPrice: 100, NewPrice: 80,
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if src.lastPayload.ProductName != "created" {
		t.Fatalf("payload name = %q, want created", src.lastPayload.ProductName)
	}

	snap := feed.Snapshot()
	if len(snap.Items) != 2 {
		t.Fatalf("feed has %d items, want 2", len(snap.Items))
	}
	if snap.Items[0].Key != "2" {
		t.Fatalf("head = %q, want the created alert first", snap.Items[0].Key)
	}
}

func TestFeed_SubmitFailureLeavesFeedUntouched(t *testing.T) {
	t.Parallel()

	createErr := errors.New("rejected")
	src := &fakeSource{
		alerts:    []map[string]any{rawAlert(1, "existing", "2026-08-30 10:00:00")},
		createErr: createErr,
	}
	feed := NewFeed(src)
	before := feed.Load(context.Background())

	err := feed.Submit(context.Background(), storefront.AlertPayload{ProductID: "p1"})
	if !errors.Is(err, createErr) {
		t.Fatalf("Submit err = %v, want %v", err, createErr)
	}

	after := feed.Snapshot()
	if len(after.Items) != len(before.Items) {
		t.Fatalf("feed changed on failed submit: %d items, want %d", len(after.Items), len(before.Items))
	}
}

func TestFeed_SubmitToleratesMalformedCreatedRecord(t *testing.T) {
	t.Parallel()

	src := &fakeSource{created: map[string]any{"id": float64(9)}}
	feed := NewFeed(src)

	if err := feed.Submit(context.Background(), storefront.AlertPayload{ProductID: "p1"}); err != nil {
		t.Fatalf("Submit returned error for a malformed created record: %v", err)
	}
	if snap := feed.Snapshot(); len(snap.Items) != 0 {
		t.Fatalf("malformed created record was ingested: %+v", snap.Items)
	}
}

func TestPercentDrop(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		old, new float64
		want     float64
	}{
		{"real drop", 100, 80, 0.2},
		{"price rose", 100, 120, 0},
		{"unchanged", 100, 100, 0},
		{"zero old price", 0, 80, 0},
	}
	for _, tc := range cases {
		got := PercentDrop(storefront.Alert{OldPrice: tc.old, NewPrice: tc.new})
		if got != tc.want {
			t.Fatalf("%s: PercentDrop(%v -> %v) = %v, want %v", tc.name, tc.old, tc.new, got, tc.want)
		}
	}
}

func TestCompareIDs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		want int
	}{
		{"5", "12", -1},
		{"12", "5", 1},
		{"7", "7", 0},
		{"abc", "abd", -1},
		{"10", "a", -1},
	}
	for _, tc := range cases {
		if got := compareIDs(tc.a, tc.b); got != tc.want {
			t.Fatalf("compareIDs(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
