package alerts

import (
	"context"
	"log"
	"sort"
	"strconv"

	"github.com/avries/shopwatch/internal/collection"
	"github.com/avries/shopwatch/internal/identity"
	"github.com/avries/shopwatch/internal/storefront"
)

// Source is the slice of the storefront API the feed consumes.
// Implemented by *storefront.Authed and by test fakes.
type Source interface {
	ListAlerts(ctx context.Context) ([]map[string]any, error)
	CreateAlert(ctx context.Context, payload storefront.AlertPayload) (map[string]any, error)
}

// Feed is the price-alert collection, presented newest first.
type Feed struct {
	src   Source
	store *collection.Store[storefront.Alert]
}

// NewFeed builds a Feed over src.
func NewFeed(src Source) *Feed {
	f := &Feed{src: src}
	f.store = collection.NewStore(f.fetch)
	return f
}

// Load refreshes the feed from the server and blocks until the result
// is applied or discarded.
func (f *Feed) Load(ctx context.Context) collection.Snapshot[storefront.Alert] {
	return f.store.Load(ctx)
}

// Snapshot returns the last known feed state without suspending.
func (f *Feed) Snapshot() collection.Snapshot[storefront.Alert] {
	return f.store.Snapshot()
}

// Submit sends a new alert to the server and prepends the created
// record locally. Ingestion is deliberately looser than the wishlist's
// mutations: there is no optimistic apply and no rollback, so a failed
// submit leaves the feed untouched and is only reported to the caller.
func (f *Feed) Submit(ctx context.Context, payload storefront.AlertPayload) error {
	created, err := f.src.CreateAlert(ctx, payload)
	if err != nil {
		log.Printf("alerts: submit failed: %v", err)
		return err
	}
	rec, err := identity.Alert(created)
	if err != nil {
		log.Printf("alerts: dropping malformed created alert: %v", err)
		return nil
	}
	f.store.Prepend(rec)
	return nil
}

// PercentDrop returns the fractional price drop for display, clamped
// to 0 when the price did not fall. The alert's raw prices stay
// untouched for consumers that need the real comparison.
func PercentDrop(a storefront.Alert) float64 {
	if a.OldPrice <= 0 || a.NewPrice >= a.OldPrice {
		return 0
	}
	return (a.OldPrice - a.NewPrice) / a.OldPrice
}

func (f *Feed) fetch(ctx context.Context) ([]collection.Record[storefront.Alert], error) {
	raws, err := f.src.ListAlerts(ctx)
	if err != nil {
		return nil, err
	}
	records := identity.Alerts(raws)
	sortAlerts(records)
	return records, nil
}

// sortAlerts orders newest-observedAt-first, ties broken by alert id
// descending.
func sortAlerts(records []collection.Record[storefront.Alert]) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Value, records[j].Value
		if !a.ObservedAt.Equal(b.ObservedAt) {
			return a.ObservedAt.After(b.ObservedAt)
		}
		return compareIDs(records[i].Key, records[j].Key) > 0
	})
}

// compareIDs compares ids numerically when both parse as integers,
// falling back to a string compare.
func compareIDs(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
