package collection

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func loadedStore(t *testing.T, records ...Record[string]) *Store[string] {
	t.Helper()
	store := NewStore(fixedFetch(records...))
	if snap := store.Load(context.Background()); snap.Status != StatusLoaded {
		t.Fatalf("seed load status = %v, want loaded", snap.Status)
	}
	return store
}

func TestCoordinator_AddShowsPendingThenCommits(t *testing.T) {
	t.Parallel()

	store := NewStore(fixedFetch())
	coord := NewCoordinator(store)
	rec := Record[string]{Key: "a1", ServerKnown: true, Value: "Phone"}

	var during Snapshot[string]
	outcome := coord.Add(context.Background(), rec, func(context.Context) error {
		during = store.Snapshot()
		return nil
	})

	if !outcome.OK || outcome.AlreadyPresent || outcome.Reason != nil {
		t.Fatalf("outcome = %+v, want plain success", outcome)
	}
	if len(during.Items) != 1 || !during.Items[0].Pending {
		t.Fatalf("snapshot during submit = %+v, want one pending entry", during)
	}

	after := store.Snapshot()
	if len(after.Items) != 1 || after.Items[0].Pending {
		t.Fatalf("snapshot after commit = %+v, want one committed entry", after)
	}
}

func TestCoordinator_AddRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	store := NewStore(fixedFetch())
	coord := NewCoordinator(store)
	submitErr := errors.New("server said no")

	outcome := coord.Add(context.Background(), Record[string]{Key: "a1", ServerKnown: true, Value: "Phone"},
		func(context.Context) error { return submitErr })

	if outcome.OK {
		t.Fatalf("outcome.OK = true for a failed add")
	}
	if !errors.Is(outcome.Reason, submitErr) {
		t.Fatalf("outcome.Reason = %v, want %v", outcome.Reason, submitErr)
	}
	if snap := store.Snapshot(); len(snap.Items) != 0 {
		t.Fatalf("snapshot after rollback has %d items, want 0", len(snap.Items))
	}
}

func TestCoordinator_RepeatAddIsNoOp(t *testing.T) {
	t.Parallel()

	store := loadedStore(t, Record[string]{Key: "a1", ServerKnown: true, Value: "Phone"})
	coord := NewCoordinator(store)

	calls := 0
	outcome := coord.Add(context.Background(), Record[string]{Key: "a1", ServerKnown: true, Value: "Phone"},
		func(context.Context) error { calls++; return nil })

	if !outcome.OK || !outcome.AlreadyPresent {
		t.Fatalf("outcome = %+v, want OK and AlreadyPresent", outcome)
	}
	if calls != 0 {
		t.Fatalf("submit called %d times for a present key, want 0", calls)
	}
	if snap := store.Snapshot(); len(snap.Items) != 1 {
		t.Fatalf("snapshot has %d items after repeat add, want 1", len(snap.Items))
	}
}

func TestCoordinator_RacingAddsYieldOneEntry(t *testing.T) {
	t.Parallel()

	store := NewStore(fixedFetch())
	coord := NewCoordinator(store)
	rec := Record[string]{Key: "a1", ServerKnown: true, Value: "Phone"}

	pending := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		coord.Add(context.Background(), rec, func(context.Context) error {
			close(pending)
			<-release
			return nil
		})
	}()
	<-pending

	// Second add lands while the first is still pending.
	second := coord.Add(context.Background(), rec, func(context.Context) error {
		t.Error("second submit issued for an already-pending key")
		return nil
	})
	if !second.OK || !second.AlreadyPresent {
		t.Fatalf("second outcome = %+v, want OK and AlreadyPresent", second)
	}

	close(release)
	wg.Wait()

	if snap := store.Snapshot(); len(snap.Items) != 1 {
		t.Fatalf("snapshot has %d items, want 1", len(snap.Items))
	}
}

func TestCoordinator_RemoveHidesThenDeletes(t *testing.T) {
	t.Parallel()

	store := loadedStore(t,
		Record[string]{Key: "a1", ServerKnown: true, Value: "Phone"},
		Record[string]{Key: "b2", ServerKnown: true, Value: "Laptop"},
	)
	coord := NewCoordinator(store)

	var during Snapshot[string]
	outcome := coord.Remove(context.Background(), "a1", func(context.Context) error {
		during = store.Snapshot()
		return nil
	})

	if !outcome.OK {
		t.Fatalf("outcome = %+v, want success", outcome)
	}
	if len(during.Items) != 1 || during.Items[0].Key != "b2" {
		t.Fatalf("snapshot during delete = %+v, want a1 hidden", during)
	}
	if snap := store.Snapshot(); len(snap.Items) != 1 || snap.Items[0].Key != "b2" {
		t.Fatalf("snapshot after delete = %+v, want only b2", snap)
	}
}

func TestCoordinator_RemoveRestoresOnFailure(t *testing.T) {
	t.Parallel()

	store := loadedStore(t, Record[string]{Key: "a1", ServerKnown: true, Value: "Phone"})
	coord := NewCoordinator(store)
	delErr := errors.New("gone wrong")

	outcome := coord.Remove(context.Background(), "a1", func(context.Context) error { return delErr })

	if outcome.OK {
		t.Fatalf("outcome.OK = true for a failed remove")
	}
	if !errors.Is(outcome.Reason, delErr) {
		t.Fatalf("outcome.Reason = %v, want %v", outcome.Reason, delErr)
	}
	snap := store.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].Key != "a1" {
		t.Fatalf("snapshot after restore = %+v, want a1 back", snap)
	}
	if snap.Items[0].Pending {
		t.Fatalf("restored entry is still pending, want committed")
	}
}

func TestCoordinator_RemoveUnresolvedIdentityFailsFast(t *testing.T) {
	t.Parallel()

	store := loadedStore(t, Record[string]{Key: "local-only", ServerKnown: false, Value: "Phone"})
	coord := NewCoordinator(store)

	calls := 0
	outcome := coord.Remove(context.Background(), "local-only", func(context.Context) error { calls++; return nil })

	if !errors.Is(outcome.Reason, ErrUnresolvedIdentity) {
		t.Fatalf("outcome.Reason = %v, want ErrUnresolvedIdentity", outcome.Reason)
	}
	if calls != 0 {
		t.Fatalf("delete issued %d times for a synthesized id, want 0", calls)
	}
	if snap := store.Snapshot(); len(snap.Items) != 1 {
		t.Fatalf("snapshot has %d items, want the entry untouched", len(snap.Items))
	}
}

func TestCoordinator_RemoveAbsentKeyIsNoOp(t *testing.T) {
	t.Parallel()

	store := loadedStore(t)
	coord := NewCoordinator(store)

	calls := 0
	outcome := coord.Remove(context.Background(), "nope", func(context.Context) error { calls++; return nil })

	if !outcome.OK || outcome.Reason != nil {
		t.Fatalf("outcome = %+v, want success for an absent key", outcome)
	}
	if calls != 0 {
		t.Fatalf("delete issued %d times for an absent key, want 0", calls)
	}
}
