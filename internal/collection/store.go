package collection

import (
	"context"
	"log"
	"sync"
)

// Status describes the fetch lifecycle of a remote collection.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Record is a normalized item together with its canonical identity.
// ServerKnown is false when the id was synthesized locally because the
// server transmitted none; such records cannot be mutated server-side.
type Record[T any] struct {
	Key         string
	ServerKnown bool
	Value       T
}

// Entry is a Record plus its membership state inside a store. Pending
// marks an optimistic mutation still awaiting server confirmation.
type Entry[T any] struct {
	Record[T]
	Pending bool
}

// Snapshot is an immutable point-in-time view of a collection. Items
// is only meaningful when Status is StatusLoaded.
type Snapshot[T any] struct {
	Status Status
	Items  []Entry[T]
	Err    error
}

// Fetcher retrieves and normalizes the remote collection.
type Fetcher[T any] func(ctx context.Context) ([]Record[T], error)

// Store holds the fetch lifecycle and entries of one remote collection.
// Each Load issues exactly one request. Overlapping loads are not
// coalesced; only the most recently issued one may apply its result,
// and responses to superseded loads are discarded silently.
type Store[T any] struct {
	mu      sync.Mutex
	fetch   Fetcher[T]
	seq     uint64
	status  Status
	entries []tracked[T]
	err     error
}

// tracked adds removal bookkeeping the outside never sees: an entry
// hidden while its delete is in flight stays out of snapshots.
type tracked[T any] struct {
	Entry[T]
	hidden bool
}

// NewStore builds an idle store around fetch.
func NewStore[T any](fetch Fetcher[T]) *Store[T] {
	return &Store[T]{fetch: fetch}
}

// Load fetches the collection and blocks until the result is applied
// or discarded, returning the snapshot current at that moment. Load is
// re-invokable from any state; a failed load discards previous items
// and retry is manual.
func (s *Store[T]) Load(ctx context.Context) Snapshot[T] {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.status = StatusLoading
	s.err = nil
	s.mu.Unlock()

	records, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		// A newer load superseded this one while it was in flight.
		log.Printf("collection: discarding stale response (load %d superseded by %d)", seq, s.seq)
		return s.snapshotLocked()
	}
	if err != nil {
		s.status = StatusFailed
		s.entries = nil
		s.err = err
		return s.snapshotLocked()
	}
	s.entries = dedupe(records)
	s.status = StatusLoaded
	return s.snapshotLocked()
}

// Snapshot returns the last known state without touching the network.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Prepend inserts a committed entry at the head of the collection,
// replacing any existing entry with the same key.
func (s *Store[T]) Prepend(rec Record[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]tracked[T], 0, len(s.entries)+1)
	entries = append(entries, tracked[T]{Entry: Entry[T]{Record: rec}})
	for _, t := range s.entries {
		if t.Key == rec.Key {
			continue
		}
		entries = append(entries, t)
	}
	s.entries = entries
	if s.status == StatusIdle {
		s.status = StatusLoaded
	}
}

func (s *Store[T]) snapshotLocked() Snapshot[T] {
	snap := Snapshot[T]{Status: s.status, Err: s.err}
	for _, t := range s.entries {
		if t.hidden {
			continue
		}
		snap.Items = append(snap.Items, t.Entry)
	}
	return snap
}

// dedupe keeps the first record per canonical id so a snapshot never
// contains two entries with the same key.
func dedupe[T any](records []Record[T]) []tracked[T] {
	seen := make(map[string]struct{}, len(records))
	out := make([]tracked[T], 0, len(records))
	for _, r := range records {
		if _, dup := seen[r.Key]; dup {
			continue
		}
		seen[r.Key] = struct{}{}
		out = append(out, tracked[T]{Entry: Entry[T]{Record: r}})
	}
	return out
}

// The helpers below back the Coordinator; they mutate entries in place
// under the store lock.

// lookup reports whether key is present (hidden entries count) and
// whether its identity is server-assigned.
func (s *Store[T]) lookup(key string) (serverKnown, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].Key == key {
			return s.entries[i].ServerKnown, true
		}
	}
	return false, false
}

// addPending appends rec as a pending entry. It reports false without
// changing anything when the key is already present.
func (s *Store[T]) addPending(rec Record[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].Key == rec.Key {
			return false
		}
	}
	s.entries = append(s.entries, tracked[T]{Entry: Entry[T]{Record: rec, Pending: true}})
	if s.status == StatusIdle {
		s.status = StatusLoaded
	}
	return true
}

// commitAdd clears the pending flag after the server confirmed an add.
func (s *Store[T]) commitAdd(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].Key == key {
			s.entries[i].Pending = false
			return
		}
	}
}

// drop removes the entry entirely.
func (s *Store[T]) drop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].Key == key {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// hideForRemoval marks the entry pending and keeps it out of snapshots
// while the delete request is in flight.
func (s *Store[T]) hideForRemoval(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].Key == key {
			s.entries[i].Pending = true
			s.entries[i].hidden = true
			return
		}
	}
}

// restore un-hides the entry and clears pending after a failed delete.
func (s *Store[T]) restore(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].Key == key {
			s.entries[i].Pending = false
			s.entries[i].hidden = false
			return
		}
	}
}
