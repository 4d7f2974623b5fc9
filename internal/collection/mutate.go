package collection

import (
	"context"
	"errors"
)

// ErrUnresolvedIdentity marks a mutation against a record whose id was
// synthesized locally; the server has nothing to delete under it.
var ErrUnresolvedIdentity = errors.New("unresolved identity: record has no server-assigned id")

// Outcome reports how a mutation settled. A failed mutation has its
// rollback applied before the Outcome is returned, so the snapshot is
// never left in an inconsistent optimistic state.
type Outcome struct {
	OK             bool
	AlreadyPresent bool
	Reason         error
}

// RequestFunc issues the server request backing a mutation.
type RequestFunc func(ctx context.Context) error

// Coordinator applies mutations to a Store optimistically and
// reconciles them with the server outcome: commit on success, rollback
// on failure.
type Coordinator[T any] struct {
	store *Store[T]
}

// NewCoordinator builds a Coordinator over store.
func NewCoordinator[T any](store *Store[T]) *Coordinator[T] {
	return &Coordinator[T]{store: store}
}

// Add appends rec as pending before submit is issued, so the caller
// sees the entry immediately. On failure the entry is removed again.
// A repeat Add for a key that is already present, pending or
// committed, is a no-op; this bounds racing adds for the same id to a
// single entry.
func (c *Coordinator[T]) Add(ctx context.Context, rec Record[T], submit RequestFunc) Outcome {
	if !c.store.addPending(rec) {
		return Outcome{OK: true, AlreadyPresent: true}
	}
	if err := submit(ctx); err != nil {
		c.store.drop(rec.Key)
		return Outcome{Reason: err}
	}
	c.store.commitAdd(rec.Key)
	return Outcome{OK: true}
}

// Remove hides the entry from snapshots while del is in flight, then
// deletes it on success or restores it on failure. An entry whose
// identity was synthesized locally fails fast with
// ErrUnresolvedIdentity before any request is made. Removing an absent
// key succeeds as a no-op.
func (c *Coordinator[T]) Remove(ctx context.Context, key string, del RequestFunc) Outcome {
	serverKnown, ok := c.store.lookup(key)
	if !ok {
		return Outcome{OK: true}
	}
	if !serverKnown {
		return Outcome{Reason: ErrUnresolvedIdentity}
	}
	c.store.hideForRemoval(key)
	if err := del(ctx); err != nil {
		c.store.restore(key)
		return Outcome{Reason: err}
	}
	c.store.drop(key)
	return Outcome{OK: true}
}
