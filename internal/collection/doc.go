// Package collection provides the generic state container for a
// server-backed collection, plus the coordinator for optimistic
// mutations against it.
//
// # Store lifecycle
//
// A Store moves through Idle → Loading → Loaded or Failed, and Load is
// re-invokable from any state:
//
//	Idle ──Load()──▶ Loading ──success──▶ Loaded
//	                    │
//	                    └────failure────▶ Failed
//
// A successful load replaces the entries wholesale with the fetched,
// normalized records; a failed load discards previous items and records
// a message, and retry is manual. Consumers only ever see immutable
// Snapshot values, giving them a simple re-render contract.
//
// # Overlapping loads
//
// Concurrent Load calls are not coalesced — each issues its own
// request. When loads overlap, only the most recently issued one may
// apply its result: a sequence counter taken at issue time guards the
// apply step, and a response arriving for a superseded load is logged
// and dropped without surfacing an error. (The behavior this replaces
// let whichever response arrived last stomp the snapshot.)
//
// # Optimistic mutations
//
// The Coordinator applies a mutation locally before the server
// confirms it:
//
//   - Add appends the record with Pending set, submits, then either
//     clears Pending (commit) or removes the entry again (rollback).
//   - Remove hides the entry from snapshots while the delete is in
//     flight, then deletes it permanently or restores it.
//
// Failures come back as a structured Outcome with the rollback already
// applied; the snapshot is never left mid-mutation. Records whose
// identity was synthesized locally (no server id) fail Remove
// immediately with ErrUnresolvedIdentity — there is nothing the server
// could delete.
//
// Mutation requests are not serialized; two mutations fired before
// either resolves may complete in any order. The repeat-Add no-op
// bounds the damage to last-writer-wins per canonical id.
package collection
