// Package ui provides the Bubble Tea terminal interface for
// shopwatch: product catalogue, wishlist, price-alert feed, and the
// login/register form.
//
// The UI is a thin consumer of the engine packages. Every view renders
// from immutable collection snapshots; network work happens inside
// tea.Cmd functions so the event loop never blocks, and results come
// back as messages. A one-second tick pulls fresh snapshots so updates
// applied by the background alert poller become visible without user
// action.
//
// Mutations surface their outcome on the status line. A failed add or
// remove has already been rolled back by the time its message arrives,
// so the view simply re-renders from the snapshot.
package ui
