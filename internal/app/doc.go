// Package app provides the orchestration layer for shopwatch.
//
// Run is the composition root: it loads configuration and preferences,
// builds the storefront client, seeds the session from the cached
// token, wires the products store, wishlist controller and alert feed
// over an authenticated API wrapper, launches the background alert
// poller, and starts the TUI, blocking until the user exits or the
// context cancels.
//
// The poller is the only background producer. Each collection applies
// its own updates atomically, so the UI can read snapshots at its own
// refresh rate without coordination beyond the store locks.
//
// Fatal errors (unreadable config, invalid API base) are returned from
// Run; periodic poll failures are logged and polling continues.
package app
