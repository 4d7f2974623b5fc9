// Package alerts provides the price-drop alert feed: a remote
// collection specialized to alert records, ordered newest first with
// ties broken by alert id descending.
//
// PercentDrop is derived at read time and clamped to zero for a
// non-drop, so the UI never renders a negative drop; the underlying
// prices are preserved unmodified.
package alerts
