// Package wishlist composes the remote collection store and the
// optimistic mutation coordinator into the add/remove/snapshot surface
// the views use. The rollback and idempotence guarantees of the
// collection package become externally observable here.
package wishlist
