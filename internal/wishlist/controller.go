package wishlist

import (
	"context"

	"github.com/avries/shopwatch/internal/collection"
	"github.com/avries/shopwatch/internal/identity"
	"github.com/avries/shopwatch/internal/storefront"
)

// Service is the slice of the storefront API the controller mutates.
// Implemented by *storefront.Authed and by test fakes.
type Service interface {
	ListWishlist(ctx context.Context) ([]map[string]any, error)
	AddWishlistItem(ctx context.Context, item storefront.WishlistPayload) error
	RemoveWishlistItem(ctx context.Context, canonicalID string) error
}

// Controller owns the wishlist collection and its optimistic
// mutations. It is a thin composition: all lifecycle and rollback
// semantics live in the collection package.
type Controller struct {
	svc   Service
	store *collection.Store[storefront.Product]
	coord *collection.Coordinator[storefront.Product]
}

// NewController builds a Controller over svc.
func NewController(svc Service) *Controller {
	c := &Controller{svc: svc}
	c.store = collection.NewStore(c.fetch)
	c.coord = collection.NewCoordinator(c.store)
	return c
}

// Load refreshes the wishlist from the server.
func (c *Controller) Load(ctx context.Context) collection.Snapshot[storefront.Product] {
	return c.store.Load(ctx)
}

// Snapshot returns the last known wishlist state without suspending.
func (c *Controller) Snapshot() collection.Snapshot[storefront.Product] {
	return c.store.Snapshot()
}

// Add optimistically places the product on the wishlist and submits
// it. The entry appears immediately as pending; a refused add removes
// it again, and adding an id that is already present is a no-op.
func (c *Controller) Add(ctx context.Context, rec collection.Record[storefront.Product]) collection.Outcome {
	p := rec.Value
	return c.coord.Add(ctx, rec, func(ctx context.Context) error {
		return c.svc.AddWishlistItem(ctx, storefront.WishlistPayload{
			ProductID: rec.Key,
			Name:      p.Name,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
		})
	})
}

// Remove hides the entry while the delete is in flight, restoring it
// if the server refuses. Entries without a server-assigned id fail
// fast with collection.ErrUnresolvedIdentity.
func (c *Controller) Remove(ctx context.Context, canonicalID string) collection.Outcome {
	return c.coord.Remove(ctx, canonicalID, func(ctx context.Context) error {
		return c.svc.RemoveWishlistItem(ctx, canonicalID)
	})
}

func (c *Controller) fetch(ctx context.Context) ([]collection.Record[storefront.Product], error) {
	raws, err := c.svc.ListWishlist(ctx)
	if err != nil {
		return nil, err
	}
	return identity.Products(raws), nil
}
