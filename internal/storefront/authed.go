package storefront

import "context"

// TokenFunc supplies the current bearer token. Empty means anonymous.
type TokenFunc func() string

// Authed binds a token source to a Client so collection code can reach
// the API without holding credentials itself. The token is read fresh
// on every call, never cached.
type Authed struct {
	c     *Client
	token TokenFunc
}

// NewAuthed wraps client with the given token source.
func NewAuthed(client *Client, token TokenFunc) *Authed {
	if token == nil {
		token = func() string { return "" }
	}
	return &Authed{c: client, token: token}
}

func (a *Authed) ListProducts(ctx context.Context) ([]map[string]any, error) {
	return a.c.ListProducts(ctx)
}

func (a *Authed) ListWishlist(ctx context.Context) ([]map[string]any, error) {
	return a.c.ListWishlist(ctx, a.token())
}

func (a *Authed) AddWishlistItem(ctx context.Context, item WishlistPayload) error {
	return a.c.AddWishlistItem(ctx, a.token(), item)
}

func (a *Authed) RemoveWishlistItem(ctx context.Context, canonicalID string) error {
	return a.c.RemoveWishlistItem(ctx, a.token(), canonicalID)
}

func (a *Authed) ListAlerts(ctx context.Context) ([]map[string]any, error) {
	return a.c.ListAlerts(ctx, a.token())
}

func (a *Authed) CreateAlert(ctx context.Context, payload AlertPayload) (map[string]any, error) {
	return a.c.CreateAlert(ctx, a.token(), payload)
}
