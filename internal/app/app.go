package app

import (
	"context"
	"fmt"
	"time"

	"github.com/avries/shopwatch/internal/alerts"
	"github.com/avries/shopwatch/internal/collection"
	"github.com/avries/shopwatch/internal/config"
	"github.com/avries/shopwatch/internal/identity"
	"github.com/avries/shopwatch/internal/prefs"
	"github.com/avries/shopwatch/internal/session"
	"github.com/avries/shopwatch/internal/storefront"
	"github.com/avries/shopwatch/internal/ui"
	"github.com/avries/shopwatch/internal/wishlist"
)

// Options configure the shopwatch application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/shopwatch/prefs.toml
	PollEvery  int    // seconds between alert-feed polls; zero uses config
}

// Run boots the shopwatch TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := storefront.NewClient(cfg.APIBase)
	if err != nil {
		return fmt.Errorf("init storefront client: %w", err)
	}

	sess := session.New(client)
	if userPrefs.Token != "" {
		sess.Resume(userPrefs.Token)
	}

	authed := storefront.NewAuthed(client, sess.Token)

	products := collection.NewStore(func(ctx context.Context) ([]collection.Record[storefront.Product], error) {
		raws, err := client.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		return identity.Products(raws), nil
	})
	wl := wishlist.NewController(authed)
	feed := alerts.NewFeed(authed)

	interval := time.Duration(cfg.AlertPollSeconds) * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Background refresh so price drops appear without user action.
	StartPoller(ctx, sess, feed, interval)

	uiOpts := ui.Options{
		Context:   ctx,
		Session:   sess,
		Products:  products,
		Wishlist:  wl,
		Alerts:    feed,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
