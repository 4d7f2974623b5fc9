package app

import (
	"context"
	"log"
	"time"

	"github.com/avries/shopwatch/internal/alerts"
	"github.com/avries/shopwatch/internal/collection"
	"github.com/avries/shopwatch/internal/session"
)

const defaultPollInterval = 60 * time.Second

// StartPoller launches a background goroutine that refreshes the alert
// feed at a fixed cadence while a user is logged in. It returns
// immediately.
func StartPoller(ctx context.Context, sess *session.Session, feed *alerts.Feed, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if !sess.LoggedIn() {
				continue
			}
			if snap := feed.Load(ctx); snap.Status == collection.StatusFailed {
				log.Printf("alert poll failed: %v", snap.Err)
			}
		}
	}()
}
