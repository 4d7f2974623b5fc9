package ui

import (
	"fmt"
	"strings"

	"github.com/avries/shopwatch/internal/alerts"
	"github.com/avries/shopwatch/internal/collection"
)

// renderProducts renders the catalogue with a cursor and a marker for
// products already on the wishlist.
func (m Model) renderProducts() string {
	styles := m.theme.Styles()

	if banner := m.collectionBanner(m.productsSnap.Status, m.productsSnap.Err, "no products yet", len(m.productsSnap.Items)); banner != "" {
		return banner
	}

	onWishlist := make(map[string]struct{}, len(m.wishlistSnap.Items))
	for _, e := range m.wishlistSnap.Items {
		onWishlist[e.Key] = struct{}{}
	}

	var b strings.Builder
	for i, e := range m.productsSnap.Items {
		marker := "  "
		if _, ok := onWishlist[e.Key]; ok {
			marker = styles.Success.Render("♥ ")
		}
		line := fmt.Sprintf("%s%-40s %10s", marker, truncate(e.Value.Name, 40), formatPrice(e.Value.Price))
		if i == m.selectedRow {
			line = styles.Selected.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// renderWishlist renders the wishlist; pending entries carry a marker
// until the server confirms them.
func (m Model) renderWishlist() string {
	styles := m.theme.Styles()

	if m.session == nil || !m.session.LoggedIn() {
		return styles.Muted.Render("log in (4) to see your wishlist")
	}
	if banner := m.collectionBanner(m.wishlistSnap.Status, m.wishlistSnap.Err, "wishlist is empty", len(m.wishlistSnap.Items)); banner != "" {
		return banner
	}

	var b strings.Builder
	for i, e := range m.wishlistSnap.Items {
		marker := "  "
		if e.Pending {
			marker = styles.Warning.Render("~ ")
		}
		line := fmt.Sprintf("%s%-40s %10s", marker, truncate(e.Value.Name, 40), formatPrice(e.Value.Price))
		if i == m.selectedRow {
			line = styles.Selected.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// renderAlerts renders the price-alert feed, newest first.
func (m Model) renderAlerts() string {
	styles := m.theme.Styles()

	if m.session == nil || !m.session.LoggedIn() {
		return styles.Muted.Render("log in (4) to see your price alerts")
	}
	if banner := m.collectionBanner(m.alertsSnap.Status, m.alertsSnap.Err, "no price drops yet", len(m.alertsSnap.Items)); banner != "" {
		return banner
	}

	var b strings.Builder
	for i, e := range m.alertsSnap.Items {
		a := e.Value
		drop := alerts.PercentDrop(a)
		dropText := styles.Muted.Render("   —")
		if drop > 0 {
			dropText = styles.Success.Render(formatDrop(drop))
		}
		line := fmt.Sprintf("%-30s %10s → %-10s %s  %s",
			truncate(a.ProductName, 30),
			formatPrice(a.OldPrice),
			formatPrice(a.NewPrice),
			dropText,
			styles.Muted.Render(formatObserved(a)),
		)
		if i == m.selectedRow {
			line = styles.Selected.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// collectionBanner returns a full-width message for non-browsable
// collection states, or empty when rows should render.
func (m Model) collectionBanner(status collection.Status, err error, emptyText string, count int) string {
	styles := m.theme.Styles()
	switch status {
	case collection.StatusIdle:
		return styles.Muted.Render("press r to load")
	case collection.StatusLoading:
		return m.spin.View() + " loading..."
	case collection.StatusFailed:
		msg := "load failed"
		if err != nil {
			msg = "load failed: " + err.Error()
		}
		return styles.Danger.Render(msg) + "\n" + styles.Muted.Render("press r to retry")
	default:
		if count == 0 {
			return styles.Muted.Render(emptyText)
		}
		return ""
	}
}
