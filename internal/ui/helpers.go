package ui

import (
	"fmt"
	"time"

	"github.com/avries/shopwatch/internal/storefront"
)

// formatPrice renders a price for display.
func formatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// formatDrop renders a fractional drop as a percentage, e.g. "-20%".
func formatDrop(drop float64) string {
	return fmt.Sprintf("-%.0f%%", drop*100)
}

// formatObserved renders an alert's age relative to now, falling back
// to a dash when the server sent no usable timestamp.
func formatObserved(a storefront.Alert) string {
	return formatAge(a.ObservedAt, time.Now())
}

func formatAge(t, now time.Time) string {
	if t.IsZero() {
		return "—"
	}
	age := now.Sub(t)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
