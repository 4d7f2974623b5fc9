package storefront

import (
	"fmt"
	"time"
)

// backendTimestampLayout is the layout the storefront backend uses for
// alert timestamps.
const backendTimestampLayout = "2006-01-02 15:04:05"

// PlaceholderImage is substituted when a record carries no image URL.
const PlaceholderImage = "/placeholder-product.png"

// Product is the canonical product shape every record is normalized
// into, regardless of which field names the server transmitted.
type Product struct {
	CanonicalID string
	Name        string
	Price       float64
	ImageURL    string
}

// Alert records an observed price change for a tracked product.
// NewPrice >= OldPrice is kept as-is; display code decides how to
// present a non-drop.
type Alert struct {
	AlertID     string
	CanonicalID string
	ProductName string
	ImageURL    string
	OldPrice    float64
	NewPrice    float64
	ObservedAt  time.Time
}

// WishlistPayload is the body for POST /wishlist.
type WishlistPayload struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
}

// AlertPayload is the body for POST /notifications.
type AlertPayload struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	OldPrice    float64 `json:"old_price"`
	NewPrice    float64 `json:"new_price"`
	ImageURL    string  `json:"image_url,omitempty"`
	UserID      string  `json:"user_id,omitempty"`
}

// LoginResponse mirrors the payload returned by POST /login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// APIError is a non-2xx response from the storefront API, carrying the
// message the server put in its {message} or {error} payload.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("storefront api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("storefront api returned status %d: %s", e.StatusCode, e.Message)
}

// ParseTimestamp parses a timestamp as the backend transmits it.
// Invalid or missing values return the zero time.
func ParseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.Parse(backendTimestampLayout, value); err == nil {
		return t
	}
	return time.Time{}
}
