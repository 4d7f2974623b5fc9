package identity

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/avries/shopwatch/internal/collection"
	"github.com/avries/shopwatch/internal/storefront"
)

// idFields is the canonical-identity resolution order; the first
// present field wins.
var idFields = []string{"product_id", "_id", "productId", "id"}

// alertIDFields identifies the alert record itself, as opposed to the
// product it refers to.
var alertIDFields = []string{"id", "_id", "alert_id", "alertId"}

// Resolve returns the canonical identity for a raw record. When no id
// field is present it synthesizes a locally-unique identifier and
// reports serverKnown=false; mutations against such records fail fast
// instead of contacting the server.
func Resolve(raw map[string]any) (key string, serverKnown bool) {
	if id, ok := firstID(raw, idFields); ok {
		return id, true
	}
	return uuid.NewString(), false
}

// Product normalizes one raw product or wishlist record. Name and
// price are required; a record missing either is malformed.
func Product(raw map[string]any) (collection.Record[storefront.Product], error) {
	var rec collection.Record[storefront.Product]
	name, ok := stringField(raw, "name", "product_name", "productName")
	if !ok {
		return rec, fmt.Errorf("record has no name")
	}
	price, ok := numberField(raw, "price")
	if !ok {
		return rec, fmt.Errorf("record %q has no price", name)
	}
	key, known := Resolve(raw)
	image, _ := stringField(raw, "image_url", "imageUrl")
	rec = collection.Record[storefront.Product]{
		Key:         key,
		ServerKnown: known,
		Value: storefront.Product{
			CanonicalID: key,
			Name:        name,
			Price:       price,
			ImageURL:    image,
		},
	}
	return rec, nil
}

// Alert normalizes one raw alert record. Product name and both prices
// are required. The record key is the alert's own id; the product it
// refers to lands in CanonicalID.
func Alert(raw map[string]any) (collection.Record[storefront.Alert], error) {
	var rec collection.Record[storefront.Alert]
	name, ok := stringField(raw, "product_name", "productName", "name")
	if !ok {
		return rec, fmt.Errorf("alert record has no product name")
	}
	oldPrice, ok := numberField(raw, "old_price", "oldPrice")
	if !ok {
		return rec, fmt.Errorf("alert %q has no old price", name)
	}
	newPrice, ok := numberField(raw, "new_price", "newPrice")
	if !ok {
		return rec, fmt.Errorf("alert %q has no new price", name)
	}

	alertID, known := firstID(raw, alertIDFields)
	if !known {
		alertID = uuid.NewString()
	}
	productID, _ := firstID(raw, []string{"product_id", "productId"})

	image, ok := stringField(raw, "image_url", "imageUrl")
	if !ok || image == "" {
		image = storefront.PlaceholderImage
	}
	observed, _ := stringField(raw, "timestamp", "observed_at", "observedAt")

	rec = collection.Record[storefront.Alert]{
		Key:         alertID,
		ServerKnown: known,
		Value: storefront.Alert{
			AlertID:     alertID,
			CanonicalID: productID,
			ProductName: name,
			ImageURL:    image,
			OldPrice:    oldPrice,
			NewPrice:    newPrice,
			ObservedAt:  storefront.ParseTimestamp(observed),
		},
	}
	return rec, nil
}

// Products normalizes a raw payload, dropping records that fail to
// parse; a partially valid payload still yields a loaded collection.
func Products(raws []map[string]any) []collection.Record[storefront.Product] {
	out := make([]collection.Record[storefront.Product], 0, len(raws))
	for _, raw := range raws {
		rec, err := Product(raw)
		if err != nil {
			log.Printf("identity: dropping malformed product record: %v", err)
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Alerts normalizes a raw alert payload, dropping malformed records.
func Alerts(raws []map[string]any) []collection.Record[storefront.Alert] {
	out := make([]collection.Record[storefront.Alert], 0, len(raws))
	for _, raw := range raws {
		rec, err := Alert(raw)
		if err != nil {
			log.Printf("identity: dropping malformed alert record: %v", err)
			continue
		}
		out = append(out, rec)
	}
	return out
}

func firstID(raw map[string]any, fields []string) (string, bool) {
	for _, field := range fields {
		if v, ok := raw[field]; ok {
			if s := idString(v); s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// idString renders an id value the way the server transmitted it.
// JSON numbers decode as float64; server ids are integral.
func idString(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		if id == math.Trunc(id) {
			return strconv.FormatInt(int64(id), 10)
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return ""
	}
}

// stringField returns the first present alias with a non-empty string
// value.
func stringField(raw map[string]any, aliases ...string) (string, bool) {
	for _, alias := range aliases {
		if v, ok := raw[alias]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s, true
			}
		}
	}
	return "", false
}

// numberField returns the first present alias with a numeric value.
// The backend has transmitted prices both as numbers and as numeric
// strings.
func numberField(raw map[string]any, aliases ...string) (float64, bool) {
	for _, alias := range aliases {
		v, ok := raw[alias]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}
