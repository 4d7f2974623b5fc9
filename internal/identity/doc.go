// Package identity absorbs the storefront API's schema drift.
//
// The backend has transmitted the same records under several field
// naming conventions: ids as product_id, _id, productId, or id; images
// as image_url or imageUrl; alert prices as old_price/new_price or
// oldPrice/newPrice. Every record crossing the service boundary inbound
// passes through this package exactly once, and only the canonical
// shapes in the storefront package travel further — alias-specific
// names never leak past here.
//
// Resolve derives the canonical identity key. When a record carries no
// id field at all, a locally-unique identifier is synthesized and the
// record is flagged as lacking a server identity; the mutation
// coordinator refuses server-side deletes against such records.
//
// Records missing required fields (a product without a name or price,
// an alert without both prices) are dropped with a logged warning
// rather than failing the whole fetch.
package identity
