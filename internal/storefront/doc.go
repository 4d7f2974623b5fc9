// Package storefront provides the HTTP client for the storefront API.
//
// The package is the module's single service boundary. Everything the
// server transmits comes back as raw records ([]map[string]any) because
// the backend's field naming drifts between snake_case and camelCase;
// normalization into the canonical Product and Alert shapes happens in
// the identity package, never here and never downstream.
//
// Endpoints:
//
//   - GET  /products       product catalogue (anonymous)
//   - GET  /wishlist       the user's wishlist
//   - POST /wishlist       add a product
//   - DELETE /wishlist/:id remove by canonical id
//   - GET  /notifications  price-alert feed
//   - POST /notifications  submit a price alert
//   - POST /login          exchange credentials for a bearer token
//   - POST /register       create an account
//
// Failures split into two kinds: transport errors (connection refused,
// timeout, malformed JSON) are returned wrapped, and non-2xx responses
// are returned as *APIError carrying the status code and whatever
// message the server put in its {message} or {error} payload.
//
// Authentication is explicit. Client methods take the token as an
// argument; Authed binds a TokenFunc so the engine packages can consume
// the API without ever touching credentials.
package storefront
