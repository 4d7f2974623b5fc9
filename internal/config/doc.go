// Package config loads the shopwatch configuration from
// ~/.config/shopwatch/config.toml. A missing file is not an error;
// every field has a default suitable for the local development
// backend.
package config
