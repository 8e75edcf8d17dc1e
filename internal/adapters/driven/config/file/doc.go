// Package file provides the TOML-backed configuration store. Application
// settings and per-source credentials share one config.toml with
// owner-only permissions; every write persists immediately.
package file
