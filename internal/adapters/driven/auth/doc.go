// Package auth provides token providers backed by the config store.
// Static credentials (API keys, PATs) are served as-is; OAuth credentials
// are refreshed through the source's token endpoint and written back so
// the newest pair survives the process.
package auth
