// Package memory provides in-memory implementations of the storage ports.
// Used in tests and anywhere persistence is not wanted.
package memory
