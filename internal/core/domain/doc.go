// Package domain contains the core business entities and rules for the
// Tapestry connector subsystem.
//
// This package has no dependencies on other internal packages and no
// knowledge of any concrete source system. Connector packages define their
// own typed entity structs and embed [EntityMeta] to satisfy [Entity].
package domain
