// Package driven defines the driven ports (secondary adapters' interfaces)
// for the Tapestry connector subsystem: connectors, token providers, and
// the persistence interfaces the services depend on.
package driven
