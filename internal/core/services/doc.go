// Package services contains the application services behind the driving
// ports: the connector registry and factory, source lifecycle management,
// and the sync runner that drives a connector's entity stream into the
// consuming pipeline.
package services
