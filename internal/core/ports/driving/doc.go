// Package driving defines the driving ports (primary adapters' interfaces)
// through which the CLI invokes the core services.
package driving
