// Package driving defines the inbound ports of the hexagon.
//
// Driving ports are the use-case interfaces exposed to external actors.
// The CLI adapter is the only driving adapter in this repository; the
// interfaces keep it decoupled from the service implementations under
// internal/core/services.
package driving
