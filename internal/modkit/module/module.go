// Package module defines the contract api.Mount composes
// it sits beside modkit so a module's ports type can import it without a cycle
package module

import phttp "tripmaker/internal/platform/net/http"

// Module mounts routes and exposes a port set for cross wiring
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// HasPorts reports whether m exposes a non-nil port set
func HasPorts(m Module) bool { return m != nil && m.Ports() != nil }
