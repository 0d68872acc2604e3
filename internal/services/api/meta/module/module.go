// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "tripmaker/internal/modkit"
	"tripmaker/internal/modkit/httpkit"
	"tripmaker/internal/modkit/repokit"
	str "tripmaker/internal/platform/strings"

	metahttp "tripmaker/internal/services/api/meta/http"
)

// ServiceName is reported by /meta/health, /meta/service and /meta/version
const ServiceName = "tripmaker-api"

// Ports the meta module may receive through modkit.WithPorts
type Ports struct {
	Directory metahttp.Breaker
}

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	built     modkit.Built
	startedAt time.Time
	directory metahttp.Breaker
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{deps: deps, built: b, startedAt: time.Now()}
	if in, ok := modkit.PortsAs[Ports](b); ok {
		m.directory = in.Directory
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		d := metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   m.startedAt,
			Directory:   m.directory,
		}
		if p, ok := m.deps.PG.(repokit.Pinger); ok && m.deps.HasPG() {
			d.PG = p
		}
		metahttp.Register(rr, d)
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
