package module

import (
	"slices"
	"sync"
)

// Registry maps module names to their port sets during bootstrap
type Registry struct {
	mu    sync.RWMutex
	ports map[string]any
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry { return &Registry{ports: map[string]any{}} }

// Register stores ports under name, replacing any earlier entry
func (g *Registry) Register(name string, ports any) {
	g.mu.Lock()
	g.ports[name] = ports
	g.mu.Unlock()
}

// Names lists registered module names in sorted order
func (g *Registry) Names() []string {
	g.mu.RLock()
	out := make([]string, 0, len(g.ports))
	for k := range g.ports {
		out = append(out, k)
	}
	g.mu.RUnlock()
	slices.Sort(out)
	return out
}

// Lookup returns the raw ports stored under name
func (g *Registry) Lookup(name string) (any, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.ports[name]
	return v, ok
}

// PortsAs fetches and type asserts the ports stored under name
func PortsAs[T any](g *Registry, name string) (T, bool) {
	var zero T
	v, ok := g.Lookup(name)
	if !ok {
		return zero, false
	}
	out, ok := v.(T)
	if !ok {
		return zero, false
	}
	return out, true
}
