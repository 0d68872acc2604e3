// Package module wires the places passthrough into the API using modkit
package module

import (
	"context"

	modkit "tripmaker/internal/modkit"
	"tripmaker/internal/modkit/httpkit"
	"tripmaker/internal/platform/config"
	str "tripmaker/internal/platform/strings"
	"tripmaker/internal/services/api/places/domain"
	placeshttp "tripmaker/internal/services/api/places/http"
	placessvc "tripmaker/internal/services/api/places/service"
)

// Ports the places module needs from main
type Ports struct {
	Client domain.Client
}

// Options holds configuration settings for the places module
type Options struct {
	Currency string
}

// FromConfig reads the default currency shared with the directory adapter
func FromConfig(cfg config.Conf) Options {
	return Options{Currency: cfg.Prefix("TRIPADVISOR_").MayString("CURRENCY", "USD")}
}

// Module implements the places module
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	svc   placessvc.Service
}

// New constructs the places module, the Client comes in through modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("places"), modkit.WithPrefix("/places")}, opts...)...)

	in, ok := modkit.PortsAs[Ports](b)
	if !ok || in.Client == nil {
		panic("places module requires Ports.Client")
	}
	return &Module{
		deps:  deps,
		built: b,
		svc:   placessvc.New(in.Client, FromConfig(deps.Cfg).Currency),
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { placeshttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Ports returns the module ports
func (m *Module) Ports() any { return adaptPlacesPort{svc: m.svc} }

type adaptPlacesPort struct{ svc placessvc.Service }

// Place returns a trimmed details record
func (a adaptPlacesPort) Place(ctx context.Context, id string, q domain.Query) (domain.PlaceOut, error) {
	return a.svc.Place(ctx, id, q)
}

// Photos returns one page of photos
func (a adaptPlacesPort) Photos(ctx context.Context, id string, q domain.Query) (domain.PhotosOutput, error) {
	return a.svc.Photos(ctx, id, q)
}

// Reviews returns one page of reviews
func (a adaptPlacesPort) Reviews(ctx context.Context, id string, q domain.Query) (domain.ReviewsOutput, error) {
	return a.svc.Reviews(ctx, id, q)
}
