package module

import (
	"context"

	"tripmaker/internal/core/place"
	"tripmaker/internal/services/discover/domain"
	"tripmaker/internal/services/discover/service"

	"github.com/google/uuid"
)

// Ports the discover module needs from main, passed with modkit.WithPorts
type Ports struct {
	Directory domain.Directory
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptServicePort struct{ svc service.Service }

// Discover returns the accepted locations of one run
func (a adaptServicePort) Discover(ctx context.Context, req domain.Request) ([]place.Accepted, error) {
	return a.svc.Discover(ctx, req)
}

// Run executes one run and returns its id alongside the locations
func (a adaptServicePort) Run(ctx context.Context, req domain.Request) (domain.Result, error) {
	return a.svc.Run(ctx, req)
}

// GetRun reads a ledger record
func (a adaptServicePort) GetRun(ctx context.Context, id uuid.UUID) (domain.Run, error) {
	return a.svc.GetRun(ctx, id)
}

// Limits returns the enforced request bounds
func (a adaptServicePort) Limits() domain.Limits { return a.svc.Limits() }
