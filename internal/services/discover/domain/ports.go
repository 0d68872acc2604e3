package domain

import (
	"context"

	"tripmaker/internal/core/geo"
	"tripmaker/internal/core/place"

	"github.com/google/uuid"
)

// Directory is the place directory the loop searches
type Directory interface {
	NearbySearch(ctx context.Context, point geo.Point, radius geo.Distance, category place.Category) ([]place.Candidate, error)
	Details(ctx context.Context, id string) (place.Detail, error)
}

// Ledger records run metadata, GetRun of an unknown id is a NotFound error
type Ledger interface {
	InsertRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id uuid.UUID) (Run, error)
}

// Result is a successful run
type Result struct {
	RunID     uuid.UUID
	Locations []place.Accepted
}

// ServicePort is what the transport and other modules consume
type ServicePort interface {
	Discover(ctx context.Context, req Request) ([]place.Accepted, error)
	Run(ctx context.Context, req Request) (Result, error)
	GetRun(ctx context.Context, id uuid.UUID) (Run, error)
	Limits() Limits
}
