// Package domain holds the discovery request, run record, ports and DTOs
package domain

import (
	"math"
	"time"

	"tripmaker/internal/core/geo"
	perr "tripmaker/internal/platform/errors"

	"github.com/google/uuid"
)

// Request is one discovery call
type Request struct {
	Center      geo.Point
	MaxDistance geo.Distance
	Quota       int
	MinRating   float64
	Bias        float64
}

// Limits bound the request values a deployment accepts
type Limits struct {
	MaxQuota  int
	BiasMin   float64
	BiasMax   float64
	MaxRating float64
}

// DefaultLimits are the bounds used when config is silent
func DefaultLimits() Limits {
	return Limits{MaxQuota: 15, BiasMin: 0.2, BiasMax: 5.0, MaxRating: 5}
}

// Validate checks req against l, the first failure wins and names its field
func (l Limits) Validate(req Request) error {
	if err := req.Center.Validate(); err != nil {
		return perr.WithField(perr.Wrap(err, perr.ErrorCodeValidation, "center is out of range"), "center")
	}
	if err := req.MaxDistance.Validate(); err != nil {
		return perr.WithField(perr.Wrap(err, perr.ErrorCodeValidation, "max_distance must be a finite value >= 0"), "max_distance")
	}
	if !finite(req.Bias) || req.Bias <= 0 || req.Bias < l.BiasMin || req.Bias > l.BiasMax {
		return perr.WithField(perr.Validationf("closeness_bias must be within [%g,%g]", l.BiasMin, l.BiasMax), "closeness_bias")
	}
	if !finite(req.MinRating) || req.MinRating < 0 || req.MinRating > l.MaxRating {
		return perr.WithField(perr.Validationf("min_rating must be within [0,%g]", l.MaxRating), "min_rating")
	}
	if req.Quota < 0 || req.Quota > l.MaxQuota {
		return perr.WithField(perr.Validationf("count must be within [0,%d]", l.MaxQuota), "count")
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Status is the terminal state of a run
type Status string

const (
	StatusOK        Status = "ok"
	StatusExhausted Status = "exhausted"
	StatusCanceled  Status = "canceled"
	StatusUpstream  Status = "upstream"
	StatusInvalid   Status = "invalid"
)

// Run is the ledger record of one discovery call, it never holds locations
type Run struct {
	ID         uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	Request    Request
	Attempts   int
	Accepted   int
	Status     Status
	Error      string
}

// Duration is FinishedAt - StartedAt
func (r Run) Duration() time.Duration { return r.FinishedAt.Sub(r.StartedAt) }
