package domain

import (
	"time"

	"tripmaker/internal/core/geo"
	"tripmaker/internal/core/place"
	perr "tripmaker/internal/platform/errors"
)

// Form defaults, a missing body field takes these
const (
	DefaultLatitude    = 0.0
	DefaultLongitude   = 0.0
	DefaultUnit        = geo.UnitMile
	DefaultMaxDistance = 10.0
	DefaultBias        = 1.0
	DefaultMinRating   = 0.0
	DefaultCount       = 5
)

// DiscoverInput is the POST /discover body, nil fields take the defaults
type DiscoverInput struct {
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90" example:"48.8584"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180" example:"2.2945"`
	MaxDistance  *float64 `json:"max_distance,omitempty" validate:"omitempty,gte=0" example:"10"`
	DistanceUnit string   `json:"distance_unit,omitempty" validate:"omitempty,max=32" example:"mi"`
	Count        *int     `json:"count,omitempty" validate:"omitempty,gte=0" example:"5"`
	MinRating    *float64 `json:"min_rating,omitempty" validate:"omitempty,gte=0,lte=5" example:"4"`
	Bias         *float64 `json:"closeness_bias,omitempty" validate:"omitempty,gt=0" example:"1"`
}

// Request resolves defaults and the unit, the unit is what distances render in
func (in DiscoverInput) Request() (Request, geo.Unit, error) {
	unit := DefaultUnit
	if in.DistanceUnit != "" {
		u, err := geo.ParseUnit(in.DistanceUnit)
		if err != nil {
			return Request{}, 0, perr.WithField(perr.Wrap(err, perr.ErrorCodeValidation, "distance_unit is not a known unit"), "distance_unit")
		}
		unit = u
	}
	req := Request{
		Center: geo.Point{
			Latitude:  orFloat(in.Latitude, DefaultLatitude),
			Longitude: orFloat(in.Longitude, DefaultLongitude),
		},
		MaxDistance: geo.From(orFloat(in.MaxDistance, DefaultMaxDistance), unit),
		Quota:       DefaultCount,
		MinRating:   orFloat(in.MinRating, DefaultMinRating),
		Bias:        orFloat(in.Bias, DefaultBias),
	}
	if in.Count != nil {
		req.Quota = *in.Count
	}
	return req, unit, nil
}

func orFloat(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Measure is a distance rendered in a caller chosen unit
type Measure struct {
	Value float64 `json:"value" example:"3.2"`
	Unit  string  `json:"unit" example:"mi"`
}

// MeasureOf renders d in unit
func MeasureOf(d geo.Distance, unit geo.Unit) Measure {
	return Measure{Value: d.In(unit), Unit: unit.String()}
}

// LocationOut is one accepted location
type LocationOut struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Website     *string `json:"website,omitempty"`
	Rating      float64 `json:"rating" example:"4.5"`
	Address     string  `json:"address"`
	Distance    Measure `json:"distance"`
}

// DiscoverOutput is the POST /discover answer
type DiscoverOutput struct {
	RunID       string        `json:"run_id" example:"0b6f6d3c-6a43-4d4e-9d4f-0f6e4a3b2c1d"`
	Center      geo.Point     `json:"center"`
	MaxDistance Measure       `json:"max_distance"`
	Locations   []LocationOut `json:"locations"`
}

// Present renders a result in unit
func Present(req Request, unit geo.Unit, res Result) DiscoverOutput {
	out := DiscoverOutput{
		RunID:       res.RunID.String(),
		Center:      req.Center,
		MaxDistance: MeasureOf(req.MaxDistance, unit),
		Locations:   make([]LocationOut, 0, len(res.Locations)),
	}
	for _, a := range res.Locations {
		out.Locations = append(out.Locations, locationOut(a, unit))
	}
	return out
}

func locationOut(a place.Accepted, unit geo.Unit) LocationOut {
	return LocationOut{
		Name:        a.Name,
		Description: a.Description,
		Website:     a.Website,
		Rating:      a.Rating,
		Address:     a.Address,
		Distance:    MeasureOf(a.Distance, unit),
	}
}

// Bound is an inclusive numeric range, a nil Max is unbounded
type Bound struct {
	Min float64  `json:"min"`
	Max *float64 `json:"max,omitempty"`
}

// DefaultsOutput backs the settings form
type DefaultsOutput struct {
	Latitude     float64          `json:"latitude"`
	Longitude    float64          `json:"longitude"`
	MaxDistance  float64          `json:"max_distance"`
	DistanceUnit string           `json:"distance_unit"`
	Count        int              `json:"count"`
	MinRating    float64          `json:"min_rating"`
	Bias         float64          `json:"closeness_bias"`
	Units        []string         `json:"units"`
	Bounds       map[string]Bound `json:"bounds"`
}

// Defaults lists the form defaults and the bounds l enforces
func Defaults(l Limits) DefaultsOutput {
	units := make([]string, 0, len(geo.Units()))
	for _, u := range geo.Units() {
		units = append(units, u.String())
	}
	bounds := make(map[string]Bound, len(checks))
	for f, c := range checks {
		bounds[string(f)] = c.bound(l)
	}
	return DefaultsOutput{
		Latitude:     DefaultLatitude,
		Longitude:    DefaultLongitude,
		MaxDistance:  DefaultMaxDistance,
		DistanceUnit: DefaultUnit.String(),
		Count:        DefaultCount,
		MinRating:    DefaultMinRating,
		Bias:         DefaultBias,
		Units:        units,
		Bounds:       bounds,
	}
}

// CheckInput is one form field to validate
type CheckInput struct {
	Field string  `json:"field" validate:"required" example:"closeness_bias"`
	Value *string `json:"value" example:"1.5"`
}

// CheckOutput echoes the parsed value
type CheckOutput struct {
	Field string  `json:"field"`
	Value float64 `json:"value"`
}

// RunOut is a ledger record on the wire
type RunOut struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	DurationMs    int64     `json:"duration_ms"`
	Center        geo.Point `json:"center"`
	MaxDistanceKm float64   `json:"max_distance_km"`
	Quota         int       `json:"quota"`
	MinRating     float64   `json:"min_rating"`
	Bias          float64   `json:"closeness_bias"`
	Attempts      int       `json:"attempts"`
	Accepted      int       `json:"accepted"`
	Status        Status    `json:"status"`
	Error         string    `json:"error,omitempty"`
}

// RunOutOf renders a ledger record
func RunOutOf(r Run) RunOut {
	return RunOut{
		ID:            r.ID.String(),
		StartedAt:     r.StartedAt.UTC(),
		FinishedAt:    r.FinishedAt.UTC(),
		DurationMs:    r.Duration().Milliseconds(),
		Center:        r.Request.Center,
		MaxDistanceKm: r.Request.MaxDistance.Km(),
		Quota:         r.Request.Quota,
		MinRating:     r.Request.MinRating,
		Bias:          r.Request.Bias,
		Attempts:      r.Attempts,
		Accepted:      r.Accepted,
		Status:        r.Status,
		Error:         r.Error,
	}
}
