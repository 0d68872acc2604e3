// Package sampler draws biased random points inside a disc around a center.
//
// A bias of 1 spreads radial distance uniformly over [0,radius). Values above
// 1 pull points toward the center, values below 1 push them toward the edge.
package sampler

import (
	"errors"
	"math"
	"math/rand/v2"

	"tripmaker/internal/core/geo"
)

// RandomSource yields values in [0,1), *rand.Rand satisfies it
type RandomSource interface {
	Float64() float64
}

var (
	ErrInvalidBias   = errors.New("sampler: bias must be a finite value > 0")
	ErrInvalidRadius = errors.New("sampler: radius must be >= 0")
)

// AngleRange selects how much of the circle bearings are drawn from
type AngleRange uint8

const (
	// FullCircle draws bearings over [0, 2π)
	FullCircle AngleRange = iota
	// LegacyHalfCircle draws over [0, π), only north of the center
	LegacyHalfCircle
)

func (a AngleRange) span() float64 {
	if a == LegacyHalfCircle {
		return math.Pi
	}
	return 2 * math.Pi
}

func (a AngleRange) String() string {
	if a == LegacyHalfCircle {
		return "legacy"
	}
	return "full"
}

// ParseAngleRange accepts "full" or "legacy", empty means full
func ParseAngleRange(s string) (AngleRange, error) {
	switch s {
	case "", "full":
		return FullCircle, nil
	case "legacy":
		return LegacyHalfCircle, nil
	}
	return FullCircle, errors.New("sampler: angle range must be full or legacy, got " + s)
}

// Sampler is immutable and safe to share, the RandomSource passed to Sample is not
type Sampler struct {
	angles AngleRange
}

type Option func(*Sampler)

func WithAngleRange(a AngleRange) Option {
	return func(s *Sampler) { s.angles = a }
}

func New(opts ...Option) Sampler {
	var s Sampler
	for _, o := range opts {
		o(&s)
	}
	return s
}

// AngleRange reports the configured range
func (s Sampler) AngleRange() AngleRange { return s.angles }

// Sample draws one point. It consumes exactly two values from rng on success
// and none when the arguments are rejected.
func (s Sampler) Sample(center geo.Point, radius geo.Distance, bias float64, rng RandomSource) (geo.Point, error) {
	if bias <= 0 || math.IsNaN(bias) || math.IsInf(bias, 0) {
		return geo.Point{}, ErrInvalidBias
	}
	if err := radius.Validate(); err != nil {
		return geo.Point{}, ErrInvalidRadius
	}

	angle := rng.Float64() * s.angles.span()
	f := math.Pow(rng.Float64(), bias)
	r := radius.Km() * f

	return geo.OffsetKm(center, r*math.Sin(angle), r*math.Cos(angle)), nil
}

// Sample uses the full circle
func Sample(center geo.Point, radius geo.Distance, bias float64, rng RandomSource) (geo.Point, error) {
	return Sampler{}.Sample(center, radius, bias, rng)
}

// NewSource returns a deterministic PCG source for seed
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomSource returns a source seeded from the runtime's entropy
func NewRandomSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
