package sampler

import (
	"errors"
	"math"
	"testing"

	"tripmaker/internal/core/geo"
)

// seq replays a fixed list of values and counts reads
type seq struct {
	vals []float64
	n    int
}

func (s *seq) Float64() float64 {
	v := s.vals[s.n%len(s.vals)]
	s.n++
	return v
}

func TestSample_FixedSequence(t *testing.T) {
	center := geo.Point{}
	// angle = 0.25 * 2π points due north, u = 0.5 with bias 1 gives half the radius
	rng := &seq{vals: []float64{0.25, 0.5}}
	p, err := Sample(center, geo.Kilometers(10), 1, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rng.n != 2 {
		t.Fatalf("consumed %d values, want 2", rng.n)
	}
	d := geo.GreatCircleDistance(center, p).Km()
	if math.Abs(d-5) > 1e-6 {
		t.Fatalf("distance %v want 5", d)
	}
	if p.Latitude <= 0 || math.Abs(p.Longitude) > 1e-9 {
		t.Fatalf("expected a point due north, got %v", p)
	}
}

func TestSample_BiasShapesRadius(t *testing.T) {
	center := geo.Point{Latitude: 20, Longitude: 30}
	radius := geo.Kilometers(8)
	tests := []struct {
		bias float64
		want float64
	}{
		{1, 4},
		{2, 2},
		{0.5, 8 * math.Sqrt(0.5)},
	}
	for _, tc := range tests {
		p, err := Sample(center, radius, tc.bias, &seq{vals: []float64{0, 0.5}})
		if err != nil {
			t.Fatalf("bias %v: %v", tc.bias, err)
		}
		got := geo.GreatCircleDistance(center, p).Km()
		if math.Abs(got-tc.want) > tc.want*0.005 {
			t.Fatalf("bias %v: distance %v want %v", tc.bias, got, tc.want)
		}
	}
}

func TestSample_RejectsBadArguments(t *testing.T) {
	tests := []struct {
		name   string
		radius geo.Distance
		bias   float64
		want   error
	}{
		{"zero bias", geo.Kilometers(1), 0, ErrInvalidBias},
		{"negative bias", geo.Kilometers(1), -1, ErrInvalidBias},
		{"nan bias", geo.Kilometers(1), math.NaN(), ErrInvalidBias},
		{"inf bias", geo.Kilometers(1), math.Inf(1), ErrInvalidBias},
		{"negative radius", geo.Kilometers(-1), 1, ErrInvalidRadius},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rng := &seq{vals: []float64{0.1}}
			_, err := Sample(geo.Point{}, tc.radius, tc.bias, rng)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v want %v", err, tc.want)
			}
			if rng.n != 0 {
				t.Fatalf("consumed %d values on rejection", rng.n)
			}
		})
	}
}

func TestSample_ZeroRadiusReturnsCenter(t *testing.T) {
	c := geo.Point{Latitude: 12.5, Longitude: -70}
	p, err := Sample(c, geo.Kilometers(0), 1, NewSource(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != c {
		t.Fatalf("got %v want %v", p, c)
	}
}

func TestSample_StaysInsideRadius(t *testing.T) {
	radius := geo.Kilometers(10)
	for _, lat := range []float64{0, 30, -45, 60} {
		center := geo.Point{Latitude: lat, Longitude: 10}
		for _, bias := range []float64{0.2, 1, 5} {
			for seed := range uint64(50) {
				rng := NewSource(seed)
				for range 20 {
					p, err := Sample(center, radius, bias, rng)
					if err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
					d := geo.GreatCircleDistance(center, p).Km()
					if d > radius.Km()*1.01 {
						t.Fatalf("lat %v bias %v seed %d: distance %v exceeds radius", lat, bias, seed, d)
					}
				}
			}
		}
	}
}

func TestSampler_LegacyHalfCircleStaysNorth(t *testing.T) {
	s := New(WithAngleRange(LegacyHalfCircle))
	if s.AngleRange() != LegacyHalfCircle {
		t.Fatalf("option not applied")
	}
	center := geo.Point{Latitude: 40, Longitude: -3}
	rng := NewSource(7)
	for range 500 {
		p, err := s.Sample(center, geo.Kilometers(5), 1, rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Latitude < center.Latitude {
			t.Fatalf("legacy range produced a southern point %v", p)
		}
	}
}

func TestNewSource_Deterministic(t *testing.T) {
	a, b := NewSource(99), NewSource(99)
	for range 10 {
		if a.Float64() != b.Float64() {
			t.Fatal("same seed diverged")
		}
	}
}

func TestParseAngleRange(t *testing.T) {
	if r, err := ParseAngleRange(""); err != nil || r != FullCircle {
		t.Fatalf("got %v,%v", r, err)
	}
	if r, err := ParseAngleRange("legacy"); err != nil || r != LegacyHalfCircle {
		t.Fatalf("got %v,%v", r, err)
	}
	for _, bad := range []string{"quarter", "half", "Legacy"} {
		if _, err := ParseAngleRange(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}
