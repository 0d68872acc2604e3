// Package accept decides whether a place detail qualifies for a discovery request
package accept

import (
	"strconv"
	"strings"

	"tripmaker/internal/core/geo"
	"tripmaker/internal/core/place"
)

// Reason names why a detail was accepted or rejected
type Reason string

const (
	ReasonAccepted Reason = "accepted"
	ReasonRating   Reason = "rating"
	ReasonDistance Reason = "distance"
)

// Result is the full outcome of one evaluation
type Result struct {
	Accepted bool
	Rating   float64
	Distance geo.Distance
	Reason   Reason
}

// ParseRating reads the directory's rating text, absent or unparseable is 0
func ParseRating(raw *string) float64 {
	if raw == nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil || v != v {
		return 0
	}
	return v
}

// Evaluate accepts when rating >= minRating and distance < maxDistance.
// The distance is returned either way.
func Evaluate(d place.Detail, center geo.Point, maxDistance geo.Distance, minRating float64) (bool, geo.Distance) {
	r := Verdict(d, center, maxDistance, minRating)
	return r.Accepted, r.Distance
}

// Verdict is Evaluate with the parsed rating and the rejection reason.
// A rating miss takes precedence over a distance miss.
func Verdict(d place.Detail, center geo.Point, maxDistance geo.Distance, minRating float64) Result {
	rating := ParseRating(d.RatingRaw)
	dist := geo.GreatCircleDistance(center, d.Location)

	res := Result{Rating: rating, Distance: dist}
	switch {
	case rating < minRating:
		res.Reason = ReasonRating
	case !dist.Less(maxDistance):
		res.Reason = ReasonDistance
	default:
		res.Accepted = true
		res.Reason = ReasonAccepted
	}
	return res
}
