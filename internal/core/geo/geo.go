// Package geo holds spherical earth arithmetic for points and distances
//
// Offsets use a local flat approximation around the origin. They are
// unstable as |latitude| approaches 90 and are not guarded there.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// EarthRadiusKm is the IUGG mean earth radius
const EarthRadiusKm = 6371.0088

// ErrInvalidPoint is returned for coordinates outside [-90,90] x [-180,180]
var ErrInvalidPoint = errors.New("geo: latitude must be within [-90,90] and longitude within [-180,180]")

// Point is a coordinate in decimal degrees
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks the coordinate ranges
func (p Point) Validate() error {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return ErrInvalidPoint
	}
	if p.Latitude < -90 || p.Latitude > 90 || p.Longitude < -180 || p.Longitude > 180 {
		return ErrInvalidPoint
	}
	return nil
}

// String renders "lat,lon"
func (p Point) String() string {
	return strconv.FormatFloat(p.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(p.Longitude, 'f', -1, 64)
}

// ParsePoint parses decimal degree strings as returned by place directories
func ParsePoint(lat, lon string) (Point, error) {
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return Point{}, fmt.Errorf("geo: latitude %q: %w", lat, err)
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return Point{}, fmt.Errorf("geo: longitude %q: %w", lon, err)
	}
	p := Point{Latitude: la, Longitude: lo}
	if err := p.Validate(); err != nil {
		return Point{}, err
	}
	return p, nil
}

// Offset moves origin north then east by the given distances
func Offset(origin Point, north, east Distance) Point {
	return OffsetKm(origin, north.Km(), east.Km())
}

// OffsetKm is Offset with signed kilometer components, negative values move south or west
func OffsetKm(origin Point, northKm, eastKm float64) Point {
	dLat := northKm / EarthRadiusKm
	dLon := eastKm / EarthRadiusKm / math.Cos(radians(origin.Latitude))
	return Point{
		Latitude:  origin.Latitude + degrees(dLat),
		Longitude: wrapLongitude(origin.Longitude + degrees(dLon)),
	}
}

// GreatCircleDistance is the haversine distance between a and b
func GreatCircleDistance(a, b Point) Distance {
	phi1 := radians(a.Latitude)
	phi2 := radians(b.Latitude)
	dPhi := radians(b.Latitude - a.Latitude)
	dLambda := radians(b.Longitude - a.Longitude)

	sPhi := math.Sin(dPhi / 2)
	sLambda := math.Sin(dLambda / 2)
	h := sPhi*sPhi + math.Cos(phi1)*math.Cos(phi2)*sLambda*sLambda
	if h > 1 {
		h = 1
	}
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return Kilometers(EarthRadiusKm * c)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// wrapLongitude folds lon into [-180,180]
func wrapLongitude(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
