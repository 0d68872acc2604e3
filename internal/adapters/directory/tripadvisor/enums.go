package tripadvisor

import (
	"errors"
	"fmt"

	"tripmaker/internal/core/geo"
	"tripmaker/internal/core/normalize"
	"tripmaker/internal/core/place"
)

// Category is the nearby search category filter
type Category = place.Category

// ErrUnknownEnum is returned when a wire token is outside its closed set
var ErrUnknownEnum = errors.New("tripadvisor: unknown value")

// RadiusUnit is the unit of NearbyParams.Radius
type RadiusUnit uint8

const (
	RadiusKm RadiusUnit = iota
	RadiusMi
	RadiusM
)

var radiusUnits = [...]struct {
	code string
	unit geo.Unit
}{
	RadiusKm: {"km", geo.UnitKilometer},
	RadiusMi: {"mi", geo.UnitMile},
	RadiusM:  {"m", geo.UnitMeter},
}

// ParseRadiusUnit accepts the wire code or any geo unit name that maps to one
func ParseRadiusUnit(s string) (RadiusUnit, error) {
	u, err := geo.ParseUnit(s)
	if err == nil {
		for i, ru := range radiusUnits {
			if ru.unit == u {
				return RadiusUnit(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w radius unit %q", ErrUnknownEnum, s)
}

// Valid reports membership in the closed set
func (u RadiusUnit) Valid() bool { return int(u) < len(radiusUnits) }

// Unit is the geo unit the radius is expressed in
func (u RadiusUnit) Unit() geo.Unit {
	if !u.Valid() {
		return geo.UnitKilometer
	}
	return radiusUnits[u].unit
}

func (u RadiusUnit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("RadiusUnit(%d)", uint8(u))
	}
	return radiusUnits[u].code
}

// PhotoSource filters photos by who uploaded them
type PhotoSource uint8

const (
	PhotoExpert PhotoSource = iota
	PhotoManagement
	PhotoTraveler
)

var photoSources = [...]string{
	PhotoExpert:     "Expert",
	PhotoManagement: "Management",
	PhotoTraveler:   "Traveler",
}

// PhotoSources lists every source in declaration order
func PhotoSources() []PhotoSource {
	out := make([]PhotoSource, len(photoSources))
	for i := range photoSources {
		out[i] = PhotoSource(i)
	}
	return out
}

// ParsePhotoSource is case insensitive
func ParsePhotoSource(s string) (PhotoSource, error) {
	k := normalize.Key(s)
	for i, n := range photoSources {
		if normalize.Key(n) == k {
			return PhotoSource(i), nil
		}
	}
	return 0, fmt.Errorf("%w photo source %q", ErrUnknownEnum, s)
}

// Valid reports membership in the closed set
func (p PhotoSource) Valid() bool { return int(p) < len(photoSources) }

func (p PhotoSource) String() string {
	if !p.Valid() {
		return fmt.Sprintf("PhotoSource(%d)", uint8(p))
	}
	return photoSources[p]
}
