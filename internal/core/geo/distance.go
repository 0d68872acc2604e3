package geo

import (
	"errors"
	"fmt"
	"math"

	"tripmaker/internal/core/normalize"
)

// Unit is a closed set of length units a Distance converts to and from
type Unit uint8

const (
	// UnitKilometer is the canonical unit
	UnitKilometer Unit = iota
	UnitCentimeter
	UnitMeter
	UnitInch
	UnitFoot
	UnitYard
	UnitMile
)

type unitInfo struct {
	symbol  string
	aliases []string
	km      float64 // kilometers per one unit
}

// units is indexed by Unit, every Unit has an entry
var units = [...]unitInfo{
	UnitKilometer:  {symbol: "km", aliases: []string{"kilometer", "kilometers", "kilometre", "kilometres"}, km: 1},
	UnitCentimeter: {symbol: "cm", aliases: []string{"centimeter", "centimeters", "centimetre", "centimetres"}, km: 1e-5},
	UnitMeter:      {symbol: "m", aliases: []string{"meter", "meters", "metre", "metres"}, km: 1e-3},
	UnitInch:       {symbol: "in", aliases: []string{"inch", "inches"}, km: 2.54e-5},
	UnitFoot:       {symbol: "ft", aliases: []string{"foot", "feet"}, km: 3.048e-4},
	UnitYard:       {symbol: "yd", aliases: []string{"yard", "yards"}, km: 9.144e-4},
	UnitMile:       {symbol: "mi", aliases: []string{"mile", "miles"}, km: 1.609344},
}

var unitIndex = func() map[string]Unit {
	m := make(map[string]Unit, len(units)*5)
	for u, info := range units {
		m[info.symbol] = Unit(u)
		for _, a := range info.aliases {
			m[a] = Unit(u)
		}
	}
	return m
}()

// ErrUnknownUnit is returned by ParseUnit for names outside the closed set
var ErrUnknownUnit = errors.New("geo: unknown distance unit")

// ErrInvalidDistance is returned for negative or non finite distances
var ErrInvalidDistance = errors.New("geo: distance must be a finite value >= 0")

// Units lists every supported unit in declaration order
func Units() []Unit {
	out := make([]Unit, len(units))
	for i := range units {
		out[i] = Unit(i)
	}
	return out
}

// ParseUnit resolves a symbol ("mi") or name ("Miles") to a Unit
func ParseUnit(s string) (Unit, error) {
	if u, ok := unitIndex[normalize.Key(s)]; ok {
		return u, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownUnit, s)
}

// Valid reports whether u is a member of the closed set
func (u Unit) Valid() bool { return int(u) < len(units) }

// String returns the unit symbol
func (u Unit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("Unit(%d)", uint8(u))
	}
	return units[u].symbol
}

// MarshalText renders the unit symbol
func (u Unit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("%w %d", ErrUnknownUnit, uint8(u))
	}
	return []byte(units[u].symbol), nil
}

// UnmarshalText accepts anything ParseUnit accepts
func (u *Unit) UnmarshalText(b []byte) error {
	v, err := ParseUnit(string(b))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// Distance is a length stored in kilometers
// the zero value is zero kilometers
type Distance struct{ km float64 }

// From converts value expressed in unit into a Distance
func From(value float64, unit Unit) Distance {
	if !unit.Valid() {
		unit = UnitKilometer
	}
	return Distance{km: value * units[unit].km}
}

// Kilometers builds a Distance from kilometers
func Kilometers(v float64) Distance { return Distance{km: v} }

// Meters builds a Distance from meters
func Meters(v float64) Distance { return From(v, UnitMeter) }

// Miles builds a Distance from miles
func Miles(v float64) Distance { return From(v, UnitMile) }

// Km returns the canonical value
func (d Distance) Km() float64 { return d.km }

// In converts d into unit
func (d Distance) In(unit Unit) float64 {
	if !unit.Valid() {
		return d.km
	}
	return d.km / units[unit].km
}

// Scale multiplies d by f
func (d Distance) Scale(f float64) Distance { return Distance{km: d.km * f} }

// Less reports d < o
func (d Distance) Less(o Distance) bool { return d.km < o.km }

// Validate enforces value >= 0 and finite
func (d Distance) Validate() error {
	if math.IsNaN(d.km) || math.IsInf(d.km, 0) || d.km < 0 {
		return ErrInvalidDistance
	}
	return nil
}

// String renders the distance in kilometers
func (d Distance) String() string { return fmt.Sprintf("%gkm", d.km) }
