// Package place holds the directory-neutral shapes of points of interest
// that flow between a place directory and the discovery loop.
package place

import (
	"errors"
	"fmt"

	"tripmaker/internal/core/geo"
	"tripmaker/internal/core/normalize"
)

// Category is the closed set of directory categories
type Category uint8

const (
	CategoryHotels Category = iota
	CategoryAttractions
	CategoryRestaurants
	CategoryGeos
)

var categoryNames = [...]string{
	CategoryHotels:      "hotels",
	CategoryAttractions: "attractions",
	CategoryRestaurants: "restaurants",
	CategoryGeos:        "geos",
}

// ErrUnknownCategory is returned by ParseCategory
var ErrUnknownCategory = errors.New("place: unknown category")

// Categories lists every category in declaration order
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i := range categoryNames {
		out[i] = Category(i)
	}
	return out
}

// ParseCategory is case insensitive
func ParseCategory(s string) (Category, error) {
	k := normalize.Key(s)
	for i, n := range categoryNames {
		if n == k {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownCategory, s)
}

// Valid reports membership in the closed set
func (c Category) Valid() bool { return int(c) < len(categoryNames) }

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
	return categoryNames[c]
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w %d", ErrUnknownCategory, uint8(c))
	}
	return []byte(categoryNames[c]), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Candidate is one nearby search hit
type Candidate struct {
	ID           string
	Name         string
	DistanceText string
	BearingText  string
	Address      string
}

// Detail is the full record for one candidate
type Detail struct {
	ID            string
	Name          string
	Description   *string
	Website       *string
	RatingRaw     *string
	Address       string
	Location      geo.Point
	WebURL        string
	Category      string
	Subcategories []string
	Groups        []string
}

// Accepted is a location that passed the acceptance predicate
type Accepted struct {
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	Website     *string      `json:"website,omitempty"`
	Rating      float64      `json:"rating"`
	Address     string       `json:"address"`
	Distance    geo.Distance `json:"-"`
}

// Accept projects a detail into an Accepted record
func Accept(d Detail, rating float64, dist geo.Distance) Accepted {
	return Accepted{
		Name:        d.Name,
		Description: d.Description,
		Website:     d.Website,
		Rating:      rating,
		Address:     d.Address,
		Distance:    dist,
	}
}
