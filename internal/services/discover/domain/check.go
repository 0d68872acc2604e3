package domain

import (
	"strconv"
	"strings"

	perr "tripmaker/internal/platform/errors"
)

// Field is a settings form field name
type Field string

const (
	FieldLatitude    Field = "latitude"
	FieldLongitude   Field = "longitude"
	FieldMaxDistance Field = "max_distance"
	FieldBias        Field = "closeness_bias"
	FieldMinRating   Field = "minimum_rating"
	FieldCount       Field = "number_to_generate"
)

type check struct {
	integer bool
	bound   func(Limits) Bound
}

func fixed(lo float64, hi *float64) func(Limits) Bound {
	return func(Limits) Bound { return Bound{Min: lo, Max: hi} }
}

func ptr(f float64) *float64 { return &f }

var checks = map[Field]check{
	FieldLatitude:    {bound: fixed(-90, ptr(90))},
	FieldLongitude:   {bound: fixed(-180, ptr(180))},
	FieldMaxDistance: {bound: fixed(0, nil)},
	FieldBias: {bound: func(l Limits) Bound {
		return Bound{Min: l.BiasMin, Max: ptr(l.BiasMax)}
	}},
	FieldMinRating: {bound: func(l Limits) Bound {
		return Bound{Min: 0, Max: ptr(l.MaxRating)}
	}},
	FieldCount: {integer: true, bound: func(l Limits) Bound {
		return Bound{Min: 0, Max: ptr(float64(l.MaxQuota))}
	}},
}

// Check validates a single form value the way the full request would
func (l Limits) Check(in CheckInput) (CheckOutput, error) {
	f := Field(strings.TrimSpace(in.Field))
	c, ok := checks[f]
	if !ok {
		return CheckOutput{}, perr.WithField(perr.Validationf("unknown field %q", in.Field), "field")
	}
	if in.Value == nil {
		return CheckOutput{}, perr.WithField(perr.Validationf("%s has no value", f), string(f))
	}
	raw := strings.TrimSpace(*in.Value)

	var v float64
	if c.integer {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return CheckOutput{}, perr.WithField(perr.Wrapf(err, perr.ErrorCodeValidation, "%s must be a whole number", f), string(f))
		}
		v = float64(n)
	} else {
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil || !finite(x) {
			return CheckOutput{}, perr.WithField(perr.Validationf("%s must be a number", f), string(f))
		}
		v = x
	}

	b := c.bound(l)
	if v < b.Min || (b.Max != nil && v > *b.Max) {
		return CheckOutput{}, perr.WithField(perr.Validationf("%s is out of range %s", f, b), string(f))
	}
	return CheckOutput{Field: string(f), Value: v}, nil
}

// String renders "[min,max]" or "[min,unbounded)"
func (b Bound) String() string {
	lo := strconv.FormatFloat(b.Min, 'g', -1, 64)
	if b.Max == nil {
		return "[" + lo + ",unbounded)"
	}
	return "[" + lo + "," + strconv.FormatFloat(*b.Max, 'g', -1, 64) + "]"
}
