package domain

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"tripmaker/internal/core/geo"
	"tripmaker/internal/core/place"
	perr "tripmaker/internal/platform/errors"

	"github.com/google/uuid"
)

func validReq() Request {
	return Request{
		Center:      geo.Point{Latitude: 10, Longitude: 20},
		MaxDistance: geo.Kilometers(5),
		Quota:       3,
		MinRating:   4,
		Bias:        1,
	}
}

func TestLimits_Validate(t *testing.T) {
	l := DefaultLimits()
	tests := []struct {
		name  string
		mut   func(*Request)
		field string
	}{
		{"ok", func(*Request) {}, ""},
		{"zero quota ok", func(r *Request) { r.Quota = 0 }, ""},
		{"zero distance ok", func(r *Request) { r.MaxDistance = geo.Kilometers(0) }, ""},
		{"bias at bounds ok", func(r *Request) { r.Bias = 5 }, ""},
		{"lat out of range", func(r *Request) { r.Center.Latitude = 91 }, "center"},
		{"negative distance", func(r *Request) { r.MaxDistance = geo.Kilometers(-1) }, "max_distance"},
		{"zero bias", func(r *Request) { r.Bias = 0 }, "closeness_bias"},
		{"bias below min", func(r *Request) { r.Bias = 0.1 }, "closeness_bias"},
		{"bias nan", func(r *Request) { r.Bias = math.NaN() }, "closeness_bias"},
		{"rating above 5", func(r *Request) { r.MinRating = 5.5 }, "min_rating"},
		{"negative rating", func(r *Request) { r.MinRating = -1 }, "min_rating"},
		{"quota above max", func(r *Request) { r.Quota = 16 }, "count"},
		{"negative quota", func(r *Request) { r.Quota = -1 }, "count"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validReq()
			tc.mut(&req)
			err := l.Validate(req)
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if e, _ := perr.As(err); e.Field() != tc.field {
				t.Fatalf("field %q want %q", e.Field(), tc.field)
			}
		})
	}
}

func TestLimits_Check(t *testing.T) {
	l := DefaultLimits()
	s := func(v string) *string { return &v }
	tests := []struct {
		field string
		value *string
		want  float64
		ok    bool
	}{
		{"latitude", s("45.5"), 45.5, true},
		{"latitude", s("-91"), 0, false},
		{"longitude", s(" 180 "), 180, true},
		{"max_distance", s("0"), 0, true},
		{"max_distance", s("-0.1"), 0, false},
		{"max_distance", s("1e9"), 1e9, true},
		{"closeness_bias", s("0.2"), 0.2, true},
		{"closeness_bias", s("5.01"), 0, false},
		{"minimum_rating", s("5"), 5, true},
		{"minimum_rating", s("abc"), 0, false},
		{"number_to_generate", s("15"), 15, true},
		{"number_to_generate", s("16"), 0, false},
		{"number_to_generate", s("2.5"), 0, false},
		{"number_to_generate", s("-1"), 0, false},
		{"number_to_generate", nil, 0, false},
		{"colour", s("1"), 0, false},
	}
	for _, tc := range tests {
		got, err := l.Check(CheckInput{Field: tc.field, Value: tc.value})
		if tc.ok {
			if err != nil || got.Value != tc.want || got.Field != tc.field {
				t.Fatalf("Check(%s)=%+v,%v want %v", tc.field, got, err, tc.want)
			}
			continue
		}
		if !IsValidation(err) {
			t.Fatalf("Check(%s,%v): expected validation error, got %v", tc.field, tc.value, err)
		}
	}
}

func TestLimits_CheckUsesConfiguredBounds(t *testing.T) {
	l := Limits{MaxQuota: 3, BiasMin: 1, BiasMax: 2, MaxRating: 5}
	v := "4"
	if _, err := l.Check(CheckInput{Field: "number_to_generate", Value: &v}); !IsValidation(err) {
		t.Fatalf("expected out of range, got %v", err)
	}
	v = "1.5"
	if _, err := l.Check(CheckInput{Field: "closeness_bias", Value: &v}); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverInput_Defaults(t *testing.T) {
	req, unit, err := DiscoverInput{}.Request()
	if err != nil {
		t.Fatal(err)
	}
	if unit != geo.UnitMile || req.Quota != 5 || req.Bias != 1 || req.MinRating != 0 {
		t.Fatalf("got %+v %v", req, unit)
	}
	if math.Abs(req.MaxDistance.Km()-16.09344) > 1e-9 {
		t.Fatalf("max distance %v", req.MaxDistance)
	}
	if req.Center != (geo.Point{}) {
		t.Fatalf("center %v", req.Center)
	}
}

func TestDiscoverInput_Overrides(t *testing.T) {
	lat, lon, d, r, b, n := 1.0, 2.0, 3.0, 4.0, 0.5, 0
	req, unit, err := DiscoverInput{
		Latitude: &lat, Longitude: &lon, MaxDistance: &d, DistanceUnit: "Kilometers",
		Count: &n, MinRating: &r, Bias: &b,
	}.Request()
	if err != nil {
		t.Fatal(err)
	}
	want := Request{Center: geo.Point{Latitude: 1, Longitude: 2}, MaxDistance: geo.Kilometers(3), Quota: 0, MinRating: 4, Bias: 0.5}
	if req != want || unit != geo.UnitKilometer {
		t.Fatalf("got %+v %v", req, unit)
	}
	if _, _, err := (DiscoverInput{DistanceUnit: "parsec"}).Request(); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPresent_RendersInRequestUnit(t *testing.T) {
	id := uuid.New()
	req := Request{MaxDistance: geo.Miles(10)}
	out := Present(req, geo.UnitMile, Result{
		RunID:     id,
		Locations: []place.Accepted{{Name: "A", Rating: 4.5, Distance: geo.Miles(2)}},
	})
	if out.RunID != id.String() || out.MaxDistance != (Measure{Value: 10, Unit: "mi"}) {
		t.Fatalf("got %+v", out)
	}
	if len(out.Locations) != 1 || math.Abs(out.Locations[0].Distance.Value-2) > 1e-9 || out.Locations[0].Distance.Unit != "mi" {
		t.Fatalf("got %+v", out.Locations)
	}
	if empty := Present(req, geo.UnitKilometer, Result{}); empty.Locations == nil {
		t.Fatal("locations must be a non nil slice")
	}
}

func TestDefaults(t *testing.T) {
	d := Defaults(DefaultLimits())
	if d.DistanceUnit != "mi" || d.Count != 5 || len(d.Units) != 7 {
		t.Fatalf("got %+v", d)
	}
	b := d.Bounds["closeness_bias"]
	if b.Min != 0.2 || b.Max == nil || *b.Max != 5 {
		t.Fatalf("bias bound %+v", b)
	}
	if d.Bounds["max_distance"].Max != nil {
		t.Fatal("max_distance has no upper bound")
	}
	if len(d.Bounds) != 6 {
		t.Fatalf("got %d bounds", len(d.Bounds))
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want Status
	}{
		{nil, StatusOK},
		{perr.Validationf("x"), StatusInvalid},
		{perr.Exhaustedf("x"), StatusExhausted},
		{perr.Wrap(context.Canceled, perr.ErrorCodeCanceled, "x"), StatusCanceled},
		{perr.Upstreamf("x"), StatusUpstream},
		{errors.New("plain"), StatusUpstream},
	}
	for _, tc := range tests {
		if got := StatusOf(tc.err); got != tc.want {
			t.Fatalf("StatusOf(%v)=%s want %s", tc.err, got, tc.want)
		}
	}
}

func TestRunOutOf(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := Run{ID: uuid.New(), StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond), Request: validReq(), Status: StatusOK}
	out := RunOutOf(r)
	if out.DurationMs != 1500 || out.MaxDistanceKm != 5 || out.Quota != 3 {
		t.Fatalf("got %+v", out)
	}
}

func TestBound_String(t *testing.T) {
	if s := (Bound{Min: 0}).String(); s != "[0,unbounded)" {
		t.Fatalf("got %q", s)
	}
	hi := 5.0
	if s := (Bound{Min: 0.2, Max: &hi}).String(); s != "[0.2,5]" {
		t.Fatalf("got %q", s)
	}
}
