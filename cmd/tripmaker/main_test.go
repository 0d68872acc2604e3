package main

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"tripmaker/internal/core/geo"
	"tripmaker/internal/core/place"
	"tripmaker/internal/platform/config"
	"tripmaker/internal/platform/testkit"
	"tripmaker/internal/services/discover/domain"

	json "github.com/goccy/go-json"
)

// goodDir answers every search with one fresh candidate sitting on the center
type goodDir struct {
	center geo.Point
	rating string
	n      atomic.Int64
}

func (d *goodDir) NearbySearch(context.Context, geo.Point, geo.Distance, place.Category) ([]place.Candidate, error) {
	id := strconv.FormatInt(d.n.Add(1), 10)
	return []place.Candidate{{ID: id, Name: "place " + id}}, nil
}

func (d *goodDir) Details(_ context.Context, id string) (place.Detail, error) {
	r := d.rating
	return place.Detail{ID: id, Name: "place " + id, RatingRaw: &r, Address: "1 Main St", Location: d.center}, nil
}

func withDir(t *testing.T, d domain.Directory) {
	testkit.Serial(t)
	testkit.Swap(t, &directoryFor, func(config.Conf) domain.Directory { return d })
}

func TestRun_Table(t *testing.T) {
	withDir(t, &goodDir{center: geo.Point{Latitude: 10, Longitude: 20}, rating: "4.5"})
	var out, errb bytes.Buffer
	code := run(context.Background(), []string{"-lat", "10", "-lon", "20", "-count", "2", "-seed", "7"}, &out, &errb)
	if code != exitOK {
		t.Fatalf("code %d stderr %s", code, errb.String())
	}
	testkit.MustContain(t, out.String(), "NAME")
	testkit.MustContain(t, out.String(), "place 1")
	testkit.MustContain(t, out.String(), "place 2")
	testkit.MustContain(t, out.String(), "2 places within 10 mi of 10,20")
}

func TestRun_JSONInRequestUnit(t *testing.T) {
	withDir(t, &goodDir{rating: "5.0"})
	var out, errb bytes.Buffer
	code := run(context.Background(), []string{"-json", "-distance", "2", "-unit", "km", "-count", "1", "-rating", "4"}, &out, &errb)
	if code != exitOK {
		t.Fatalf("code %d stderr %s", code, errb.String())
	}
	var got domain.DiscoverOutput
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %s: %v", out.String(), err)
	}
	if len(got.Locations) != 1 || got.MaxDistance != (domain.Measure{Value: 2, Unit: "km"}) || got.Locations[0].Rating != 5 {
		t.Fatalf("got %+v", got)
	}
}

func TestRun_Exhausted(t *testing.T) {
	withDir(t, &goodDir{rating: "2.0"})
	var out, errb bytes.Buffer
	code := run(context.Background(), []string{"-rating", "4", "-attempts", "3", "-count", "1"}, &out, &errb)
	if code != exitExhausted {
		t.Fatalf("code %d stderr %s", code, errb.String())
	}
	testkit.MustContain(t, errb.String(), "exhausted")
}

func TestRun_Usage(t *testing.T) {
	withDir(t, &goodDir{rating: "5"})
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"unknown flag", []string{"-radius", "3"}, "flag provided but not defined"},
		{"latitude range", []string{"-lat", "91"}, "latitude"},
		{"bad unit", []string{"-unit", "parsec"}, "distance_unit"},
		{"bias", []string{"-bias", "0"}, "closeness_bias"},
		{"rating", []string{"-rating", "6"}, "min_rating"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out, errb bytes.Buffer
			if code := run(context.Background(), tc.args, &out, &errb); code != exitUsage {
				t.Fatalf("code %d stderr %s", code, errb.String())
			}
			testkit.MustContain(t, errb.String(), tc.msg)
		})
	}
}

func TestRun_MissingAPIKey(t *testing.T) {
	testkit.Serial(t)
	t.Setenv("TRIPADVISOR_API_KEY", "")
	var out, errb bytes.Buffer
	if code := run(context.Background(), nil, &out, &errb); code != exitUsage {
		t.Fatalf("code %d", code)
	}
}

func TestRun_Version(t *testing.T) {
	var out, errb bytes.Buffer
	if code := run(context.Background(), []string{"-version"}, &out, &errb); code != exitOK {
		t.Fatalf("code %d", code)
	}
	if !strings.Contains(out.String(), `"service":"tripmaker"`) {
		t.Fatalf("got %s", out.String())
	}
}
