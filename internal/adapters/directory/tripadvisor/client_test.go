package tripadvisor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"tripmaker/internal/core/place"
	perr "tripmaker/internal/platform/errors"
	"tripmaker/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker/v2"
)

type harness struct {
	srv    *httptest.Server
	c      *Client
	hits   atomic.Int32
	sleeps []time.Duration
}

func newHarness(t *testing.T, h http.HandlerFunc, mut func(*Options)) *harness {
	t.Helper()
	hs := &harness{}
	hs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hs.hits.Add(1)
		h(w, r)
	}))
	t.Cleanup(hs.srv.Close)

	o := Options{
		APIKey:     "k3y",
		BaseURL:    hs.srv.URL,
		MaxRetries: 2,
		RetryBase:  10 * time.Millisecond,
		RPS:        1000,
		Burst:      1000,
	}
	if mut != nil {
		mut(&o)
	}
	hs.c = NewClient(o)
	hs.c.sleep = func(_ context.Context, d time.Duration) error {
		hs.sleeps = append(hs.sleeps, d)
		return nil
	}
	return hs
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestNearbySearch_QueryAndDecode(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	hs := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		writeJSON(w, 200, `{"data":[{"location_id":"123","name":"Tower","distance":"0.4","bearing":"north","address_obj":{"address_string":"1 Main St"}}]}`)
	}, nil)

	cat := place.CategoryAttractions
	unit := RadiusMi
	lang := LangFrenchCanada
	locs, err := hs.c.NearbySearch(context.Background(), NearbyParams{
		LatLong:    "48.8584,2.2945",
		Category:   &cat,
		Radius:     2.5,
		RadiusUnit: &unit,
		Language:   &lang,
	})
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/location/nearby_search" {
		t.Fatalf("path %q", gotPath)
	}
	want := []struct{ k, v string }{
		{"key", "k3y"},
		{"latLong", "48.8584,2.2945"},
		{"category", "attractions"},
		{"radius", "2.5"},
		{"radiusUnit", "mi"},
		{"language", "fr_CA"},
	}
	for _, kv := range want {
		if gotQuery[kv.k] != kv.v {
			t.Fatalf("query %s=%q want %q", kv.k, gotQuery[kv.k], kv.v)
		}
	}
	if _, ok := gotQuery["phone"]; ok {
		t.Fatal("empty phone should be omitted")
	}
	if len(locs) != 1 || locs[0].LocationID != "123" || locs[0].AddressObj.AddressString != "1 Main St" {
		t.Fatalf("locs %+v", locs)
	}
}

func TestNearbySearch_RequiresLatLong(t *testing.T) {
	hs := newHarness(t, func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, 200, `{"data":[]}`) }, nil)
	_, err := hs.c.NearbySearch(context.Background(), NearbyParams{})
	if !perr.IsCode(err, perr.ErrorCodeValidation) || hs.hits.Load() != 0 {
		t.Fatalf("err=%v hits=%d", err, hs.hits.Load())
	}
}

func TestDetails_ErrorInSuccessBody(t *testing.T) {
	hs := newHarness(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, `{"error":{"message":"Invalid key","type":"UnauthorizedException","code":401}}`)
	}, nil)
	_, err := hs.c.Details(context.Background(), "42", DetailsParams{})
	var ae *APIError
	if !errors.As(err, &ae) || ae.Code != 401 || ae.Type != "UnauthorizedException" {
		t.Fatalf("err %v", err)
	}
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("code %v", perr.CodeOf(err))
	}
	if hs.hits.Load() != 1 {
		t.Fatalf("api errors are not retried, hits=%d", hs.hits.Load())
	}
}

func TestDetails_NotFound(t *testing.T) {
	hs := newHarness(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 404, `{"error":{"message":"no such location","type":"NotFound","code":404}}`)
	}, nil)
	_, err := hs.c.Details(context.Background(), "7", DetailsParams{})
	if !IsNotFound(err) || !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err %v", err)
	}
	if e, ok := perr.As(err); !ok || e.Op() != "details" || e.Message() != "tripadvisor: no such location" {
		t.Fatalf("wrapped %#v", e)
	}
}

func TestDetails_InvalidID(t *testing.T) {
	hs := newHarness(t, func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, 200, `{}`) }, nil)
	for _, id := range []string{"", "12a", "../x"} {
		if _, err := hs.c.Details(context.Background(), id, DetailsParams{}); !perr.IsCode(err, perr.ErrorCodeValidation) {
			t.Fatalf("id %q: %v", id, err)
		}
	}
	if hs.hits.Load() != 0 {
		t.Fatalf("invalid ids reached the server")
	}
}

func TestDo_RetriesTransientThenSucceeds(t *testing.T) {
	var n atomic.Int32
	hs := newHarness(t, func(w http.ResponseWriter, _ *http.Request) {
		if n.Add(1) <= 2 {
			writeJSON(w, 503, `oops`)
			return
		}
		writeJSON(w, 200, `{"data":[]}`)
	}, nil)
	if _, err := hs.c.Reviews(context.Background(), "1", ReviewsParams{Limit: 5}); err != nil {
		t.Fatal(err)
	}
	if hs.hits.Load() != 3 {
		t.Fatalf("hits %d", hs.hits.Load())
	}
	if len(hs.sleeps) != 2 || hs.sleeps[0] != 10*time.Millisecond || hs.sleeps[1] != 20*time.Millisecond {
		t.Fatalf("sleeps %v", hs.sleeps)
	}
}

func TestDo_HonorsRetryAfter(t *testing.T) {
	var n atomic.Int32
	hs := newHarness(t, func(w http.ResponseWriter, _ *http.Request) {
		if n.Add(1) == 1 {
			w.Header().Set("Retry-After", "3")
			writeJSON(w, 429, `{}`)
			return
		}
		writeJSON(w, 200, `{"data":[]}`)
	}, nil)
	if _, err := hs.c.Photos(context.Background(), "1", PhotosParams{}); err != nil {
		t.Fatal(err)
	}
	if len(hs.sleeps) != 1 || hs.sleeps[0] != 3*time.Second {
		t.Fatalf("sleeps %v", hs.sleeps)
	}
}

func TestDo_RetriesExhausted(t *testing.T) {
	hs := newHarness(t, func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, 502, `bad gateway`) }, nil)
	_, err := hs.c.Details(context.Background(), "1", DetailsParams{})
	var se *StatusError
	if !errors.As(err, &se) || se.Status != 502 {
		t.Fatalf("err %v", err)
	}
	if hs.hits.Load() != 3 {
		t.Fatalf("hits %d want 1 + MaxRetries", hs.hits.Load())
	}
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	m := metrics.New()
	hs := newHarness(t, func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, 500, `boom`) }, func(o *Options) {
		o.MaxRetries = 0
		o.BreakerFailures = 2
		o.BreakerTimeout = time.Hour
		o.Metrics = m
	})

	for range 2 {
		if _, err := hs.c.Details(context.Background(), "1", DetailsParams{}); err == nil {
			t.Fatal("expected failure")
		}
	}
	_, err := hs.c.Details(context.Background(), "1", DetailsParams{})
	if !errors.Is(err, gobreaker.ErrOpenState) || !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err %v", err)
	}
	if hs.hits.Load() != 2 {
		t.Fatalf("open breaker reached the server, hits=%d", hs.hits.Load())
	}
	if hs.c.BreakerState() != "open" {
		t.Fatalf("breaker state %q", hs.c.BreakerState())
	}

	const want = `
# HELP tripmaker_directory_breaker_state Circuit breaker state (0=closed, 1=half-open, 2=open)
# TYPE tripmaker_directory_breaker_state gauge
tripmaker_directory_breaker_state{name="tripadvisor"} 2
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(want), "tripmaker_directory_breaker_state"); err != nil {
		t.Fatal(err)
	}
}

func TestBreaker_IgnoresClientErrors(t *testing.T) {
	hs := newHarness(t, func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, 400, `{"error":{"message":"bad","type":"x","code":400}}`) }, func(o *Options) {
		o.BreakerFailures = 1
	})
	for range 3 {
		_, _ = hs.c.Details(context.Background(), "1", DetailsParams{})
	}
	if hs.hits.Load() != 3 {
		t.Fatalf("client errors tripped the breaker, hits=%d", hs.hits.Load())
	}
	if hs.c.BreakerState() != "closed" {
		t.Fatalf("breaker state %q", hs.c.BreakerState())
	}
}

func TestDo_CanceledContext(t *testing.T) {
	hs := newHarness(t, func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, 200, `{"data":[]}`) }, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := hs.c.NearbySearch(ctx, NearbyParams{LatLong: "0,0"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err %v", err)
	}
	if hs.hits.Load() != 0 {
		t.Fatal("canceled call reached the server")
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewClient(Options{})
}

func TestBackoff_Capped(t *testing.T) {
	c := &Client{opts: Options{RetryBase: time.Second}}
	if got := c.backoff(10); got != maxBackoff {
		t.Fatalf("got %v", got)
	}
	if got := c.backoff(1); got != 2*time.Second {
		t.Fatalf("got %v", got)
	}
}

func TestRetryAfter(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h := http.Header{}
	if retryAfter(h, now) != 0 {
		t.Fatal("empty header")
	}
	h.Set("Retry-After", "7")
	if retryAfter(h, now) != 7*time.Second {
		t.Fatal("seconds form")
	}
	h.Set("Retry-After", now.Add(90*time.Second).Format(http.TimeFormat))
	if retryAfter(h, now) != 90*time.Second {
		t.Fatalf("date form %v", retryAfter(h, now))
	}
}
