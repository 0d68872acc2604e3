package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestAdaptChi_RoutesGroupsAndWith(t *testing.T) {
	m := chi.NewRouter()
	r := AdaptChi(m)

	var order []string
	tag := func(name string) func(stdhttp.Handler) stdhttp.Handler {
		return func(next stdhttp.Handler) stdhttp.Handler {
			return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				order = append(order, name)
				next.ServeHTTP(w, req)
			})
		}
	}

	r.Use(tag("root"))
	r.Route("/api", func(api Router) {
		api.Group(func(g Router) {
			g.Use(tag("group"))
			g.Get("/places/{id}", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				_, _ = w.Write([]byte(URLParam(req, "id")))
			})
		})
		api.With(tag("with")).Post("/discover", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
			w.WriteHeader(stdhttp.StatusAccepted)
		})
		api.Put("/x", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {})
		api.Delete("/x", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {})
	})

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/api/places/123", nil))
	if rec.Body.String() != "123" {
		t.Fatalf("body %q", rec.Body.String())
	}
	if len(order) != 2 || order[0] != "root" || order[1] != "group" {
		t.Fatalf("middleware order %v", order)
	}

	order = nil
	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPost, "/api/discover", nil))
	if rec.Code != stdhttp.StatusAccepted {
		t.Fatalf("status %d", rec.Code)
	}
	if len(order) != 2 || order[1] != "with" {
		t.Fatalf("With middleware not applied: %v", order)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/api/discover", nil))
	if rec.Code != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestMountProfiler(t *testing.T) {
	m := chi.NewRouter()
	MountProfiler(AdaptChi(m), "/debug", false)
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("disabled profiler should 404, got %d", rec.Code)
	}

	m = chi.NewRouter()
	MountProfiler(AdaptChi(m), "/debug", true)
	rec = httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("enabled profiler status %d", rec.Code)
	}
}

func newTestRouter() Router { return AdaptChi(chi.NewRouter()) }
