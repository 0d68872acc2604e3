package httpkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	phttp "tripmaker/internal/platform/net/http"
	"tripmaker/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func newRouter() (*chi.Mux, Router) {
	m := chi.NewRouter()
	return m, phttp.AdaptChi(m)
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMountAPIV1_AppliesStack(t *testing.T) {
	m, r := newRouter()
	hit := false
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			hit = true
			next.ServeHTTP(w, req)
		})
	}
	MountAPIV1(r, []func(http.Handler) http.Handler{mw}, func(api Router) {
		Get(api, "/ping", func(*http.Request) (any, error) { return "pong", nil })
	})

	rec := serve(m, http.MethodGet, "/api/v1/ping", "")
	if rec.Code != http.StatusOK || !hit {
		t.Fatalf("status %d hit %v", rec.Code, hit)
	}
	testkit.MustContain(t, rec.Body.String(), `"data":"pong"`)
}

func TestMountAPI_TrimsVersion(t *testing.T) {
	m, r := newRouter()
	MountAPI(r, "/v2/", nil, func(api Router) {
		Get(api, "/x", func(*http.Request) (any, error) { return 1, nil })
	})
	if rec := serve(m, http.MethodGet, "/api/v2/x", ""); rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestMountUnder_EmptyPrefixGroups(t *testing.T) {
	m, r := newRouter()
	MountUnder(r, "", nil, func(sub Router) {
		Get(sub, "/root", func(*http.Request) (any, error) { return nil, nil })
	})
	if rec := serve(m, http.MethodGet, "/root", ""); rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type echoIn struct {
	Name string `json:"name" validate:"required"`
}

func TestSugar(t *testing.T) {
	m, r := newRouter()
	PostJSON(r, "/echo", func(_ *http.Request, in echoIn) (any, error) { return Created(in.Name), nil })
	PutJSON(r, "/echo", func(_ *http.Request, in echoIn) (any, error) { return in.Name, nil })
	Post(r, "/touch", func(*http.Request) (any, error) { return NoContent(), nil })
	Delete(r, "/items/{id}", func(req *http.Request) (any, error) { return URLParam(req, "id"), nil })

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		want   string
	}{
		{"post created", http.MethodPost, "/echo", `{"name":"eiffel"}`, http.StatusCreated, `"data":"eiffel"`},
		{"post invalid", http.MethodPost, "/echo", `{}`, http.StatusBadRequest, `"kind":"validation"`},
		{"put ok", http.MethodPut, "/echo", `{"name":"x"}`, http.StatusOK, `"data":"x"`},
		{"post no body", http.MethodPost, "/touch", "", http.StatusNoContent, ""},
		{"delete param", http.MethodDelete, "/items/42", "", http.StatusOK, `"data":"42"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(m, tc.method, tc.path, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
			}
			if tc.want != "" {
				testkit.MustContain(t, rec.Body.String(), tc.want)
			}
		})
	}
}

func TestHandleAndError(t *testing.T) {
	m, r := newRouter()
	r.Get("/h", Handle(func(*http.Request) Response { return OK("fine") }))
	r.Get("/e", Handle(func(*http.Request) Response { return Error(errBoom{}) }))
	if rec := serve(m, http.MethodGet, "/h", ""); rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if rec := serve(m, http.MethodGet, "/e", ""); rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=7", nil)
	n, err := QueryInt(req, "limit", 5, 1, 20)
	if err != nil || n != 7 {
		t.Fatalf("got %d %v", n, err)
	}
}

func TestCommonStack(t *testing.T) {
	var seen []string
	stack := CommonStack(StackOptions{Observe: func(method, route string, status int, _ time.Duration) {
		seen = append(seen, method+" "+route)
	}})
	m, r := newRouter()
	MountAPIV1(r, stack, func(api Router) {
		Get(api, "/meta/health", func(*http.Request) (any, error) { return "ok", nil })
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/meta/health", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing request id header")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("cors header %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
	if len(seen) != 1 || seen[0] != "GET /api/v1/meta/health" {
		t.Fatalf("observe saw %v", seen)
	}
}
