package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tripmaker/internal/platform/net/middleware"
	"tripmaker/internal/platform/testkit"
)

func TestRecoverJSON_PanicBecomesEnvelope(t *testing.T) {
	h := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "rid-9")
	rr := httptest.NewRecorder()
	testkit.MustNotPanic(t, func() {
		chain(h, middleware.RequestID(), middleware.RecoverJSON).ServeHTTP(rr, req)
	})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", rr.Code)
	}
	var env struct {
		Kind      string `json:"kind"`
		Error     string `json:"error"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Kind != "panic" || env.RequestID != "rid-9" || env.Error != "internal error" {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestRecoverJSON_AbortHandlerRepanics(t *testing.T) {
	h := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic(http.ErrAbortHandler) })
	testkit.MustPanic(t, func() {
		middleware.RecoverJSON(h).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
