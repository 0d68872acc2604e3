package middleware

import (
	"net/http"

	"tripmaker/internal/platform/logger"
	pnet "tripmaker/internal/platform/net"
)

// Correlate copies the chi request id into the logger context and mirrors it
// on the response. It must run after RequestID
func Correlate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := pnet.RequestID(r.Context())
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequest(r.Context(), id)))
	})
}
