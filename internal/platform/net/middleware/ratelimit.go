package middleware

import (
	"net/http"
	"strconv"
	"time"

	perr "tripmaker/internal/platform/errors"
	pnet "tripmaker/internal/platform/net"

	"github.com/go-chi/httprate"
	json "github.com/goccy/go-json"
)

// RateLimitOptions configures per client request limiting
type RateLimitOptions struct {
	// Requests per Window, zero or negative disables the limiter
	Requests int
	Window   time.Duration
	// TrustProxy keys on X-Forwarded-For and X-Real-IP instead of RemoteAddr
	TrustProxy bool
}

// RateLimitByIP limits each client IP to o.Requests per o.Window and answers
// excess requests with a JSON 429 envelope
func RateLimitByIP(o RateLimitOptions) func(http.Handler) http.Handler {
	if o.Requests <= 0 || o.Window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	key := httprate.KeyByIP
	if o.TrustProxy {
		key = httprate.KeyByRealIP
	}
	retry := strconv.Itoa(int(o.Window.Seconds()))

	return httprate.Limit(
		o.Requests,
		o.Window,
		httprate.WithKeyFuncs(key),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			status, env := pnet.Failure(
				perr.New(perr.ErrorCodeTooManyRequests, "rate limit exceeded"),
				pnet.RequestID(r.Context()),
			)
			if w.Header().Get("Retry-After") == "" {
				w.Header().Set("Retry-After", retry)
			}
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(env)
		}),
	)
}
