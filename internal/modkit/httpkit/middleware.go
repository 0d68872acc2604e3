package httpkit

import (
	"net/http"
	"time"

	"tripmaker/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// CORSOrigins defaults to "*"
	CORSOrigins []string

	// SlowRequest marks access log lines slow=true above this duration
	SlowRequest time.Duration

	// Observe receives every finished request, typically metrics.HTTPRequest
	Observe func(method, route string, status int, elapsed time.Duration)
}

// CommonStack is the baseline middleware for the versioned API
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	slow := o.SlowRequest
	if slow <= 0 {
		slow = 2 * time.Second
	}
	stack := middleware.Defaults()
	return append(stack,
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow:    slow,
			Skip:    []string{"/api/v1/meta/health"},
			Observe: o.Observe,
		}),
		middleware.StripSlashes(),
	)
}
