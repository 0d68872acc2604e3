package repokit

import (
	"context"
	"fmt"
	"time"
)

type guarder interface {
	Guard(context.Context) error
}

// Pinger is satisfied by store adapters
type Pinger interface {
	Ping(context.Context) error
}

// PingWithin pings p with a deadline of d unless ctx already carries one
func PingWithin(ctx context.Context, p Pinger, d time.Duration) error {
	if p == nil {
		return fmt.Errorf("repokit: nil dependency")
	}
	if _, ok := ctx.Deadline(); !ok && d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	return p.Ping(ctx)
}

// MustGuard runs st.Guard and panics on error, for process startup
func MustGuard(ctx context.Context, st guarder) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
