package service

import (
	"context"

	"tripmaker/internal/core/accept"
	"tripmaker/internal/core/place"
	"tripmaker/internal/core/sampler"
	perr "tripmaker/internal/platform/errors"
	"tripmaker/internal/platform/logger"
	"tripmaker/internal/services/discover/domain"

	"golang.org/x/sync/errgroup"
)

// loop is the state of one run, owned by a single goroutine
type loop struct {
	svc *Svc
	req domain.Request
	rng sampler.RandomSource
	log *logger.Logger

	attempts int
	misses   int
}

// drive samples until the quota is met, the attempt budget is spent or ctx ends.
// The accepted prefix is returned alongside any error.
func (l *loop) drive(ctx context.Context) ([]place.Accepted, error) {
	out := make([]place.Accepted, 0, l.req.Quota)
	radius := l.req.MaxDistance.Scale(2)
	budget := l.svc.Cfg.MaxAttempts

	for len(out) < l.req.Quota {
		if budget > 0 && l.misses >= budget {
			return out, perr.Exhaustedf("discovery exhausted: accepted %d of %d after %d sampled points, %d in a row without a match",
				len(out), l.req.Quota, l.attempts, l.misses)
		}
		if err := ctx.Err(); err != nil {
			return out, err
		}

		point, err := l.svc.sampler.Sample(l.req.Center, l.req.MaxDistance, l.req.Bias, l.rng)
		if err != nil {
			return out, perr.Wrap(err, perr.ErrorCodeValidation, "sampling failed")
		}
		l.attempts++
		l.svc.Metrics.Attempt()

		cands, err := l.svc.Dir.NearbySearch(ctx, point, radius, place.CategoryAttractions)
		if err != nil {
			if ctx.Err() != nil || isCtxErr(err) {
				return out, err
			}
			return out, perr.WithOp(perr.Wrap(err, perr.ErrorCodeUpstream, "nearby search failed"), "nearby_search")
		}
		l.log.Debug().
			Int("attempt", l.attempts).
			Str("point", point.String()).
			Int("candidates", len(cands)).
			Msg("sampled point searched")

		hit, ok, err := l.scan(ctx, cands)
		if err != nil {
			return out, err
		}
		if !ok {
			l.misses++
			continue
		}
		l.misses = 0
		out = append(out, hit)
		l.log.Info().
			Int("attempt", l.attempts).
			Str("name", hit.Name).
			Float64("rating", hit.Rating).
			Float64("distance_km", hit.Distance.Km()).
			Int("accepted", len(out)).
			Msg("location accepted")
	}
	return out, nil
}

type fetched struct {
	detail place.Detail
	err    error
}

// scan walks one search batch in order, DetailConcurrency at a time.
// Each window is fetched concurrently but judged in order, the first
// acceptance cancels the rest of its window. Nothing carries over to the
// next batch, a place seen at an earlier point is judged again.
func (l *loop) scan(ctx context.Context, cands []place.Candidate) (place.Accepted, bool, error) {
	size := l.svc.Cfg.DetailConcurrency
	for start := 0; start < len(cands); start += size {
		if err := ctx.Err(); err != nil {
			return place.Accepted{}, false, err
		}
		window := cands[start:min(start+size, len(cands))]
		hit, ok, err := l.window(ctx, window)
		if err != nil || ok {
			return hit, ok, err
		}
	}
	return place.Accepted{}, false, nil
}

func (l *loop) window(ctx context.Context, window []place.Candidate) (place.Accepted, bool, error) {
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// the group only joins the fetches, results travel through res and done
	// and an acceptance stops the stragglers through cancel
	res := make([]fetched, len(window))
	done := make([]chan struct{}, len(window))
	var g errgroup.Group
	for i, c := range window {
		done[i] = make(chan struct{})
		g.Go(func() error {
			defer close(done[i])
			if err := wctx.Err(); err != nil {
				res[i].err = err
				return nil
			}
			res[i].detail, res[i].err = l.svc.Dir.Details(wctx, c.ID)
			return nil
		})
	}
	defer func() { _ = g.Wait() }()

	for i, c := range window {
		<-done[i]
		if err := ctx.Err(); err != nil {
			cancel()
			return place.Accepted{}, false, err
		}
		if hit, ok := l.judge(c, res[i]); ok {
			cancel()
			return hit, true, nil
		}
	}
	return place.Accepted{}, false, nil
}

// judge applies the acceptance predicate, detail failures are logged and skipped
func (l *loop) judge(c place.Candidate, f fetched) (place.Accepted, bool) {
	if f.err != nil {
		l.svc.Metrics.Candidate("detail_error")
		l.log.Warn().
			Err(f.err).
			Int("attempt", l.attempts).
			Str("candidate_id", c.ID).
			Msg("candidate detail failed, skipping")
		return place.Accepted{}, false
	}
	v := accept.Verdict(f.detail, l.req.Center, l.req.MaxDistance, l.req.MinRating)
	l.svc.Metrics.Candidate(string(v.Reason))
	if !v.Accepted {
		l.log.Debug().
			Int("attempt", l.attempts).
			Str("candidate_id", c.ID).
			Float64("rating", v.Rating).
			Float64("distance_km", v.Distance.Km()).
			Str("reason", string(v.Reason)).
			Msg("candidate rejected")
		return place.Accepted{}, false
	}
	return place.Accept(f.detail, v.Rating, v.Distance), true
}
