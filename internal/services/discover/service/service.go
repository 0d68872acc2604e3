// Package service runs the discovery loop: sample a point, search around it,
// walk the candidates and keep the first one that qualifies
package service

import (
	"context"
	"errors"
	"time"

	"tripmaker/internal/core/place"
	"tripmaker/internal/core/sampler"
	perr "tripmaker/internal/platform/errors"
	"tripmaker/internal/platform/logger"
	"tripmaker/internal/platform/metrics"
	"tripmaker/internal/services/discover/domain"

	"github.com/google/uuid"
)

// Config for the discovery service
type Config struct {
	MaxAttempts       int           // consecutive misses allowed, 0 = unbounded
	TimeBudget        time.Duration // 0 = none
	DetailConcurrency int           // 1 = strictly sequential
	AngleRange        sampler.AngleRange
	Limits            domain.Limits
}

// DefaultConfig is the configuration used when nothing is set
func DefaultConfig() Config {
	return Config{
		MaxAttempts:       25,
		TimeBudget:        60 * time.Second,
		DetailConcurrency: 4,
		AngleRange:        sampler.FullCircle,
		Limits:            domain.DefaultLimits(),
	}
}

// SourceFactory hands each run its own random source
type SourceFactory func() sampler.RandomSource

// Service defines the service contract for discovery
type Service interface{ domain.ServicePort }

// Svc implements Service
type Svc struct {
	Dir     domain.Directory
	Ledger  domain.Ledger
	Sources SourceFactory
	Metrics *metrics.Metrics
	Cfg     Config

	sampler sampler.Sampler
	now     func() time.Time
	newID   func() uuid.UUID
}

// Option tunes a Svc
type Option func(*Svc)

// WithLedger records every run in l
func WithLedger(l domain.Ledger) Option { return func(s *Svc) { s.Ledger = l } }

// WithMetrics records run, attempt and candidate metrics
func WithMetrics(m *metrics.Metrics) Option { return func(s *Svc) { s.Metrics = m } }

// WithSources replaces the per run random source
func WithSources(f SourceFactory) Option { return func(s *Svc) { s.Sources = f } }

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option { return func(s *Svc) { s.now = now } }

// New constructs a discovery service over dir
func New(dir domain.Directory, cfg Config, opts ...Option) *Svc {
	if dir == nil {
		panic("discover.Service requires a non nil Directory")
	}
	if cfg.DetailConcurrency <= 0 {
		cfg.DetailConcurrency = 1
	}
	if cfg.MaxAttempts < 0 {
		cfg.MaxAttempts = 0
	}
	if cfg.TimeBudget < 0 {
		cfg.TimeBudget = 0
	}
	if cfg.Limits == (domain.Limits{}) {
		cfg.Limits = domain.DefaultLimits()
	}
	s := &Svc{
		Dir:     dir,
		Cfg:     cfg,
		sampler: sampler.New(sampler.WithAngleRange(cfg.AngleRange)),
		now:     time.Now,
		newID:   uuid.New,
	}
	for _, o := range opts {
		if o != nil {
			o(s)
		}
	}
	if s.Sources == nil {
		s.Sources = func() sampler.RandomSource { return sampler.NewRandomSource() }
	}
	if s.Ledger == nil {
		s.Ledger = NopLedger{}
	}
	return s
}

// Limits returns the request bounds this service enforces
func (s *Svc) Limits() domain.Limits { return s.Cfg.Limits }

// Discover returns exactly req.Quota accepted locations in acceptance order
func (s *Svc) Discover(ctx context.Context, req domain.Request) ([]place.Accepted, error) {
	res, err := s.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	return res.Locations, nil
}

// Run is Discover plus the run id the ledger keys on
func (s *Svc) Run(ctx context.Context, req domain.Request) (domain.Result, error) {
	run := domain.Run{ID: s.newID(), StartedAt: s.now(), Request: req}
	ctx = logger.WithRun(ctx, run.ID.String())
	log := logger.C(ctx).With().Str("component", "discover").Logger()

	locs, err := s.run(ctx, req, &run, &log)

	run.FinishedAt = s.now()
	run.Status = domain.StatusOf(err)
	if err != nil {
		run.Error = err.Error()
	}
	s.finish(ctx, run, &log)

	if err != nil {
		return domain.Result{RunID: run.ID}, err
	}
	return domain.Result{RunID: run.ID, Locations: locs}, nil
}

// GetRun reads a ledger record
func (s *Svc) GetRun(ctx context.Context, id uuid.UUID) (domain.Run, error) {
	return s.Ledger.GetRun(ctx, id)
}

func (s *Svc) run(ctx context.Context, req domain.Request, run *domain.Run, log *logger.Logger) ([]place.Accepted, error) {
	if err := s.Cfg.Limits.Validate(req); err != nil {
		return nil, err
	}
	if req.Quota == 0 {
		return []place.Accepted{}, nil
	}

	parent := ctx
	if s.Cfg.TimeBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, s.Cfg.TimeBudget, errBudgetSpent)
		defer cancel()
	}

	l := &loop{svc: s, req: req, rng: s.Sources(), log: log}
	out, err := l.drive(ctx)
	run.Attempts = l.attempts
	run.Accepted = len(out)
	if err != nil {
		return nil, s.classify(parent, ctx, err, len(out), req.Quota, l.attempts)
	}
	return out, nil
}

var errBudgetSpent = errors.New("discover: time budget spent")

// classify turns context failures into Canceled when the caller gave up and
// Exhausted when the run's own budget ran out, other errors pass through
func (s *Svc) classify(parent, ctx context.Context, err error, accepted, quota, attempts int) error {
	if !isCtxErr(err) || perr.CodeOf(err) != perr.ErrorCodeUnknown {
		return err
	}
	if pe := parent.Err(); pe != nil || callerBound(parent, ctx) {
		cause := pe
		if cause == nil {
			cause = err
		}
		return perr.Wrapf(cause, perr.ErrorCodeCanceled, "discovery canceled: accepted %d of %d after %d sampled points", accepted, quota, attempts)
	}
	cause := context.Cause(ctx)
	if cause == nil {
		cause = err
	}
	return perr.Wrapf(cause, perr.ErrorCodeExhausted, "discovery time budget spent: accepted %d of %d after %d sampled points", accepted, quota, attempts)
}

func isCtxErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// callerBound reports that the caller's deadline, not the budget, is the one in force
func callerBound(parent, ctx context.Context) bool {
	pd, ok := parent.Deadline()
	if !ok {
		return false
	}
	rd, _ := ctx.Deadline()
	return !pd.After(rd)
}

// finish logs the summary line, records metrics and writes the ledger
func (s *Svc) finish(ctx context.Context, run domain.Run, log *logger.Logger) {
	elapsed := run.Duration()
	s.Metrics.Run(string(run.Status), elapsed)

	ev := log.Info()
	if run.Status != domain.StatusOK {
		ev = log.Warn().Str("error", run.Error)
	}
	ev.Int("attempts", run.Attempts).
		Int("accepted", run.Accepted).
		Int("quota", run.Request.Quota).
		Dur("duration", elapsed).
		Str("outcome", string(run.Status)).
		Msg("discovery run finished")

	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ledgerTimeout)
	defer cancel()
	if err := s.Ledger.InsertRun(wctx, run); err != nil {
		log.Warn().Err(err).Msg("discovery run not recorded")
	}
}

const ledgerTimeout = 5 * time.Second

// NopLedger drops every run, GetRun is always NotFound
type NopLedger struct{}

// InsertRun implements domain.Ledger
func (NopLedger) InsertRun(context.Context, domain.Run) error { return nil }

// GetRun implements domain.Ledger
func (NopLedger) GetRun(context.Context, uuid.UUID) (domain.Run, error) {
	return domain.Run{}, perr.NotFoundf("run ledger is disabled")
}
