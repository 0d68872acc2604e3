package module

import (
	"strings"
	"time"

	"tripmaker/internal/core/sampler"
	"tripmaker/internal/platform/config"
	"tripmaker/internal/platform/net/middleware"
	"tripmaker/internal/services/discover/domain"
	"tripmaker/internal/services/discover/service"
)

// Options holds configuration settings for the discover module
type Options struct {
	Service   service.Config
	RateLimit middleware.RateLimitOptions

	// LedgerTimeout bounds every ledger statement
	LedgerTimeout time.Duration
}

// FromConfig reads DISCOVER_* and the CORE_API_ rate limit keys
func FromConfig(cfg config.Conf) Options {
	def := service.DefaultConfig()
	lim := domain.DefaultLimits()
	dc := cfg.Prefix("DISCOVER_")

	angles, err := sampler.ParseAngleRange(strings.ToLower(dc.MayEnum("ANGLE_RANGE", "full", "full", "legacy")))
	if err != nil {
		panic("config: DISCOVER_ANGLE_RANGE: " + err.Error())
	}
	lim.MaxQuota = dc.MayInt("MAX_QUOTA", lim.MaxQuota)
	lim.BiasMin = dc.MayFloat64("BIAS_MIN", lim.BiasMin)
	lim.BiasMax = dc.MayFloat64("BIAS_MAX", lim.BiasMax)

	api := cfg.Prefix("CORE_API_")
	return Options{
		Service: service.Config{
			MaxAttempts:       dc.MayInt("MAX_ATTEMPTS", def.MaxAttempts),
			TimeBudget:        dc.MayDuration("TIME_BUDGET", def.TimeBudget),
			DetailConcurrency: dc.MayInt("DETAIL_CONCURRENCY", def.DetailConcurrency),
			AngleRange:        angles,
			Limits:            lim,
		},
		RateLimit: middleware.RateLimitOptions{
			Requests:   api.MayInt("RATE_LIMIT", 60),
			Window:     api.MayDuration("RATE_WINDOW", time.Minute),
			TrustProxy: api.MayBool("TRUST_PROXY", false),
		},
		LedgerTimeout: dc.MayDuration("LEDGER_TIMEOUT", 3*time.Second),
	}
}
