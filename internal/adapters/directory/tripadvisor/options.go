package tripadvisor

import (
	"tripmaker/internal/platform/config"
	"tripmaker/internal/platform/metrics"
)

// DirectoryDefaults are the language and currency the Directory adapter sends
type DirectoryDefaults struct {
	Language Language
	Currency string
}

// FromConfig reads TRIPADVISOR_* keys, c must already carry the prefix.
// API_KEY is required.
func FromConfig(c config.Conf, m *metrics.Metrics) (Options, DirectoryDefaults) {
	o := Options{
		APIKey:          c.MustString("API_KEY"),
		BaseURL:         c.MayString("BASE_URL", baseURLDefault),
		Timeout:         c.MayDuration("TIMEOUT", defaultTimeout),
		MaxRetries:      c.MayInt("MAX_RETRIES", defaultMaxRetry),
		RetryBase:       c.MayDuration("RETRY_BASE", defaultRetryBase),
		RPS:             c.MayFloat64("RPS", defaultRPS),
		Burst:           c.MayInt("BURST", defaultBurst),
		BreakerFailures: uint32(max(c.MayInt("BREAKER_FAILURES", defaultFailures), 1)),
		BreakerTimeout:  c.MayDuration("BREAKER_TIMEOUT", defaultOpenFor),
		Metrics:         m,
	}

	lang, err := ParseLanguage(c.MayString("LANGUAGE", "en"))
	if err != nil {
		panic("config: TRIPADVISOR_LANGUAGE: " + err.Error())
	}
	return o, DirectoryDefaults{
		Language: lang,
		Currency: c.MayString("CURRENCY", "USD"),
	}
}
