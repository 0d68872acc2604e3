package store

import (
	"time"

	"tripmaker/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string
	PG      PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int           // ping attempts before Open gives up
	PingTimeout    time.Duration // per attempt
}

// ConfigFrom reads PGSQL_* keys under c, postgres is enabled when PGSQL_DBURL is set
func ConfigFrom(c config.Conf, appName string) Config {
	pc := c.Prefix("PGSQL_")
	url := pc.MayString("DBURL", "")
	return Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:        pc.MayBool("ENABLED", url != ""),
			URL:            url,
			MaxConns:       int32(pc.MayInt("MAX_CONNS", 8)),
			LogSQL:         pc.MayBool("LOG_SQL", false),
			SlowQueryMs:    pc.MayInt("SLOW_MS", 250),
			ConnectRetries: pc.MayInt("CONNECT_RETRIES", 6),
			PingTimeout:    pc.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
	}
}
