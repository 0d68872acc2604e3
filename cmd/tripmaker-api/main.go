// @title         Tripmaker API
// @version       0.1.0
// @description   Random point of interest discovery over the TripAdvisor content API
// @BasePath      /api/v1

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripmaker/internal/adapters/directory/tripadvisor"
	"tripmaker/internal/core/version"
	"tripmaker/internal/modkit/swaggerkit"
	"tripmaker/internal/platform/config"
	"tripmaker/internal/platform/logger"
	"tripmaker/internal/platform/metrics"
	phttp "tripmaker/internal/platform/net/http"
	"tripmaker/internal/platform/store"

	"tripmaker/internal/services/api"

	"github.com/thejerf/suture/v4"
)

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Get()

	src, err := config.LoadDefault()
	if err != nil {
		l.Fatal().Err(err).Msg("config load failed")
	}
	root := config.From(src)
	apiCfg := root.Prefix("CORE_API_")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ledger database is optional, SERVICE_PGSQL_DBURL enables it
	st, err := store.Open(ctx, store.ConfigFrom(root.Prefix("SERVICE_"), "tripmaker-api"), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	m := metrics.New()
	taOpts, taDefaults := tripadvisor.FromConfig(root.Prefix("TRIPADVISOR_"), m)
	client := tripadvisor.NewClient(taOpts)

	bi := version.Info("tripmaker-api")
	swaggerkit.Register(func(doc map[string]any) {
		if info, ok := doc["info"].(map[string]any); ok && bi.Version != "dev" {
			info["version"] = bi.Version
		}
	})

	srv := phttp.NewServer(apiCfg)
	api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		Metrics:        m,
		Directory:      tripadvisor.NewDirectory(client, taDefaults),
		Places:         client,
		Breaker:        client,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		EnableMetrics:  apiCfg.MayBool("METRICS", true),
	})

	sup := suture.New("tripmaker-api", suture.Spec{
		EventHook: func(e suture.Event) {
			l.Warn().Str("event", e.String()).Fields(e.Map()).Msg("supervisor event")
		},
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		Timeout:          apiCfg.MayDuration("SHUTDOWN_GRACE", 15*time.Second) + 5*time.Second,
	})
	sup.Add(srv)

	l.Info().Str("addr", srv.Addr()).Bool("ledger", st.Enabled()).Msg("tripmaker api starting")
	if err := sup.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		l.Error().Err(err).Msg("supervisor stopped")
		stop()
		os.Exit(1)
	}
	l.Info().Msg("tripmaker api stopped")
}
