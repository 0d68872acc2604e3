// Package api provides the HTTP API for the application
package api

import (
	"tripmaker/internal/platform/config"
	"tripmaker/internal/platform/logger"
	"tripmaker/internal/platform/metrics"
	phttp "tripmaker/internal/platform/net/http"
	"tripmaker/internal/platform/store"

	"tripmaker/internal/modkit"
	"tripmaker/internal/modkit/httpkit"
	"tripmaker/internal/modkit/module"
	"tripmaker/internal/modkit/swaggerkit"

	metahttp "tripmaker/internal/services/api/meta/http"
	metamod "tripmaker/internal/services/api/meta/module"
	placesdomain "tripmaker/internal/services/api/places/domain"
	placesmod "tripmaker/internal/services/api/places/module"
	discoverdomain "tripmaker/internal/services/discover/domain"
	discovermod "tripmaker/internal/services/discover/module"
)

// MetricsPath is mounted outside the versioned API
const MetricsPath = "/metrics"

// Options are the API options
type Options struct {
	Config  config.Conf
	Store   *store.Store // nil or empty disables the ledger
	Logger  *logger.Logger
	Metrics *metrics.Metrics

	// place directory seams, main passes the same TripAdvisor client for all three
	Directory discoverdomain.Directory
	Places    placesdomain.Client
	Breaker   metahttp.Breaker

	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Mount mounts the API service onto the given router and returns the port registry
func Mount(r phttp.Router, opt Options) *module.Registry {
	deps := modkit.Deps{
		Log:     opt.Logger,
		Cfg:     opt.Config,
		Metrics: opt.Metrics,
	}
	if opt.Store.Enabled() {
		deps.PG = opt.Store.PG
	}

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Directory: opt.Breaker})),
		discovermod.New(deps, modkit.WithPorts(discovermod.Ports{Directory: opt.Directory})),
		placesmod.New(deps, modkit.WithPorts(placesmod.Ports{Client: opt.Places})),
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics {
		r.Handle(MetricsPath, opt.Metrics.Handler())
	}

	api := opt.Config.Prefix("CORE_API_")
	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: api.MayCSV("CORS_ORIGINS", []string{"*"}),
		SlowRequest: api.MayDuration("SLOW_REQUEST", 0),
		Observe:     opt.Metrics.HTTPRequest,
	})

	reg := module.NewRegistry()
	httpkit.MountAPIV1(r, stack, func(v1 httpkit.Router) {
		for _, m := range mods {
			reg.Register(m.Name(), m.Ports())
			m.MountRoutes(v1)
		}
	})
	return reg
}
