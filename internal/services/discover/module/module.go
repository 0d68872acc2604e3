// Package module wires discovery into the API using modkit
package module

import (
	"context"
	"time"

	modkit "tripmaker/internal/modkit"
	"tripmaker/internal/modkit/httpkit"
	"tripmaker/internal/modkit/repokit"
	"tripmaker/internal/platform/logger"
	"tripmaker/internal/platform/net/middleware"
	str "tripmaker/internal/platform/strings"
	dischttp "tripmaker/internal/services/discover/http"
	"tripmaker/internal/services/discover/domain"
	"tripmaker/internal/services/discover/repo"
	"tripmaker/internal/services/discover/service"
)

// Module implements the discover module
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	ports domain.ServicePort

	svc service.Service
}

// New constructs the discover module, the Directory comes in through
// modkit.WithPorts(Ports{...})
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	o := FromConfig(deps.Cfg)
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("discover"),
		modkit.WithPrefix("/discover"),
		modkit.WithMiddlewares(
			middleware.RateLimitByIP(o.RateLimit),
			middleware.AllowContentType("application/json"),
		),
	}, opts...)...)

	in, ok := modkit.PortsAs[Ports](b)
	if !ok || in.Directory == nil {
		panic("discover module requires Ports.Directory")
	}

	log := deps.Logger("discover")
	svc := service.New(in.Directory, o.Service,
		service.WithLedger(openLedger(deps, o, log)),
		service.WithMetrics(deps.Metrics),
	)

	log.Info().
		Int("max_attempts", o.Service.MaxAttempts).
		Dur("time_budget", o.Service.TimeBudget).
		Int("detail_concurrency", o.Service.DetailConcurrency).
		Str("angle_range", o.Service.AngleRange.String()).
		Bool("ledger", deps.HasPG()).
		Msg("discover module ready")

	return &Module{
		deps:  deps,
		built: b,
		ports: adaptServicePort{svc: svc},
		svc:   svc,
	}
}

// openLedger returns nil when no database is wired or the schema cannot be ensured,
// the service then falls back to a no op ledger
func openLedger(deps modkit.Deps, o Options, log *logger.Logger) domain.Ledger {
	if !deps.HasPG() {
		return nil
	}
	db := repokit.WithBeginHooks(deps.PG, repokit.StatementTimeout(o.LedgerTimeout))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.EnsureSchema(ctx, db); err != nil {
		log.Warn().Err(err).Msg("run ledger disabled")
		return nil
	}
	return repo.NewPG().Bind(db)
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { dischttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

