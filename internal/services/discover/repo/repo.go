// Package repo provides the postgres run ledger for discovery
package repo

import (
	"context"
	"time"

	"tripmaker/internal/core/geo"
	"tripmaker/internal/modkit/repokit"
	perr "tripmaker/internal/platform/errors"
	"tripmaker/internal/platform/store"
	"tripmaker/internal/services/discover/domain"

	"github.com/google/uuid"
)

// Repo defines the repository contract for the run ledger
type Repo interface {
	InsertRun(ctx context.Context, run domain.Run) error
	GetRun(ctx context.Context, id uuid.UUID) (domain.Run, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

var schema = []string{
	`create table if not exists discovery_runs (
	id              uuid primary key,
	started_at      timestamptz not null,
	finished_at     timestamptz not null,
	center_lat      double precision not null,
	center_lon      double precision not null,
	max_distance_km double precision not null,
	quota           integer not null,
	min_rating      double precision not null,
	bias            double precision not null,
	attempts        integer not null default 0,
	accepted        integer not null default 0,
	status          text not null check (status in ('ok','exhausted','canceled','upstream','invalid')),
	error           text not null default ''
)`,
	`create index if not exists discovery_runs_started_at_idx on discovery_runs (started_at desc)`,
}

// EnsureSchema creates the ledger table in one transaction when it is missing
func EnsureSchema(ctx context.Context, db repokit.TxRunner) error {
	err := repokit.WithTx(ctx, db, func(q repokit.Queryer) error {
		for _, stmt := range schema {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	return perr.FromPostgres(err, "ensure discovery_runs schema")
}

// InsertRun is idempotent on id, a second insert of the same run is a no op
func (r *queries) InsertRun(ctx context.Context, run domain.Run) error {
	const sql = `
insert into discovery_runs (
	id, started_at, finished_at, center_lat, center_lon, max_distance_km,
	quota, min_rating, bias, attempts, accepted, status, error
) values ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
on conflict (id) do nothing
`
	_, err := r.q.Exec(ctx, sql,
		run.ID.String(),
		run.StartedAt.UTC(),
		run.FinishedAt.UTC(),
		run.Request.Center.Latitude,
		run.Request.Center.Longitude,
		run.Request.MaxDistance.Km(),
		run.Request.Quota,
		run.Request.MinRating,
		run.Request.Bias,
		run.Attempts,
		run.Accepted,
		string(run.Status),
		run.Error,
	)
	return perr.FromPostgresf(err, "insert run %s", run.ID)
}

// GetRun reads one run, an unknown id is NotFound
func (r *queries) GetRun(ctx context.Context, id uuid.UUID) (domain.Run, error) {
	const sql = `
select id::text, started_at, finished_at, center_lat, center_lon, max_distance_km,
quota, min_rating, bias, attempts, accepted, status, error
from discovery_runs
where id = $1::uuid
`
	run, err := store.One(ctx, r.q, scanRun, sql, id.String())
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Run{}, perr.NotFoundf("run %s not found", id)
		}
		return domain.Run{}, perr.FromPostgresf(err, "get run %s", id)
	}
	return run, nil
}

func scanRun(row store.Row) (domain.Run, error) {
	var (
		run        domain.Run
		id, status string
		lat, lon   float64
		maxKm      float64
		started    time.Time
		finished   time.Time
	)
	if err := row.Scan(
		&id,
		&started,
		&finished,
		&lat,
		&lon,
		&maxKm,
		&run.Request.Quota,
		&run.Request.MinRating,
		&run.Request.Bias,
		&run.Attempts,
		&run.Accepted,
		&status,
		&run.Error,
	); err != nil {
		return domain.Run{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.Run{}, perr.Wrapf(err, perr.ErrorCodeDB, "run id %q", id)
	}
	run.ID = parsed
	run.StartedAt = started
	run.FinishedAt = finished
	run.Request.Center = geo.Point{Latitude: lat, Longitude: lon}
	run.Request.MaxDistance = geo.Kilometers(maxKm)
	run.Status = domain.Status(status)
	return run, nil
}
