// Package modkit wires API modules from shared deps and functional options
package modkit

import (
	"tripmaker/internal/modkit/repokit"
	"tripmaker/internal/platform/config"
	"tripmaker/internal/platform/logger"
	"tripmaker/internal/platform/metrics"
)

// Deps holds what every module receives at construction
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf

	// PG is nil when no ledger database is configured
	PG repokit.TxRunner

	// Metrics may be nil, all recorders are nil safe
	Metrics *metrics.Metrics
}

// Logger returns a component scoped child of Log, falling back to the root logger
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log == nil {
		return logger.Named(component)
	}
	l := d.Log.With().Str("component", component).Logger()
	return &l
}

// HasPG reports whether a ledger database is wired
func (d Deps) HasPG() bool { return d.PG != nil }
