package intern

// config.go applies a functional-option layer to a process-wide singleton:
// the pool has process lifetime, so options are applied once, before first
// use, via Configure, rather than per-instance via a constructor.
//
// © 2025 internmint authors. MIT License.

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the pool's ambient logging and metrics. Options are
// applied by Configure and take effect only if called before the pool's
// first use (New, Default, Len, ...).
type Option func(*pendingConfig)

type pendingConfig struct {
    logger   *zap.Logger
    registry *prometheus.Registry
}

// WithLogger plugs an external zap.Logger. The pool never logs on the hot
// path; only allocation failures are recorded (a dangling Borrow.Intern
// panics instead of logging).
func WithLogger(l *zap.Logger) Option {
    return func(c *pendingConfig) {
        if l != nil {
            c.logger = l
        }
    }
}

// WithMetrics enables Prometheus metrics collection for the pool. Passing
// nil disables metrics (the default): the hot path then pays nothing for
// metric updates.
func WithMetrics(reg *prometheus.Registry) Option {
    return func(c *pendingConfig) {
        c.registry = reg
    }
}

var (
    configMu      sync.Mutex
    configApplied bool
    configPending pendingConfig
)

// Configure applies opts to the pool. It has effect only the first time it
// is called, and only if called before the pool's first use; a call after
// the pool has already been built is a no-op, since mutating a live
// pool's logger or metrics sink out from under concurrent readers would be
// unsound.
func Configure(opts ...Option) {
    configMu.Lock()
    defer configMu.Unlock()
    if configApplied {
        return
    }
    for _, opt := range opts {
        opt(&configPending)
    }
    configApplied = true
}

// consumePendingConfig is called exactly once, from within getPool's
// sync.Once, to materialize whatever Configure calls arrived before first
// use into concrete logger/metrics sinks.
func consumePendingConfig() (loggerSink, metricsSink) {
    configMu.Lock()
    cfg := configPending
    configApplied = true
    configMu.Unlock()

    logger := newNopLogger()
    if cfg.logger != nil {
        logger = zapLogger{cfg.logger}
    }

    metrics := newMetricsSink(cfg.registry)
    return logger, metrics
}
