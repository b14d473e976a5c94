package intern

// metrics.go is a thin abstraction over Prometheus so the pool can be used
// with or without metrics. When the caller supplies a *prometheus.Registry
// via Configure(WithMetrics(...)), we create shard-labelled counters;
// otherwise a no-op sink is used and the hot path pays nothing for metric
// updates.
//
// © 2025 internmint authors. MIT License.

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsSink is an internal interface abstracting away the concrete
// backend (Prometheus vs noop). It is not exposed outside the package.
type metricsSink interface {
    observeIntern(shard int)
    observeEviction(shard int)
}

type noopMetrics struct{}

func (noopMetrics) observeIntern(int)   {}
func (noopMetrics) observeEviction(int) {}

type promMetrics struct {
    interns   *prometheus.CounterVec
    evictions *prometheus.CounterVec
}

func newPromMetrics(reg *prometheus.Registry) *promMetrics {
    label := []string{"shard"}

    pm := &promMetrics{
        interns: prometheus.NewCounterVec(prometheus.CounterOpts{
            Namespace: "internmint",
            Name:      "pool_interns_total",
            Help:      "Number of insert_or_get calls serviced (hit or miss) per shard.",
        }, label),
        evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
            Namespace: "internmint",
            Name:      "pool_evictions_total",
            Help:      "Number of pool entries removed after their last Handle was released.",
        }, label),
    }
    reg.MustRegister(pm.interns, pm.evictions)
    return pm
}

func (m *promMetrics) observeIntern(shard int) {
    m.interns.WithLabelValues(strconv.Itoa(shard)).Inc()
}

func (m *promMetrics) observeEviction(shard int) {
    m.evictions.WithLabelValues(strconv.Itoa(shard)).Inc()
}

// newMetricsSink decides which implementation to use based on whether the
// caller registered a Prometheus registry via Configure.
func newMetricsSink(reg *prometheus.Registry) metricsSink {
    if reg == nil {
        return noopMetrics{}
    }
    return newPromMetrics(reg)
}
