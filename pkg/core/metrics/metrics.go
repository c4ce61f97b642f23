//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package metrics exposes Prometheus collectors describing a logger's buffer
// and flush activity.
//
// Each logger owns one [Metrics] set. Collectors are created unregistered; a
// logger registers them only when given a registerer through
// [options.WithMetrics], so several loggers can coexist in one process as long
// as each uses a distinct logger name.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ailog"

// Flush outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics is the collector set for one logger.
type Metrics struct {
	Enqueued prometheus.Counter
	Flushed  prometheus.Counter
	Dropped  prometheus.Counter
	Flushes  *prometheus.CounterVec
	Pending  prometheus.Gauge
}

// New creates an unregistered collector set labelled with the logger name.
func New(loggerName string) *Metrics {
	labels := prometheus.Labels{"logger": loggerName}
	return &Metrics{
		Enqueued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "entries_enqueued_total",
			Help:        "Log entries accepted into the buffer.",
			ConstLabels: labels,
		}),
		Flushed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "entries_flushed_total",
			Help:        "Log entries delivered to the logging API.",
			ConstLabels: labels,
		}),
		Dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "entries_dropped_total",
			Help:        "Log entries discarded after a failed flush.",
			ConstLabels: labels,
		}),
		Flushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "flushes_total",
			Help:        "Non-empty flush attempts by outcome.",
			ConstLabels: labels,
		}, []string{"outcome"}),
		Pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "entries_pending",
			Help:        "Log entries waiting in the buffer.",
			ConstLabels: labels,
		}),
	}
}

// Register adds every collector to reg. On failure nothing stays registered.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := m.collectors()
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			for _, done := range collectors[:i] {
				reg.Unregister(done)
			}
			return err
		}
	}
	return nil
}

// Unregister removes every collector from reg.
func (m *Metrics) Unregister(reg prometheus.Registerer) {
	for _, c := range m.collectors() {
		reg.Unregister(c)
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Enqueued, m.Flushed, m.Dropped, m.Flushes, m.Pending}
}

// ObserveFlush records the outcome of a non-empty flush of n entries.
func (m *Metrics) ObserveFlush(n int, err error) {
	if err != nil {
		m.Flushes.WithLabelValues(OutcomeFailure).Inc()
		m.Dropped.Add(float64(n))
		return
	}
	m.Flushes.WithLabelValues(OutcomeSuccess).Inc()
	m.Flushed.Add(float64(n))
}
