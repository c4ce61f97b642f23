//
//  Copyright © Manetu Inc. All rights reserved.
//

package ingest

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type serverMetrics struct {
	requests *prometheus.CounterVec
	entries  prometheus.Counter
}

func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	factory := promauto.With(reg)
	return &serverMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ailog",
			Subsystem: "ingest",
			Name:      "requests_total",
			Help:      "Ingest API requests by path and status code.",
		}, []string{"path", "code"}),
		entries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ailog",
			Subsystem: "ingest",
			Name:      "entries_total",
			Help:      "Log entries accepted by the ingest API.",
		}),
	}
}

func (m *serverMetrics) observe(path string, code int) {
	m.requests.WithLabelValues(path, strconv.Itoa(code)).Inc()
}
