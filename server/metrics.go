// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "sayori"

type metrics struct {
	accepted    prometheus.Counter
	active      prometheus.Gauge
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	malformed   prometheus.Counter
	panics      prometheus.Counter
	writeErrors prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		accepted: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "connections_accepted_total",
			Help:      "Total number of accepted connections.",
		}),
		active: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "connections_active",
			Help:      "Number of connections currently being served.",
		}),
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "requests_total",
				Help:      "Total number of answered requests.",
			},
			[]string{"method", "status"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "request_duration_seconds",
				Help:      "Time spent dispatching a request and writing its response.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		malformed: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "malformed_requests_total",
			Help:      "Total number of connections closed because the request could not be decoded.",
		}),
		panics: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "panics_total",
			Help:      "Total number of recovered handler panics.",
		}),
		writeErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "write_errors_total",
			Help:      "Total number of responses which failed to be written.",
		}),
	}
}
