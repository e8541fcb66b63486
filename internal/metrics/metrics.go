package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carbonfront_submissions_total",
			Help: "Total number of submissions by flow and outcome",
		},
		[]string{"flow", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carbonfront_upstream_duration_seconds",
			Help:    "Duration of processing service calls in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"flow"},
	)

	ResponseShapes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carbonfront_response_shapes_total",
			Help: "Single-document responses by detected shape",
		},
		[]string{"shape"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carbonfront_exports_total",
			Help: "Total number of exports by format",
		},
		[]string{"format"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carbonfront_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "carbonfront_active_sessions",
			Help: "Number of page sessions held in memory",
		},
	)
)

// Outcome labels.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeUpstream   = "upstream_error"
	OutcomeShape      = "shape_error"
)
