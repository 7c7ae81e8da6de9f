// Package metrics holds the domain counters of the editing engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsTotal counts submit attempts by mode and outcome.
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_console_submissions_total",
			Help: "Total number of product submissions",
		},
		[]string{"mode", "outcome"},
	)

	// SubmissionDuration observes the catalog round-trip of a submit.
	SubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_console_submission_duration_seconds",
			Help:    "Duration of product submissions in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	// ValuesCreated counts attribute values created on demand.
	ValuesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_console_attribute_values_created_total",
			Help: "Total number of attribute values created",
		},
		[]string{"kind"},
	)

	// ImagesRejected counts staged files dropped by an image quota.
	ImagesRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_console_images_rejected_total",
			Help: "Total number of staged images rejected by the per-owner limit",
		},
	)

	// ValidationRejections counts operator actions refused locally.
	ValidationRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_console_validation_rejections_total",
			Help: "Total number of operator actions rejected by validation",
		},
		[]string{"field"},
	)

	// ActiveSessions is the number of open editing sessions.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_console_active_sessions",
			Help: "Current number of open editing sessions",
		},
	)

	// SessionsSwept counts sessions discarded for inactivity.
	SessionsSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_console_sessions_swept_total",
			Help: "Total number of idle sessions discarded by the sweeper",
		},
	)
)
