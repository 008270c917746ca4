// Package metrics defines the Prometheus collectors of the planner API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planner_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RecommendationsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planner_recommendations_served_total",
			Help: "Recommendation records returned to clients",
		},
	)

	ClashesDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planner_clashes_detected_total",
			Help: "Schedule clashes reported to clients",
		},
	)

	CartOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_cart_operations_total",
			Help: "Cart mutations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	CatalogCourses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "planner_catalog_courses",
			Help: "Courses in the loaded catalog",
		},
	)
)
