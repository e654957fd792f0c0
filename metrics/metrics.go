// Package metrics provides Prometheus observability metrics for the shift scheduler.
// It covers validation outcomes, parsing and the calls made to the scheduling backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// VALIDATION METRICS
// =============================================================================

// ValidationRunsTotal counts validation passes by outcome ("ok" or "failed").
var ValidationRunsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "validator",
	Name:      "runs_total",
	Help:      "Total validation passes by outcome",
}, []string{"outcome"})

// ValidationErrorsTotal counts blocking diagnostics by rule.
var ValidationErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "validator",
	Name:      "errors_total",
	Help:      "Total blocking validation errors by rule",
}, []string{"rule"})

// ValidationWarningsTotal counts non-fatal multi-assignment warnings.
var ValidationWarningsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "validator",
	Name:      "warnings_total",
	Help:      "Total agent multi-assignment warnings",
})

// ValidationSlots tracks the number of slots inspected in the most recent pass.
var ValidationSlots = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "validator",
	Name:      "slots",
	Help:      "Number of slots inspected by the most recent validation pass",
})

// ValidationDurationSeconds tracks time spent in a validation pass.
var ValidationDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "validator",
	Name:      "duration_seconds",
	Help:      "Time taken to validate a slot list",
	Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
})

// =============================================================================
// PARSER METRICS
// =============================================================================

// ParserErrorsTotal tracks parse errors by error type.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total parse errors by error type",
}, []string{"error_type"})

// ParserRecordsTotal tracks total records successfully parsed.
var ParserRecordsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "records_total",
	Help:      "Total slot and agent records successfully parsed",
})

// =============================================================================
// BACKEND CLIENT METRICS
// =============================================================================

// BackendRequestsTotal counts backend calls by endpoint and status code.
var BackendRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "backend",
	Name:      "requests_total",
	Help:      "Total requests made to the scheduling backend",
}, []string{"endpoint", "code"})

// BackendRequestDurationSeconds tracks backend call latency by endpoint.
var BackendRequestDurationSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "backend",
	Name:      "request_duration_seconds",
	Help:      "Latency of requests made to the scheduling backend",
	Buckets:   prometheus.DefBuckets,
}, []string{"endpoint"})

// ShiftsAppliedTotal counts slots pushed to the backend by bulk replace.
var ShiftsAppliedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "backend",
	Name:      "shifts_applied_total",
	Help:      "Total slots written to the backend by bulk replace",
})
