// Package metrics holds the service's Prometheus collectors.
//
// Collectors are package-level and registered with the default registry in
// init; Handler serves them for scraping.
package metrics

import (
	"net/http"

	"github.com/dalemusser/strataexercise/internal/app/system/apperr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "strataexercise"

// Log query outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeBadInput = "bad_input"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	logQueries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "logs",
		Name:      "queries_total",
		Help:      "Exercise log queries by outcome.",
	}, []string{"outcome"})

	usersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "users",
		Name:      "created_total",
		Help:      "Users created.",
	})

	exercisesLogged = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "exercises",
		Name:      "logged_total",
		Help:      "Exercise entries appended to a user's log.",
	})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, logQueries, usersCreated, exercisesLogged)
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// LogQueryOutcome classifies the result of a log query.
func LogQueryOutcome(count int, err error) string {
	switch {
	case err == nil && count == 0:
		return OutcomeEmpty
	case err == nil:
		return OutcomeOK
	case apperr.IsClientInput(err):
		return OutcomeBadInput
	case apperr.IsNotFound(err):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

// RecordLogQuery counts one log query with the given outcome.
func RecordLogQuery(outcome string) {
	logQueries.WithLabelValues(outcome).Inc()
}

// RecordUserCreated counts one created user.
func RecordUserCreated() {
	usersCreated.Inc()
}

// RecordExerciseLogged counts one appended exercise.
func RecordExerciseLogged() {
	exercisesLogged.Inc()
}
