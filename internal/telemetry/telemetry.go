// Package telemetry holds the service's prometheus instruments.
package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	actionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_actions_total",
			Help: "Wizard actions processed, by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_submissions_total",
			Help: "Onboarding submissions pushed to the budget API",
		},
		[]string{"outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "onboarding_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"route", "status"},
	)
)

// ObserveAction counts one action. applied is false when the action was
// refused or failed.
func ObserveAction(actionType string, applied bool) {
	actionsTotal.WithLabelValues(actionType, outcome(applied)).Inc()
}

func ObserveSubmission(ok bool) {
	submissionsTotal.WithLabelValues(outcome(ok)).Inc()
}

func ObserveRequest(route string, status int, took time.Duration) {
	requestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(took.Seconds())
}

// Handler serves the default registry.
func Handler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
