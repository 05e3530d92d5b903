// Package metrics holds the Prometheus collectors of the catalog server.
//
// Collectors are registered with the default registry on package load and
// exposed by Handler at GET /metrics.
//
//	cinema_http_requests_total          counter: requests by method, route, status
//	cinema_http_request_duration_secs   histogram: latency by method, route
//	cinema_login_attempts_total         counter: password logins by result
//	cinema_purchases_total              counter: purchases by kind and result
//	cinema_sweep_runs_total             counter: maintenance sweeps by job and result
//	cinema_sweep_changes_total          counter: rows changed by sweeps
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess            = "success"
	ResultInvalidCredentials = "invalid_credentials"
	ResultDisabled           = "disabled"
	ResultRateLimited        = "rate_limited"
	ResultInsufficientFunds  = "insufficient_funds"
	ResultAlreadyOwned       = "already_owned"
	ResultError              = "error"

	KindEpisode = "episode"
	KindPremium = "premium"

	JobPremiumSweep = "premium_sweep"
	JobRatingSweep  = "rating_sweep"
)

// ── Counters ──────────────────────────────────────────────────────────────────

// HTTPRequests counts handled requests by method, route pattern and status.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cinema_http_requests_total",
	Help: "Total HTTP requests handled.",
}, []string{"method", "route", "status"})

// LoginAttempts counts password logins by result.
var LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cinema_login_attempts_total",
	Help: "Password login attempts by result.",
}, []string{"result"})

// Purchases counts episode and premium purchases by result.
var Purchases = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cinema_purchases_total",
	Help: "Purchases by kind and result.",
}, []string{"kind", "result"})

// SweepRuns counts maintenance sweep iterations.
var SweepRuns = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cinema_sweep_runs_total",
	Help: "Maintenance sweep iterations by job and result.",
}, []string{"job", "result"})

// SweepChanges counts rows a sweep modified.
var SweepChanges = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cinema_sweep_changes_total",
	Help: "Rows changed by maintenance sweeps.",
}, []string{"job"})

// ── Histograms ────────────────────────────────────────────────────────────────

// HTTPDuration tracks request latency.
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "cinema_http_request_duration_seconds",
	Help:    "HTTP request latency in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})

// ── Handler ───────────────────────────────────────────────────────────────────

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ── Middleware ────────────────────────────────────────────────────────────────

// Middleware records request counts and latency. Requests are labelled
// with the chi route pattern so path parameters do not explode the label
// space; unmatched requests are labelled "unmatched".
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
