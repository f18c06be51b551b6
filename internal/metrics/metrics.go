// Package metrics exposes Prometheus counters and histograms for the
// engine's performance contract (spec.md §4.4: standings computation
// for a 512-player, 11-round tournament must finish under 1000ms;
// breaches are logged, never rejected). Grounded on the replay-api
// pack's pkg/infra/metrics/prometheus.go -- same promauto vector style,
// same Handler()/Middleware() split between business metrics and HTTP
// instrumentation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// StandingsComputationDuration tracks C3's wall-clock cost per call,
	// the metric the <1000ms contract is measured against.
	StandingsComputationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "standings_computation_duration_seconds",
			Help:    "Time to recompute standings for a tournament",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"tournament_id"},
	)

	// StandingsComputationBreaches counts calls that exceeded the
	// contract -- logged as warnings by the cache, never as failures.
	StandingsComputationBreaches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "standings_computation_breaches_total",
			Help: "Standings computations that exceeded the performance budget",
		},
		[]string{"tournament_id"},
	)

	StandingsCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "standings_cache_hits_total",
			Help: "Standings cache reads served from a fresh entry",
		},
		[]string{"tournament_id"},
	)

	StandingsCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "standings_cache_misses_total",
			Help: "Standings cache reads that triggered a recompute",
		},
		[]string{"tournament_id"},
	)

	StandingsBroadcastDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "standings_broadcast_dropped_total",
			Help: "StandingsUpdateEvents dropped because a subscriber's buffer was full",
		},
		[]string{"tournament_id"},
	)

	PairingsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pairings_generated_total",
			Help: "Rounds paired, by format",
		},
		[]string{"format"},
	)

	ResultsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "results_recorded_total",
			Help: "Game results written, by result token",
		},
		[]string{"result"},
	)

	ResultsPendingApproval = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "results_pending_approval_total",
			Help: "Game results that entered the pending-approval state",
		},
		[]string{"result"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware instruments every HTTP request except /metrics itself.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		start := time.Now()
		wrapped := newResponseWriter(w)

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

// Handler serves the /metrics scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest lets a framework-native middleware (e.g. gin, which
// has its own request/response wrapper and doesn't compose with
// Middleware's http.Handler chaining) report the same two metrics
// Middleware would.
func RecordHTTPRequest(method, path, status string, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordStandingsComputation records a C3 run's cost against the
// performance contract. budget is the configured breach threshold
// (spec.md §4.4 default 1s); callers decide whether to also log.
func RecordStandingsComputation(tournamentID string, d, budget time.Duration) {
	StandingsComputationDuration.WithLabelValues(tournamentID).Observe(d.Seconds())
	if d > budget {
		StandingsComputationBreaches.WithLabelValues(tournamentID).Inc()
	}
}

func RecordCacheHit(tournamentID string) {
	StandingsCacheHits.WithLabelValues(tournamentID).Inc()
}

func RecordCacheMiss(tournamentID string) {
	StandingsCacheMisses.WithLabelValues(tournamentID).Inc()
}

func RecordBroadcastDropped(tournamentID string) {
	StandingsBroadcastDropped.WithLabelValues(tournamentID).Inc()
}

func RecordPairingGenerated(format string) {
	PairingsGenerated.WithLabelValues(format).Inc()
}

func RecordResultRecorded(result string, pendingApproval bool) {
	ResultsRecorded.WithLabelValues(result).Inc()
	if pendingApproval {
		ResultsPendingApproval.WithLabelValues(result).Inc()
	}
}
