package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "booking", Name: "http_requests_total", Help: "Gateway HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "booking", Name: "http_request_duration_seconds",
			Help:    "Gateway HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	BackendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "booking", Name: "backend_requests_total", Help: "Requests sent to the booking backend."},
		[]string{"endpoint", "status"},
	)
	BackendLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "booking", Name: "backend_request_duration_seconds",
			Help:    "Booking backend request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "booking", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	PipelineRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "booking", Name: "pipeline_runs_total", Help: "Search pipeline runs by fetch strategy and outcome."},
		[]string{"strategy", "outcome"}, // strategy: all|keyword|city
	)
	DebounceFires = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "booking", Name: "debounce_fires_total", Help: "Debounced searches that reached the pipeline."},
	)
	StaleResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "booking", Name: "stale_results_total", Help: "Screen fetch results dropped because a newer fetch superseded them."},
		[]string{"screen"},
	)
)

var collectors = []prometheus.Collector{
	HTTPRequests, HTTPLatency, BackendRequests, BackendLatency,
	CacheEvents, PipelineRuns, DebounceFires, StaleResults,
}

// Serve exposes the default registry on addr in the background. Empty addr disables it.
func Serve(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors...)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveBackend records one backend call; status 0 means the request never got a response.
func ObserveBackend(endpoint string, status int, dur time.Duration) {
	BackendRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	BackendLatency.WithLabelValues(endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) {
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObservePipeline(strategy string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	PipelineRuns.WithLabelValues(strategy, outcome).Inc()
}

func ObserveDebounceFire() { DebounceFires.Inc() }

func ObserveStale(screen string) { StaleResults.WithLabelValues(screen).Inc() }
