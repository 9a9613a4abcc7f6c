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
		prometheus.CounterOpts{Namespace: "daleel", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "daleel", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ImageProbes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "daleel", Name: "image_probes_total", Help: "Outbound image checks."},
		[]string{"status"},
	)
	ImageProbeLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "daleel", Name: "image_probe_duration_seconds",
			Help:    "Outbound image check duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
	StoreEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "daleel", Name: "store_events_total", Help: "KV and cache hits/misses/sets/dels/errors."},
		[]string{"store", "event"},
	)
	ReviewSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "daleel", Name: "review_submissions_total", Help: "Review submissions by outcome."},
		[]string{"result"}, // saved|invalid|not_found|error
	)
)

// Serve exposes reg on addr in a background server. An empty addr
// disables the sidecar and returns nil.
func Serve(addr string, reg *prometheus.Registry) *http.Server {
	if addr == "" {
		return nil
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           sidecarMux(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
	return srv
}

func sidecarMux(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))
	return mux
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ImageProbes, ImageProbeLatency, StoreEvents, ReviewSubmissions)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveImageProbe(status int, dur time.Duration) {
	ImageProbes.WithLabelValues(strconv.Itoa(status)).Inc()
	ImageProbeLatency.Observe(dur.Seconds())
}

func ObserveStore(store, event string) { // event: hit|miss|set|del|error
	StoreEvents.WithLabelValues(store, event).Inc()
}

func ObserveReview(result string) {
	ReviewSubmissions.WithLabelValues(result).Inc()
}
