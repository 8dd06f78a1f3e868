package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Search outcomes
const (
	OutcomeSuccess   = "success"
	OutcomeError     = "error"
	OutcomeCancelled = "cancelled"
	OutcomeCleared   = "cleared"
)

// Metrics holds the client's collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	searchRequests  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		searchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "glitchterm_search_requests_total",
			Help: "Account search dispatches by outcome",
		}, []string{"outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "glitchterm_api_request_duration_seconds",
			Help:    "REST API call latency by endpoint",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	m.registry.MustRegister(m.searchRequests, m.requestDuration)
	return m
}

// SearchOutcome counts one settled (or abandoned) search dispatch
func (m *Metrics) SearchOutcome(outcome string) {
	if m == nil {
		return
	}
	m.searchRequests.WithLabelValues(outcome).Inc()
}

// ObserveRequest records how long a call to endpoint took
func (m *Metrics) ObserveRequest(endpoint string, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Serve exposes /metrics on addr until ctx is done
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics server stopped", zap.Error(err))
	}
}
