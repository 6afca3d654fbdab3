package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Metrics tracks tool invocations. The MCP transport is stdio, so metrics
// are exposed on a separate optional HTTP listener.
type Metrics struct {
	registry    *prometheus.Registry
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "asetta_tool_invocations_total",
			Help: "Tool invocations by tool name and outcome.",
		}, []string{"tool", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "asetta_tool_duration_seconds",
			Help:    "Tool handler latency.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"tool"}),
	}
	m.registry.MustRegister(m.invocations, m.duration)
	return m
}

// Observe records one tool call.
func (m *Metrics) Observe(tool, status string, elapsed time.Duration) {
	m.invocations.WithLabelValues(tool, status).Inc()
	m.duration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// Serve runs the /metrics and /healthz listener until ctx is cancelled.
// An empty addr disables the listener.
func (m *Metrics) Serve(ctx context.Context, addr string, log *zap.Logger) {
	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	go func() {
		log.Info("metrics listener starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics listener stopped", zap.Error(err))
		}
	}()
}
