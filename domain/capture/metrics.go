package capture

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "distance_collector_cycles_total",
		Help: "Capture cycles, by outcome",
	}, []string{"outcome"})

	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "distance_collector_cycle_seconds",
		Help:    "Duration of one acquire/extract/store cycle",
		Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
	})

	BytesWrittenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "distance_collector_bytes_written_total",
		Help: "PNG bytes written to the extraction store",
	})

	SampleDistance = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "distance_collector_saved_phash_distance",
		Help:    "Perceptual hash distance between consecutive saved samples",
		Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
	})
)

// StartMetricsServer serves /metrics and /healthz on addr until ctx is done.
func StartMetricsServer(ctx context.Context, addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		logger.Info("metrics server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	return srv
}
