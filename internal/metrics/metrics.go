// Package metrics exposes chunkscope's run-time counters over an optional
// Prometheus endpoint, for watching a long estimate run in flight.
package metrics

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chunkscope"

var (
	// Registry is a dedicated Prometheus registry for chunkscope's metrics.
	Registry = prometheus.NewRegistry()

	// ChunksTotal counts every chunk the cutter has emitted.
	ChunksTotal = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_total",
			Help:      "Total chunks emitted by the cutter across the run",
		},
	)

	// ChunkBytesTotal counts bytes covered by emitted chunks.
	ChunkBytesTotal = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunk_bytes_total",
			Help:      "Total bytes covered by emitted chunks",
		},
	)

	// DedupBytesTotal counts bytes classified self or global by the
	// aggregator, labeled by which.
	DedupBytesTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dedup_bytes_total",
			Help:      "Bytes classified as deduplicated, by classification",
		},
		[]string{"classification"}, // self | global
	)

	// FilesProcessed counts files that completed chunking, by outcome.
	FilesProcessed = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_processed_total",
			Help:      "Files that finished processing, by outcome",
		},
		[]string{"outcome"}, // ok | io_error
	)

	// FileDuration measures per-file chunking latency.
	FileDuration = promauto.With(Registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_duration_ms",
			Help:      "Duration of chunking a single file, in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000, 30000},
		},
	)

	// DedupRatio is the running cross-corpus dedup ratio.
	DedupRatio = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dedup_ratio",
			Help:      "Running (self + global) / total_size dedup ratio",
		},
	)

	// Up is a liveness gauge for the metrics endpoint.
	Up = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "up",
			Help:      "1 once the metrics endpoint has started",
		},
	)
)

func init() {
	Registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	Registry.MustRegister(prometheus.NewGoCollector())
}

// ObserveFile records the outcome and latency of processing one file.
func ObserveFile(start time.Time, outcome string) {
	FileDuration.Observe(float64(time.Since(start)) / float64(time.Millisecond))
	FilesProcessed.WithLabelValues(outcome).Inc()
}

// ObserveChunks folds one file's chunk count and byte total into the
// running counters.
func ObserveChunks(count int, bytes int64) {
	if count <= 0 {
		return
	}
	ChunksTotal.Add(float64(count))
	ChunkBytesTotal.Add(float64(bytes))
}

// ObserveDedup records one file's self/global byte totals and updates the
// running dedup ratio.
func ObserveDedup(selfBytes, globalBytes, totalSize, totalSelf, totalGlobal int64) {
	if selfBytes > 0 {
		DedupBytesTotal.WithLabelValues("self").Add(float64(selfBytes))
	}
	if globalBytes > 0 {
		DedupBytesTotal.WithLabelValues("global").Add(float64(globalBytes))
	}
	if totalSize > 0 {
		DedupRatio.Set(float64(totalSelf+totalGlobal) / float64(totalSize))
	}
}

// Serve starts the /metrics HTTP endpoint on addr and blocks until ctx is
// canceled or the server fails.
func Serve(ctx context.Context, addr string, logger *log.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = log.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(Registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))

	srv := &http.Server{Addr: addr, Handler: mux}

	idleClosed := make(chan struct{})
	go func() {
		defer close(idleClosed)
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	Up.Set(1)
	logger.Printf("[Metrics] Prometheus endpoint listening on %s", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		<-idleClosed
		return nil
	}
	return err
}
