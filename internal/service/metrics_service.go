package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/isp-backoffice-api/internal/snapshot"
	"github.com/noah-isme/isp-backoffice-api/pkg/jobs"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheHitRatio   prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	refreshDuration *prometheus.HistogramVec
	refreshTotal    *prometheus.CounterVec
	draftCommands   *prometheus.CounterVec
	jobWait         *prometheus.HistogramVec
	jobRun          *prometheus.HistogramVec

	cacheHitCount  uint64
	cacheMissCount uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	refreshDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snapshot_refresh_duration_seconds",
		Help:    "Duration of snapshot reloads",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource"})

	refreshTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_refresh_total",
		Help: "Snapshot reloads by outcome",
	}, []string{"resource", "outcome"})

	draftCommands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "subscription_draft_commands_total",
		Help: "Subscription editor commands by outcome",
	}, []string{"command", "outcome"})

	jobWait := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "job_queue_wait_seconds",
		Help:    "Time jobs spent buffered before a worker picked them up",
		Buckets: prometheus.DefBuckets,
	}, []string{"queue"})

	jobRun := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "job_run_seconds",
		Help:    "Job handler duration by outcome",
		Buckets: prometheus.DefBuckets,
	}, []string{"queue", "type", "outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses,
		refreshDuration, refreshTotal, draftCommands, jobWait, jobRun, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheLatency:    cacheLatency,
		cacheWrite:      cacheWrite,
		cacheHitRatio:   cacheHitRatio,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		refreshDuration: refreshDuration,
		refreshTotal:    refreshTotal,
		draftCommands:   draftCommands,
		jobWait:         jobWait,
		jobRun:          jobRun,
	}
}

// Registry exposes the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	total := hits + atomic.LoadUint64(&m.cacheMissCount)
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveSnapshotRefresh records one snapshot reload; it satisfies snapshot.Observer.
func (m *MetricsService) ObserveSnapshotRefresh(resource string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.refreshDuration.WithLabelValues(resource).Observe(duration.Seconds())
	m.refreshTotal.WithLabelValues(resource, outcome).Inc()
}

// SnapshotObserver adapts the service to the snapshot package.
func (m *MetricsService) SnapshotObserver() snapshot.Observer {
	return m.ObserveSnapshotRefresh
}

// RecordDraftCommand counts an editor command.
func (m *MetricsService) RecordDraftCommand(command string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	m.draftCommands.WithLabelValues(command, outcome).Inc()
}

// JobObserver returns a jobs.DoneFunc recording wait and run time for queue.
func (m *MetricsService) JobObserver(queue string) jobs.DoneFunc {
	return func(job jobs.Job, wait, run time.Duration, err error) {
		if m == nil {
			return
		}
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		m.jobWait.WithLabelValues(queue).Observe(wait.Seconds())
		m.jobRun.WithLabelValues(queue, job.Type, outcome).Observe(run.Seconds())
	}
}
