package observability

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	duplicateChecks     *prometheus.CounterVec
	duplicateCandidates prometheus.Histogram
	merges              *prometheus.CounterVec
	mergeLatency        prometheus.Histogram
	tagCache            *prometheus.CounterVec

	dbStats   *prometheus.GaugeVec
	redisUp   prometheus.Gauge
	redisPing prometheus.Gauge
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Init builds the process-wide metrics once. Passing enabled=false leaves
// Current() nil, and every method on a nil *Metrics is a no-op.
func Init(enabled bool) *Metrics {
	if !enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics()
	})
	return instance
}

func Current() *Metrics {
	return instance
}

// NewMetrics returns metrics on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "myspot_api_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "myspot_api_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "myspot_api_inflight_requests",
			Help: "HTTP requests currently being served.",
		}),
		duplicateChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "myspot_duplicate_checks_total",
			Help: "Duplicate candidate lookups by outcome.",
		}, []string{"status"}),
		duplicateCandidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "myspot_duplicate_candidates",
			Help:    "Candidates returned per duplicate lookup.",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		}),
		merges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "myspot_place_merges_total",
			Help: "Place merges by outcome.",
		}, []string{"outcome"}),
		mergeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "myspot_place_merge_duration_seconds",
			Help:    "Place merge transaction latency.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
		}),
		tagCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "myspot_tag_cache_lookups_total",
			Help: "Tag list cache lookups by result.",
		}, []string{"result"}),
		dbStats: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "myspot_db_pool",
			Help: "database/sql pool statistics.",
		}, []string{"stat"}),
		redisUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "myspot_redis_up",
			Help: "1 when the last Redis ping succeeded.",
		}),
		redisPing: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "myspot_redis_ping_seconds",
			Help: "Latency of the last Redis ping.",
		}),
	}
	reg.MustRegister(
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.duplicateChecks, m.duplicateCandidates,
		m.merges, m.mergeLatency, m.tagCache,
		m.dbStats, m.redisUp, m.redisPing,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	code := strconv.Itoa(status)
	m.apiRequests.WithLabelValues(method, route, code).Inc()
	m.apiLatency.WithLabelValues(method, route, code).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveDuplicateCheck(candidates int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.duplicateChecks.WithLabelValues("error").Inc()
		return
	}
	m.duplicateChecks.WithLabelValues("ok").Inc()
	m.duplicateCandidates.Observe(float64(candidates))
}

// ObserveMerge records a merge attempt. outcome is one of merged, invalid,
// not_found or error.
func (m *Metrics) ObserveMerge(outcome string, dur time.Duration) {
	if m == nil {
		return
	}
	m.merges.WithLabelValues(outcome).Inc()
	m.mergeLatency.Observe(dur.Seconds())
}

func (m *Metrics) IncTagCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.tagCache.WithLabelValues("hit").Inc()
		return
	}
	m.tagCache.WithLabelValues("miss").Inc()
}

func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB, interval time.Duration) {
	if m == nil || db == nil {
		return
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: db stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.dbStats.WithLabelValues("open_connections").Set(float64(stats.OpenConnections))
				m.dbStats.WithLabelValues("in_use").Set(float64(stats.InUse))
				m.dbStats.WithLabelValues("idle").Set(float64(stats.Idle))
				m.dbStats.WithLabelValues("wait_count").Set(float64(stats.WaitCount))
				m.dbStats.WithLabelValues("wait_duration_seconds").Set(stats.WaitDuration.Seconds())
				m.dbStats.WithLabelValues("max_open_connections").Set(float64(stats.MaxOpenConnections))
			}
		}
	}()
}

func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb *redis.Client, interval time.Duration) {
	if m == nil || rdb == nil {
		return
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}
