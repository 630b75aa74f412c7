package prometheus

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records gateway and database metrics using Prometheus
type Collector struct {
	registerer prometheus.Registerer

	httpRequests  *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	queryErrors   *prometheus.CounterVec
	databaseUp    prometheus.Gauge
}

// NewCollector creates a new Prometheus metrics collector registered on reg
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		registerer: reg,
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalogo_http_requests_total",
				Help: "Total number of HTTP requests handled",
			},
			[]string{"route", "status"},
		),
		queryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalogo_query_duration_seconds",
				Help:    "Duration of table queries in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"route"},
		),
		queryErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalogo_query_errors_total",
				Help: "Total number of failed table queries",
			},
			[]string{"route", "kind"},
		),
		databaseUp: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "catalogo_database_up",
				Help: "Whether the last database health check succeeded (1) or not (0)",
			},
		),
	}
}

// RegisterDatabase exposes database/sql pool statistics for db
func (c *Collector) RegisterDatabase(db *sql.DB, name string) error {
	return c.registerer.Register(collectors.NewDBStatsCollector(db, name))
}

// RecordRequest counts a handled HTTP request
func (c *Collector) RecordRequest(route string, status int) {
	c.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// ObserveQueryDuration records how long a route's query took
func (c *Collector) ObserveQueryDuration(route string, duration time.Duration) {
	c.queryDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// IncQueryErrors counts a failed query by error kind
func (c *Collector) IncQueryErrors(route string, kind string) {
	c.queryErrors.WithLabelValues(route, kind).Inc()
}

// SetDatabaseUp records the outcome of the latest health check
func (c *Collector) SetDatabaseUp(up bool) {
	if up {
		c.databaseUp.Set(1)
		return
	}
	c.databaseUp.Set(0)
}
