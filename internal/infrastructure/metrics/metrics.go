package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Cash-out metrics
	CashoutsCreated     prometheus.Counter
	CashoutAmount       prometheus.Histogram
	CashoutDuration     prometheus.Histogram
	CashoutErrors       *prometheus.CounterVec
	SettlementConflicts prometheus.Counter

	// Parcel metrics
	ParcelsCreated   prometheus.Counter
	ParcelsDelivered prometheus.Counter
	ParcelOperations *prometheus.CounterVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		CashoutsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courierpay_cashouts_created_total",
			Help: "Total number of completed cash-out settlements",
		}),
		CashoutAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "courierpay_cashout_amount",
			Help:    "Cash-out amounts",
			Buckets: []float64{200, 500, 1000, 2500, 5000, 10000, 50000},
		}),
		CashoutDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "courierpay_cashout_duration_seconds",
			Help:    "Duration of cash-out settlement operations",
			Buckets: prometheus.DefBuckets,
		}),
		CashoutErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courierpay_cashout_errors_total",
				Help: "Total number of cash-out failures by type",
			},
			[]string{"error_type"},
		),
		SettlementConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courierpay_settlement_conflicts_total",
			Help: "Total number of settlement attempts rejected by concurrent modification",
		}),

		ParcelsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courierpay_parcels_created_total",
			Help: "Total number of parcels created",
		}),
		ParcelsDelivered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courierpay_parcels_delivered_total",
			Help: "Total number of parcels reaching a terminal delivery status",
		}),
		ParcelOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courierpay_parcel_operations_total",
				Help: "Total parcel operations by type",
			},
			[]string{"operation"},
		),

		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courierpay_db_queries_total",
				Help: "Total database queries by operation",
			},
			[]string{"operation"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "courierpay_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "courierpay_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courierpay_db_errors_total",
				Help: "Total database errors by operation",
			},
			[]string{"operation"},
		),

		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courierpay_redis_operations_total",
				Help: "Total Redis operations by type",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courierpay_redis_errors_total",
				Help: "Total Redis errors by operation",
			},
			[]string{"operation"},
		),

		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courierpay_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"result"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courierpay_auth_failures_total",
				Help: "Total authentication failures by reason",
			},
			[]string{"reason"},
		),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courierpay_ratelimit_hits_total",
				Help: "Total requests rejected by rate limiting",
			},
			[]string{"path"},
		),

		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courierpay_audit_logs_total",
				Help: "Total audit log entries by action",
			},
			[]string{"action"},
		),
	}
}
