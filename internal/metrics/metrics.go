package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"smartx/internal/domain"
)

// StoreMetrics tracks the health of the durable layer behind the cache.
type StoreMetrics struct {
	// Durable writes by medium and result (ok|fail)
	PersistTotal *prometheus.CounterVec
	// Time spent writing the full snapshot
	PersistDuration *prometheus.HistogramVec
	// 1 when the store runs against a durable medium, 0 in memory-only mode
	Durable prometheus.Gauge
	// Records currently held, per collection
	Records *prometheus.GaugeVec
	// Cache reloads triggered through Sync
	SyncTotal prometheus.Counter
}

// NewStoreMetrics registers the store metrics on reg. Tests pass a fresh
// prometheus.NewRegistry() so instances never collide.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	f := promauto.With(reg)
	return &StoreMetrics{
		PersistTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_persist_total",
				Help: "Snapshot writes to the durable medium",
			},
			[]string{"medium", "result"},
		),
		PersistDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "store_persist_duration_seconds",
				Help:    "Duration of snapshot writes to the durable medium",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"medium"},
		),
		Durable: f.NewGauge(prometheus.GaugeOpts{
			Name: "store_durable",
			Help: "Whether the store is backed by a durable medium",
		}),
		Records: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "store_records",
				Help: "Records held in the store snapshot",
			},
			[]string{"collection"},
		),
		SyncTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "store_sync_total",
			Help: "Cache reloads from the store",
		}),
	}
}

func (m *StoreMetrics) ObserveCounts(c domain.Counts) {
	if m == nil {
		return
	}
	m.Records.WithLabelValues("products").Set(float64(c.Products))
	m.Records.WithLabelValues("users").Set(float64(c.Users))
	m.Records.WithLabelValues("checkouts").Set(float64(c.Checkouts))
	m.Records.WithLabelValues("productSettings").Set(float64(c.ProductSettings))
}

func (m *StoreMetrics) ObservePersist(medium string, seconds float64, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "fail"
	}
	m.PersistTotal.WithLabelValues(medium, result).Inc()
	m.PersistDuration.WithLabelValues(medium).Observe(seconds)
}

func (m *StoreMetrics) SetDurable(durable bool) {
	if m == nil {
		return
	}
	if durable {
		m.Durable.Set(1)
		return
	}
	m.Durable.Set(0)
}

func (m *StoreMetrics) ObserveSync() {
	if m == nil {
		return
	}
	m.SyncTotal.Inc()
}
