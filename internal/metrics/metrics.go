package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

const (
	KindProduct = "product"
	KindVariant = "variant"

	OutcomeUpdated = "updated"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics captures pricing and webhook delivery health signals.
type Metrics struct {
	pricingRuns       prometheus.Counter
	pricingItems      *prometheus.CounterVec
	pricingDuration   prometheus.Histogram
	webhookDeliveries *prometheus.CounterVec
	inactivityScans   prometheus.Counter
	inactivityEvents  *prometheus.CounterVec
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// Default returns the singleton metrics registry.
func Default() *Metrics {
	metricsOnce.Do(func() {
		metrics = newMetrics(prometheus.DefaultRegisterer)
	})
	return metrics
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		pricingRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "revenda_pricing_runs_total",
			Help: "Number of pricing recalculation runs started.",
		}),
		pricingItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "revenda_pricing_items_total",
			Help: "Number of catalog items processed by pricing runs.",
		}, []string{"kind", "outcome"}),
		pricingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "revenda_pricing_run_duration_seconds",
			Help:    "Duration of pricing recalculation runs.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		webhookDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "revenda_webhook_deliveries_total",
			Help: "Outbound webhook delivery attempts.",
		}, []string{"event_type", "outcome"}),
		inactivityScans: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "revenda_inactivity_scans_total",
			Help: "Number of inactivity scan runs.",
		}),
		inactivityEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "revenda_inactivity_events_total",
			Help: "Inactivity notifications dispatched per threshold.",
		}, []string{"event_type"}),
	}

	reg.MustRegister(
		m.pricingRuns,
		m.pricingItems,
		m.pricingDuration,
		m.webhookDeliveries,
		m.inactivityScans,
		m.inactivityEvents,
	)
	return m
}

func (m *Metrics) IncPricingRun() {
	m.pricingRuns.Inc()
}

func (m *Metrics) IncPricingItem(kind, outcome string) {
	m.pricingItems.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) ObservePricingRun(d time.Duration) {
	m.pricingDuration.Observe(d.Seconds())
}

func (m *Metrics) IncWebhookDelivery(eventType, outcome string) {
	m.webhookDeliveries.WithLabelValues(eventType, outcome).Inc()
}

func (m *Metrics) IncInactivityScan() {
	m.inactivityScans.Inc()
}

func (m *Metrics) IncInactivityEvent(eventType string) {
	m.inactivityEvents.WithLabelValues(eventType).Inc()
}

var Module = fx.Module("metrics",
	fx.Provide(Default),
)
