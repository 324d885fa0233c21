package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes counters for the appointment lifecycle. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	gatherer           prometheus.Gatherer
	mutationsTotal     *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	storageFallbacks   prometheus.Counter
	records            prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWithRegistry(reg, reg)
}

func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		gatherer: gatherer,
		mutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "appointments",
			Name:      "mutations_total",
			Help:      "Appointment store mutations by operation and result",
		}, []string{"op", "result"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "appointments",
			Name:      "validation_failures_total",
			Help:      "Rejected submissions by offending field",
		}, []string{"field"}),
		storageFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "appointments",
			Name:      "storage_fallbacks_total",
			Help:      "Loads that fell back to an empty collection because stored data was unreadable",
		}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "clinic",
			Subsystem: "appointments",
			Name:      "records",
			Help:      "Appointments currently held in memory",
		}),
	}
	reg.MustRegister(m.mutationsTotal, m.validationFailures, m.storageFallbacks, m.records)
	return m
}

func (m *Metrics) ObserveMutation(op, result string) {
	if m == nil {
		return
	}
	m.mutationsTotal.WithLabelValues(op, result).Inc()
}

func (m *Metrics) ObserveValidationFailure(field string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(field).Inc()
}

func (m *Metrics) ObserveStorageFallback() {
	if m == nil {
		return
	}
	m.storageFallbacks.Inc()
}

func (m *Metrics) SetRecords(n int) {
	if m == nil {
		return
	}
	m.records.Set(float64(n))
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
