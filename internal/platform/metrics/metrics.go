package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector agrupa las métricas Prometheus del dashboard.
type Collector struct {
	Registry *prometheus.Registry

	backend          string
	storeOps         *prometheus.CounterVec
	storeDuration    *prometheus.HistogramVec
	callbackDuration *prometheus.HistogramVec
	callbackErrors   *prometheus.CounterVec
}

// New crea el collector y lo registra en un registry propio.
// backend etiqueta las métricas del store (memory, mongo, postgres).
func New(backend string) *Collector {
	c := &Collector{
		Registry: prometheus.NewRegistry(),
		backend:  backend,
		storeOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelter_store_operations_total",
				Help: "Store operations by operation, backend and result",
			},
			[]string{"op", "backend", "result"},
		),
		storeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shelter_store_operation_duration_seconds",
				Help:    "Duration of store round trips in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
			},
			[]string{"op", "backend"},
		),
		callbackDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shelter_callback_duration_seconds",
				Help:    "Duration of dashboard callbacks in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
			},
			[]string{"callback"},
		),
		callbackErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelter_callback_errors_total",
				Help: "Dashboard callbacks that returned an error",
			},
			[]string{"callback"},
		),
	}

	c.Registry.MustRegister(
		c.storeOps,
		c.storeDuration,
		c.callbackDuration,
		c.callbackErrors,
	)

	return c
}

// ObserveStore registra un round trip al store. Acepta receptor nil.
func (c *Collector) ObserveStore(op string, d time.Duration, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.storeOps.WithLabelValues(op, c.backend, result).Inc()
	c.storeDuration.WithLabelValues(op, c.backend).Observe(d.Seconds())
}

// ObserveCallback registra una evaluación de callback.
func (c *Collector) ObserveCallback(name string, d time.Duration, err error) {
	if c == nil {
		return
	}
	c.callbackDuration.WithLabelValues(name).Observe(d.Seconds())
	if err != nil {
		c.callbackErrors.WithLabelValues(name).Inc()
	}
}
