package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "operations_total",
			Help:      "Completed ledger and billing operations by name.",
		},
		[]string{"op"},
	)

	operationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "operation_errors_total",
			Help:      "Failed ledger and billing operations by name.",
		},
		[]string{"op"},
	)

	eventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "events_total",
			Help:      "Published domain events by type.",
		},
		[]string{"type"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(operations, operationErrors, eventsTotal)
	})
}

// IncOp increments the success counter for an operation label.
func IncOp(op string) {
	operations.WithLabelValues(op).Inc()
}

// IncOpError increments the failure counter for an operation label.
func IncOpError(op string) {
	operationErrors.WithLabelValues(op).Inc()
}

// IncEvent increments the counter for a published domain event type.
func IncEvent(eventType string) {
	eventsTotal.WithLabelValues(eventType).Inc()
}
