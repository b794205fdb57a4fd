// Package metrics holds the Prometheus collectors of the service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Result label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultGone    = "gone"
	ResultSkipped = "skipped"
)

var (
	ShipmentTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shipment_transitions_total",
			Help: "Total number of committed shipment status transitions by target status",
		},
		[]string{"status"},
	)

	ManifestOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "manifest_operations_total",
			Help: "Total number of manifest create and receive operations by result",
		},
		[]string{"operation", "result"},
	)

	NotificationsWrittenTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_written_total",
			Help: "Total number of in-app notification rows written by event type",
		},
		[]string{"event_type"},
	)

	PushDeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "push_deliveries_total",
			Help: "Total number of web push delivery attempts by result",
		},
		[]string{"result"},
	)

	EventsDispatchedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_dispatched_total",
			Help: "Total number of domain events dispatched by kind and result",
		},
		[]string{"kind", "result"},
	)
)

// Register registers all collectors with the default registry.
func Register() {
	prometheus.MustRegister(ShipmentTransitionsTotal)
	prometheus.MustRegister(ManifestOperationsTotal)
	prometheus.MustRegister(NotificationsWrittenTotal)
	prometheus.MustRegister(PushDeliveriesTotal)
	prometheus.MustRegister(EventsDispatchedTotal)
}

// Result maps an error to the success/error label.
func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
