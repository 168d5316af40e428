package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slotify",
			Name:      "api_requests_total",
			Help:      "Backend requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	apiErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slotify",
			Name:      "api_errors_total",
			Help:      "Failed backend requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	flowTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slotify",
			Name:      "flow_transitions_total",
			Help:      "State machine transitions by flow and target state.",
		},
		[]string{"flow", "state"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(apiRequests, apiErrors, flowTransitions)
	})
}

// IncRequest increments the request counter for an endpoint label.
func IncRequest(endpoint string) {
	apiRequests.WithLabelValues(endpoint).Inc()
}

// IncError increments the error counter for an endpoint label.
func IncError(endpoint string) {
	apiErrors.WithLabelValues(endpoint).Inc()
}

// IncTransition increments the transition counter for a flow/state pair.
func IncTransition(flow, state string) {
	flowTransitions.WithLabelValues(flow, state).Inc()
}

// Handler exposes the default registry for the monitoring listener.
func Handler() http.Handler {
	return promhttp.Handler()
}
