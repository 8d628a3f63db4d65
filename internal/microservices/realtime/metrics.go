package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type clientMetrics struct {
	framesSent        prometheus.Counter
	sendFailures      prometheus.Counter
	framesReceived    prometheus.Counter
	reconnectLoops    prometheus.Counter
	reconnectAttempts prometheus.Counter
	state             prometheus.Gauge
}

// newClientMetrics registers the client collectors on reg. A nil reg keeps
// them unregistered.
func newClientMetrics(reg prometheus.Registerer) *clientMetrics {
	factory := promauto.With(reg)
	return &clientMetrics{
		framesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "villahub",
			Subsystem: "sync",
			Name:      "frames_sent_total",
			Help:      "Frames accepted by the transport.",
		}),
		sendFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "villahub",
			Subsystem: "sync",
			Name:      "send_failures_total",
			Help:      "Sends rejected because the connection was down or the write failed.",
		}),
		framesReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "villahub",
			Subsystem: "sync",
			Name:      "frames_received_total",
			Help:      "Frames received from the server.",
		}),
		reconnectLoops: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "villahub",
			Subsystem: "sync",
			Name:      "reconnect_loops_total",
			Help:      "Reconnection loops started.",
		}),
		reconnectAttempts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "villahub",
			Subsystem: "sync",
			Name:      "reconnect_attempts_total",
			Help:      "Connection attempts made by the reconnection loop.",
		}),
		state: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "villahub",
			Subsystem: "sync",
			Name:      "connection_state",
			Help:      "0 disconnected, 1 connecting, 2 connected, 3 disconnecting.",
		}),
	}
}
