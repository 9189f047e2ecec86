package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Session outcomes recorded by SessionsTotal.
const (
	OutcomeCompleted      = "completed"
	OutcomeTransportError = "transport_error"
	OutcomeDecodeError    = "decode_error"
	OutcomeBackendClosed  = "backend_closed"
	OutcomeBackendError   = "backend_error"
)

// Metrics contains all Prometheus metrics for the call bridge
type Metrics struct {
	// Session metrics
	SessionsActive  prometheus.Gauge
	SessionsTotal   *prometheus.CounterVec
	SessionDuration prometheus.Histogram

	// Relay metrics
	InboundBytes    prometheus.Counter
	ChunksForwarded prometheus.Counter
	OutboundFrames  prometheus.Counter
	BargeIns        prometheus.Counter
	KeepAlivesSent  prometheus.Counter

	// Agent metrics
	AgentDecodeErrors prometheus.Counter
	AgentEvents       *prometheus.CounterVec

	// Bootstrap metrics
	BootstrapFallbacks *prometheus.CounterVec
}

// NewMetrics creates all metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bridge_sessions_active",
			Help: "Current number of bridged calls",
		}),
		SessionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_sessions_total",
			Help: "Total number of finished sessions by outcome",
		}, []string{"outcome"}),
		SessionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bridge_session_duration_seconds",
			Help:    "Duration of bridged calls",
			Buckets: []float64{5, 15, 30, 60, 120, 300, 600, 1800},
		}),

		InboundBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridge_inbound_bytes_total",
			Help: "Total caller audio bytes received from telephony",
		}),
		ChunksForwarded: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridge_chunks_forwarded_total",
			Help: "Total audio chunks sent to the agent",
		}),
		OutboundFrames: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridge_outbound_frames_total",
			Help: "Total agent audio frames written back to telephony",
		}),
		BargeIns: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridge_barge_ins_total",
			Help: "Total playback clears caused by the caller speaking",
		}),
		KeepAlivesSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridge_keepalives_sent_total",
			Help: "Total keep-alive messages sent to the agent",
		}),

		AgentDecodeErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridge_agent_decode_errors_total",
			Help: "Total agent text frames that could not be decoded",
		}),
		AgentEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_agent_events_total",
			Help: "Total agent control events by type",
		}, []string{"type"}),

		BootstrapFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_bootstrap_fallbacks_total",
			Help: "Total session configurations built with a fallback prompt",
		}, []string{"variant", "reason"}),
	}
}
