// Package metrics defines the Prometheus instruments the voice client
// exposes. They are registered against an injectable registry rather than
// the global default so a host app embedding this client can scope its own
// /metrics endpoint without colliding with other libraries.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles every instrument the session and transport layers touch.
type Metrics struct {
	EnvelopesSent       *prometheus.CounterVec
	EnvelopesReceived   *prometheus.CounterVec
	DecodeErrors        *prometheus.CounterVec
	StateTransitions    *prometheus.CounterVec
	ReconnectAttempts   prometheus.Counter
	ToolCallDuration     prometheus.Histogram
	AssistantSentenceLag prometheus.Histogram
}

// New constructs and registers every instrument against reg. Passing a
// fresh *prometheus.Registry (not prometheus.DefaultRegisterer) keeps
// multiple client instances in a process from colliding.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		EnvelopesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "voiceclient_envelopes_sent_total",
			Help: "Envelopes sent to the server, labeled by message type.",
		}, []string{"type"}),
		EnvelopesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "voiceclient_envelopes_received_total",
			Help: "Envelopes received from the server, labeled by message type.",
		}, []string{"type"}),
		DecodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "voiceclient_decode_errors_total",
			Help: "Envelope decode failures, labeled by error kind.",
		}, []string{"kind"}),
		StateTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "voiceclient_state_transitions_total",
			Help: "VoiceController state transitions, labeled by from and to state.",
		}, []string{"from", "to"}),
		ReconnectAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voiceclient_reconnect_attempts_total",
			Help: "MediaLink reconnect attempts.",
		}),
		ToolCallDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "voiceclient_tool_call_duration_seconds",
			Help:    "Time from ToolUseRequest to ToolUseResult.",
			Buckets: prometheus.DefBuckets,
		}),
		AssistantSentenceLag: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "voiceclient_assistant_sentence_lag_seconds",
			Help:    "Time between consecutive AssistantSentence chunks within one answer.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.EnvelopesSent, m.EnvelopesReceived, m.DecodeErrors,
		m.StateTransitions, m.ReconnectAttempts, m.ToolCallDuration, m.AssistantSentenceLag,
	)

	return m
}
