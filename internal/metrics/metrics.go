// Package metrics exposes the engine's Prometheus instruments.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Turn outcome labels.
const (
	ResultOK      = "ok"
	ResultIgnored = "ignored"
	ResultError   = "error"
)

// Metrics bundles the counters and histograms the runtime reports into.
// A nil *Metrics is valid and records nothing, so callers never need to
// guard their observation sites.
type Metrics struct {
	turns        *prometheus.CounterVec
	replies      prometheus.Counter
	dialogStarts *prometheus.CounterVec
	turnDuration prometheus.Histogram
}

// New registers the picbot instruments with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		turns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "picbot_turns_total",
			Help: "Inbound turns processed, by outcome.",
		}, []string{"result"}),
		replies: factory.NewCounter(prometheus.CounterOpts{
			Name: "picbot_replies_total",
			Help: "Outbound replies sent.",
		}),
		dialogStarts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "picbot_dialog_starts_total",
			Help: "Dialog invocations pushed onto a conversation stack, by dialog name.",
		}, []string{"dialog"}),
		turnDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "picbot_turn_duration_seconds",
			Help:    "Wall time spent processing one turn.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveTurn records one completed turn.
func (m *Metrics) ObserveTurn(result string, took time.Duration, replies int) {
	if m == nil {
		return
	}
	m.turns.WithLabelValues(result).Inc()
	m.replies.Add(float64(replies))
	m.turnDuration.Observe(took.Seconds())
}

// DialogStarted records one dialog push.
func (m *Metrics) DialogStarted(name string) {
	if m == nil {
		return
	}
	m.dialogStarts.WithLabelValues(name).Inc()
}
