package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wa_capture"

// Metrics holds the Prometheus collectors for the capture agent. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	EventsTotal      *prometheus.CounterVec
	MediaDownloads   *prometheus.CounterVec
	MediaBytesTotal  *prometheus.CounterVec
	LogAppendErrors  *prometheus.CounterVec
	DeletionsTotal   prometheus.Counter
	ReconnectsTotal  prometheus.Counter
	ConnectionStatus *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		EventsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "handler",
			Name:      "events_total",
			Help:      "Total number of handled message events by outcome.",
		}, []string{"outcome"}), // outcome: text, media, unsupported, skipped, failed
		MediaDownloads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "downloads_total",
			Help:      "Total number of media downloads by kind and status.",
		}, []string{"kind", "status"}),
		MediaBytesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "bytes_total",
			Help:      "Total number of media bytes written to disk.",
		}, []string{"kind"}),
		LogAppendErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chatlog",
			Name:      "append_errors_total",
			Help:      "Total number of failed log appends by target.",
		}, []string{"target"}),
		DeletionsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "connection",
			Name:      "deletions_total",
			Help:      "Total number of deleted-message notifications recorded.",
		}),
		ReconnectsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "connection",
			Name:      "reconnects_total",
			Help:      "Total number of reconnect bootstraps.",
		}),
		ConnectionStatus: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "connection",
			Name:      "state",
			Help:      "Current connection state (1 for the active state, 0 otherwise).",
		}, []string{"state"}),
	}
}

func (m *Metrics) ObserveEvent(outcome string) {
	if m == nil {
		return
	}
	m.EventsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveDownload(kind, status string, bytes int64) {
	if m == nil {
		return
	}
	m.MediaDownloads.WithLabelValues(kind, status).Inc()
	if bytes > 0 {
		m.MediaBytesTotal.WithLabelValues(kind).Add(float64(bytes))
	}
}

func (m *Metrics) ObserveAppendError(target string) {
	if m == nil {
		return
	}
	m.LogAppendErrors.WithLabelValues(target).Inc()
}

func (m *Metrics) ObserveDeletions(n int) {
	if m == nil {
		return
	}
	m.DeletionsTotal.Add(float64(n))
}

func (m *Metrics) ObserveReconnect() {
	if m == nil {
		return
	}
	m.ReconnectsTotal.Inc()
}

// SetConnectionState marks current as the active state among all.
func (m *Metrics) SetConnectionState(current string, all []string) {
	if m == nil {
		return
	}
	for _, s := range all {
		v := 0.0
		if s == current {
			v = 1
		}
		m.ConnectionStatus.WithLabelValues(s).Set(v)
	}
}
