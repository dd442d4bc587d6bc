package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters exported by the social engine
type Metrics struct {
	FollowsToggled  *prometheus.CounterVec
	MessagesSent    prometheus.Counter
	MessagesBlocked prometheus.Counter
}

// New registers and returns the engine's Prometheus counters
func New() *Metrics {
	m := &Metrics{
		FollowsToggled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "follow_toggles_total",
				Help: "Total number of follow toggles, by resulting state",
			},
			[]string{"state"},
		),
		MessagesSent: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "messages_sent_total",
				Help: "Total number of successfully sent direct messages",
			},
		),
		MessagesBlocked: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "messages_blocked_total",
				Help: "Total number of sends rejected by the mutual-follow gate",
			},
		),
	}

	prometheus.MustRegister(m.FollowsToggled)
	prometheus.MustRegister(m.MessagesSent)
	prometheus.MustRegister(m.MessagesBlocked)

	return m
}
