// Package observability owns prometheus collectors for the session engine.
package observability

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	sessionCommands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relpc",
			Subsystem: "session",
			Name:      "commands_total",
			Help:      "RELP commands acknowledged by the peer.",
		},
		[]string{"command", "status"},
	)
	sessionFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relpc",
			Subsystem: "session",
			Name:      "failures_total",
			Help:      "RELP sessions entering the failed state.",
		},
		[]string{"reason"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(sessionCommands, sessionFailures)
	})
}

// RecordCommand counts one acknowledged command by peer status code.
func RecordCommand(command string, status int) {
	RegisterMetrics()
	sessionCommands.WithLabelValues(command, strconv.Itoa(status)).Inc()
}

// RecordSessionFailure counts one terminal session failure.
func RecordSessionFailure(reason string) {
	RegisterMetrics()
	sessionFailures.WithLabelValues(reason).Inc()
}
