// Package metrics holds Prometheus collectors describing a shell session.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "minish"

// Metrics is a set of collectors registered on a private registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	CommandsTotal     *prometheus.CounterVec
	CommandErrors     *prometheus.CounterVec
	ChildDuration     prometheus.Histogram
	ChildExitStatuses *prometheus.CounterVec
	ScriptReplays     *prometheus.CounterVec
}

// New creates and registers the session collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands executed, labeled by kind.",
		}, []string{"kind"}),
		CommandErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_errors_total",
			Help:      "Commands that reported an error, labeled by kind.",
		}, []string{"kind"}),
		ChildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "child_duration_seconds",
			Help:      "Wall time spent waiting on child processes.",
			Buckets:   prometheus.DefBuckets,
		}),
		ChildExitStatuses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "child_exits_total",
			Help:      "Child processes that exited, labeled by success.",
		}, []string{"result"}),
		ScriptReplays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "script_replays_total",
			Help:      "Scripts replayed with exec, labeled by outcome.",
		}, []string{"outcome"}),
	}

	m.Registry.MustRegister(
		m.CommandsTotal,
		m.CommandErrors,
		m.ChildDuration,
		m.ChildExitStatuses,
		m.ScriptReplays,
	)

	return m
}

// ObserveCommand counts a command of the given kind.
func (m *Metrics) ObserveCommand(kind string) {
	if m == nil {
		return
	}
	m.CommandsTotal.WithLabelValues(kind).Inc()
}

// ObserveError counts a reported error for a command kind.
func (m *Metrics) ObserveError(kind string) {
	if m == nil {
		return
	}
	m.CommandErrors.WithLabelValues(kind).Inc()
}

// ObserveChild records a finished child process.
func (m *Metrics) ObserveChild(elapsed time.Duration, status int) {
	if m == nil {
		return
	}
	m.ChildDuration.Observe(elapsed.Seconds())

	result := "success"
	if status != 0 {
		result = "failure"
	}
	m.ChildExitStatuses.WithLabelValues(result).Inc()
}

// ObserveReplay counts a script replay outcome.
func (m *Metrics) ObserveReplay(outcome string) {
	if m == nil {
		return
	}
	m.ScriptReplays.WithLabelValues(outcome).Inc()
}

// WriteTextfile writes the current values in the node exporter textfile
// format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
