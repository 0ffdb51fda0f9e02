// Package metrics holds the Prometheus collectors for command runs and the
// browser session pool.
//
// A nil *Metrics is valid and records nothing, so components can take one
// optionally.
//
// Usage:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//	m.RecordCommand("click_on", "success", time.Since(start).Seconds())
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "webuitest"

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics groups every collector the runner and the pool update.
type Metrics struct {
	// CommandCounter counts executed commands.
	// Labels: command, status (success|error)
	CommandCounter *prometheus.CounterVec

	// CommandDuration measures command handler time in seconds.
	// Labels: command
	CommandDuration *prometheus.HistogramVec

	// RunCounter counts top-level runs.
	// Labels: status (success|error)
	RunCounter *prometheus.CounterVec

	// RunDuration measures top-level runs in seconds.
	RunDuration prometheus.Histogram

	// BrowserLaunches counts browser processes started by the pool.
	BrowserLaunches prometheus.Counter

	// BrowserRecycles counts launches that replaced an idle browser.
	BrowserRecycles prometheus.Counter

	// BrowserDisconnects counts unexpected browser disconnects.
	BrowserDisconnects prometheus.Counter

	// ActiveLeases is the number of outstanding page leases.
	ActiveLeases prometheus.Gauge
}

// New creates the collectors and registers them with reg. Passing nil
// registers with the default Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		CommandCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Total number of executed commands by command name and status",
			},
			[]string{"command", "status"},
		),

		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "command_duration_seconds",
				Help:      "Duration of command execution in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
			[]string{"command"},
		),

		RunCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of top-level runs by status",
			},
			[]string{"status"},
		),

		RunDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of top-level runs in seconds",
				Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 900},
			},
		),

		BrowserLaunches: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "browser_launches_total",
				Help:      "Total number of browser launches",
			},
		),

		BrowserRecycles: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "browser_recycles_total",
				Help:      "Total number of idle browsers replaced by a fresh launch",
			},
		),

		BrowserDisconnects: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "browser_disconnects_total",
				Help:      "Total number of unexpected browser disconnects",
			},
		),

		ActiveLeases: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_leases",
				Help:      "Current number of leased browser pages",
			},
		),
	}
}

// RecordCommand records one command execution.
func (m *Metrics) RecordCommand(command, status string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.CommandCounter.WithLabelValues(command, status).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(durationSeconds)
}

// RecordRun records one top-level run.
func (m *Metrics) RecordRun(status string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.RunCounter.WithLabelValues(status).Inc()
	m.RunDuration.Observe(durationSeconds)
}

// BrowserLaunched counts a launch; recycled marks a launch that replaced an
// idle browser.
func (m *Metrics) BrowserLaunched(recycled bool) {
	if m == nil {
		return
	}
	m.BrowserLaunches.Inc()
	if recycled {
		m.BrowserRecycles.Inc()
	}
}

func (m *Metrics) BrowserDisconnected() {
	if m == nil {
		return
	}
	m.BrowserDisconnects.Inc()
}

// SetActiveLeases sets the outstanding lease gauge.
func (m *Metrics) SetActiveLeases(n int) {
	if m == nil {
		return
	}
	m.ActiveLeases.Set(float64(n))
}

// Status maps an error to a status label.
func Status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}
