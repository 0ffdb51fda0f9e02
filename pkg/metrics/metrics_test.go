package metrics

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCommand(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordCommand("click_on", StatusSuccess, 0.02)
	m.RecordCommand("click_on", StatusSuccess, 0.03)
	m.RecordCommand("go_to", StatusError, 1.5)

	assert.Equal(t, 2, testutil.CollectAndCount(m.CommandCounter))

	expected := `
		# HELP webuitest_commands_total Total number of executed commands by command name and status
		# TYPE webuitest_commands_total counter
		webuitest_commands_total{command="click_on",status="success"} 2
		webuitest_commands_total{command="go_to",status="error"} 1
	`
	require.NoError(t, testutil.CollectAndCompare(m.CommandCounter, strings.NewReader(expected)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.CommandDuration))
}

func TestRecordRun(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordRun(StatusSuccess, 2)
	m.RecordRun(StatusError, 3)
	m.RecordRun(StatusSuccess, 1)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.RunCounter.WithLabelValues(StatusSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RunCounter.WithLabelValues(StatusError)))
}

func TestBrowserCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.BrowserLaunched(false)
	m.BrowserLaunched(true)
	m.BrowserDisconnected()
	m.SetActiveLeases(3)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.BrowserLaunches))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BrowserRecycles))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BrowserDisconnects))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.ActiveLeases))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordCommand("wait", StatusSuccess, 0.1)
	m.RecordRun(StatusError, 1)
	m.BrowserLaunched(true)
	m.BrowserDisconnected()
	m.SetActiveLeases(1)
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestStatus(t *testing.T) {
	assert.Equal(t, StatusSuccess, Status(nil))
	assert.Equal(t, StatusError, Status(errors.New("boom")))
}
