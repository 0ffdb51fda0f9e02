// Package report turns run reports into artifacts and console output.
package report

import (
	"time"

	"github.com/linhnt2803/simple-web-ui-tester/pkg/actions"
)

// Run status values.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// RunSummary describes one scenario run.
type RunSummary struct {
	Scenario  string          `json:"scenario"`
	Source    string          `json:"source,omitempty"`
	Status    string          `json:"status"`
	Error     string          `json:"error,omitempty"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	Duration  time.Duration   `json:"duration"`
	Commands  int             `json:"commands"`
	Report    *actions.Report `json:"report,omitempty"`
}

// NewRunSummary builds the summary of a run that started at start. report
// may be partial (or nil) when err is set.
func NewRunSummary(scenario string, start, end time.Time, rep *actions.Report, err error) *RunSummary {
	s := &RunSummary{
		Scenario:  scenario,
		Status:    StatusSuccess,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
		Commands:  rep.CountCommands(),
		Report:    rep,
	}
	if err != nil {
		s.Status = StatusFailed
		s.Error = err.Error()
	}
	return s
}

// Failed reports whether the run ended with an error.
func (s *RunSummary) Failed() bool {
	return s.Status == StatusFailed
}
