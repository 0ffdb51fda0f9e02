package actions

import (
	"fmt"
	"time"
)

// Meta holds the resolved parameters of one command. After formatting it
// contains exactly the command's meta keys; absent keys map to nil.
type Meta map[string]any

// String returns the value for key rendered as text, or "" when absent.
func (m Meta) String(key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the integer value for key. ok is false when the value is
// absent or not an integer.
func (m Meta) Int(key string) (n int64, ok bool) {
	switch v := m[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// Instance is a validated command ready to run.
type Instance struct {
	Name string `json:"name" yaml:"name"`
	Meta Meta   `json:"meta" yaml:"meta"`
}

// RawAction is the structured form of a command before formatting. When
// Template is set, Meta is ignored and derived from the template.
type RawAction struct {
	Name     string         `json:"name" yaml:"name"`
	Template string         `json:"template,omitempty" yaml:"template,omitempty"`
	Meta     map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Result is the outcome of one command.
type Result struct {
	Summary string `json:"summary"`

	// Duration in milliseconds
	Duration int64 `json:"duration"`

	Note      string `json:"note,omitempty"`
	PageTitle string `json:"page_title,omitempty"`

	// Result is the nested report of a group command
	Result *Report `json:"result,omitempty"`
}

// Report is the timed outcome of one command sequence.
type Report struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Duration in milliseconds, EndTime minus StartTime
	Duration int64 `json:"duration"`

	Commands []Result `json:"commands"`
}

func newReport(start time.Time) *Report {
	return &Report{
		StartTime: start,
		EndTime:   start,
		Commands:  []Result{},
	}
}

func (r *Report) finish(end time.Time) {
	r.EndTime = end
	r.Duration = end.Sub(r.StartTime).Milliseconds()
}

// CountCommands returns the number of results in the report including the
// results of nested groups.
func (r *Report) CountCommands() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, c := range r.Commands {
		n++
		n += c.Result.CountCommands()
	}
	return n
}
