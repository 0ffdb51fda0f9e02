package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linhnt2803/simple-web-ui-tester/pkg/actions"
)

var testStart = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func sampleReport() *actions.Report {
	return &actions.Report{
		StartTime: testStart,
		EndTime:   testStart.Add(1500 * time.Millisecond),
		Duration:  1500,
		Commands: []actions.Result{
			{Summary: "go_to <<https://example.com>>", Duration: 900, PageTitle: "Example Domain"},
			{
				Summary:  "group 'login' with 2 actions",
				Duration: 600,
				Note:     "sign in",
				Result: &actions.Report{
					StartTime: testStart,
					EndTime:   testStart,
					Commands: []actions.Result{
						{Summary: "input_to <<#user>> value <<demo>>", Duration: 100},
						{Summary: "click_on <<#login>>", Duration: 500},
					},
				},
			},
		},
	}
}

func TestNewRunSummary(t *testing.T) {
	end := testStart.Add(2 * time.Second)

	s := NewRunSummary("login", testStart, end, sampleReport(), nil)
	assert.Equal(t, StatusSuccess, s.Status)
	assert.False(t, s.Failed())
	assert.Equal(t, 4, s.Commands)
	assert.Equal(t, 2*time.Second, s.Duration)
	assert.Empty(t, s.Error)

	s = NewRunSummary("login", testStart, end, nil, errors.New("browser pool: launch failed: boom"))
	assert.True(t, s.Failed())
	assert.Equal(t, 0, s.Commands)
	assert.Equal(t, "browser pool: launch failed: boom", s.Error)
}

func TestArtifactWriterWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")
	w := NewArtifactWriter(dir)
	assert.Equal(t, dir, w.Dir())

	summary := NewRunSummary("login", testStart, testStart.Add(time.Second), sampleReport(), nil)
	require.NoError(t, w.WriteAll(summary))

	data, err := os.ReadFile(filepath.Join(dir, ReportFile))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "login", decoded["scenario"])
	assert.Equal(t, "success", decoded["status"])

	rep := decoded["report"].(map[string]any)
	cmds := rep["commands"].([]any)
	require.Len(t, cmds, 2)
	assert.Equal(t, "Example Domain", cmds[0].(map[string]any)["page_title"])
	nested := cmds[1].(map[string]any)["result"].(map[string]any)["commands"].([]any)
	assert.Len(t, nested, 2)

	md, err := os.ReadFile(filepath.Join(dir, SummaryFile))
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Scenario: login")
}

func TestArtifactWriterFormats(t *testing.T) {
	summary := NewRunSummary("login", testStart, testStart, sampleReport(), nil)

	tests := []struct {
		name         string
		json, md     bool
		wantReport   bool
		wantMarkdown bool
	}{
		{"json only", true, false, true, false},
		{"markdown only", false, true, false, true},
		{"none", false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			w := NewArtifactWriter(dir, WithFormats(tt.json, tt.md))
			require.NoError(t, w.WriteAll(summary))

			_, err := os.Stat(filepath.Join(dir, ReportFile))
			assert.Equal(t, tt.wantReport, err == nil)
			_, err = os.Stat(filepath.Join(dir, SummaryFile))
			assert.Equal(t, tt.wantMarkdown, err == nil)
		})
	}
}

func TestArtifactWriterFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	w := NewArtifactWriter(filepath.Join(blocker, "sub"))
	err := w.WriteReportJSON(&RunSummary{Scenario: "x"})
	assert.ErrorContains(t, err, "failed to create output directory")
}

func TestRenderMarkdown(t *testing.T) {
	summary := NewRunSummary("login", testStart, testStart.Add(time.Second), sampleReport(), nil)
	md := RenderMarkdown(summary)

	assert.Contains(t, md, "**Status:** success")
	assert.Contains(t, md, "✅ **Success**")
	assert.Contains(t, md, "- `go_to <<https://example.com>>` (900 ms) title: \"Example Domain\"\n")
	assert.Contains(t, md, "- `group 'login' with 2 actions` (600 ms) _sign in_\n")
	assert.Contains(t, md, "  - `click_on <<#login>>` (500 ms)\n")
	assert.Contains(t, md, "**Commands run:** 4")

	failed := NewRunSummary("login", testStart, testStart, &actions.Report{}, errors.New("click_on - Click on failed! Item '#x' not found!"))
	md = RenderMarkdown(failed)
	assert.Contains(t, md, "❌ **Error:** click_on - Click on failed! Item '#x' not found!")
	assert.NotContains(t, md, "## Commands")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"quiet":   LevelQuiet,
		"normal":  LevelNormal,
		"verbose": LevelVerbose,
		"debug":   LevelDebug,
		"":        LevelNormal,
		"loud":    LevelNormal,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestConsole(t *testing.T) {
	summary := NewRunSummary("login", testStart, testStart.Add(1234*time.Millisecond), sampleReport(), nil)

	t.Run("normal", func(t *testing.T) {
		var buf bytes.Buffer
		c := NewConsole(&buf, LevelNormal)
		c.RunStarted("login", 2)
		c.RunFinished(summary)

		out := buf.String()
		assert.Contains(t, out, "Scenario: login")
		assert.Contains(t, out, "2 command(s)")
		assert.Contains(t, out, "RUN SUMMARY")
		assert.Contains(t, out, "login: ✓ SUCCESS")
		assert.Contains(t, out, "Commands: 4")
		assert.Contains(t, out, "Duration: 1.234s")
		assert.NotContains(t, out, "click_on <<#login>>")
	})

	t.Run("verbose shows command tree", func(t *testing.T) {
		var buf bytes.Buffer
		NewConsole(&buf, LevelVerbose).RunFinished(summary)

		out := buf.String()
		assert.Contains(t, out, "  • group 'login' with 2 actions")
		assert.Contains(t, out, "    • click_on <<#login>>")
		assert.NotContains(t, out, "note: sign in")
	})

	t.Run("debug shows notes", func(t *testing.T) {
		var buf bytes.Buffer
		NewConsole(&buf, LevelDebug).RunFinished(summary)
		assert.Contains(t, buf.String(), "note: sign in")
		assert.Contains(t, buf.String(), "title: Example Domain")
	})

	t.Run("quiet prints only status and errors", func(t *testing.T) {
		var buf bytes.Buffer
		c := NewConsole(&buf, LevelQuiet)
		c.RunStarted("login", 2)
		c.Infof("progress")
		c.RunFinished(NewRunSummary("login", testStart, testStart, nil, errors.New("boom")))

		out := buf.String()
		assert.NotContains(t, out, "Scenario:")
		assert.NotContains(t, out, "progress")
		assert.NotContains(t, out, "RUN SUMMARY")
		assert.Contains(t, out, "login: ✗ FAILED")
		assert.Contains(t, out, "boom")
	})

	t.Run("warnings print at every level", func(t *testing.T) {
		var buf bytes.Buffer
		c := NewConsole(&buf, LevelQuiet)
		c.Warningf("artifacts disabled for %s", "login")
		assert.Contains(t, buf.String(), "⚠ Warning: artifacts disabled for login")
	})
}
