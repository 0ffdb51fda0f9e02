package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/linhnt2803/simple-web-ui-tester/pkg/actions"
)

// Artifact file names.
const (
	ReportFile  = "report.json"
	SummaryFile = "summary.md"
)

// ArtifactWriter writes run artifacts into a directory.
type ArtifactWriter struct {
	outputDir string
	json      bool
	markdown  bool
}

// ArtifactOption customizes an ArtifactWriter.
type ArtifactOption func(*ArtifactWriter)

// WithFormats selects the artifacts WriteAll produces. Both are on by
// default.
func WithFormats(jsonReport, markdown bool) ArtifactOption {
	return func(w *ArtifactWriter) {
		w.json = jsonReport
		w.markdown = markdown
	}
}

// NewArtifactWriter creates a writer for outputDir.
func NewArtifactWriter(outputDir string, opts ...ArtifactOption) *ArtifactWriter {
	w := &ArtifactWriter{outputDir: outputDir, json: true, markdown: true}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the output directory.
func (w *ArtifactWriter) Dir() string {
	return w.outputDir
}

// WriteAll writes every enabled artifact format.
func (w *ArtifactWriter) WriteAll(summary *RunSummary) error {
	if w.json {
		if err := w.WriteReportJSON(summary); err != nil {
			return err
		}
	}
	if w.markdown {
		if err := w.WriteSummaryMarkdown(summary); err != nil {
			return err
		}
	}
	return nil
}

// WriteReportJSON writes the summary, including the report tree, as JSON.
func (w *ArtifactWriter) WriteReportJSON(summary *RunSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}
	return w.write(ReportFile, data)
}

// WriteSummaryMarkdown writes a human-readable summary.
func (w *ArtifactWriter) WriteSummaryMarkdown(summary *RunSummary) error {
	return w.write(SummaryFile, []byte(RenderMarkdown(summary)))
}

func (w *ArtifactWriter) write(name string, data []byte) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.outputDir, name), data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// RenderMarkdown renders summary as markdown.
func RenderMarkdown(summary *RunSummary) string {
	var md strings.Builder

	fmt.Fprintf(&md, "# Scenario: %s\n\n", summary.Scenario)
	fmt.Fprintf(&md, "**Status:** %s\n\n", summary.Status)
	fmt.Fprintf(&md, "**Started:** %s\n\n", summary.StartTime.Format(time.RFC3339))
	fmt.Fprintf(&md, "**Completed:** %s\n\n", summary.EndTime.Format(time.RFC3339))
	fmt.Fprintf(&md, "**Duration:** %s\n\n", summary.Duration)

	md.WriteString("## Result\n\n")
	if summary.Error != "" {
		fmt.Fprintf(&md, "❌ **Error:** %s\n\n", summary.Error)
	} else {
		md.WriteString("✅ **Success**\n\n")
	}

	if summary.Report != nil && len(summary.Report.Commands) > 0 {
		md.WriteString("## Commands\n\n")
		writeCommands(&md, summary.Report.Commands, 0)
		md.WriteString("\n")
	}

	fmt.Fprintf(&md, "**Commands run:** %d\n", summary.Commands)
	return md.String()
}

func writeCommands(md *strings.Builder, cmds []actions.Result, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, c := range cmds {
		fmt.Fprintf(md, "%s- `%s` (%d ms)", indent, c.Summary, c.Duration)
		if c.Note != "" {
			fmt.Fprintf(md, " _%s_", c.Note)
		}
		if c.PageTitle != "" {
			fmt.Fprintf(md, " title: %q", c.PageTitle)
		}
		md.WriteString("\n")
		if c.Result != nil {
			writeCommands(md, c.Result.Commands, depth+1)
		}
	}
}
