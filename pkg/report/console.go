package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/linhnt2803/simple-web-ui-tester/pkg/actions"
)

// Level is the console verbosity.
type Level int

const (
	// LevelQuiet prints errors and the final status line
	LevelQuiet Level = iota
	// LevelNormal prints run progress and the summary (default)
	LevelNormal
	// LevelVerbose adds the command tree
	LevelVerbose
	// LevelDebug adds notes and page titles to the command tree
	LevelDebug
)

// ParseLevel converts a configured verbosity to a Level.
func ParseLevel(level string) Level {
	switch level {
	case "quiet":
		return LevelQuiet
	case "verbose":
		return LevelVerbose
	case "debug":
		return LevelDebug
	default:
		return LevelNormal
	}
}

// Console prints run progress for people watching a terminal.
type Console struct {
	level Level
	w     io.Writer

	header  lipgloss.Style
	section lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	muted   lipgloss.Style
}

// NewConsole creates a console writing to w. Colors are used only when w
// is a terminal.
func NewConsole(w io.Writer, level Level) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		level:   level,
		w:       w,
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		section: r.NewStyle().Foreground(lipgloss.Color("6")),
		success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		failure: r.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// RunStarted announces a run of n top-level commands.
func (c *Console) RunStarted(scenario string, n int) {
	if c.level < LevelNormal {
		return
	}
	c.rule()
	fmt.Fprintln(c.w, c.header.Render("  Scenario: "+scenario))
	c.rule()
	fmt.Fprintln(c.w, c.muted.Render(fmt.Sprintf("  %d command(s)", n)))
}

// Warningf prints a warning at every level.
func (c *Console) Warningf(format string, args ...any) {
	fmt.Fprintln(c.w, c.warning.Render("⚠ Warning: "+fmt.Sprintf(format, args...)))
}

// Infof prints a progress line.
func (c *Console) Infof(format string, args ...any) {
	if c.level < LevelNormal {
		return
	}
	fmt.Fprintln(c.w, fmt.Sprintf(format, args...))
}

// RunFinished prints the run summary.
func (c *Console) RunFinished(s *RunSummary) {
	if c.level >= LevelVerbose && s.Report != nil && len(s.Report.Commands) > 0 {
		fmt.Fprintln(c.w)
		fmt.Fprintln(c.w, c.section.Render("▶ Commands"))
		c.printCommands(s.Report.Commands, 1)
	}

	if c.level >= LevelNormal {
		fmt.Fprintln(c.w)
		c.rule()
		fmt.Fprintln(c.w, c.header.Render("  RUN SUMMARY"))
		c.rule()
	}

	status := c.success.Render("✓ SUCCESS")
	if s.Failed() {
		status = c.failure.Render("✗ FAILED")
	}
	fmt.Fprintf(c.w, "  %s: %s\n", s.Scenario, status)

	if c.level >= LevelNormal {
		fmt.Fprintf(c.w, "  Commands: %d\n", s.Commands)
		fmt.Fprintf(c.w, "  Duration: %s\n", s.Duration.Round(time.Millisecond))
	}

	if s.Error != "" {
		fmt.Fprintln(c.w)
		fmt.Fprintln(c.w, c.failure.Render("  Error Details:"))
		fmt.Fprintln(c.w, c.failure.Render("    "+s.Error))
	}

	if c.level >= LevelNormal {
		c.rule()
	}
}

func (c *Console) printCommands(cmds []actions.Result, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, r := range cmds {
		line := fmt.Sprintf("%s• %s %s", indent, r.Summary, c.muted.Render(fmt.Sprintf("(%d ms)", r.Duration)))
		fmt.Fprintln(c.w, line)
		if c.level >= LevelDebug {
			if r.Note != "" {
				fmt.Fprintln(c.w, c.muted.Render(indent+"  note: "+r.Note))
			}
			if r.PageTitle != "" {
				fmt.Fprintln(c.w, c.muted.Render(indent+"  title: "+r.PageTitle))
			}
		}
		if r.Result != nil {
			c.printCommands(r.Result.Commands, depth+1)
		}
	}
}

func (c *Console) rule() {
	fmt.Fprintln(c.w, c.header.Render(strings.Repeat("=", 60)))
}
