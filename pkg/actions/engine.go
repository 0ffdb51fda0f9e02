package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/linhnt2803/simple-web-ui-tester/pkg/browser"
	"github.com/linhnt2803/simple-web-ui-tester/pkg/config"
	"github.com/linhnt2803/simple-web-ui-tester/pkg/logging"
	"github.com/linhnt2803/simple-web-ui-tester/pkg/metrics"
)

var debugLog *logging.Logger

func init() {
	var err error
	debugLog, err = logging.NewLogger("actions")
	if err != nil {
		debugLog.Warnf("Failed to initialize actions logger, using stderr fallback: %v", err)
	}
}

// Defaults are the values commands fall back to when their meta leaves a
// setting out.
type Defaults struct {
	// NavigationTimeout bounds go_to when no timeout is given
	NavigationTimeout time.Duration

	// WaitUntil is the go_to lifecycle event when none is given
	WaitUntil string

	// ScreenshotDir is the base directory for relative capture paths
	ScreenshotDir string
}

// DefaultsFrom reads command defaults from the runtime configuration.
func DefaultsFrom(cfg *config.Config) Defaults {
	return Defaults{
		NavigationTimeout: cfg.Actions.DefaultTimeout,
		WaitUntil:         cfg.Actions.DefaultWaitUntil,
		ScreenshotDir:     cfg.Screenshots.Dir,
	}
}

// Exec is what a command gets to work with while it runs.
type Exec struct {
	Page     browser.Page
	Defaults Defaults

	engine *Engine
}

// Run executes nested commands on the same page.
func (x *Exec) Run(ctx context.Context, cmds []Instance) (*Report, error) {
	return x.engine.RunOnPage(ctx, cmds, x.Page)
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithDefaults sets the command defaults.
func WithDefaults(d Defaults) EngineOption {
	return func(e *Engine) {
		e.defaults = d
	}
}

// WithMetrics records per-command metrics into m.
func WithMetrics(m *metrics.Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// Engine runs command sequences against a page.
type Engine struct {
	registry *Registry
	defaults Defaults
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewEngine creates an engine resolving commands in reg.
func NewEngine(reg *Registry, opts ...EngineOption) *Engine {
	e := &Engine{
		registry: reg,
		defaults: Defaults{
			NavigationTimeout: config.DefaultNavigationTimeout,
			WaitUntil:         config.DefaultWaitUntil,
			ScreenshotDir:     ".",
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the registry the engine resolves commands in.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// RunOnPage runs cmds in order. Each command finishes before the next one
// starts. On failure the remaining commands are skipped and the report of
// the commands that completed is returned together with a *CommandError.
// A command that fails but still returns a result (a group with its partial
// nested report) is included.
func (e *Engine) RunOnPage(ctx context.Context, cmds []Instance, page browser.Page) (*Report, error) {
	report := newReport(e.now())
	if len(cmds) == 0 {
		return report, nil
	}

	x := &Exec{Page: page, Defaults: e.defaults, engine: e}
	for _, inst := range cmds {
		cmd, ok := e.registry.Lookup(inst.Name)
		if !ok {
			report.finish(e.now())
			return report, withFrame(inst.Name, fmt.Errorf("invalid action name '%s'", inst.Name))
		}

		debugLog.Debugf("Running %s", inst.Name)
		start := time.Now()
		res, err := cmd.Execute(ctx, inst.Meta, x)
		e.metrics.RecordCommand(inst.Name, metrics.Status(err), time.Since(start).Seconds())
		if err != nil {
			if res != nil {
				report.Commands = append(report.Commands, *res)
			}
			report.finish(e.now())
			cerr := withFrame(inst.Name, err)
			debugLog.Warnf("Command failed: %v", cerr)
			return report, cerr
		}
		report.Commands = append(report.Commands, *res)
	}

	report.finish(e.now())
	return report, nil
}
