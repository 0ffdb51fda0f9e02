package actions

import (
	"context"
	"time"

	"github.com/linhnt2803/simple-web-ui-tester/pkg/browser"
	"github.com/linhnt2803/simple-web-ui-tester/pkg/metrics"
)

// SessionPool hands out page sessions. *browser.Pool implements it.
type SessionPool interface {
	AcquireSession(ctx context.Context) (*browser.Session, error)
	CloseBrowser()
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithCloseAfterRun closes the shared browser after every run.
func WithCloseAfterRun(closeAfterRun bool) RunnerOption {
	return func(r *Runner) {
		r.closeAfterRun = closeAfterRun
	}
}

// WithRunMetrics records run outcomes into m.
func WithRunMetrics(m *metrics.Metrics) RunnerOption {
	return func(r *Runner) {
		r.metrics = m
	}
}

// Runner runs top-level command sequences on a leased page.
type Runner struct {
	engine        *Engine
	formatter     *Formatter
	pool          SessionPool
	closeAfterRun bool
	metrics       *metrics.Metrics
}

// NewRunner creates a runner using engine and pages leased from pool.
func NewRunner(engine *Engine, pool SessionPool, opts ...RunnerOption) *Runner {
	r := &Runner{
		engine:    engine,
		formatter: NewFormatter(engine.Registry()),
		pool:      pool,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run formats raw and runs the result. Formatting errors are returned before
// any browser work starts.
func (r *Runner) Run(ctx context.Context, raw any) (*Report, error) {
	cmds, err := r.formatter.FormatActions(raw)
	if err != nil {
		return nil, err
	}
	return r.RunActions(ctx, cmds)
}

// RunActions leases a page, runs cmds on it and releases the page on every
// exit path. When the pool cannot provide a page no report is returned.
func (r *Runner) RunActions(ctx context.Context, cmds []Instance) (report *Report, err error) {
	start := time.Now()
	defer func() {
		r.metrics.RecordRun(metrics.Status(err), time.Since(start).Seconds())
		if r.closeAfterRun {
			r.pool.CloseBrowser()
		}
	}()

	session, err := r.pool.AcquireSession(ctx)
	if err != nil {
		debugLog.Errorf("Failed to acquire session: %v", err)
		return nil, err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			debugLog.Warnf("Ignoring page close error for lease %s: %v", session.ID, cerr)
		}
	}()

	debugLog.Infof("Running %d command(s) on lease %s", len(cmds), session.ID)
	return r.engine.RunOnPage(ctx, cmds, session.Page)
}
