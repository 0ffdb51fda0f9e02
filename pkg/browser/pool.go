package browser

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/linhnt2803/simple-web-ui-tester/pkg/config"
	"github.com/linhnt2803/simple-web-ui-tester/pkg/logging"
	"github.com/linhnt2803/simple-web-ui-tester/pkg/metrics"
)

var debugLog *logging.Logger

func init() {
	var err error
	debugLog, err = logging.NewLogger("browser")
	if err != nil {
		debugLog.Warnf("Failed to initialize browser logger, using stderr fallback: %v", err)
	}
}

// PoolConfig configures a Pool.
type PoolConfig struct {
	Headless bool

	// IdleThreshold is the browser age after which an unleased browser is
	// replaced on the next acquisition. Zero disables recycling.
	IdleThreshold time.Duration

	Viewport Viewport
}

// NewPoolConfig builds a PoolConfig from the browser section of the runtime
// configuration.
func NewPoolConfig(cfg config.BrowserConfig) PoolConfig {
	return PoolConfig{
		Headless:      cfg.Headless,
		IdleThreshold: cfg.IdleThreshold,
		Viewport: Viewport{
			Width:  cfg.Viewport.Width,
			Height: cfg.Viewport.Height,
		},
	}
}

// PoolOption customizes a Pool.
type PoolOption func(*Pool)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) PoolOption {
	return func(p *Pool) {
		p.now = now
	}
}

// WithMetrics records launches, disconnects and leases into m.
func WithMetrics(m *metrics.Metrics) PoolOption {
	return func(p *Pool) {
		p.metrics = m
	}
}

// Pool owns one shared browser process and leases pages from it.
type Pool struct {
	driver  Driver
	cfg     PoolConfig
	metrics *metrics.Metrics
	now     func() time.Time

	mu         sync.Mutex
	browser    Browser
	launchedAt time.Time
	leases     map[string]time.Time
	closed     bool

	launches singleflight.Group
}

// PoolStats is a snapshot of the pool state.
type PoolStats struct {
	Live       bool
	LaunchedAt time.Time
	Leases     int
}

// NewPool creates an empty pool. No browser is launched until the first
// AcquireSession.
func NewPool(driver Driver, cfg PoolConfig, opts ...PoolOption) *Pool {
	p := &Pool{
		driver: driver,
		cfg:    cfg,
		now:    time.Now,
		leases: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AcquireSession leases a new page, launching or recycling the browser first
// when needed.
func (p *Pool) AcquireSession(ctx context.Context) (*Session, error) {
	var launched Browser
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			return nil, ErrPoolClosed
		}
		b := p.browser
		// A browser this caller just launched is used even when the
		// threshold says it is already stale, so acquisition always ends.
		if b != nil && (b == launched || !p.shouldRecycleLocked()) {
			id := uuid.NewString()
			acquiredAt := p.now()
			p.leases[id] = acquiredAt
			leases := len(p.leases)
			p.mu.Unlock()

			p.metrics.SetActiveLeases(leases)
			debugLog.Debugf("Lease %s acquired (%d outstanding)", id, leases)
			return p.openPage(ctx, b, id, acquiredAt)
		}
		p.mu.Unlock()

		// The flight outlives any single caller. Each caller waits on its own
		// context so one caller giving up does not fail the others.
		flight := p.launches.DoChan("launch", func() (any, error) {
			return p.relaunch(context.WithoutCancel(ctx))
		})
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-flight:
			if res.Err != nil {
				return nil, res.Err
			}
			launched = res.Val.(Browser)
		}
	}
}

func (p *Pool) openPage(ctx context.Context, b Browser, id string, acquiredAt time.Time) (*Session, error) {
	page, err := b.NewPage(ctx)
	if err != nil {
		p.ReleaseSession(id)
		debugLog.Errorf("Failed to open page for lease %s: %v", id, err)
		return nil, &PoolError{Op: "new page", Err: err}
	}

	page.OnClose(func() {
		p.ReleaseSession(id)
	})

	return &Session{
		ID:         id,
		Page:       page,
		AcquiredAt: acquiredAt,
		pool:       p,
	}, nil
}

// relaunch replaces the current browser unless another caller already put a
// usable one in place. It runs inside the singleflight group.
func (p *Pool) relaunch(ctx context.Context) (Browser, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.browser != nil && !p.shouldRecycleLocked() {
		b := p.browser
		p.mu.Unlock()
		return b, nil
	}
	old := p.browser
	age := p.now().Sub(p.launchedAt)
	p.browser = nil
	p.launchedAt = time.Time{}
	p.mu.Unlock()

	recycled := old != nil
	if recycled {
		debugLog.Infof("Recycling idle browser (age %s)", age.Round(time.Second))
		closeQuietly(old)
	}

	b, err := p.driver.Launch(ctx, LaunchOptions{
		Headless: p.cfg.Headless,
		Viewport: p.cfg.Viewport,
	})
	if err != nil {
		debugLog.Errorf("Browser launch failed: %v", err)
		return nil, &PoolError{Op: "launch", Err: err}
	}

	var lost atomic.Bool
	b.OnDisconnected(func() {
		lost.Store(true)
		p.handleDisconnect(b)
	})

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		closeQuietly(b)
		return nil, ErrPoolClosed
	}
	p.browser = b
	p.launchedAt = p.now()
	p.mu.Unlock()

	p.metrics.BrowserLaunched(recycled)
	if lost.Load() {
		// A disconnect before publishing found another browser in place.
		p.handleDisconnect(b)
		return nil, &PoolError{Op: "launch", Err: ErrBrowserDisconnected}
	}
	debugLog.Infof("Browser launched (headless=%t)", p.cfg.Headless)
	return b, nil
}

// shouldRecycleLocked reports whether the live browser may be replaced.
// Callers must hold p.mu.
func (p *Pool) shouldRecycleLocked() bool {
	if p.browser == nil || p.cfg.IdleThreshold <= 0 || len(p.leases) > 0 {
		return false
	}
	return p.now().Sub(p.launchedAt) >= p.cfg.IdleThreshold
}

// Recyclable reports whether the next acquisition would replace the live
// browser.
func (p *Pool) Recyclable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shouldRecycleLocked()
}

func (p *Pool) handleDisconnect(b Browser) {
	p.mu.Lock()
	if p.browser != b {
		// Already replaced or closed on purpose.
		p.mu.Unlock()
		return
	}
	p.browser = nil
	p.launchedAt = time.Time{}
	dropped := len(p.leases)
	p.leases = make(map[string]time.Time)
	p.mu.Unlock()

	p.metrics.BrowserDisconnected()
	p.metrics.SetActiveLeases(0)
	debugLog.Warnf("Browser disconnected, dropped %d outstanding lease(s)", dropped)
}

// ReleaseSession drops the lease for id. Releasing an unknown or already
// released id is a no-op.
func (p *Pool) ReleaseSession(id string) {
	p.mu.Lock()
	if _, ok := p.leases[id]; !ok {
		p.mu.Unlock()
		return
	}
	delete(p.leases, id)
	leases := len(p.leases)
	p.mu.Unlock()

	p.metrics.SetActiveLeases(leases)
	debugLog.Debugf("Lease %s released (%d outstanding)", id, leases)
}

// CloseBrowser closes the live browser, if any. Close errors are logged and
// otherwise ignored.
func (p *Pool) CloseBrowser() {
	p.mu.Lock()
	b := p.browser
	p.browser = nil
	p.launchedAt = time.Time{}
	p.leases = make(map[string]time.Time)
	p.mu.Unlock()

	p.metrics.SetActiveLeases(0)
	if b != nil {
		debugLog.Infof("Closing browser")
		closeQuietly(b)
	}
}

// Shutdown closes the browser and rejects further acquisitions.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.CloseBrowser()
}

// Stats returns a snapshot of the pool state.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PoolStats{
		Live:       p.browser != nil,
		LaunchedAt: p.launchedAt,
		Leases:     len(p.leases),
	}
}

func closeQuietly(b Browser) {
	if err := b.Close(); err != nil {
		debugLog.Warnf("Ignoring browser close error: %v", err)
	}
}
