package browser

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightDriver launches Chromium through playwright-go. The Playwright
// runtime is installed and started on the first launch.
type PlaywrightDriver struct {
	mu sync.Mutex
	pw *playwright.Playwright

	// SkipInstall assumes browsers and the driver are already present
	SkipInstall bool
}

// NewPlaywrightDriver creates a driver. Nothing is started until Launch.
func NewPlaywrightDriver() *PlaywrightDriver {
	return &PlaywrightDriver{}
}

func (d *PlaywrightDriver) start() (*playwright.Playwright, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pw != nil {
		return d.pw, nil
	}

	// Keep the Playwright CLI quiet so it does not interleave with run output
	opts := &playwright.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  false,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}

	if !d.SkipInstall {
		if err := playwright.Install(opts); err != nil {
			return nil, fmt.Errorf("failed to install playwright: %w", err)
		}
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	d.pw = pw
	return pw, nil
}

// Launch starts a Chromium process.
func (d *PlaywrightDriver) Launch(ctx context.Context, opts LaunchOptions) (Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := d.start()
	if err != nil {
		return nil, err
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return &playwrightBrowser{browser: b, viewport: opts.Viewport}, nil
}

// Stop shuts down the Playwright runtime. Browsers must be closed first.
func (d *PlaywrightDriver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pw == nil {
		return nil
	}
	err := d.pw.Stop()
	d.pw = nil
	return err
}

type playwrightBrowser struct {
	browser  playwright.Browser
	viewport Viewport
}

func (b *playwrightBrowser) NewPage(ctx context.Context) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := playwright.BrowserNewPageOptions{}
	if b.viewport.Width > 0 && b.viewport.Height > 0 {
		opts.Viewport = &playwright.Size{
			Width:  b.viewport.Width,
			Height: b.viewport.Height,
		}
	}

	page, err := b.browser.NewPage(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return &playwrightPage{page: page}, nil
}

func (b *playwrightBrowser) Close() error {
	return b.browser.Close()
}

func (b *playwrightBrowser) OnDisconnected(fn func()) {
	b.browser.OnDisconnected(func(playwright.Browser) {
		fn()
	})
}

type playwrightPage struct {
	page playwright.Page
}

// waitUntilState maps the accepted waitUntil values onto Playwright's
// lifecycle events. Playwright has a single network idle event.
func waitUntilState(v string) *playwright.WaitUntilState {
	var state playwright.WaitUntilState
	switch v {
	case "":
		return nil
	case "networkidle0", "networkidle2":
		state = playwright.WaitUntilState("networkidle")
	default:
		state = playwright.WaitUntilState(v)
	}
	return &state
}

func (p *playwrightPage) Navigate(ctx context.Context, url string, opts NavigateOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gotoOpts := playwright.PageGotoOptions{
		WaitUntil: waitUntilState(opts.WaitUntil),
	}
	if opts.Timeout > 0 {
		gotoOpts.Timeout = playwright.Float(float64(opts.Timeout.Milliseconds()))
	}

	if _, err := p.page.Goto(url, gotoOpts); err != nil {
		return err
	}
	return nil
}

func (p *playwrightPage) Evaluate(ctx context.Context, script string, arg any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.page.Evaluate(script, arg)
}

func (p *playwrightPage) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.page.Title()
}

func (p *playwrightPage) Screenshot(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(path),
	})
	return err
}

func (p *playwrightPage) Close() error {
	return p.page.Close()
}

func (p *playwrightPage) OnClose(fn func()) {
	p.page.OnClose(func(playwright.Page) {
		fn()
	})
}
