// Package browsertest provides an in-memory browser driver for tests.
//
// Pages know a fixed set of CSS selectors. Evaluate does not run JavaScript:
// it reads the selector (and optional value) from the argument, records the
// call and returns whether the selector exists, which is the contract the
// page scripts of the command package follow.
package browsertest

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/linhnt2803/simple-web-ui-tester/pkg/browser"
)

// ErrClosed is returned by operations on a closed page or browser.
var ErrClosed = errors.New("target closed")

// Call records one page operation.
type Call struct {
	Method string
	Arg    any
}

// Driver is a fake browser.Driver.
type Driver struct {
	mu sync.Mutex

	// LaunchErr fails every launch when set
	LaunchErr error

	// NewPageErr fails every page creation when set
	NewPageErr error

	// Selectors present on every new page
	Selectors []string

	// Titles maps a URL to the title reported after navigating there
	Titles map[string]string

	// LaunchGate, when set, holds every launch until it is closed or the
	// launch context is done
	LaunchGate chan struct{}

	// CrashOnSubscribe makes a browser crash as soon as a disconnect
	// callback is registered
	CrashOnSubscribe bool

	browsers []*Browser
	attempts int
}

// NewDriver creates a driver whose pages contain selectors.
func NewDriver(selectors ...string) *Driver {
	return &Driver{
		Selectors: selectors,
		Titles:    make(map[string]string),
	}
}

func (d *Driver) Launch(ctx context.Context, opts browser.LaunchOptions) (browser.Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.attempts++
	gate := d.LaunchGate
	d.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.LaunchErr != nil {
		return nil, d.LaunchErr
	}
	b := &Browser{driver: d, Options: opts}
	d.browsers = append(d.browsers, b)
	return b, nil
}

// LaunchAttempts returns how many launches were started, including failed
// and pending ones.
func (d *Driver) LaunchAttempts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attempts
}

// Launches returns how many browsers were launched.
func (d *Driver) Launches() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.browsers)
}

// Browsers returns every launched browser in launch order.
func (d *Driver) Browsers() []*Browser {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Browser(nil), d.browsers...)
}

// Last returns the most recently launched browser, or nil.
func (d *Driver) Last() *Browser {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.browsers) == 0 {
		return nil
	}
	return d.browsers[len(d.browsers)-1]
}

// Browser is a fake browser.Browser.
type Browser struct {
	Options browser.LaunchOptions

	driver       *Driver
	mu           sync.Mutex
	closed       bool
	onDisconnect []func()
	pages        []*Page
}

func (b *Browser) NewPage(ctx context.Context) (browser.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.driver.mu.Lock()
	pageErr := b.driver.NewPageErr
	selectors := b.driver.Selectors
	titles := make(map[string]string, len(b.driver.Titles))
	for k, v := range b.driver.Titles {
		titles[k] = v
	}
	b.driver.mu.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}
	if pageErr != nil {
		return nil, pageErr
	}

	p := NewPage(selectors...)
	p.titles = titles
	b.pages = append(b.pages, p)
	return p, nil
}

// Close closes the browser and fires the disconnect callbacks.
func (b *Browser) Close() error {
	return b.disconnect()
}

// Crash simulates the process going away on its own.
func (b *Browser) Crash() {
	_ = b.disconnect()
}

func (b *Browser) disconnect() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.closed = true
	callbacks := append([]func(){}, b.onDisconnect...)
	b.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	return nil
}

func (b *Browser) OnDisconnected(fn func()) {
	b.mu.Lock()
	b.onDisconnect = append(b.onDisconnect, fn)
	b.mu.Unlock()

	b.driver.mu.Lock()
	crash := b.driver.CrashOnSubscribe
	b.driver.mu.Unlock()
	if crash {
		b.Crash()
	}
}

// Closed reports whether Close or Crash was called.
func (b *Browser) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Pages returns the pages opened on this browser.
func (b *Browser) Pages() []*Page {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Page(nil), b.pages...)
}

// Page is a fake browser.Page.
type Page struct {
	// NavigateErr, TitleErr and ScreenshotErr make the matching operation fail
	NavigateErr   error
	TitleErr      error
	ScreenshotErr error

	mu      sync.Mutex
	values  map[string]any
	titles  map[string]string
	url     string
	closed  bool
	onClose []func()
	calls   []Call
}

// NewPage creates a standalone page containing selectors.
func NewPage(selectors ...string) *Page {
	values := make(map[string]any, len(selectors))
	for _, sel := range selectors {
		values[sel] = nil
	}
	return &Page{
		values: values,
		titles: make(map[string]string),
	}
}

func (p *Page) record(method string, arg any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, Call{Method: method, Arg: arg})
	if p.closed {
		return ErrClosed
	}
	return nil
}

func (p *Page) Navigate(ctx context.Context, url string, opts browser.NavigateOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.record("Navigate", url); err != nil {
		return err
	}
	if p.NavigateErr != nil {
		return p.NavigateErr
	}

	p.mu.Lock()
	p.url = url
	p.mu.Unlock()
	return nil
}

// Evaluate treats a string argument as a selector and a map argument as
// {selector, value}. It returns whether the selector exists and stores the
// value when one is given.
func (p *Page) Evaluate(ctx context.Context, script string, arg any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.record("Evaluate", arg); err != nil {
		return nil, err
	}

	var selector string
	var value any
	hasValue := false
	switch a := arg.(type) {
	case string:
		selector = a
	case map[string]any:
		selector, _ = a["selector"].(string)
		value, hasValue = a["value"]
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.values[selector]; !ok {
		return false, nil
	}
	if hasValue {
		p.values[selector] = value
	}
	return true, nil
}

func (p *Page) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := p.record("Title", nil); err != nil {
		return "", err
	}
	if p.TitleErr != nil {
		return "", p.TitleErr
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.titles[p.url], nil
}

// Screenshot writes a placeholder file to path.
func (p *Page) Screenshot(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.record("Screenshot", path); err != nil {
		return err
	}
	if p.ScreenshotErr != nil {
		return p.ScreenshotErr
	}
	return os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0600)
}

// Close closes the page and fires the close callbacks once.
func (p *Page) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.closed = true
	callbacks := append([]func(){}, p.onClose...)
	p.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	return nil
}

func (p *Page) OnClose(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onClose = append(p.onClose, fn)
}

// SetTitle sets the title reported after navigating to url.
func (p *Page) SetTitle(url, title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.titles[url] = title
}

// Value returns the last value assigned to selector.
func (p *Page) Value(selector string) any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values[selector]
}

// URL returns the last navigated URL.
func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

// Calls returns the recorded operations in order.
func (p *Page) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// Closed reports whether Close was called.
func (p *Page) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
