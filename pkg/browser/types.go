package browser

import (
	"context"
	"time"
)

// Driver launches browser processes.
type Driver interface {
	Launch(ctx context.Context, opts LaunchOptions) (Browser, error)
}

// Browser is one running browser process.
type Browser interface {
	// NewPage opens a fresh page.
	NewPage(ctx context.Context) (Page, error)

	// Close terminates the process.
	Close() error

	// OnDisconnected registers fn to run when the process goes away, whether
	// closed or crashed.
	OnDisconnected(fn func())
}

// Page is a single browser tab.
type Page interface {
	Navigate(ctx context.Context, url string, opts NavigateOptions) error

	// Evaluate runs a JavaScript function expression in the page with arg as
	// its single argument and returns the JSON-decoded result.
	Evaluate(ctx context.Context, script string, arg any) (any, error)

	Title(ctx context.Context) (string, error)

	// Screenshot writes a PNG of the viewport to path.
	Screenshot(ctx context.Context, path string) error

	Close() error

	// OnClose registers fn to run once the page has been closed.
	OnClose(fn func())
}

// LaunchOptions configures a browser launch.
type LaunchOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport sets the page size for new pages
	Viewport Viewport
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful
	// Valid values: "load", "domcontentloaded", "networkidle0", "networkidle2"
	WaitUntil string

	// Timeout bounds the navigation (0 means no timeout)
	Timeout time.Duration
}
