// Package browser owns the shared browser process and leases out pages to
// command runs.
//
// # Driver boundary
//
// The pool talks to the browser only through the Driver, Browser and Page
// interfaces declared in types.go. PlaywrightDriver implements them with
// playwright-go; package browsertest provides an in-memory fake for tests.
//
// # Pool lifecycle
//
// A Pool is either Empty (no live browser) or Live (one browser, zero or
// more outstanding leases):
//
//  1. AcquireSession launches a browser when the pool is Empty, or when the
//     live browser is older than the idle threshold and has no leases.
//  2. Each acquired Session holds one lease. The lease is released by
//     Session.Close, by the page's own close event, or by ReleaseSession,
//     whichever happens first.
//  3. When the browser disconnects unexpectedly the pool drops back to
//     Empty and forgets every lease without touching the dead pages.
//
// Launches are serialized through a singleflight group, so concurrent
// acquisitions wait on one launch instead of racing to start browsers.
//
// # Example Usage
//
//	pool := browser.NewPool(browser.NewPlaywrightDriver(), browser.PoolConfig{
//	    Headless:      true,
//	    IdleThreshold: 16 * time.Hour,
//	})
//	defer pool.Shutdown()
//
//	session, err := pool.AcquireSession(ctx)
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
//
//	err = session.Page.Navigate(ctx, "https://example.com", browser.NavigateOptions{
//	    WaitUntil: "load",
//	})
package browser
