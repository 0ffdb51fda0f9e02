package browser

import (
	"errors"
	"fmt"
)

// ErrPoolClosed is returned by AcquireSession after Shutdown.
var ErrPoolClosed = errors.New("browser pool closed")

// ErrBrowserDisconnected is wrapped in a launch PoolError when the browser
// went away before it could be used.
var ErrBrowserDisconnected = errors.New("browser disconnected")

// PoolError reports a failure to provide a session: the browser could not be
// launched or a page could not be opened.
type PoolError struct {
	Op  string
	Err error
}

func (e *PoolError) Error() string {
	return fmt.Sprintf("browser pool: %s failed: %v", e.Op, e.Err)
}

func (e *PoolError) Unwrap() error {
	return e.Err
}
