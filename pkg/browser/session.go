package browser

import (
	"sync"
	"time"
)

// Session is one leased page. It must be closed exactly once by its owner;
// extra Close calls are no-ops.
type Session struct {
	// ID is the lease id
	ID string

	// Page is the leased page
	Page Page

	// AcquiredAt is when the lease was recorded
	AcquiredAt time.Time

	pool      *Pool
	closeOnce sync.Once
}

// Close closes the page and releases the lease. The lease is released even
// when closing the page fails.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.Page.Close()
		if s.pool != nil {
			s.pool.ReleaseSession(s.ID)
		}
	})
	return err
}
