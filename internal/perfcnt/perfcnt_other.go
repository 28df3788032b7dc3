//go:build !linux

package perfcnt

import "errors"

// ErrUnsupported is returned by [Open] on platforms other than Linux,
// which lack perf_event_open.
var ErrUnsupported = errors.New("perfcnt: hardware counters are only available on linux")

// Counter is a no-op stand-in outside Linux.
type Counter struct{}

// Open always fails off Linux.
func Open() (*Counter, error) {
	return nil, ErrUnsupported
}

func (c *Counter) Reset() error          { return nil }
func (c *Counter) Enable() error         { return nil }
func (c *Counter) Disable() error        { return nil }
func (c *Counter) Read() (uint64, error) { return 0, ErrUnsupported }
func (c *Counter) Close() error          { return nil }
