//go:build linux

/*
Package perfcnt wraps the Linux perf_event_open facility to read a
hardware CPU-cycle counter around a benchmarked operation, the same
shim original_source/tests/benchmark-1.cc builds directly against the
syscall in C++.
*/
package perfcnt

import (
	"encoding/binary"
	"io"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Counter reads the CPU_CYCLES hardware performance counter for the
// calling thread. Its zero value is not usable; construct one with
// [Open].
type Counter struct {
	fd int
}

// Open opens a per-thread cycle counter, initially disabled. Callers
// that need per-goroutine accuracy should pin the goroutine to its OS
// thread with runtime.LockOSThread before calling Open.
func Open() (*Counter, error) {
	attr := unix.PerfEventAttr{
		Type:   unix.PERF_TYPE_HARDWARE,
		Config: unix.PERF_COUNT_HW_CPU_CYCLES,
		Size:   uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
		Bits:   unix.PerfBitDisabled | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
	}

	fd, err := unix.PerfEventOpen(&attr, 0, -1, -1, 0)
	if err != nil {
		return nil, err
	}

	return &Counter{fd: fd}, nil
}

// Reset zeroes the counter.
func (c *Counter) Reset() error {
	return unix.IoctlSetInt(c.fd, unix.PERF_EVENT_IOC_RESET, 0)
}

// Enable starts counting.
func (c *Counter) Enable() error {
	return unix.IoctlSetInt(c.fd, unix.PERF_EVENT_IOC_ENABLE, 0)
}

// Disable stops counting; the count is preserved until the next Reset.
func (c *Counter) Disable() error {
	return unix.IoctlSetInt(c.fd, unix.PERF_EVENT_IOC_DISABLE, 0)
}

// Read returns the current cycle count.
func (c *Counter) Read() (uint64, error) {
	var buf [8]byte
	n, err := unix.Read(c.fd, buf[:])
	if err != nil {
		return 0, err
	}
	if n != len(buf) {
		return 0, io.ErrShortBuffer
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// Close releases the underlying file descriptor.
func (c *Counter) Close() error {
	return unix.Close(c.fd)
}
