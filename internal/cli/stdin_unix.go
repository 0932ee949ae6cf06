//go:build unix

package cli

import (
	"io"
	"os"
	"syscall"
	"time"
)

// interruptibleInput returns a reader over a non-blocking duplicate of f, so the
// runtime poller owns it and a pending Read can be woken by interrupt.
// release restores blocking mode (the flag is shared with f) and closes the duplicate.
func interruptibleInput(f *os.File) (r io.Reader, interrupt func(), release func()) {
	fd, err := syscall.Dup(int(f.Fd()))
	if err != nil {
		return f, func() { _ = f.Close() }, func() {}
	}
	if err := syscall.SetNonblock(fd, true); err != nil {
		_ = syscall.Close(fd)
		return f, func() { _ = f.Close() }, func() {}
	}

	dup := os.NewFile(uintptr(fd), f.Name())
	interrupt = func() { _ = dup.SetReadDeadline(time.Now()) }
	release = func() {
		_ = syscall.SetNonblock(fd, false)
		_ = dup.Close()
	}
	return dup, interrupt, release
}
