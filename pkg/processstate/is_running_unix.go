//go:build !windows

package processstate

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// IsProcessRunning reports whether a process with the given pid exists.
// On Unix, FindProcess always succeeds, so existence is tested by sending
// the null signal.
func IsProcessRunning(pid int) (bool, error) {
	if pid <= 0 {
		return false, fmt.Errorf("invalid PID: %d", pid)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false, err
	}

	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrProcessDone) {
		return false, nil
	}

	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false, err
	}
	switch errno {
	case syscall.ESRCH:
		return false, nil
	case syscall.EPERM:
		// The process exists, we just may not signal it.
		return true, nil
	}
	return false, err
}
