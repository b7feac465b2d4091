//go:build !windows

package process

import (
	"fmt"
	"syscall"
)

// SendTerminationSignal sends SIGTERM to the child's process group. A
// process that is already gone is not an error: termination of an exited
// child must stay a no-op.
func SendTerminationSignal(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("invalid PID: %d", pid)
	}

	err := syscall.Kill(-pid, syscall.SIGTERM)
	if err == syscall.ESRCH {
		return nil
	}
	return err
}
