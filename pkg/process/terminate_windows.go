//go:build windows

package process

import (
	"fmt"
	"os"

	"github.com/model-tools/inferd-entry/pkg/processstate"
)

// SendTerminationSignal requests termination of a child on Windows. Console
// signal delivery to process groups is unreliable from a non-console parent,
// so the process is killed outright. A process that is already gone is not
// an error.
func SendTerminationSignal(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("invalid PID: %d", pid)
	}

	running, err := processstate.IsProcessRunning(pid)
	if err != nil || !running {
		return nil
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return nil
	}
	return proc.Kill()
}
