//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// setupProcessAttributes places the child in its own process group, so that
// signaling -pid reaches the child and everything it forks.
func setupProcessAttributes(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}
