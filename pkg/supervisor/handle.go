package supervisor

import (
	"os"
	"sync"

	"github.com/model-tools/inferd-entry/pkg/logging"
)

// Role tags a supervised child process.
type Role string

const (
	RoleServer    Role = "server"
	RoleCompanion Role = "companion"
)

// Liveness is the coarse lifecycle state of a handle. A handle moves from
// running to terminated exactly once; terminated covers both "termination
// requested" and "exit confirmed".
type Liveness string

const (
	LivenessRunning    Liveness = "running"
	LivenessTerminated Liveness = "terminated"
)

// Handle represents a spawned, supervised child process. It is created by
// the manager that launched the child and owned by it exclusively; the
// signal path only requests termination through the owning manager.
type Handle struct {
	role Role
	pid  int
	proc *os.Process

	mu    sync.Mutex
	state Liveness
}

func newHandle(role Role, proc *os.Process) *Handle {
	return &Handle{
		role:  role,
		pid:   proc.Pid,
		proc:  proc,
		state: LivenessRunning,
	}
}

func (h *Handle) Role() Role {
	return h.role
}

func (h *Handle) PID() int {
	return h.pid
}

func (h *Handle) Liveness() Liveness {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// markTerminated flips the handle to terminated and reports whether this
// call was the one that did it. Both the shutdown path and the wait path
// call this; whichever loses simply gets false.
func (h *Handle) markTerminated() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == LivenessTerminated {
		return false
	}
	h.state = LivenessTerminated
	return true
}

// requestTermination asks the child to exit without blocking for it.
// Terminating an already-terminated handle is a no-op, and a send failure
// is logged and swallowed: the process may have exited on its own.
func requestTermination(h *Handle, terminate func(pid int) error, logger logging.Logger) {
	if h == nil {
		return
	}
	if !h.markTerminated() {
		logger.Debugf("Termination already requested, role: %s, pid: %d", h.Role(), h.PID())
		return
	}

	logger.Infof("Requesting termination, role: %s, pid: %d", h.Role(), h.PID())
	if err := terminate(h.PID()); err != nil {
		logger.Warnf("Termination request failed (ignored), role: %s, pid: %d, error: %v",
			h.Role(), h.PID(), err)
	}
}
