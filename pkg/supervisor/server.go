package supervisor

import (
	"context"

	"github.com/model-tools/inferd-entry/pkg/config"
	"github.com/model-tools/inferd-entry/pkg/errors"
	"github.com/model-tools/inferd-entry/pkg/logging"
	"github.com/model-tools/inferd-entry/pkg/process"
	"github.com/model-tools/inferd-entry/pkg/processfile"
	"github.com/model-tools/inferd-entry/pkg/processstate"
)

// ServerManager owns the primary inferd server child: it launches it,
// waits on it, and is the only component that terminates it. At most one
// server handle exists per supervisor lifetime.
type ServerManager struct {
	execute   process.StdExecuteCmd
	terminate func(pid int) error
	isRunning func(pid int) (bool, error)
	pidFiles  *processfile.Manager
	logger    logging.Logger
	handle    *Handle
}

func NewServerManager(cfg *config.Config, pidFiles *processfile.Manager, logger logging.Logger) *ServerManager {
	execution := process.ExecutionConfig{
		ExecutablePath: cfg.ServerBin,
		Args:           cfg.ServerArgs,
		Environment: []string{
			"INFERD_HOST=" + cfg.BindAddress,
			"INFERD_MODELS=" + cfg.StorageRoot,
		},
	}

	return &ServerManager{
		execute:   process.NewStdExecuteCmd(execution, string(RoleServer), logger),
		terminate: process.SendTerminationSignal,
		isRunning: processstate.IsProcessRunning,
		pidFiles:  pidFiles,
		logger:    logger,
	}
}

// Launch spawns the server. Failure here is the supervisor's only fatal
// error path.
func (m *ServerManager) Launch(ctx context.Context) (*Handle, error) {
	if m.handle != nil {
		return nil, errors.NewInternalError("server already launched", nil)
	}

	proc, output, err := m.execute(ctx)
	if err != nil {
		return nil, errors.NewProcessError("failed to launch server", err)
	}

	m.handle = newHandle(RoleServer, proc)
	go forwardOutput(RoleServer, output, m.logger)

	if err := m.pidFiles.WritePIDFile(string(RoleServer), m.handle.PID()); err != nil {
		m.logger.Warnf("Failed to write server PID file (ignored): %v", err)
	}

	return m.handle, nil
}

// Wait blocks until the server exits and returns its exit code.
func (m *ServerManager) Wait(h *Handle) (int, error) {
	state, err := h.proc.Wait()
	h.markTerminated()

	if removeErr := m.pidFiles.RemovePIDFile(string(RoleServer)); removeErr != nil {
		m.logger.Warnf("Failed to remove server PID file (ignored): %v", removeErr)
	}

	if err != nil {
		return 1, errors.NewProcessError("failed to wait for server", err).WithContext("pid", h.PID())
	}
	return state.ExitCode(), nil
}

// Terminate sends a termination request without blocking for exit.
// Idempotent: a handle that is already terminated is left alone.
func (m *ServerManager) Terminate(h *Handle) {
	requestTermination(h, m.terminate, m.logger)
}

// Kill forcibly ends the server after the shutdown grace period expired.
func (m *ServerManager) Kill(h *Handle) {
	if h == nil {
		return
	}
	if running, _ := m.isRunning(h.PID()); !running {
		return
	}

	m.logger.Warnf("Killing server after grace period, pid: %d", h.PID())
	if h.proc != nil {
		if err := h.proc.Kill(); err != nil {
			m.logger.Warnf("Kill failed (ignored), pid: %d, error: %v", h.PID(), err)
		}
	}
}
