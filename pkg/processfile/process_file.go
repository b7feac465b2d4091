package processfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/model-tools/inferd-entry/pkg/errors"
	"github.com/model-tools/inferd-entry/pkg/logging"
)

// Manager writes PID files for supervised children into a run directory,
// one file per role. A nil Manager disables PID files entirely, so callers
// do not need to guard every call site.
type Manager struct {
	runDir string
	logger logging.Logger
}

// NewManager returns a PID file manager, or nil when runDir is empty.
func NewManager(runDir string, logger logging.Logger) *Manager {
	if runDir == "" {
		return nil
	}
	return &Manager{
		runDir: runDir,
		logger: logger,
	}
}

// PIDFilePath returns the PID file path for the given role.
func (m *Manager) PIDFilePath(role string) string {
	return filepath.Join(m.runDir, role+".pid")
}

// WritePIDFile records the pid of a freshly spawned child.
func (m *Manager) WritePIDFile(role string, pid int) error {
	if m == nil {
		return nil
	}

	if err := os.MkdirAll(m.runDir, 0755); err != nil {
		return errors.NewIOError("failed to create run directory", err).WithContext("run_dir", m.runDir)
	}

	path := m.PIDFilePath(role)
	content := fmt.Sprintf("%d\n", pid)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.NewIOError("failed to write PID file", err).
			WithContext("pid_file", path).
			WithContext("pid", pid)
	}

	m.logger.Debugf("PID file written, role: %s, pid: %d, path: %s", role, pid, path)
	return nil
}

// RemovePIDFile discards the PID file once the child is confirmed gone.
// A missing file is not an error.
func (m *Manager) RemovePIDFile(role string) error {
	if m == nil {
		return nil
	}

	path := m.PIDFilePath(role)
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.NewIOError("failed to remove PID file", err).WithContext("pid_file", path)
	}

	m.logger.Debugf("PID file removed, role: %s, path: %s", role, path)
	return nil
}
