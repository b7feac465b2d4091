package supervisor

import (
	"context"
	"strings"

	"github.com/model-tools/inferd-entry/pkg/config"
	"github.com/model-tools/inferd-entry/pkg/logging"
	"github.com/model-tools/inferd-entry/pkg/probe"
	"github.com/model-tools/inferd-entry/pkg/process"
	"github.com/model-tools/inferd-entry/pkg/processfile"
)

// CompanionManager owns the optional inferd-healthchecker child, which
// keeps the configured model list in sync once the server is reachable.
// Everything about the companion is best-effort: a spawn failure degrades
// to "no model sync" instead of failing the supervisor.
type CompanionManager struct {
	targets    []string
	strictGate bool
	execute    process.StdExecuteCmd
	terminate  func(pid int) error
	pidFiles   *processfile.Manager
	logger     logging.Logger
	handle     *Handle
}

func NewCompanionManager(cfg *config.Config, pidFiles *processfile.Manager, logger logging.Logger) *CompanionManager {
	execution := process.ExecutionConfig{
		ExecutablePath: cfg.CompanionBin,
		Environment: []string{
			// The companion reaches the server over loopback.
			"INFERD_HOST=" + cfg.ServerURL(),
			"INFERD_MODELS=" + cfg.StorageRoot,
			"INFERD_MODELS_LIST=" + strings.Join(cfg.SyncModels, ","),
		},
	}

	return &CompanionManager{
		targets:    cfg.SyncModels,
		strictGate: cfg.StrictReadinessGate,
		execute:    process.NewStdExecuteCmd(execution, string(RoleCompanion), logger),
		terminate:  process.SendTerminationSignal,
		pidFiles:   pidFiles,
		logger:     logger,
	}
}

// LaunchIfConfigured starts the healthchecker when a sync target list is
// configured. The readiness outcome is logged but does not gate the launch
// unless the strict readiness gate is enabled; the healthchecker retries
// on its own, so an unconfirmed server is still worth syncing against.
func (m *CompanionManager) LaunchIfConfigured(ctx context.Context, health probe.State) *Handle {
	if len(m.targets) == 0 {
		m.logger.Infof("No sync models configured, healthchecker will not be started")
		return nil
	}

	if !health.Healthy {
		if m.strictGate {
			m.logger.Warnf("Server readiness unconfirmed and strict readiness gate enabled, not starting healthchecker")
			return nil
		}
		m.logger.Warnf("Server readiness unconfirmed after %d attempts, starting healthchecker anyway",
			health.Attempts)
	}

	proc, output, err := m.execute(ctx)
	if err != nil {
		m.logger.Errorf("Failed to start healthchecker, continuing without model sync: %v", err)
		return nil
	}

	m.handle = newHandle(RoleCompanion, proc)
	go forwardOutput(RoleCompanion, output, m.logger)

	if err := m.pidFiles.WritePIDFile(string(RoleCompanion), m.handle.PID()); err != nil {
		m.logger.Warnf("Failed to write healthchecker PID file (ignored): %v", err)
	}

	m.logger.Infof("Healthchecker started, pid: %d, sync models: %v", m.handle.PID(), m.targets)
	return m.handle
}

// Terminate sends a termination request without blocking for exit.
// Idempotent, and safe to call with a nil handle (companion never started).
func (m *CompanionManager) Terminate(h *Handle) {
	requestTermination(h, m.terminate, m.logger)
	if h != nil {
		if err := m.pidFiles.RemovePIDFile(string(RoleCompanion)); err != nil {
			m.logger.Warnf("Failed to remove healthchecker PID file (ignored): %v", err)
		}
	}
}
