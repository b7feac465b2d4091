package supervisor

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/model-tools/inferd-entry/pkg/config"
	"github.com/model-tools/inferd-entry/pkg/logging"
	"github.com/model-tools/inferd-entry/pkg/manifest"
	"github.com/model-tools/inferd-entry/pkg/probe"
	"github.com/model-tools/inferd-entry/pkg/processfile"
)

type serverControl interface {
	Launch(ctx context.Context) (*Handle, error)
	Wait(h *Handle) (int, error)
	Terminate(h *Handle)
	Kill(h *Handle)
}

type companionControl interface {
	LaunchIfConfigured(ctx context.Context, health probe.State) *Handle
	Terminate(h *Handle)
}

type readinessProber interface {
	WaitReady(ctx context.Context) probe.State
}

type scanFunc func(root string, logger logging.Logger) []manifest.Record

// Supervisor is the container entrypoint orchestrator. It sequences the
// model scan, the server launch, the readiness probe and the companion
// decision, then blocks supervising the server until it exits on its own
// or a termination signal arrives.
type Supervisor struct {
	config    *config.Config
	logger    logging.Logger
	scan      scanFunc
	server    serverControl
	companion companionControl
	prober    readinessProber

	// signals may be pre-set by tests; Run creates it otherwise.
	signals chan os.Signal
	notify  func(c chan<- os.Signal)

	state State
}

func New(cfg *config.Config, logger logging.Logger) *Supervisor {
	pidFiles := processfile.NewManager(cfg.RunDirectory, logger)

	serverLogger := logging.NewLogger("role: server , ", logging.LogFuncs{
		Debugf: logger.Debugf,
		Infof:  logger.Infof,
		Warnf:  logger.Warnf,
		Errorf: logger.Errorf,
	})
	companionLogger := logging.NewLogger("role: companion , ", logging.LogFuncs{
		Debugf: logger.Debugf,
		Infof:  logger.Infof,
		Warnf:  logger.Warnf,
		Errorf: logger.Errorf,
	})

	return &Supervisor{
		config:    cfg,
		logger:    logger,
		scan:      manifest.Scan,
		server:    NewServerManager(cfg, pidFiles, serverLogger),
		companion: NewCompanionManager(cfg, pidFiles, companionLogger),
		prober:    probe.NewProber(cfg.ReadinessURL(), cfg.ReadyAttempts, cfg.ReadyInterval, cfg.ProbeTimeout, logger),
		notify: func(c chan<- os.Signal) {
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		},
	}
}

type waitResult struct {
	code int
	err  error
}

// Run drives the supervisor to completion and returns the process exit
// code: 0 after a signal-initiated shutdown, non-zero when the server
// cannot be spawned, the server's own exit code otherwise.
func (s *Supervisor) Run(ctx context.Context) int {
	s.setState(StateScanning)
	records := s.scan(s.config.StorageRoot, s.logger)
	s.logger.Infof("Model scan complete, cached models: %d", len(records))

	s.setState(StateServerStarting)
	serverHandle, err := s.server.Launch(ctx)
	if err != nil {
		s.logger.Errorf("Failed to start server: %v", err)
		s.setState(StateExited)
		return 1
	}

	s.setState(StateProbing)
	health := s.prober.WaitReady(ctx)

	s.setState(StateCompanionDeciding)
	companionHandle := s.companion.LaunchIfConfigured(ctx, health)

	s.setState(StateSupervising)

	if s.signals == nil {
		s.signals = make(chan os.Signal, 2)
	}
	s.notify(s.signals)
	defer signal.Stop(s.signals)

	serverExit := make(chan waitResult, 1)
	go func() {
		code, waitErr := s.server.Wait(serverHandle)
		serverExit <- waitResult{code: code, err: waitErr}
	}()

	var exitCode int
	select {
	case sig := <-s.signals:
		s.logger.Infof("Received signal: %v, shutting down", sig)
		s.setState(StateShuttingDown)
		s.shutdown(companionHandle, serverHandle, serverExit)
		exitCode = 0

	case result := <-serverExit:
		if result.err != nil {
			s.logger.Errorf("Server wait failed: %v", result.err)
		}
		s.logger.Infof("Server exited on its own, code: %d", result.code)
		s.setState(StateShuttingDown)
		s.companion.Terminate(companionHandle)
		exitCode = result.code
	}

	s.setState(StateExited)
	return exitCode
}

// shutdown requests termination of both children, then waits out the grace
// period for the server to go away. Repeated signal deliveries during this
// window are absorbed by the buffered signal channel; the termination
// requests themselves are idempotent.
func (s *Supervisor) shutdown(companionHandle, serverHandle *Handle, serverExit <-chan waitResult) {
	s.companion.Terminate(companionHandle)
	s.server.Terminate(serverHandle)

	timer := time.NewTimer(s.config.GracePeriod)
	defer timer.Stop()

	select {
	case result := <-serverExit:
		s.logger.Infof("Server exited after termination request, code: %d", result.code)
	case <-timer.C:
		s.logger.Warnf("Server did not exit within grace period %v, killing", s.config.GracePeriod)
		s.server.Kill(serverHandle)
	}
}
