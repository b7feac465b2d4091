package supervisor

// State tracks the orchestrator's progress through its fixed sequence.
type State string

const (
	StateScanning          State = "scanning"
	StateServerStarting    State = "server_starting"
	StateProbing           State = "probing"
	StateCompanionDeciding State = "companion_deciding"
	StateSupervising       State = "supervising"
	StateShuttingDown      State = "shutting_down"
	StateExited            State = "exited"
)

func (s *Supervisor) setState(next State) {
	if s.state != "" {
		s.logger.Debugf("State transition: %s -> %s", s.state, next)
	}
	s.state = next
}

// CurrentState is exposed for observability and tests.
func (s *Supervisor) CurrentState() State {
	return s.state
}
