package process

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/model-tools/inferd-entry/pkg/errors"
	"github.com/model-tools/inferd-entry/pkg/logging"
)

// ExecutionConfig describes how to spawn a supervised child process.
type ExecutionConfig struct {
	ExecutablePath   string   `yaml:"executable_path"`
	Args             []string `yaml:"args,omitempty"`
	Environment      []string `yaml:"environment,omitempty"`
	WorkingDirectory string   `yaml:"working_directory,omitempty"`
}

// StdExecuteCmd spawns a child process and returns its handle together with
// a reader over the child's combined stdout/stderr.
type StdExecuteCmd func(ctx context.Context) (*os.Process, io.ReadCloser, error)

// NewStdExecuteCmd builds the standard execution command for a child with
// the given role id. The child inherits the supervisor's environment with
// the configured entries appended, and runs in its own process group so a
// termination signal reaches its whole process tree.
func NewStdExecuteCmd(execution ExecutionConfig, id string, logger logging.Logger) StdExecuteCmd {
	return func(ctx context.Context) (*os.Process, io.ReadCloser, error) {
		if ctx == nil {
			return nil, nil, errors.NewValidationError("context cannot be nil", nil).WithContext("id", id)
		}

		if err := ValidateExecutionConfig(execution); err != nil {
			logger.Errorf("Execution configuration validation failed, id: %s, error: %v", id, err)
			return nil, nil, errors.NewValidationError("invalid execution configuration", err).WithContext("id", id)
		}

		path, err := exec.LookPath(execution.ExecutablePath)
		if err != nil {
			return nil, nil, errors.NewProcessError("executable not found", err).
				WithContext("id", id).
				WithContext("executable_path", execution.ExecutablePath)
		}

		logger.Debugf("Executing process, id: %s, path: '%s', args: %v, working directory: '%s'",
			id, path, execution.Args, execution.WorkingDirectory)

		env := os.Environ()
		env = append(env, execution.Environment...)

		cmd := exec.CommandContext(ctx, path, execution.Args...)
		cmd.Dir = execution.WorkingDirectory
		cmd.Env = env

		// Platform-specific process group setup lives in execute_unix.go
		// and execute_windows.go.
		setupProcessAttributes(cmd)

		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return nil, nil, errors.NewProcessError("failed to create stdout pipe", err).WithContext("id", id)
		}
		cmd.Stderr = cmd.Stdout

		if err := cmd.Start(); err != nil {
			return nil, nil, errors.NewProcessError("failed to start the process", err).
				WithContext("id", id).
				WithContext("executable_path", execution.ExecutablePath)
		}

		logger.Infof("Started process, id: %s, pid: %d", id, cmd.Process.Pid)

		return cmd.Process, stdout, nil
	}
}
