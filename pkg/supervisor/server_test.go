package supervisor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/model-tools/inferd-entry/pkg/errors"
)

func newTestServerManager(t *testing.T, terminateCalls *int) *ServerManager {
	return &ServerManager{
		execute: func(ctx context.Context) (*os.Process, io.ReadCloser, error) {
			return selfProcess(t), io.NopCloser(strings.NewReader("")), nil
		},
		terminate: func(pid int) error {
			*terminateCalls++
			return nil
		},
		isRunning: func(pid int) (bool, error) { return false, nil },
		logger:    &SupervisorMockLogger{},
	}
}

func TestServerLaunch(t *testing.T) {
	calls := 0
	manager := newTestServerManager(t, &calls)

	handle, err := manager.Launch(context.Background())

	require.NoError(t, err)
	require.NotNil(t, handle)
	assert.Equal(t, RoleServer, handle.Role())
	assert.Equal(t, os.Getpid(), handle.PID())
	assert.Equal(t, LivenessRunning, handle.Liveness())
}

func TestServerLaunch_SecondLaunchRejected(t *testing.T) {
	calls := 0
	manager := newTestServerManager(t, &calls)

	_, err := manager.Launch(context.Background())
	require.NoError(t, err)

	_, err = manager.Launch(context.Background())

	assert.Error(t, err)
	assert.True(t, errors.IsInternalError(err))
}

func TestServerLaunch_SpawnFailure(t *testing.T) {
	manager := &ServerManager{
		execute: func(ctx context.Context) (*os.Process, io.ReadCloser, error) {
			return nil, nil, fmt.Errorf("executable not found")
		},
		logger: &SupervisorMockLogger{},
	}

	handle, err := manager.Launch(context.Background())

	assert.Nil(t, handle)
	assert.Error(t, err)
	assert.True(t, errors.IsProcessError(err))
}

func TestServerTerminate_Idempotent(t *testing.T) {
	calls := 0
	manager := newTestServerManager(t, &calls)
	handle, err := manager.Launch(context.Background())
	require.NoError(t, err)

	manager.Terminate(handle)
	manager.Terminate(handle)

	assert.Equal(t, 1, calls)
	assert.Equal(t, LivenessTerminated, handle.Liveness())
}

func TestServerTerminate_NilHandleIsNoOp(t *testing.T) {
	calls := 0
	manager := newTestServerManager(t, &calls)

	manager.Terminate(nil)

	assert.Equal(t, 0, calls)
}

func TestServerKill_SkipsDeadProcess(t *testing.T) {
	calls := 0
	manager := newTestServerManager(t, &calls)
	handle := runningHandle(RoleServer, 424242)

	// isRunning reports false, so Kill must not touch the process.
	manager.Kill(handle)

	assert.Equal(t, LivenessRunning, handle.Liveness())
}
