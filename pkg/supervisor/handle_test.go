package supervisor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// SupervisorMockLogger is a simple mock implementation of Logger for testing
type SupervisorMockLogger struct{}

func (m *SupervisorMockLogger) Debugf(format string, args ...interface{}) {}
func (m *SupervisorMockLogger) Infof(format string, args ...interface{})  {}
func (m *SupervisorMockLogger) Warnf(format string, args ...interface{})  {}
func (m *SupervisorMockLogger) Errorf(format string, args ...interface{}) {}

func runningHandle(role Role, pid int) *Handle {
	return &Handle{role: role, pid: pid, state: LivenessRunning}
}

func TestHandle_Accessors(t *testing.T) {
	h := runningHandle(RoleServer, 4242)

	assert.Equal(t, RoleServer, h.Role())
	assert.Equal(t, 4242, h.PID())
	assert.Equal(t, LivenessRunning, h.Liveness())
}

func TestHandle_MarkTerminatedOnce(t *testing.T) {
	h := runningHandle(RoleCompanion, 7)

	assert.True(t, h.markTerminated())
	assert.Equal(t, LivenessTerminated, h.Liveness())
	assert.False(t, h.markTerminated())
}

func TestRequestTermination_Idempotent(t *testing.T) {
	h := runningHandle(RoleServer, 99)
	calls := 0
	terminate := func(pid int) error {
		calls++
		assert.Equal(t, 99, pid)
		return nil
	}

	requestTermination(h, terminate, &SupervisorMockLogger{})
	requestTermination(h, terminate, &SupervisorMockLogger{})

	assert.Equal(t, 1, calls)
}

func TestRequestTermination_NilHandleIsNoOp(t *testing.T) {
	calls := 0
	terminate := func(pid int) error {
		calls++
		return nil
	}

	requestTermination(nil, terminate, &SupervisorMockLogger{})

	assert.Equal(t, 0, calls)
}

func TestRequestTermination_SwallowsSendFailure(t *testing.T) {
	h := runningHandle(RoleServer, 99)
	terminate := func(pid int) error {
		return fmt.Errorf("no such process")
	}

	// Must not panic and must still mark the handle terminated.
	requestTermination(h, terminate, &SupervisorMockLogger{})

	assert.Equal(t, LivenessTerminated, h.Liveness())
}
