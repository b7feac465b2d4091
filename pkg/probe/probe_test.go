package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ProbeMockLogger is a simple mock implementation of Logger for testing
type ProbeMockLogger struct{}

func (m *ProbeMockLogger) Debugf(format string, args ...interface{}) {}
func (m *ProbeMockLogger) Infof(format string, args ...interface{})  {}
func (m *ProbeMockLogger) Warnf(format string, args ...interface{})  {}
func (m *ProbeMockLogger) Errorf(format string, args ...interface{}) {}

func newTestProber(url string, attempts int) *Prober {
	p := NewProber(url, attempts, time.Second, time.Second, &ProbeMockLogger{})
	// No real sleeping in tests.
	p.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return p
}

func TestWaitReady_HealthyImmediately(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	state := newTestProber(server.URL, 30).WaitReady(context.Background())

	assert.True(t, state.Healthy)
	assert.Equal(t, 1, state.Attempts)
}

func TestWaitReady_HealthyOnThirdAttempt(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	state := newTestProber(server.URL, 30).WaitReady(context.Background())

	assert.True(t, state.Healthy)
	assert.Equal(t, 3, state.Attempts)
}

func TestWaitReady_UnhealthyAfterTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	state := newTestProber(server.URL, 4).WaitReady(context.Background())

	assert.False(t, state.Healthy)
	assert.Equal(t, 4, state.Attempts)
}

func TestWaitReady_EndpointUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	state := newTestProber(url, 2).WaitReady(context.Background())

	assert.False(t, state.Healthy)
	assert.Equal(t, 2, state.Attempts)
}
