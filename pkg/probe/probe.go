package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/model-tools/inferd-entry/pkg/logging"
	"github.com/model-tools/inferd-entry/pkg/retry"
)

// State is the outcome of a bounded readiness probe.
type State struct {
	Healthy  bool
	Attempts int
}

// Prober repeatedly checks a readiness endpoint until success or until the
// attempt budget is exhausted. Exhaustion is advisory, never fatal: the
// caller decides what to do with an unhealthy State.
type Prober struct {
	url      string
	attempts int
	interval time.Duration
	client   *http.Client
	sleep    retry.SleepFunc
	logger   logging.Logger
}

func NewProber(url string, attempts int, interval, timeout time.Duration, logger logging.Logger) *Prober {
	return &Prober{
		url:      url,
		attempts: attempts,
		interval: interval,
		client: &http.Client{
			Timeout: timeout,
		},
		sleep:  retry.Sleep,
		logger: logger,
	}
}

// WaitReady blocks until the endpoint responds with a 2xx status or the
// attempt budget runs out, sleeping a fixed interval between attempts.
func (p *Prober) WaitReady(ctx context.Context) State {
	p.logger.Infof("Waiting for server readiness, url: %s, max attempts: %d, interval: %v",
		p.url, p.attempts, p.interval)

	attempts, healthy := retry.Do(ctx, p.attempts, p.interval, p.sleep, p.check)
	if healthy {
		p.logger.Infof("Server is ready, attempts: %d", attempts)
	} else {
		p.logger.Warnf("Server readiness not confirmed after %d attempts, proceeding anyway", attempts)
	}

	return State{Healthy: healthy, Attempts: attempts}
}

func (p *Prober) check(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		p.logger.Errorf("Failed to create readiness request, url: %s, error: %v", p.url, err)
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debugf("Readiness check failed, url: %s, error: %v", p.url, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return true
	}

	p.logger.Debugf("Readiness check failed, url: %s, status: %d %s", p.url, resp.StatusCode, resp.Status)
	return false
}
