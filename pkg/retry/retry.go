package retry

import (
	"context"
	"time"
)

// SleepFunc pauses between attempts. It returns early with the context
// error when the context is cancelled. Tests inject a fake.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc backed by a timer.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do runs fn up to attempts times, sleeping a fixed interval after every
// failed attempt and returning early on the first success. The worst-case
// wall clock cost is therefore exactly attempts*interval. It reports the
// number of attempts consumed and whether fn succeeded.
func Do(ctx context.Context, attempts int, interval time.Duration, sleep SleepFunc, fn func(ctx context.Context) bool) (int, bool) {
	if sleep == nil {
		sleep = Sleep
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if fn(ctx) {
			return attempt, true
		}
		if err := sleep(ctx, interval); err != nil {
			return attempt, false
		}
	}
	return attempts, false
}
