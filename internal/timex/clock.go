// Package timex holds time helpers shared across TaskFlow: an injectable
// clock that also owns the artificial latency of the mock backend, calendar
// day arithmetic used by the task views, and a JSON-friendly Duration.
package timex

import (
	"context"
	"sync"
	"time"
)

// Clock supplies the current time and waits for simulated network latency.
//
// Sleep must return early with ctx.Err() when the context is done.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock is the wall clock with real sleeps.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NoLatency wraps a clock and turns every Sleep into a no-op.
type NoLatency struct {
	Clock
}

func (n NoLatency) Sleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// ManualClock is a deterministic clock for tests. Sleep never blocks; the
// requested durations are recorded and can be inspected through Slept.
type ManualClock struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

// NewManualClock returns a ManualClock frozen at now.
func NewManualClock(now time.Time) *ManualClock {
	return &ManualClock{now: now}
}

func (m *ManualClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *ManualClock) Sleep(ctx context.Context, d time.Duration) error {
	m.mu.Lock()
	m.slept = append(m.slept, d)
	m.mu.Unlock()
	return ctx.Err()
}

// Advance moves the clock forward by d.
func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Slept returns a copy of every duration passed to Sleep so far.
func (m *ManualClock) Slept() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.slept...)
}
