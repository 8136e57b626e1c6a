// Package bootstrap wires configuration, storage and the engine into the
// browser shell.
package bootstrap

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/moto/internal/logging"
)

type phase struct {
	name string
	dur  time.Duration
}

// StartupTimer records how long each cold start phase took.
// Safe for concurrent use.
type StartupTimer struct {
	mu     sync.Mutex
	start  time.Time
	last   time.Time
	phases []phase
}

// NewStartupTimer starts timing now.
func NewStartupTimer() *StartupTimer {
	now := time.Now()
	return &StartupTimer{start: now, last: now}
}

// Mark records the time since the previous mark.
func (t *StartupTimer) Mark(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	t.phases = append(t.phases, phase{name: name, dur: now.Sub(t.last)})
	t.last = now
}

// MarkDuration records a phase timed elsewhere, e.g. inside a goroutine.
func (t *StartupTimer) MarkDuration(name string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, phase{name: name, dur: d})
}

// Total is the time since the timer started.
func (t *StartupTimer) Total() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Since(t.start)
}

// Log writes the phases at info level.
func (t *StartupTimer) Log(ctx context.Context) {
	t.log(logging.FromContext(ctx).Info())
}

// LogDebug writes the phases at debug level.
func (t *StartupTimer) LogDebug(ctx context.Context) {
	t.log(logging.FromContext(ctx).Debug())
}

func (t *StartupTimer) log(event *zerolog.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	event = event.Dur("total", time.Since(t.start))
	for _, p := range t.phases {
		event = event.Dur(p.name, p.dur)
	}
	event.Msg("startup timing")
}
