package input

import (
	"sync"

	"github.com/bnema/moto/internal/domain/entity"
)

// Queue holds native events in arrival order until the frame loop drains
// them. Window callbacks may push from any goroutine.
type Queue struct {
	mu     sync.Mutex
	events []entity.NativeEvent
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends ev.
func (q *Queue) Push(ev entity.NativeEvent) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Drain removes and returns every queued event, oldest first.
func (q *Queue) Drain() []entity.NativeEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
