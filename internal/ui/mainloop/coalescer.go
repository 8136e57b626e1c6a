// Package mainloop schedules work onto the thread that owns the window.
package mainloop

import "sync"

// Poster hands a function to the main loop, e.g. glib.IdleAdd.
type Poster func(func())

// Coalescer merges bursts of same-key tasks into one main-loop callback.
// Only the latest function posted for a key runs. Post is safe from any
// goroutine; the functions run on whatever thread the Poster targets.
type Coalescer struct {
	mu        sync.Mutex
	pending   map[string]func()
	post      Poster
	merged    uint64
	destroyed bool
}

// NewCoalescer panics on a nil poster.
func NewCoalescer(post Poster) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}
	return &Coalescer{
		pending: make(map[string]func()),
		post:    post,
	}
}

// Post schedules fn under key. When a callback for key is already queued,
// fn replaces its function and nothing new is posted.
func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	_, queued := c.pending[key]
	c.pending[key] = fn
	if queued {
		c.merged++
		c.mu.Unlock()
		return
	}
	post := c.post
	c.mu.Unlock()

	post(func() { c.run(key) })
}

func (c *Coalescer) run(key string) {
	c.mu.Lock()
	fn, ok := c.pending[key]
	delete(c.pending, key)
	destroyed := c.destroyed
	c.mu.Unlock()

	if ok && !destroyed {
		fn()
	}
}

// Pending reports how many keys wait for the main loop.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Merged counts posts folded into an already queued callback.
func (c *Coalescer) Merged() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.merged
}

// Destroy drops queued work; later posts are ignored.
func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	clear(c.pending)
	c.mu.Unlock()
}

// Waker returns a function that schedules fn on the main loop, merging
// wake-ups that arrive before fn ran.
func (c *Coalescer) Waker(key string, fn func()) func() {
	return func() { c.Post(key, fn) }
}
