package mainloop

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoop struct {
	mu    sync.Mutex
	queue []func()
}

func (l *fakeLoop) post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
}

func (l *fakeLoop) runAll() {
	l.mu.Lock()
	q := l.queue
	l.queue = nil
	l.mu.Unlock()
	for _, fn := range q {
		fn()
	}
}

func TestCoalescerMergesBurstIntoSingleIdle(t *testing.T) {
	loop := &fakeLoop{}
	c := NewCoalescer(loop.post)

	value := 0
	for i := 1; i <= 5; i++ {
		v := i
		c.Post("present", func() { value = v })
	}

	require.Len(t, loop.queue, 1)
	assert.Equal(t, 1, c.Pending())
	assert.Equal(t, uint64(4), c.Merged())

	loop.runAll()
	assert.Equal(t, 5, value, "latest callback runs")
	assert.Zero(t, c.Pending())

	c.Post("present", func() { value = 6 })
	require.Len(t, loop.queue, 1, "a new burst posts again")
}

func TestCoalescerKeysAreIndependent(t *testing.T) {
	loop := &fakeLoop{}
	c := NewCoalescer(loop.post)

	var ran []string
	c.Post("iterate", func() { ran = append(ran, "iterate") })
	c.Post("title", func() { ran = append(ran, "title") })
	c.Post("", func() { ran = append(ran, "empty") })
	c.Post("nil", nil)

	loop.runAll()
	assert.Equal(t, []string{"iterate", "title"}, ran)
}

func TestCoalescerDropsWorkAfterDestroy(t *testing.T) {
	loop := &fakeLoop{}
	c := NewCoalescer(loop.post)

	ran := false
	c.Post("iterate", func() { ran = true })
	c.Destroy()
	require.Len(t, loop.queue, 1)

	loop.runAll()
	assert.False(t, ran, "queued work dropped after destroy")

	c.Post("iterate", func() { ran = true })
	assert.Empty(t, loop.queue)
}

func TestCoalescerWakerFromManyGoroutines(t *testing.T) {
	loop := &fakeLoop{}
	c := NewCoalescer(loop.post)

	calls := 0
	wake := c.Waker("iterate", func() { calls++ })

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wake()
		}()
	}
	wg.Wait()

	loop.runAll()
	assert.Equal(t, 1, calls)
}

func TestNewCoalescerPanicsOnNilPost(t *testing.T) {
	assert.Panics(t, func() { NewCoalescer(nil) })
}
