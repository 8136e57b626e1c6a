// Package bridge is the single point of call into the web engine.
//
// Commands are queued without blocking and executed by one worker goroutine
// per WebView, so commands for the same WebView run in submission order while
// different WebViews proceed independently. Engine callbacks are buffered and
// drained by the frame loop with PollCallbacks.
package bridge

import (
	"context"
	"errors"
	"iter"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/moto/internal/application/port"
	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/logging"
)

const defaultDispatchTimeout = 30 * time.Second

// Bridge implements port.CallbackSink for the engine it drives.
type Bridge struct {
	engine          port.Engine
	dispatchTimeout time.Duration

	mu        sync.Mutex
	callbacks []entity.Callback
	workers   map[entity.WebViewID]*worker
	closed    map[entity.WebViewID]struct{}
	started   bool
	stopping  bool
	lost      bool

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
}

type worker struct {
	id      entity.WebViewID
	pending []entity.Command
	wake    chan struct{}
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithDispatchTimeout bounds a single engine call.
func WithDispatchTimeout(d time.Duration) Option {
	return func(b *Bridge) {
		if d > 0 {
			b.dispatchTimeout = d
		}
	}
}

// New creates a bridge around engine. Call Start before sending commands.
func New(engine port.Engine, opts ...Option) *Bridge {
	b := &Bridge{
		engine:          engine,
		dispatchTimeout: defaultDispatchTimeout,
		workers:         make(map[entity.WebViewID]*worker),
		closed:          make(map[entity.WebViewID]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start launches the engine. ctx bounds the lifetime of every worker.
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return nil
	}
	wctx, cancel := context.WithCancel(ctx)
	b.group, b.ctx = errgroup.WithContext(wctx)
	b.cancel = cancel
	b.started = true
	b.mu.Unlock()

	if err := b.engine.Start(ctx, b); err != nil {
		cancel()
		b.mu.Lock()
		b.started = false
		b.mu.Unlock()
		return err
	}
	logging.FromContext(ctx).Debug().Msg("engine bridge started")
	return nil
}

// Send queues cmd for its WebView and returns immediately. Commands sent
// after EngineLost are dropped with entity.ErrEngineLost.
func (b *Bridge) Send(cmd entity.Command) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case b.lost:
		return entity.ErrEngineLost
	case !b.started:
		return ErrNotStarted
	case b.stopping:
		return ErrStopped
	}

	id := cmd.Target()
	if _, gone := b.closed[id]; gone {
		return &CommandError{Command: cmd, Err: entity.ErrUnknownWebView}
	}

	w, ok := b.workers[id]
	if !ok {
		w = &worker{id: id, wake: make(chan struct{}, 1)}
		b.workers[id] = w
		b.group.Go(func() error {
			b.run(w)
			return nil
		})
	}
	w.pending = append(w.pending, cmd)
	select {
	case w.wake <- struct{}{}:
	default:
	}
	return nil
}

func (b *Bridge) run(w *worker) {
	log := logging.FromContext(b.ctx).With().Uint64("webview_id", uint64(w.id)).Logger()

	for {
		select {
		case <-b.ctx.Done():
			return
		case <-w.wake:
		}

		for {
			cmd, ok := b.next(w)
			if !ok {
				break
			}
			if err := b.dispatch(cmd); err != nil {
				log.Warn().Err(err).Msg("engine command failed")
				if errors.Is(err, entity.ErrEngineLost) {
					b.Deliver(entity.EngineLost{Err: err})
					return
				}
				if b.orphaned(cmd, err) {
					// No page backs the identity; report it gone so the
					// shell drops its record.
					b.Deliver(entity.Closed{ID: w.id})
					b.retire(w)
					return
				}
				continue
			}
			if _, isClose := cmd.(entity.CloseCommand); isClose {
				b.retire(w)
				return
			}
		}

		if b.finished(w) {
			return
		}
	}
}

// orphaned reports whether a failed command leaves its WebView without a
// page: the page could not be created, or the engine no longer knows it.
func (b *Bridge) orphaned(cmd entity.Command, err error) bool {
	switch cmd.(type) {
	case entity.CreateWebViewCommand:
		return errors.Is(err, entity.ErrCreateFailed)
	case entity.CloseCommand:
		return errors.Is(err, entity.ErrUnknownWebView)
	}
	return false
}

func (b *Bridge) next(w *worker) (entity.Command, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(w.pending) == 0 || b.lost {
		return nil, false
	}
	cmd := w.pending[0]
	w.pending[0] = nil
	w.pending = w.pending[1:]
	return cmd, true
}

func (b *Bridge) dispatch(cmd entity.Command) error {
	ctx, cancel := context.WithTimeout(b.ctx, b.dispatchTimeout)
	defer cancel()
	if err := b.engine.Dispatch(ctx, cmd); err != nil {
		return &CommandError{Command: cmd, Err: err}
	}
	return nil
}

// retire drops a worker after its WebView was closed. Later commands for the
// identity are rejected by Send.
func (b *Bridge) retire(w *worker) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n := len(w.pending); n > 0 {
		logging.FromContext(b.ctx).Debug().
			Uint64("webview_id", uint64(w.id)).
			Int("dropped", n).
			Msg("commands queued after close dropped")
	}
	delete(b.workers, w.id)
	b.closed[w.id] = struct{}{}
}

func (b *Bridge) finished(w *worker) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stopping && len(w.pending) == 0
}

// Deliver implements port.CallbackSink. EngineLost is terminal: it is queued
// once and everything delivered after it is discarded.
func (b *Bridge) Deliver(cb entity.Callback) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lost {
		return
	}
	b.callbacks = append(b.callbacks, cb)
	if _, ok := cb.(entity.EngineLost); ok {
		b.lost = true
		for _, w := range b.workers {
			w.pending = nil
		}
		if b.cancel != nil {
			b.cancel()
		}
	}
}

// PollCallbacks returns every callback received since the previous poll.
// It never blocks. Callbacks left unconsumed when iteration stops early are
// kept for the next poll.
func (b *Bridge) PollCallbacks() iter.Seq[entity.Callback] {
	b.mu.Lock()
	batch := b.callbacks
	b.callbacks = nil
	b.mu.Unlock()

	return func(yield func(entity.Callback) bool) {
		for i, cb := range batch {
			if !yield(cb) {
				b.requeue(batch[i+1:])
				return
			}
		}
	}
}

func (b *Bridge) requeue(rest []entity.Callback) {
	if len(rest) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callbacks = append(append([]entity.Callback(nil), rest...), b.callbacks...)
}

// Lost reports whether the engine was lost.
func (b *Bridge) Lost() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lost
}

// Pending returns the number of queued commands across all WebViews.
func (b *Bridge) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, w := range b.workers {
		n += len(w.pending)
	}
	return n
}

// Shutdown stops accepting commands, lets workers drain their queues, and
// shuts the engine down. Workers still busy when ctx ends are cancelled.
func (b *Bridge) Shutdown(ctx context.Context) error {
	b.mu.Lock()
	if !b.started || b.stopping {
		b.mu.Unlock()
		return nil
	}
	b.stopping = true
	for _, w := range b.workers {
		select {
		case w.wake <- struct{}{}:
		default:
		}
	}
	group, cancel := b.group, b.cancel
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		_ = group.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logging.FromContext(ctx).Warn().Msg("bridge workers did not drain before deadline")
	}
	cancel()
	<-done

	if err := b.engine.Shutdown(ctx); err != nil {
		return err
	}
	logging.FromContext(ctx).Debug().Msg("engine bridge stopped")
	return nil
}
