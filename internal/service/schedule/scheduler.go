package schedule

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned for units that cannot run because the scheduler
// has been shut down.
var ErrClosed = errors.New("scheduler closed")

// Unit is a single outbound operation routed through a Scheduler.
type Unit func(ctx context.Context) (interface{}, error)

// Result carries a unit's value or error back to its submitter.
type Result struct {
	Value interface{}
	Err   error
}

// Scheduler governs outbound calls to one provider: at most `limit`
// units begin execution inside any window, successive units are
// separated by a fixed spacing delay, and units run in strict FIFO
// submission order. A single drainer goroutine owns the queue and the
// window counters, so no locking is needed around them.
type Scheduler struct {
	name    string
	limit   int
	window  time.Duration
	spacing time.Duration

	units chan *queuedUnit
	done  chan struct{}
	once  sync.Once

	// drainer-owned window state
	count     int
	windowEnd time.Time

	depthObserver func(int)
}

type queuedUnit struct {
	ctx  context.Context
	run  Unit
	done chan Result
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithWindow overrides the rolling window length (default 60s).
func WithWindow(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithQueueSize sets the submission queue capacity. Submit blocks when
// the queue is full; units are never dropped.
func WithQueueSize(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.units = make(chan *queuedUnit, n)
		}
	}
}

// WithDepthObserver installs a hook called with the queue depth on each
// submission (for gauge metrics).
func WithDepthObserver(fn func(int)) Option {
	return func(s *Scheduler) { s.depthObserver = fn }
}

// New creates a Scheduler for one provider and starts its drain loop.
func New(name string, limit int, spacing time.Duration, opts ...Option) *Scheduler {
	s := &Scheduler{
		name:    name,
		limit:   limit,
		window:  time.Minute,
		spacing: spacing,
		units:   make(chan *queuedUnit, 1024),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.drain()
	return s
}

// Name returns the provider name this scheduler governs.
func (s *Scheduler) Name() string { return s.name }

// Submit enqueues a unit and returns a channel that receives exactly one
// Result when the unit completes or fails. The unit's context is the one
// passed here; the scheduler imposes no timeout of its own.
func (s *Scheduler) Submit(ctx context.Context, u Unit) <-chan Result {
	qu := &queuedUnit{ctx: ctx, run: u, done: make(chan Result, 1)}
	select {
	case <-s.done:
		qu.done <- Result{Err: ErrClosed}
		return qu.done
	default:
	}
	s.units <- qu
	if s.depthObserver != nil {
		s.depthObserver(len(s.units))
	}
	return qu.done
}

// Do submits a unit and waits for its result.
func (s *Scheduler) Do(ctx context.Context, u Unit) (interface{}, error) {
	res := <-s.Submit(ctx, u)
	return res.Value, res.Err
}

// Do routes a typed call through the scheduler.
func Do[T any](ctx context.Context, s *Scheduler, fn func(context.Context) (T, error)) (T, error) {
	v, err := s.Do(ctx, func(ctx context.Context) (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Close stops the drain loop. Units still queued are failed with ErrClosed.
func (s *Scheduler) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *Scheduler) drain() {
	for {
		select {
		case <-s.done:
			s.failPending()
			return
		case qu := <-s.units:
			if !s.admit(qu) {
				return
			}
			v, err := qu.run(qu.ctx)
			qu.done <- Result{Value: v, Err: err}
			if !s.pause(s.spacing) {
				s.failPending()
				return
			}
		}
	}
}

// admit applies the window accounting for one dequeued unit: reset the
// window if it has elapsed, suspend until the window end if the quota is
// spent, then count the unit. Returns false if the scheduler closed
// while suspended (the unit is failed, not executed).
func (s *Scheduler) admit(qu *queuedUnit) bool {
	now := time.Now()
	if !now.Before(s.windowEnd) {
		s.count = 0
		s.windowEnd = now.Add(s.window)
	}
	if s.count >= s.limit {
		if !s.pause(time.Until(s.windowEnd)) {
			qu.done <- Result{Err: ErrClosed}
			s.failPending()
			return false
		}
		now = time.Now()
		s.count = 0
		s.windowEnd = now.Add(s.window)
	}
	s.count++
	return true
}

// pause sleeps for d unless the scheduler closes first.
func (s *Scheduler) pause(d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-s.done:
		return false
	}
}

func (s *Scheduler) failPending() {
	for {
		select {
		case qu := <-s.units:
			qu.done <- Result{Err: ErrClosed}
		default:
			return
		}
	}
}
