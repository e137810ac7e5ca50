// Package autoreply runs delayed, cancellable tasks keyed by entity id.
//
// Each id runs at most once: scheduling an id that is pending, running or
// finished is a no-op. A cancelled id may be scheduled again. Every task gets
// a context that is cancelled by Cancel or Close, so no task mutates state
// after its owner has been torn down.
package autoreply

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrCancelled    = errors.New("task cancelled")
	ErrNotScheduled = errors.New("task not scheduled")
	ErrClosed       = errors.New("dispatcher closed")
)

// Task is the delayed work. It should return promptly once ctx is done.
type Task func(ctx context.Context) error

type state int

const (
	statePending state = iota
	stateRunning
	stateDone
	stateCancelled
)

type entry struct {
	state  state
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Dispatcher owns the goroutines of scheduled tasks.
type Dispatcher struct {
	delay  time.Duration
	logger *slog.Logger

	mu     sync.Mutex
	tasks  map[string]*entry
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a dispatcher that runs each task delay after it is scheduled.
// A nil logger discards output.
func New(delay time.Duration, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		delay:  delay,
		logger: logger,
		tasks:  make(map[string]*entry),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Delay reports the configured delay.
func (d *Dispatcher) Delay() time.Duration { return d.delay }

// Schedule registers fn under id. It reports whether a new task was started.
func (d *Dispatcher) Schedule(id string, fn Task) bool {
	return d.ScheduleAfter(id, d.delay, fn)
}

// ScheduleAfter is Schedule with its own delay. A delay of zero or less runs
// fn right away.
func (d *Dispatcher) ScheduleAfter(id string, delay time.Duration, fn Task) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return false
	}
	if e, ok := d.tasks[id]; ok && e.state != stateCancelled {
		return false
	}

	ctx, cancel := context.WithCancel(d.ctx)
	e := &entry{state: statePending, cancel: cancel, done: make(chan struct{})}
	d.tasks[id] = e

	d.wg.Add(1)
	go d.run(ctx, id, max(delay, 0), e, fn)
	return true
}

func (d *Dispatcher) run(ctx context.Context, id string, delay time.Duration, e *entry, fn Task) {
	defer d.wg.Done()
	defer close(e.done)
	defer e.cancel()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		d.finish(e, stateCancelled, ErrCancelled)
		d.logger.Debug("task cancelled before start", "id", id)
		return
	case <-timer.C:
	}

	d.mu.Lock()
	if e.state != statePending {
		d.mu.Unlock()
		return
	}
	e.state = stateRunning
	d.mu.Unlock()

	err := d.safeRun(ctx, fn)
	if err != nil && ctx.Err() != nil {
		d.finish(e, stateCancelled, ErrCancelled)
		d.logger.Debug("task cancelled while running", "id", id, "error", err)
		return
	}
	d.finish(e, stateDone, err)
	if err != nil {
		d.logger.Warn("task failed", "id", id, "error", err)
		return
	}
	d.logger.Debug("task done", "id", id)
}

func (d *Dispatcher) safeRun(ctx context.Context, fn Task) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("task panicked: %v", p)
		}
	}()
	return fn(ctx)
}

func (d *Dispatcher) finish(e *entry, s state, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e.state = s
	e.err = err
}

// Cancel stops a pending or running task. It reports whether there was one
// to stop.
func (d *Dispatcher) Cancel(id string) bool {
	d.mu.Lock()
	e, ok := d.tasks[id]
	if !ok || (e.state != statePending && e.state != stateRunning) {
		d.mu.Unlock()
		return false
	}
	if e.state == statePending {
		e.state = stateCancelled
		e.err = ErrCancelled
	}
	d.mu.Unlock()

	e.cancel()
	return true
}

// Wait blocks until the task for id finishes, is cancelled, or ctx is done.
// It returns the task's error, ErrCancelled, or ErrNotScheduled.
func (d *Dispatcher) Wait(ctx context.Context, id string) error {
	d.mu.Lock()
	e, ok := d.tasks[id]
	d.mu.Unlock()
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotScheduled)
	}

	select {
	case <-e.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return e.err
}

// Pending counts tasks that have not finished yet.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, e := range d.tasks {
		if e.state == statePending || e.state == stateRunning {
			n++
		}
	}
	return n
}

// Close cancels every outstanding task and waits for their goroutines.
// Schedule is a no-op afterwards.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
}
