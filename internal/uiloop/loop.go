// Package uiloop provides the single-threaded update loop that owns UI
// state. Work posted to a Loop runs on one goroutine in posting order.
package uiloop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/placard/internal/logger"
)

// ErrStopped is returned when posting to a loop that is no longer running.
var ErrStopped = errors.New("ui loop stopped")

// Loop serializes functions onto a single goroutine.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	log   *logger.Logger

	stopOnce sync.Once
}

// New creates a Loop with room for buffer pending tasks.
func New(buffer int, log *logger.Logger) *Loop {
	if buffer < 1 {
		buffer = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
		log:   log.With("component", "uiloop"),
	}
}

// Run executes posted tasks until ctx is cancelled. It must be called once.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stopOnce.Do(func() { close(l.done) })
	l.log.Debug("loop started")
	for {
		select {
		case <-ctx.Done():
			l.log.Debug("loop stopped")
			return ctx.Err()
		case task := <-l.tasks:
			task()
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Post queues fn for execution on the loop. It reports false when the loop
// has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrStopped
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		select {
		case <-finished:
			return nil
		default:
			return ErrStopped
		}
	}
}

// Offload runs work on a background goroutine and delivers its result on the
// loop. work must not touch UI state.
func (l *Loop) Offload(work func() int, deliver func(int)) {
	go func() {
		result := work()
		if !l.Post(func() { deliver(result) }) {
			l.log.Debug("offloaded result dropped after stop")
		}
	}()
}

// After runs fn on the loop once d has elapsed. Cancelling from the loop
// guarantees fn does not run afterwards, even if the timer already fired.
func (l *Loop) After(d time.Duration, fn func()) func() {
	var (
		mu        sync.Mutex
		cancelled bool
	)
	timer := time.AfterFunc(d, func() {
		l.Post(func() {
			mu.Lock()
			skip := cancelled
			mu.Unlock()
			if !skip {
				fn()
			}
		})
	})
	return func() {
		mu.Lock()
		cancelled = true
		mu.Unlock()
		timer.Stop()
	}
}
