// Package player drives a pipeline through its states and relays bus messages.
package player

import (
	"context"
	"sync"
)

// taskQueueSize bounds the number of tasks waiting for the loop.
const taskQueueSize = 64

// Loop is a single-goroutine event loop. Every task posted to it runs on the
// goroutine that called Run, in the order it was posted.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop creates a new event loop.
func NewLoop() *Loop {
	return &Loop{
		tasks: make(chan func(), taskQueueSize),
		done:  make(chan struct{}),
	}
}

// Post schedules f to run on the loop goroutine.
// Returns false if the loop has already quit; f is then dropped.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- f:
		return true
	case <-l.done:
		return false
	}
}

// Run executes posted tasks until Quit is called or ctx is cancelled.
// Tasks still queued when the loop quits are never executed.
func (l *Loop) Run(ctx context.Context) error {
	for {
		// Quit wins over pending tasks
		select {
		case <-l.done:
			return nil
		default:
		}

		select {
		case <-l.done:
			return nil
		case <-ctx.Done():
			l.Quit()
			return ctx.Err()
		case f := <-l.tasks:
			f()
		}
	}
}

// Quit stops the loop. Safe to call from any goroutine, more than once.
func (l *Loop) Quit() {
	l.once.Do(func() {
		close(l.done)
	})
}

// Done returns a channel closed once the loop has quit.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
