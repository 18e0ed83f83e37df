// Package schedule runs recurring background tasks. A task is owned by
// whoever starts it and stops when its context is cancelled; tests drive a
// task deterministically by feeding its tick channel by hand.
package schedule

import (
	"context"
	"sync"
	"time"
)

// Func is the work done on each tick.
type Func func(ctx context.Context, now time.Time)

// Loop calls fn for every value received on ticks until ctx is done or
// ticks is closed. It blocks.
func Loop(ctx context.Context, ticks <-chan time.Time, fn Func) {
	for {
		select {
		case <-ctx.Done():
			return
		case now, ok := <-ticks:
			if !ok {
				return
			}
			fn(ctx, now)
		}
	}
}

// Task is a running recurring job.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Every starts fn on a goroutine, calling it once per interval until Stop is
// called or ctx is cancelled. The first call happens after one interval.
func Every(ctx context.Context, interval time.Duration, fn Func) *Task {
	ticker := time.NewTicker(interval)
	return start(ctx, ticker.C, ticker.Stop, fn)
}

// Manual starts fn on a goroutine driven by ticks instead of a timer.
func Manual(ctx context.Context, ticks <-chan time.Time, fn Func) *Task {
	return start(ctx, ticks, func() {}, fn)
}

func start(ctx context.Context, ticks <-chan time.Time, release func(), fn Func) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		defer release()
		Loop(ctx, ticks, fn)
	}()

	return t
}

// Stop cancels the task and waits for an in-flight tick to finish. It is
// safe to call more than once.
func (t *Task) Stop() {
	t.once.Do(t.cancel)
	<-t.done
}

// Done is closed once the task has exited.
func (t *Task) Done() <-chan struct{} {
	return t.done
}
