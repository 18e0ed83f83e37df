package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoop_RunsPerTickUntilClosed(t *testing.T) {
	ticks := make(chan time.Time, 3)
	base := time.Unix(1000, 0)
	for i := 0; i < 3; i++ {
		ticks <- base.Add(time.Duration(i) * time.Second)
	}
	close(ticks)

	var seen []time.Time
	Loop(context.Background(), ticks, func(_ context.Context, now time.Time) {
		seen = append(seen, now)
	})

	if len(seen) != 3 {
		t.Fatalf("fn called %d times, want 3", len(seen))
	}
	if !seen[2].Equal(base.Add(2 * time.Second)) {
		t.Errorf("third tick = %v, want %v", seen[2], base.Add(2*time.Second))
	}
}

func TestLoop_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ticks := make(chan time.Time)
	Loop(ctx, ticks, func(context.Context, time.Time) {
		t.Error("fn must not run after cancellation")
	})
}

func TestManual_StopWaitsForExit(t *testing.T) {
	ticks := make(chan time.Time)
	var calls atomic.Int32
	task := Manual(context.Background(), ticks, func(context.Context, time.Time) {
		calls.Add(1)
	})

	ticks <- time.Now()
	ticks <- time.Now()
	task.Stop()
	task.Stop() // idempotent

	select {
	case <-task.Done():
	default:
		t.Fatal("Done() not closed after Stop()")
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestEvery_FiresRepeatedly(t *testing.T) {
	fired := make(chan struct{}, 10)
	task := Every(context.Background(), 5*time.Millisecond, func(context.Context, time.Time) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	defer task.Stop()

	for i := 0; i < 2; i++ {
		select {
		case <-fired:
		case <-time.After(2 * time.Second):
			t.Fatalf("tick %d never fired", i)
		}
	}
}

func TestEvery_ParentCancelStopsTask(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	task := Every(ctx, time.Hour, func(context.Context, time.Time) {})
	cancel()

	select {
	case <-task.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("task did not exit after parent cancellation")
	}
}
