package async

import (
	"context"
	"time"
)

// Yield reschedules the calling task to the back of its executor's queue,
// then resumes -- the Go rendering of async_simple's co_await Yield{}. If ctx
// carries no executor affinity (CurrentExecutor returns false), Yield is a
// no-op: there is nothing to yield to.
func Yield(ctx context.Context) {
	executor, ok := CurrentExecutor(ctx)
	if !ok || executor == nil {
		return
	}
	done := make(chan struct{})
	if !executor.Schedule(func() { close(done) }) {
		return
	}
	<-done
}

// Sleep suspends the calling task for d, resuming on the executor ctx
// carries if any (via ScheduleAfter), or falling back to time.Sleep when
// there is none.
func Sleep(ctx context.Context, d time.Duration) {
	executor, ok := CurrentExecutor(ctx)
	if !ok || executor == nil {
		time.Sleep(d)
		return
	}
	done := make(chan struct{})
	if !executor.ScheduleAfter(d, func() { close(done) }) {
		time.Sleep(d)
		return
	}
	<-done
}
