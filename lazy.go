package async

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Lazy is a cold asynchronous task: nothing runs until it is started or
// awaited. It is the Go rendering of async_simple's Lazy<T> coroutine
// (spec.md §0, §6): Go has no stackful coroutine, so a Lazy is simply a
// closure over (ctx context.Context) (T, error), and "awaiting" one from
// inside another Lazy's body is an ordinary nested Go call -- free symmetric
// transfer, no scheduler round trip, exactly like the C++ version's fast
// path when a Lazy is awaited without ever suspending.
type Lazy[T any] func(ctx context.Context) (T, error)

// MakeLazy wraps fn as a Lazy.
func MakeLazy[T any](fn func(ctx context.Context) (T, error)) Lazy[T] {
	return Lazy[T](fn)
}

// Start runs the task on a new goroutine, invoking callback with its Try
// result once done, without blocking the caller -- the Go rendering of
// Lazy::start(callback).
func (l Lazy[T]) Start(callback func(Try[T])) {
	go func() {
		callback(callTry(func() (T, error) { return l(context.Background()) }))
	}()
}

// Via reschedules this Lazy to run on executor whenever it is started or
// awaited, the direct analogue of async_simple's lazy.via(executor).
func (l Lazy[T]) Via(executor Executor) RescheduleLazy[T] {
	return RescheduleLazy[T]{inner: l, executor: executor}
}

// SyncAwait runs the task inline and returns its result -- when there is no
// executor involved, "await" and "call the closure" are the same operation.
func SyncAwait[T any](ctx context.Context, l Lazy[T]) (T, error) {
	return l(ctx)
}

// RescheduleLazy is a Lazy bound to an Executor: every Start/SyncAwait
// dispatches the task body through that executor instead of running it
// in-stack, matching async_simple's RescheduleLazy<T> (spec.md §6.3) -- the
// type produced by Via(executor). The collect combinators take plain Lazy
// values, not RescheduleLazy.
type RescheduleLazy[T any] struct {
	inner    Lazy[T]
	executor Executor
}

// Start schedules the task on its executor, invoking callback with the
// result once done. If already running on that executor, the task still
// goes through Schedule rather than running in-stack -- RescheduleLazy's
// whole purpose is to guarantee re-entry through the executor, e.g. so a
// Future's continuation resumes on the right worker rather than wherever
// SetValue happened to be called from.
func (rl RescheduleLazy[T]) Start(ctx context.Context, callback func(Try[T])) {
	run := func() {
		taskCtx := ctx
		if rl.executor != nil {
			taskCtx = contextWithExecutor(ctx, rl.executor)
		}
		callback(callTry(func() (T, error) { return rl.inner(taskCtx) }))
	}
	if rl.executor == nil {
		run()
		return
	}
	if !rl.executor.Schedule(run) {
		callback(TryOfFailure[T](newLogicError("executor rejected scheduling")))
	}
}

// SyncAwait blocks the calling goroutine until the task completes on its
// executor, via the same binary-semaphore handoff Future.Wait uses. Called
// from a goroutine already running on that executor, it returns a LogicError
// instead of blocking.
func (rl RescheduleLazy[T]) SyncAwait(ctx context.Context) (T, error) {
	if rl.executor == nil {
		return rl.inner(ctx)
	}
	if rl.executor.CurrentThreadInExecutor() {
		var zero T
		return zero, newLogicError("SyncAwait called from inside the lazy's own executor")
	}
	sem := semaphore.NewWeighted(1)
	_ = sem.Acquire(context.Background(), 1)
	var result Try[T]
	rl.Start(ctx, func(t Try[T]) {
		result = t
		sem.Release(1)
	})
	_ = sem.Acquire(context.Background(), 1)
	return result.Value()
}

// ToFuture starts the task and returns a Future observing its eventual
// result, the bridge used when a Lazy needs to be handed to Future-based
// code (e.g. CollectFutures).
func (rl RescheduleLazy[T]) ToFuture(ctx context.Context) Future[T] {
	p := NewPromise[T]()
	f := p.GetFuture()
	rl.Start(ctx, func(t Try[T]) {
		v, err := t.Value()
		if err != nil {
			p.SetException(err)
		} else {
			p.SetValue(v)
		}
	})
	return f
}
