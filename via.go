package async

import "context"

type executorContextKey struct{}

// contextWithExecutor tags ctx with the executor currently dispatching the
// running task, so nested Lazy bodies (and Yield/Sleep) can find their way
// back to it without threading an Executor parameter through every call.
func contextWithExecutor(ctx context.Context, executor Executor) context.Context {
	return context.WithValue(ctx, executorContextKey{}, executor)
}

// CurrentExecutor returns the Executor dispatching the task that produced
// ctx, if any -- the Go rendering of async_simple's CurrentExecutor{}
// awaitable.
func CurrentExecutor(ctx context.Context) (Executor, bool) {
	v, ok := ctx.Value(executorContextKey{}).(Executor)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// runOnExecutor runs fn on executor, honoring a checked-out Context if one is
// given. This is the Go rendering of async_simple's ViaCoroutine awaiter,
// which re-enters an executor (optionally pinned to a specific checked-out
// worker) around resuming a foreign coroutine. A nil executor runs fn inline.
// prompt is forwarded to Checkin (spec.md §4.3's {prompt} option): when true,
// Checkin may run fn inline if the caller is already on the checked-out
// worker instead of re-enqueuing it.
func runOnExecutor(executor Executor, checkout Context, prompt bool, fn func()) bool {
	if executor == nil {
		fn()
		return true
	}
	if checkout != noContext {
		return executor.Checkin(checkout, fn, prompt)
	}
	return executor.Schedule(fn)
}
