package async

import "runtime"

// Promise is the write side of a Promise/Future pair. Copying a Promise[T]
// value (plain Go assignment) shares the same underlying futureState, the
// way copying async_simple's Promise shares the underlying shared_ptr state
// -- see spec.md §10 Open Question 1 for what happens when two copies race
// to set the result.
type Promise[T any] struct {
	state *futureState[T]

	// finalizer is a small heap object private to this chain of Promise
	// copies. When every copy becomes unreachable without ever calling
	// SetValue/SetException, its GC finalizer synthesizes a
	// BrokenPromiseError on state -- the Go substitute for the C++ Promise
	// destructor firing while still holding an unfulfilled shared state. It
	// must NOT live inside futureState itself: state is also reachable
	// through any Future obtained via GetFuture, and a finalizer anchored
	// there would never become eligible to run while a waiting Future kept
	// it alive -- exactly the case this exists to detect.
	finalizer *promiseFinalizer
}

type promiseFinalizer struct{}

// NewPromise creates an unfulfilled Promise/Future pair's write side. Call
// GetFuture to obtain the matching read side.
func NewPromise[T any]() Promise[T] {
	fs := newFutureState[T](nil, noContext, false)
	marker := &promiseFinalizer{}
	runtime.SetFinalizer(marker, func(*promiseFinalizer) {
		finalizeBrokenPromise(fs)
	})
	return Promise[T]{state: fs, finalizer: marker}
}

// SetValue fulfills the promise with v. Returns false if the promise was
// already fulfilled (by this copy or another copy of the same Promise) --
// the second setter in a raced copy loses loudly rather than being silently
// dropped, per spec.md §10 Open Question 1.
func (p Promise[T]) SetValue(v T) bool {
	return p.setResult(TryOfValue(v))
}

// SetException fulfills the promise with a failure. A nil err is itself
// turned into a LogicError failure, since "no error" has no business being
// delivered through the exception path.
func (p Promise[T]) SetException(err error) bool {
	if err == nil {
		err = newLogicError("SetException called with a nil error")
	}
	return p.setResult(TryOfFailure[T](err))
}

func (p Promise[T]) setResult(t Try[T]) bool {
	if p.state == nil {
		return false
	}
	ok := p.state.setResult(t)
	if ok {
		// Result delivered through the normal path; disarm the
		// broken-promise GC finalizer so it doesn't fire later.
		if p.finalizer != nil {
			runtime.SetFinalizer(p.finalizer, nil)
		}
	} else {
		logWarn("future", "SetValue/SetException called after the promise was already fulfilled", withFutureID(p.state.id))
	}
	return ok
}

// GetFuture returns the Future reading this promise's eventual result.
// Future[T] instances obtained this way all observe the single rendezvous:
// only one of them should install a continuation or call Wait, matching the
// single-consumer contract in spec.md §4.
func (p Promise[T]) GetFuture() Future[T] {
	return futureFromShared(p.state)
}

// Checkout binds this promise's eventual continuation to run on executor
// (scheduled rather than invoked inline from whichever goroutine calls
// SetValue/SetException). When ctx is not noContext, the continuation is
// pinned to that context's worker through Executor.Checkin.
func (p Promise[T]) Checkout(executor Executor, ctx Context) {
	if p.state == nil {
		return
	}
	p.state.executor = executor
	p.state.context = ctx
	p.state.forceScheduled = executor != nil
}

// IsReady reports whether the promise has already been fulfilled.
func (p Promise[T]) IsReady() bool {
	return p.state != nil && p.state.isReady()
}
