package async

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Future is the read side of a Promise/Future pair (spec.md §4). A Future is
// backed by either a shared futureState (the cross-goroutine rendezvous) or a
// LocalState (the single-owner fast path for a result that is already known,
// as built by MakeReadyFuture and MakeReadyFutureWithFailure). Both backings share the
// same observable API.
type Future[T any] struct {
	shared *futureState[T]
	local  *LocalState[T]
}

func futureFromShared[T any](fs *futureState[T]) Future[T] {
	return Future[T]{shared: fs}
}

func futureFromLocal[T any](ls *LocalState[T]) Future[T] {
	return Future[T]{local: ls}
}

// MakeReadyFuture returns a Future that is immediately ready with v, with no
// scheduling or synchronization involved -- the Go rendering of
// async_simple's make_ready_future (spec.md §9 supplement).
func MakeReadyFuture[T any](v T) Future[T] {
	return futureFromLocal(newLocalState(TryOfValue(v)))
}

// MakeReadyFutureWithFailure returns a Future that is immediately ready with
// err as its failure.
func MakeReadyFutureWithFailure[T any](err error) Future[T] {
	return futureFromLocal(newLocalState(TryOfFailure[T](err)))
}

// IsReady reports whether the Future's result is already available.
func (f Future[T]) IsReady() bool {
	switch {
	case f.local != nil:
		return f.local.isReady()
	case f.shared != nil:
		return f.shared.isReady()
	default:
		return false
	}
}

// installContinuation installs continuation as the single consumer of this
// Future's result. It is an error (silently ignored here, logged) to call
// this on the same Future result more than once; spec.md's
// single-continuation contract assumes one consumer per future. This is the
// primitive both the package-level ThenTry/ThenValue and Wait are built on.
func (f Future[T]) installContinuation(continuation func(Try[T])) {
	switch {
	case f.local != nil:
		continuation(f.local.getResult())
	case f.shared != nil:
		if !f.shared.setContinuation(continuation) {
			logWarn("future", "continuation already installed", withFutureID(f.shared.id))
		}
	default:
		continuation(TryOfFailure[T](newLogicError("future has no backing state")))
	}
}

// ThenTry chains continuation onto f, returning a new Future[U] that becomes
// ready with continuation's result once f's result is available -- the Go
// rendering of async_simple's Future<T>::thenTry(F&&) -> Future<U> (spec.md
// §4.5). Go methods can't introduce a new type parameter, so the chain is a
// package-level function rather than a method: write g := ThenTry(f, fn)
// instead of f.ThenTry(fn). Any panic raised by continuation is captured into
// the downstream Try[U]'s failure, matching make_try_call's behavior.
func ThenTry[T, U any](f Future[T], continuation func(Try[T]) Try[U]) Future[U] {
	p := NewPromise[U]()
	f.installContinuation(func(t Try[T]) {
		p.setResult(callTry(func() (U, error) { return continuation(t).Value() }))
	})
	return p.GetFuture()
}

// ThenFuture is ThenTry for continuations that themselves produce a
// Future[U] rather than a plain Try[U], flattening the nested future so the
// returned Future[U] becomes ready only once the inner one does -- the
// "f returns a Future<U>" branch of spec.md §4.5's then_try.
func ThenFuture[T, U any](f Future[T], continuation func(Try[T]) Future[U]) Future[U] {
	p := NewPromise[U]()
	f.installContinuation(func(t Try[T]) {
		inner, err := callTry(func() (Future[U], error) { return continuation(t), nil }).Value()
		if err != nil {
			p.setResult(TryOfFailure[U](err))
			return
		}
		inner.installContinuation(func(u Try[U]) {
			p.setResult(u)
		})
	})
	return p.GetFuture()
}

// ThenValue is ThenTry with the upstream Try already unwrapped to T; if f
// failed, continuation is not invoked at all and the failure propagates
// unchanged to the returned Future[U], per spec.md §4.5's then_value.
func ThenValue[T, U any](f Future[T], continuation func(T) (U, error)) Future[U] {
	return ThenTry(f, func(t Try[T]) Try[U] {
		v, err := t.Value()
		if err != nil {
			return TryOfFailure[U](err)
		}
		return callTry(func() (U, error) { return continuation(v) })
	})
}

// Wait blocks the calling goroutine until the Future's result is available
// and returns it. The blocking handoff is a binary golang.org/x/sync/
// semaphore.Weighted, grounded on the same library's use for future-style
// blocking gets in other_examples' pool wrapper: acquire the single unit up
// front, have the continuation release it, then re-acquire to block until
// that release happens (or return immediately if it already has). Called
// from a goroutine running on the future's checked-out executor, Wait returns
// a LogicError failure instead of blocking.
func (f Future[T]) Wait() Try[T] {
	switch {
	case f.local != nil:
		return f.local.getResult()
	case f.shared == nil:
		return TryOfFailure[T](newLogicError("future has no backing state"))
	}

	if f.shared.executor != nil && f.shared.executor.CurrentThreadInExecutor() {
		return TryOfFailure[T](newLogicError("Wait called from inside the executor of future #%d", f.shared.id))
	}

	sem := semaphore.NewWeighted(1)
	_ = sem.Acquire(context.Background(), 1)
	var result Try[T]
	ok := f.shared.setContinuation(func(t Try[T]) {
		result = t
		sem.Release(1)
	})
	if !ok {
		return TryOfFailure[T](newLogicError("continuation already installed on future #%d", f.shared.id))
	}
	_ = sem.Acquire(context.Background(), 1)
	return result
}

// Get is Wait().Value(), the common case of wanting (T, error) directly.
func (f Future[T]) Get() (T, error) {
	return f.Wait().Value()
}
