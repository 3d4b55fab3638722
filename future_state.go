package async

import (
	"sync/atomic"
)

var futureIDSeq atomic.Uint64

func nextFutureID() uint64 { return futureIDSeq.Add(1) }

// futureState is the atomic rendezvous shared between a Promise and the
// Future(s) attached to it, mirroring async_simple's FutureState<T>: whichever
// of set_result/set_continuation arrives second drives the transition into
// stateDone and runs the continuation, per spec.md §4.2-§4.4.
//
// Unlike the teacher's ChainedPromise (eventloop/promise.go), which protects
// resolve/reject with a mutex plus a double-checked lock around handler
// registration, futureState never takes a lock on the hot path: the single
// CAS in rendezvousState.TryTransition is both the synchronization point and
// the "who goes second" decision, matching the lock-free design spec.md §4.4
// calls for.
type futureState[T any] struct {
	id uint64
	rs *rendezvousState

	result       Try[T]
	continuation func(Try[T])

	executor       Executor
	context        Context
	forceScheduled bool
}

func newFutureState[T any](executor Executor, ctx Context, forceScheduled bool) *futureState[T] {
	fs := &futureState[T]{
		id:             nextFutureID(),
		rs:             newRendezvousState(),
		executor:       executor,
		context:        ctx,
		forceScheduled: forceScheduled,
	}
	return fs
}

func finalizeBrokenPromise[T any](fs *futureState[T]) {
	switch fs.rs.Load() {
	case stateStart:
		fs.setResult(TryOfFailure[T](&BrokenPromiseError{ID: fs.id}))
	case stateOnlyContinuation:
		fs.setResult(TryOfFailure[T](&BrokenPromiseError{ID: fs.id}))
	default:
		// Already has a result (OnlyResult/Done): the promise was fulfilled
		// before it became unreachable, nothing to do.
	}
}

// setResult installs the produced value/failure. Returns false if a result
// was already set (a logic error the caller should surface, per spec.md §10
// Open Question 1: the second setter on a raced Promise copy loses loudly
// rather than being silently dropped).
func (fs *futureState[T]) setResult(result Try[T]) bool {
	switch fs.rs.Load() {
	case stateOnlyResult, stateDone:
		return false
	}
	fs.result = result
	if fs.rs.TryTransition(stateStart, stateOnlyResult) {
		return true
	}
	if fs.rs.TryTransition(stateOnlyContinuation, stateDone) {
		fs.runContinuation(result)
		return true
	}
	return false
}

// setContinuation installs the consumer-side callback. Returns false if a
// continuation was already installed.
func (fs *futureState[T]) setContinuation(continuation func(Try[T])) bool {
	switch fs.rs.Load() {
	case stateOnlyContinuation, stateDone:
		return false
	}
	fs.continuation = continuation
	if fs.rs.TryTransition(stateStart, stateOnlyContinuation) {
		return true
	}
	if fs.rs.TryTransition(stateOnlyResult, stateDone) {
		// The result is already visible (it was stored before the
		// OnlyResult CAS by the producer). runContinuation runs it inline on
		// the installing goroutine unless the Promise was checked out onto
		// an executor, in which case it is dispatched there.
		fs.runContinuation(fs.result)
		return true
	}
	return false
}

// runContinuation drives the continuation once the rendezvous completes,
// from whichever side arrived second, following spec.md §4.4's schedule_continuation: without
// an explicit checkout (forceScheduled false), run inline whenever there's no
// executor to reschedule onto, or the caller is already running on it --
// otherwise dispatch through runOnExecutor, which prefers checkin(context)
// over a fresh schedule so the continuation returns to the same worker
// Promise.Checkout recorded (the Go analogue of RescheduleLazy's "never
// resume the waiter inline on the setter's thread" guarantee, and of
// async_simple's ViaCoroutine re-entry).
func (fs *futureState[T]) runContinuation(result Try[T]) {
	continuation := fs.continuation
	if continuation == nil {
		return
	}
	run := func() { continuation(result) }

	if !fs.forceScheduled && (fs.executor == nil || fs.executor.CurrentThreadInExecutor()) {
		run()
		return
	}
	if fs.executor == nil {
		run()
		return
	}
	if runOnExecutor(fs.executor, fs.context, !fs.forceScheduled, run) {
		return
	}
	logWarn("future", "schedule of continuation failed, running inline", withFutureID(fs.id))
	run()
}

func (fs *futureState[T]) isReady() bool {
	switch fs.rs.Load() {
	case stateOnlyResult, stateDone:
		return true
	default:
		return false
	}
}
