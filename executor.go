package async

import "time"

// Context is an opaque token returned by Executor.Checkout, identifying a
// logical slot (e.g. a specific worker) that a subsequent Checkin call can
// target. It mirrors async_simple's Executor::Context (spec.md §5.2):
// SimpleExecutor uses it to pin a continuation back to a specific worker of
// its ThreadPool.
type Context uint64

// noContext is the zero Context, meaning "no particular worker affinity".
const noContext Context = 0

// IOOp identifies the file operation submitted through IOExecutor.Submit,
// matching async_simple's IOExecutor::Op enum (spec.md §9 supplement).
type IOOp int

const (
	IOOpNoop IOOp = iota
	IOOpPRead
	IOOpPWrite
	IOOpPReadV
	IOOpPWriteV
	IOOpFsync
	IOOpFdatasync
)

// IORequest describes a single submitted I/O operation.
type IORequest struct {
	Op     IOOp
	FD     uintptr
	Buf    []byte
	IOVecs [][]byte
	Offset int64
}

// IOExecutor is the pluggable disk-I/O submission side of an Executor,
// matching async_simple's IOExecutor abstraction (spec.md §9 supplement).
// Complete(result, err) is the callback IOExecutor implementations invoke
// once the operation finishes; implementations are free to call it
// synchronously or from another goroutine.
type IOExecutor interface {
	Submit(req IORequest, complete func(n int, err error))
}

// Executor is the pluggable scheduling abstraction Lazy/RescheduleLazy and
// the collect combinators dispatch work through (spec.md §5). Implementations
// must be safe for concurrent use by multiple goroutines.
type Executor interface {
	// Schedule enqueues fn to run on the executor, returning false if the
	// executor is shut down and fn was not accepted.
	Schedule(fn func()) bool

	// ScheduleAfter enqueues fn to run on the executor no sooner than d from
	// now.
	ScheduleAfter(d time.Duration, fn func()) bool

	// CurrentThreadInExecutor reports whether the calling goroutine is
	// currently running a task dispatched by this executor -- used to avoid
	// deadlocking Future.Wait, and to let Via(executor) skip rescheduling
	// when already on the right executor.
	CurrentThreadInExecutor() bool

	// CurrentContextID returns an implementation-defined identifier for the
	// calling goroutine's current slot within the executor (e.g. worker
	// index), or 0 if not currently running on the executor.
	CurrentContextID() uint64

	// Checkout reserves a Context that a later Checkin call can target,
	// returning noContext if the executor doesn't support checkout/checkin.
	Checkout() Context

	// Checkin runs fn on the worker identified by ctx (as returned by
	// Checkout), returning false if ctx is no longer valid or the executor
	// is shut down. If prompt is true and the calling goroutine is already
	// running on ctx's worker, fn runs inline instead of being re-enqueued
	// (spec.md §4.3's checkin(fn, context, {prompt})).
	Checkin(ctx Context, fn func(), prompt bool) bool

	// GetIOExecutor returns the IOExecutor associated with this executor, or
	// nil if it doesn't provide one.
	GetIOExecutor() IOExecutor
}

// defaultScheduleAfter is a reusable ScheduleAfter built on top of Schedule
// plus a time.Timer, for Executor implementations (like SimpleExecutor) that
// have no native delayed-scheduling primitive.
func defaultScheduleAfter(e Executor, d time.Duration, fn func()) bool {
	if d <= 0 {
		return e.Schedule(fn)
	}
	timer := time.AfterFunc(d, func() {
		e.Schedule(fn)
	})
	_ = timer
	return true
}
