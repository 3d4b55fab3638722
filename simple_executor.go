package async

import "time"

// SimpleExecutor adapts a ThreadPool to the Executor interface, the Go
// rendering of async_simple's SimpleExecutor (spec.md §5.3): Checkout/Checkin
// pin a continuation back to a specific worker by tagging a Context with that
// worker's index, the same way the teacher's state.go packs a small integer
// into a single atomic word instead of allocating a descriptor per checkout.
type SimpleExecutor struct {
	pool *ThreadPool
}

// NewSimpleExecutor wraps pool as an Executor.
func NewSimpleExecutor(pool *ThreadPool) *SimpleExecutor {
	return &SimpleExecutor{pool: pool}
}

func (e *SimpleExecutor) Schedule(fn func()) bool {
	return e.pool.Schedule(fn)
}

func (e *SimpleExecutor) ScheduleAfter(d time.Duration, fn func()) bool {
	return defaultScheduleAfter(e, d, fn)
}

func (e *SimpleExecutor) CurrentThreadInExecutor() bool {
	return e.pool.CurrentThreadInExecutor()
}

func (e *SimpleExecutor) CurrentContextID() uint64 {
	id := e.pool.CurrentID()
	if id < 0 {
		return 0
	}
	return uint64(id) + 1
}

// Checkout reserves a Context tagging either the calling worker (if already
// running on this pool) or the next worker in round-robin order.
func (e *SimpleExecutor) Checkout() Context {
	if id := e.pool.CurrentID(); id >= 0 {
		return Context(id + 1)
	}
	n := e.pool.NumWorkers()
	if n == 0 {
		return noContext
	}
	return Context(int(e.pool.next.Add(1)%uint64(n)) + 1)
}

// Checkin runs fn on the worker identified by ctx, or hands it to
// ThreadPool.Schedule if ctx is noContext. If prompt is true and the calling goroutine is already the
// worker ctx identifies, fn runs inline rather than being re-enqueued onto
// its own queue.
func (e *SimpleExecutor) Checkin(ctx Context, fn func(), prompt bool) bool {
	if ctx == noContext {
		return e.pool.Schedule(fn)
	}
	if prompt && e.pool.CurrentID() == int(ctx)-1 {
		fn()
		return true
	}
	return e.pool.ScheduleByID(fn, int(ctx)-1)
}

func (e *SimpleExecutor) GetIOExecutor() IOExecutor {
	return e.pool.GetIOExecutor()
}
