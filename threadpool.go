package async

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// ThreadPool is a fixed-size pool of worker goroutines, each draining its own
// FIFO task queue, with optional work stealing from neighboring queues when
// idle. It is the Go rendering of async_simple's SimpleExecutor thread pool
// (spec.md §5.3).
//
// Each worker's queue is a mutex-guarded slice rather than a lock-free ring,
// the same tradeoff the teacher's Loop documents in eventloop/loop.go:
// contention on a single worker's own queue is low (one producer-ish burst at
// a time, one consumer), so a plain mutex benchmarks better than a lock-free
// structure once you account for the false sharing a lock-free ring's
// head/tail counters introduce.
type ThreadPool struct {
	opts    threadPoolOptions
	workers []*poolWorker
	next    atomic.Uint64
	group   *errgroup.Group
	closed  atomic.Bool
	io      IOExecutor
}

type poolWorker struct {
	pool  *ThreadPool
	index int

	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []func()
	closed bool
}

type threadPoolOptions struct {
	numThreads      int
	enableWorkSteal bool
	name            string
}

// ThreadPoolOption configures NewThreadPool, following the teacher's
// functional-options pattern in eventloop/options.go.
type ThreadPoolOption func(*threadPoolOptions)

func defaultThreadPoolOptions() threadPoolOptions {
	return threadPoolOptions{
		numThreads:      runtime.GOMAXPROCS(0),
		enableWorkSteal: false,
		name:            "async",
	}
}

// WithThreads sets the worker count. Non-positive values are ignored.
func WithThreads(n int) ThreadPoolOption {
	return func(o *threadPoolOptions) {
		if n > 0 {
			o.numThreads = n
		}
	}
}

// WithWorkStealing enables idle workers stealing tasks from their neighbors'
// queues, matching async_simple's optional work-stealing thread pool mode.
// Enabling it breaks the strict per-worker FIFO ordering guarantee that
// CollectAllWindowed's Testable Property 5 depends on (spec.md §10 Open
// Question 3).
func WithWorkStealing(enabled bool) ThreadPoolOption {
	return func(o *threadPoolOptions) { o.enableWorkSteal = enabled }
}

// WithPoolName sets the pool's name. The name is kept in the pool's options
// only; log entries do not include it.
func WithPoolName(name string) ThreadPoolOption {
	return func(o *threadPoolOptions) { o.name = name }
}

// NewThreadPool constructs and starts a ThreadPool. Call Shutdown to stop it
// and wait for in-flight tasks to finish.
func NewThreadPool(opts ...ThreadPoolOption) *ThreadPool {
	o := defaultThreadPoolOptions()
	for _, opt := range opts {
		opt(&o)
	}

	tp := &ThreadPool{opts: o}
	tp.group = new(errgroup.Group)
	tp.workers = make([]*poolWorker, o.numThreads)
	for i := range tp.workers {
		w := &poolWorker{pool: tp, index: i}
		w.cond = sync.NewCond(&w.mu)
		tp.workers[i] = w
	}
	for _, w := range tp.workers {
		w := w
		tp.group.Go(func() error {
			w.run()
			return nil
		})
	}
	return tp
}

// goroutineID extracts the numeric goroutine id from a runtime stack trace.
// This is the classic trick for emulating goroutine-local storage in Go:
// none of the retrieved examples provide a goroutine-local primitive, and
// none of the examples' third-party dependencies (uuid, logiface, testify,
// x/sync, x/sys) offer one either, so this one corner stays on the standard
// library -- see DESIGN.md.
func goroutineID() int64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if idx := bytes.IndexByte(buf, ' '); idx >= 0 {
		buf = buf[:idx]
	}
	id, _ := strconv.ParseInt(string(buf), 10, 64)
	return id
}

var workerRegistry sync.Map // int64 goroutine id -> *poolWorker

func currentPoolWorker() (*poolWorker, bool) {
	v, ok := workerRegistry.Load(goroutineID())
	if !ok {
		return nil, false
	}
	return v.(*poolWorker), true
}

func (w *poolWorker) run() {
	gid := goroutineID()
	workerRegistry.Store(gid, w)
	defer workerRegistry.Delete(gid)

	for {
		task, ok := w.popOrSteal()
		if !ok {
			return
		}
		w.safeRun(task)
	}
}

// popOrSteal returns the next task for this worker: its own queue's head if
// non-empty, otherwise (when work stealing is enabled) the oldest task from
// a neighboring worker's queue. It blocks only when work stealing is
// disabled; a work-stealing worker instead polls briefly between steal
// attempts so it notices both new work of its own and a shutdown signal.
func (w *poolWorker) popOrSteal() (func(), bool) {
	if !w.pool.opts.enableWorkSteal {
		return w.pop()
	}
	for {
		w.mu.Lock()
		if len(w.tasks) > 0 {
			task := w.tasks[0]
			w.tasks = w.tasks[1:]
			w.mu.Unlock()
			return task, true
		}
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return nil, false
		}
		if task, ok := w.pool.steal(w.index); ok {
			return task, true
		}
		time.Sleep(time.Millisecond)
	}
}

func (w *poolWorker) safeRun(task func()) {
	defer func() {
		if r := recover(); r != nil {
			globalMetrics.TasksPanicked.Add(1)
			logError("pool", "worker task panicked", &PanicError{Value: r}, withWorkerID(w.index))
			return
		}
		globalMetrics.TasksCompleted.Add(1)
	}()
	task()
}

func (w *poolWorker) push(task func()) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	w.tasks = append(w.tasks, task)
	w.cond.Signal()
	globalMetrics.TasksScheduled.Add(1)
	return true
}

// pop blocks until a task is available or the queue is closed and drained.
func (w *poolWorker) pop() (func(), bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for len(w.tasks) == 0 && !w.closed {
		w.cond.Wait()
	}
	if len(w.tasks) == 0 {
		return nil, false
	}
	task := w.tasks[0]
	w.tasks = w.tasks[1:]
	return task, true
}

// tryStealFrom removes and returns the oldest task from this worker's queue
// without blocking, for use by a neighbor's steal attempt.
func (w *poolWorker) tryStealFrom() (func(), bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.tasks) == 0 {
		return nil, false
	}
	task := w.tasks[0]
	w.tasks = w.tasks[1:]
	return task, true
}

func (w *poolWorker) shutdown() {
	w.mu.Lock()
	w.closed = true
	w.cond.Broadcast()
	w.mu.Unlock()
}

func (tp *ThreadPool) steal(fromIndex int) (func(), bool) {
	n := len(tp.workers)
	for k := 1; k < n; k++ {
		w := tp.workers[(fromIndex+k)%n]
		if task, ok := w.tryStealFrom(); ok {
			return task, true
		}
	}
	return nil, false
}

// Schedule enqueues fn onto the calling worker's own queue if already on the
// pool (locality, no cross-queue signaling needed), otherwise onto the next
// worker in round-robin order.
func (tp *ThreadPool) Schedule(fn func()) bool {
	if tp.closed.Load() {
		return false
	}
	if w, ok := currentPoolWorker(); ok && w.pool == tp {
		return w.push(fn)
	}
	return tp.ScheduleByID(fn, -1)
}

// ScheduleByID enqueues fn onto the worker identified by id, or the next
// worker in round-robin order if id is negative or out of range. It is the
// Go rendering of async_simple's schedule_by_id.
func (tp *ThreadPool) ScheduleByID(fn func(), id int) bool {
	if tp.closed.Load() {
		return false
	}
	n := len(tp.workers)
	if n == 0 {
		return false
	}
	if id < 0 || id >= n {
		id = int(tp.next.Add(1) % uint64(n))
	}
	return tp.workers[id].push(fn)
}

// CurrentThreadInExecutor reports whether the calling goroutine is currently
// running a task dispatched by this pool.
func (tp *ThreadPool) CurrentThreadInExecutor() bool {
	w, ok := currentPoolWorker()
	return ok && w.pool == tp
}

// CurrentID returns the calling goroutine's worker index within this pool, or
// -1 if it is not currently running a task on this pool.
func (tp *ThreadPool) CurrentID() int {
	w, ok := currentPoolWorker()
	if !ok || w.pool != tp {
		return -1
	}
	return w.index
}

// SetIOExecutor attaches an IOExecutor this pool will hand out through the
// Executor.GetIOExecutor method of wrapping SimpleExecutors.
func (tp *ThreadPool) SetIOExecutor(io IOExecutor) {
	tp.io = io
}

// GetIOExecutor returns the attached IOExecutor, or nil.
func (tp *ThreadPool) GetIOExecutor() IOExecutor {
	return tp.io
}

// NumWorkers returns the configured worker count.
func (tp *ThreadPool) NumWorkers() int {
	return len(tp.workers)
}

// Shutdown stops accepting new tasks, drains each worker's remaining queue,
// and waits for all worker goroutines to exit.
func (tp *ThreadPool) Shutdown() {
	if !tp.closed.CompareAndSwap(false, true) {
		return
	}
	for _, w := range tp.workers {
		w.shutdown()
	}
	_ = tp.group.Wait()
}
