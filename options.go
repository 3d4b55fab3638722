package async

// RuntimeOption configures NewRuntime, following the teacher's functional
// options pattern in eventloop/options.go: a private options struct, a
// resolve helper applying defaults, and With* constructors.
type RuntimeOption func(*runtimeOptions)

type runtimeOptions struct {
	threads      int
	workStealing bool
	logger       Logger
	ioExecutor   IOExecutor
}

func resolveRuntimeOptions(opts []RuntimeOption) runtimeOptions {
	o := runtimeOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithRuntimeThreads sets the worker count. Zero or negative leaves
// ThreadPool's own runtime.GOMAXPROCS(0) default in place.
func WithRuntimeThreads(n int) RuntimeOption {
	return func(o *runtimeOptions) { o.threads = n }
}

// WithRuntimeWorkStealing enables idle workers stealing tasks from
// neighboring queues.
func WithRuntimeWorkStealing(enabled bool) RuntimeOption {
	return func(o *runtimeOptions) { o.workStealing = enabled }
}

// WithRuntimeLogger installs a structured Logger, equivalent to calling
// SetStructuredLogger before constructing the runtime.
func WithRuntimeLogger(logger Logger) RuntimeOption {
	return func(o *runtimeOptions) { o.logger = logger }
}

// WithRuntimeIOExecutor attaches an IOExecutor, returned by the runtime's
// Executor.GetIOExecutor.
func WithRuntimeIOExecutor(io IOExecutor) RuntimeOption {
	return func(o *runtimeOptions) { o.ioExecutor = io }
}

// Runtime bundles a ThreadPool and the SimpleExecutor wrapping it: the
// all-in-one constructor most callers reach for instead of wiring
// NewThreadPool/NewSimpleExecutor by hand.
type Runtime struct {
	Pool     *ThreadPool
	Executor *SimpleExecutor
}

// NewRuntime builds a ready-to-use Runtime.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	o := resolveRuntimeOptions(opts)
	if o.logger != nil {
		SetStructuredLogger(o.logger)
	}
	poolOpts := []ThreadPoolOption{WithWorkStealing(o.workStealing)}
	if o.threads > 0 {
		poolOpts = append(poolOpts, WithThreads(o.threads))
	}
	pool := NewThreadPool(poolOpts...)
	if o.ioExecutor != nil {
		pool.SetIOExecutor(o.ioExecutor)
	}
	return &Runtime{Pool: pool, Executor: NewSimpleExecutor(pool)}
}

// Shutdown stops the underlying pool and waits for in-flight tasks to
// finish.
func (r *Runtime) Shutdown() {
	r.Pool.Shutdown()
}
