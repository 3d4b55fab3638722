package async

import (
	"context"

	"github.com/google/uuid"
)

// BatchID tags a single collect-combinator invocation for diagnostic
// correlation across its fanned-out tasks, the way a trace id correlates
// spans. It's assigned from github.com/google/uuid, the same library
// everyday-items-toolkit and tailored-agentic-units-kernel use for
// correlation/result ids.
type BatchID = uuid.UUID

func newBatchID() BatchID { return uuid.New() }

func dispatch(executor Executor, fn func()) {
	if executor == nil || !executor.Schedule(fn) {
		fn()
	}
}

// CollectAll runs every lazy task in order, in-stack, and returns their
// results in the same order once the last one finishes. No executor is
// involved: this is symmetric transfer all the way down, matching
// async_simple's serial collectAll.
func CollectAll[T any](lazies ...Lazy[T]) Lazy[[]Try[T]] {
	return func(ctx context.Context) ([]Try[T], error) {
		results := make([]Try[T], len(lazies))
		for i, l := range lazies {
			results[i] = callTry(func() (T, error) { return l(ctx) })
		}
		return results, nil
	}
}

// CollectFutures awaits an already in-flight slice of Futures, in order,
// returning once every one is ready. This is the Go rendering of
// async_simple's iterator-range collectAll(first, last) overload for
// futures rather than lazy tasks (spec.md §9 supplement).
func CollectFutures[T any](futures []Future[T]) Lazy[[]Try[T]] {
	return func(ctx context.Context) ([]Try[T], error) {
		results := make([]Try[T], len(futures))
		for i, f := range futures {
			results[i] = f.Wait()
		}
		return results, nil
	}
}

// CollectAllPara runs every lazy task concurrently on executor and returns
// their results in input order once all have completed. Grounded on the
// teacher's ChainedPromise.All combinator (eventloop/promise.go), generalized
// from a fixed goroutine fan-out to an explicit Executor so the fan-out
// honors the caller's own scheduling policy, tagged with a BatchID for log
// correlation across the fanned-out tasks. Completion is coordinated with a
// CountEvent rather than a sync.WaitGroup: the fan-out loop itself holds the
// phantom n+1'th count (released via Arm only after every task has been
// dispatched), so the last real completion can never race ahead of the loop
// still issuing later Schedule calls, matching spec.md §4.8/§6.2's
// count-down-then-resume-once discipline.
func CollectAllPara[T any](executor Executor, lazies ...Lazy[T]) Lazy[[]Try[T]] {
	return func(ctx context.Context) ([]Try[T], error) {
		n := len(lazies)
		results := make([]Try[T], n)
		if n == 0 {
			return results, nil
		}
		batch := newBatchID()
		logDebug("collect", "CollectAllPara starting", func(e *LogEntry) { e.Message += " " + batch.String() })
		done := make(chan struct{})
		ce := NewCountEvent(n, func() { close(done) })
		for i, l := range lazies {
			i, l := i, l
			dispatch(executor, func() {
				results[i] = callTry(func() (T, error) { return l(ctx) })
				ce.Down()
			})
		}
		ce.Arm()
		<-done
		return results, nil
	}
}

// AnyResult is the result of CollectAny: the batch id of the CollectAny call
// that produced it, the index of whichever task completed first, and its
// outcome. The batch id lets logs/traces correlate a result back to the
// fan-out that produced it even after the losing tasks' results are
// discarded.
type AnyResult[T any] struct {
	Batch BatchID
	Index int
	Value Try[T]
}

// CollectAny runs every lazy task concurrently on executor and returns as
// soon as the first one completes (success or failure), the Go rendering of
// async_simple's collectAny.
func CollectAny[T any](executor Executor, lazies ...Lazy[T]) Lazy[AnyResult[T]] {
	return func(ctx context.Context) (AnyResult[T], error) {
		n := len(lazies)
		if n == 0 {
			return AnyResult[T]{}, newLogicError("CollectAny requires at least one task")
		}
		batch := newBatchID()
		resultCh := make(chan AnyResult[T], n)
		for i, l := range lazies {
			i, l := i, l
			dispatch(executor, func() {
				resultCh <- AnyResult[T]{Batch: batch, Index: i, Value: callTry(func() (T, error) { return l(ctx) })}
			})
		}
		return <-resultCh, nil
	}
}

// CollectAllWindowed processes lazies in fixed-size chunks of window,
// running each chunk concurrently on executor and yielding back to the
// executor between chunks before starting the next one. That chunk boundary
// is what gives the FIFO interleaving guarantee (spec.md §8 Testable
// Property 5) its shape, and the guarantee only holds when the executor's
// work stealing is disabled (spec.md §10 Open Question 3) -- a work-stealing
// idle worker can run ahead and pull from the next chunk before the yield
// point, breaking the interleaving.
func CollectAllWindowed[T any](executor Executor, window int, lazies ...Lazy[T]) Lazy[[]Try[T]] {
	if window <= 0 {
		window = 1
	}
	return func(ctx context.Context) ([]Try[T], error) {
		n := len(lazies)
		results := make([]Try[T], n)
		for start := 0; start < n; start += window {
			end := start + window
			if end > n {
				end = n
			}
			chunk := lazies[start:end]
			done := make(chan struct{})
			ce := NewCountEvent(len(chunk), func() { close(done) })
			for off, l := range chunk {
				i, l := start+off, l
				dispatch(executor, func() {
					results[i] = callTry(func() (T, error) { return l(ctx) })
					ce.Down()
				})
			}
			ce.Arm()
			<-done
			if end < n {
				Yield(ctx)
			}
		}
		return results, nil
	}
}

// CollectAllWindowedPara keeps up to window tasks in flight at all times (a
// sliding window rather than CollectAllWindowed's fixed chunk boundaries),
// for higher throughput when the FIFO interleaving CollectAllWindowed offers
// isn't needed.
func CollectAllWindowedPara[T any](executor Executor, window int, lazies ...Lazy[T]) Lazy[[]Try[T]] {
	if window <= 0 {
		window = 1
	}
	return func(ctx context.Context) ([]Try[T], error) {
		n := len(lazies)
		results := make([]Try[T], n)
		if n == 0 {
			return results, nil
		}
		sem := make(chan struct{}, window)
		done := make(chan struct{})
		ce := NewCountEvent(n, func() { close(done) })
		for i, l := range lazies {
			i, l := i, l
			sem <- struct{}{}
			dispatch(executor, func() {
				defer func() { <-sem }()
				results[i] = callTry(func() (T, error) { return l(ctx) })
				ce.Down()
			})
		}
		ce.Arm()
		<-done
		return results, nil
	}
}
