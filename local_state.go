package async

// LocalState is the single-owner fast path for a Future[T] whose result is
// already known when the Future is created (MakeReadyFuture and
// MakeReadyFutureWithFailure): there is no cross-goroutine handoff to
// coordinate, so the atomic futureState rendezvous is skipped, matching
// spec.md §4.3's LocalState<T> / currentLocalState optimization.
type LocalState[T any] struct {
	result Try[T]
	ready  bool
}

func newLocalState[T any](result Try[T]) *LocalState[T] {
	return &LocalState[T]{result: result, ready: true}
}

func (ls *LocalState[T]) isReady() bool { return ls.ready }

func (ls *LocalState[T]) setResult(result Try[T]) {
	ls.result = result
	ls.ready = true
}

func (ls *LocalState[T]) getResult() Try[T] {
	return ls.result
}
