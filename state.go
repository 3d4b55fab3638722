package async

import "sync/atomic"

// rendezvousState is the atomic state machine that drives futureState[T],
// built the same way the teacher's FastState drives Loop's lifecycle in
// state.go: a cache-line-padded atomic word plus a TryTransition(from, to)
// CAS helper. Generalized here from the teacher's 5-value loop lifecycle to
// spec.md §4.4's 4-value rendezvous.
type rendezvousValue uint32

const (
	// stateStart is the initial state: neither a result nor a continuation
	// has been supplied yet.
	stateStart rendezvousValue = iota
	// stateOnlyResult: set_result arrived first.
	stateOnlyResult
	// stateOnlyContinuation: set_continuation arrived first.
	stateOnlyContinuation
	// stateDone: both a result and a continuation have been supplied, in
	// either order. This is the only state from which the continuation has
	// run or is in the process of running.
	stateDone
)

func (s rendezvousValue) String() string {
	switch s {
	case stateStart:
		return "Start"
	case stateOnlyResult:
		return "OnlyResult"
	case stateOnlyContinuation:
		return "OnlyContinuation"
	case stateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// rendezvousState is a lock-free 4-state machine, cache-line padded to avoid
// false sharing between the producer and consumer sides of a futureState.
type rendezvousState struct { //nolint:govet // padding intentional, mirrors teacher's FastState
	_ [64]byte
	v atomic.Uint32
	_ [60]byte
}

func newRendezvousState() *rendezvousState {
	s := &rendezvousState{}
	s.v.Store(uint32(stateStart))
	return s
}

func (s *rendezvousState) Load() rendezvousValue {
	return rendezvousValue(s.v.Load())
}

// TryTransition attempts an atomic from->to CAS and reports success.
func (s *rendezvousState) TryTransition(from, to rendezvousValue) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}
