package async

import (
	"errors"
	"fmt"
)

// ErrBrokenPromise is the sentinel wrapped by the failure a futureState
// synthesizes when its last Promise reference drops without a result ever
// being set.
var ErrBrokenPromise = errors.New("async: broken promise")

// ErrLogicError is the sentinel wrapped by failures that represent contract
// violations: an empty Try read as a value, a second continuation installed
// through Future.Wait, Wait called on the future's own executor goroutine,
// RescheduleLazy.SyncAwait called from its own executor, and so on. Tests are
// expected to detect these, per spec.md §7. A second SetValue/SetException on
// a Promise is not reported this way: it returns false and logs a warning.
var ErrLogicError = errors.New("async: logic error")

// LogicError wraps ErrLogicError with a descriptive message.
type LogicError struct {
	Message string
}

func newLogicError(format string, args ...any) error {
	return &LogicError{Message: fmt.Sprintf(format, args...)}
}

func (e *LogicError) Error() string { return "async: logic error: " + e.Message }

// Unwrap lets errors.Is(err, ErrLogicError) succeed.
func (e *LogicError) Unwrap() error { return ErrLogicError }

// BrokenPromiseError wraps ErrBrokenPromise with the id of the futureState
// whose last Promise reference dropped without a result.
type BrokenPromiseError struct {
	ID uint64
}

func (e *BrokenPromiseError) Error() string {
	return fmt.Sprintf("async: broken promise (future #%d)", e.ID)
}

// Unwrap lets errors.Is(err, ErrBrokenPromise) succeed.
func (e *BrokenPromiseError) Unwrap() error { return ErrBrokenPromise }

// PanicError wraps a recovered panic value as an error, the way a task
// body's panic is captured into a Try's failure slot instead of crashing the
// worker that ran it.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return "async: panic: " + err.Error()
	}
	return fmt.Sprintf("async: panic: %v", e.Value)
}

// Unwrap returns the underlying error if the panic value is itself an error,
// enabling errors.Is/errors.As through the panic wrapper.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// AggregateError collects several task failures into one error, in the order
// given in Errors. No combinator in this package returns it: CollectAny
// reports the first task to complete, whether it failed or not.
type AggregateError struct {
	Message string
	Errors  []error
}

func (e *AggregateError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "async: all tasks failed"
}

// Unwrap enables errors.Is/errors.As to check against every wrapped error.
func (e *AggregateError) Unwrap() []error { return e.Errors }
