package async

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogicErrorUnwrapsToSentinel(t *testing.T) {
	err := newLogicError("bad thing: %d", 7)
	require.ErrorIs(t, err, ErrLogicError)
	require.Contains(t, err.Error(), "bad thing: 7")
}

func TestBrokenPromiseErrorUnwrapsToSentinel(t *testing.T) {
	err := &BrokenPromiseError{ID: 3}
	require.ErrorIs(t, err, ErrBrokenPromise)
	require.Contains(t, err.Error(), "3")
}

func TestPanicErrorWrapsUnderlyingError(t *testing.T) {
	sentinel := errors.New("inner")
	err := &PanicError{Value: sentinel}
	require.ErrorIs(t, err, sentinel)
}

func TestPanicErrorNonErrorValue(t *testing.T) {
	err := &PanicError{Value: "raw string panic"}
	require.Contains(t, err.Error(), "raw string panic")
	require.Nil(t, err.Unwrap())
}

func TestAggregateErrorUnwrapsAll(t *testing.T) {
	e1 := errors.New("one")
	e2 := errors.New("two")
	agg := &AggregateError{Errors: []error{e1, e2}}
	require.ErrorIs(t, agg, e1)
	require.ErrorIs(t, agg, e2)
}
