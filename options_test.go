package async

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRuntimeDefaultOptions(t *testing.T) {
	rt := NewRuntime()
	defer rt.Shutdown()

	l := MakeLazy(func(ctx context.Context) (int, error) {
		return 1, nil
	})
	v, err := l.Via(rt.Executor).SyncAwait(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, v)
}

func TestNewRuntimeWithThreadsAndWorkStealing(t *testing.T) {
	rt := NewRuntime(WithRuntimeThreads(3), WithRuntimeWorkStealing(true))
	defer rt.Shutdown()
	require.Equal(t, 3, rt.Pool.NumWorkers())
}

func TestNewRuntimeWithIOExecutor(t *testing.T) {
	fakeIO := &stubIOExecutor{}
	rt := NewRuntime(WithRuntimeIOExecutor(fakeIO))
	defer rt.Shutdown()

	require.Same(t, fakeIO, rt.Executor.GetIOExecutor())
}

type stubIOExecutor struct{}

func (*stubIOExecutor) Submit(req IORequest, complete func(n int, err error)) {
	complete(0, nil)
}
