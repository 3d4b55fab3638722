package async

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func intLazy(n int) Lazy[int] {
	return MakeLazy(func(ctx context.Context) (int, error) { return n, nil })
}

func TestCollectAllPreservesOrder(t *testing.T) {
	l := CollectAll(intLazy(1), intLazy(2), intLazy(3))
	results, err := l(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		require.Equal(t, i+1, r.MustValue())
	}
}

func TestCollectAllParaPreservesOrder(t *testing.T) {
	pool := NewThreadPool(WithThreads(4))
	defer pool.Shutdown()
	executor := NewSimpleExecutor(pool)

	lazies := make([]Lazy[int], 20)
	for i := range lazies {
		lazies[i] = intLazy(i)
	}
	results, err := CollectAllPara(executor, lazies...)(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 20)
	for i, r := range results {
		require.Equal(t, i, r.MustValue())
	}
}

func TestCollectAllParaSurfacesFailures(t *testing.T) {
	pool := NewThreadPool(WithThreads(2))
	defer pool.Shutdown()
	executor := NewSimpleExecutor(pool)

	sentinel := errors.New("bad task")
	failing := MakeLazy(func(ctx context.Context) (int, error) { return 0, sentinel })
	results, err := CollectAllPara(executor, intLazy(1), failing, intLazy(3))(context.Background())
	require.NoError(t, err)
	require.False(t, results[0].HasFailure())
	require.True(t, results[1].HasFailure())
	require.ErrorIs(t, results[1].Failure(), sentinel)
	require.False(t, results[2].HasFailure())
}

func TestCollectAnyReturnsFirstCompletion(t *testing.T) {
	pool := NewThreadPool(WithThreads(4))
	defer pool.Shutdown()
	executor := NewSimpleExecutor(pool)

	blocker := make(chan struct{})
	slow := MakeLazy(func(ctx context.Context) (int, error) {
		<-blocker
		return 999, nil
	})
	fast := intLazy(7)

	result, err := CollectAny(executor, slow, fast)(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Index)
	require.Equal(t, 7, result.Value.MustValue())
	close(blocker)
}

func TestCollectAllWindowedPreservesOrderAndBounds(t *testing.T) {
	pool := NewThreadPool(WithThreads(8))
	defer pool.Shutdown()
	executor := NewSimpleExecutor(pool)

	lazies := make([]Lazy[int], 10)
	for i := range lazies {
		lazies[i] = intLazy(i)
	}
	results, err := CollectAllWindowed(executor, 3, lazies...)(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 10)
	for i, r := range results {
		require.Equal(t, i, r.MustValue())
	}
}

func TestCollectAllWindowedParaPreservesOrder(t *testing.T) {
	pool := NewThreadPool(WithThreads(8))
	defer pool.Shutdown()
	executor := NewSimpleExecutor(pool)

	lazies := make([]Lazy[int], 15)
	for i := range lazies {
		lazies[i] = intLazy(i)
	}
	results, err := CollectAllWindowedPara(executor, 4, lazies...)(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 15)
	for i, r := range results {
		require.Equal(t, i, r.MustValue())
	}
}

func TestCollectFuturesWaitsForAll(t *testing.T) {
	p1, p2 := NewPromise[int](), NewPromise[int]()
	futures := []Future[int]{p1.GetFuture(), p2.GetFuture()}

	resultCh := make(chan []Try[int], 1)
	go func() {
		results, err := CollectFutures(futures)(context.Background())
		require.NoError(t, err)
		resultCh <- results
	}()

	p2.SetValue(20)
	p1.SetValue(10)

	results := <-resultCh
	require.Equal(t, 10, results[0].MustValue())
	require.Equal(t, 20, results[1].MustValue())
}
