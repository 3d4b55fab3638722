package async

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileIOExecutorPWriteThenPRead(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "async-io-*")
	require.NoError(t, err)
	defer f.Close()

	pool := NewThreadPool(WithThreads(2))
	defer pool.Shutdown()
	exec := NewFileIOExecutor(pool, f)

	payload := []byte("hello, io executor")
	writeDone := make(chan error, 1)
	exec.Submit(IORequest{Op: IOOpPWrite, Buf: payload, Offset: 0}, func(n int, err error) {
		require.Equal(t, len(payload), n)
		writeDone <- err
	})
	require.NoError(t, <-writeDone)

	readBuf := make([]byte, len(payload))
	readDone := make(chan error, 1)
	exec.Submit(IORequest{Op: IOOpPRead, Buf: readBuf, Offset: 0}, func(n int, err error) {
		require.Equal(t, len(payload), n)
		readDone <- err
	})
	require.NoError(t, <-readDone)
	require.Equal(t, payload, readBuf)
}

func TestFileIOExecutorFsync(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "async-io-*")
	require.NoError(t, err)
	defer f.Close()

	pool := NewThreadPool(WithThreads(1))
	defer pool.Shutdown()
	exec := NewFileIOExecutor(pool, f)

	done := make(chan error, 1)
	exec.Submit(IORequest{Op: IOOpFsync}, func(n int, err error) { done <- err })
	require.NoError(t, <-done)
}
