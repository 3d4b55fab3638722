package async

import (
	"io"
	"os"
)

// FileIOExecutor is a portable IOExecutor backed by *os.File, dispatching
// every submitted operation onto a ThreadPool so disk I/O never blocks the
// submitting goroutine. It is the executor-agnostic fallback implementation
// of async_simple's IOExecutor (spec.md §9 supplement); see
// io_executor_linux.go for a golang.org/x/sys/unix-backed implementation
// that issues pread/pwrite directly on a raw file descriptor.
type FileIOExecutor struct {
	pool *ThreadPool
	file *os.File
}

// NewFileIOExecutor wraps file, submitting operations onto pool.
func NewFileIOExecutor(pool *ThreadPool, file *os.File) *FileIOExecutor {
	return &FileIOExecutor{pool: pool, file: file}
}

// Submit schedules req on the pool and invokes complete with its result.
func (e *FileIOExecutor) Submit(req IORequest, complete func(n int, err error)) {
	e.pool.Schedule(func() {
		n, err := e.do(req)
		complete(n, err)
	})
}

func (e *FileIOExecutor) do(req IORequest) (int, error) {
	switch req.Op {
	case IOOpPRead:
		return e.file.ReadAt(req.Buf, req.Offset)
	case IOOpPWrite:
		return e.file.WriteAt(req.Buf, req.Offset)
	case IOOpPReadV:
		return e.readv(req)
	case IOOpPWriteV:
		return e.writev(req)
	case IOOpFsync, IOOpFdatasync:
		return 0, e.file.Sync()
	case IOOpNoop:
		return 0, nil
	default:
		return 0, newLogicError("unsupported IOOp %d", req.Op)
	}
}

func (e *FileIOExecutor) readv(req IORequest) (int, error) {
	total := 0
	offset := req.Offset
	for _, buf := range req.IOVecs {
		n, err := e.file.ReadAt(buf, offset)
		total += n
		offset += int64(n)
		if err != nil {
			if err == io.EOF && total > 0 {
				return total, nil
			}
			return total, err
		}
	}
	return total, nil
}

func (e *FileIOExecutor) writev(req IORequest) (int, error) {
	total := 0
	offset := req.Offset
	for _, buf := range req.IOVecs {
		n, err := e.file.WriteAt(buf, offset)
		total += n
		offset += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
