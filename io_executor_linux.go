//go:build linux

package async

import "golang.org/x/sys/unix"

// UnixIOExecutor is the Linux reference IOExecutor implementation, issuing
// positioned reads/writes on a raw file descriptor via golang.org/x/sys/unix
// (pread/pwrite/preadv/pwritev/fsync/fdatasync) rather than through *os.File. It is
// grounded on the teacher's retained golang.org/x/sys dependency (the
// teacher's go.mod carries x/sys for low-level platform calls; this is the
// component that actually exercises it in this module, per DESIGN.md).
type UnixIOExecutor struct {
	pool *ThreadPool
	fd   int
}

// NewUnixIOExecutor wraps a raw file descriptor, dispatching operations onto
// pool.
func NewUnixIOExecutor(pool *ThreadPool, fd int) *UnixIOExecutor {
	return &UnixIOExecutor{pool: pool, fd: fd}
}

func (e *UnixIOExecutor) Submit(req IORequest, complete func(n int, err error)) {
	e.pool.Schedule(func() {
		n, err := e.do(req)
		complete(n, err)
	})
}

func (e *UnixIOExecutor) do(req IORequest) (int, error) {
	switch req.Op {
	case IOOpPRead:
		return unix.Pread(e.fd, req.Buf, req.Offset)
	case IOOpPWrite:
		return unix.Pwrite(e.fd, req.Buf, req.Offset)
	case IOOpPReadV:
		return unix.Preadv(e.fd, req.IOVecs, req.Offset)
	case IOOpPWriteV:
		return unix.Pwritev(e.fd, req.IOVecs, req.Offset)
	case IOOpFsync:
		return 0, unix.Fsync(e.fd)
	case IOOpFdatasync:
		return 0, unix.Fdatasync(e.fd)
	case IOOpNoop:
		return 0, nil
	default:
		return 0, newLogicError("unsupported IOOp %d", req.Op)
	}
}
