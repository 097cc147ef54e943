package query

import "context"

// Future is a handle to an in-flight query. It is resolved exactly once.
type Future struct {
	done chan struct{}
	res  *Result
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(res *Result, err error) {
	f.res = res
	f.err = err
	close(f.done)
}

// resolved returns a Future that is already complete, used for cache
// hits and validation failures where no work was dispatched.
func resolvedFuture(res *Result, err error) *Future {
	f := newFuture()
	f.resolve(res, err)
	return f
}

// Wait blocks until the query completes or ctx expires. An expired ctx
// abandons the wait, not the underlying request.
func (f *Future) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-f.done:
		return f.res, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done reports completion without blocking.
func (f *Future) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
