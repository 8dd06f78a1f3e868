package search

import (
	"context"
	"sync"
)

// Handle is one outstanding request. Cancelling it guarantees its result is
// never delivered; it does not un-send anything already on the wire.
type Handle struct {
	mu        sync.Mutex
	cancel    context.CancelFunc
	cancelled bool
	settled   bool
	done      chan struct{}
}

// Issue runs fn on its own goroutine with a child of parent and hands the
// outcome to deliver unless the returned handle was cancelled first.
func Issue[T any](parent context.Context, fn func(ctx context.Context) (T, error), deliver func(T, error)) *Handle {
	ctx, cancel := context.WithCancel(parent)
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)
		defer cancel()

		v, err := fn(ctx)

		h.mu.Lock()
		if h.cancelled {
			h.mu.Unlock()
			return
		}
		h.settled = true
		h.mu.Unlock()

		deliver(v, err)
	}()

	return h
}

// Cancel suppresses delivery and cancels the request context. It reports
// whether this call did anything; later calls, or calls after delivery, are no-ops.
func (h *Handle) Cancel() bool {
	h.mu.Lock()
	if h.cancelled || h.settled {
		h.mu.Unlock()
		return false
	}
	h.cancelled = true
	h.mu.Unlock()

	h.cancel()
	return true
}

// Done is closed once the request goroutine has returned
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
