package database

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrClosed is returned by Get after Close.
var ErrClosed = errors.New("connection closed")

// Lazy holds a process-wide handle that is established on first use.
// Concurrent first callers share the same in-flight attempt. A failed attempt
// is not remembered: the next Get dials again.
type Lazy[C any] struct {
	dial  func(ctx context.Context) (C, error)
	close func(ctx context.Context, c C) error

	group singleflight.Group

	mu     sync.RWMutex
	handle C
	ready  bool
	closed bool
}

func NewLazy[C any](dial func(ctx context.Context) (C, error), closeFn func(ctx context.Context, c C) error) *Lazy[C] {
	return &Lazy[C]{dial: dial, close: closeFn}
}

func (l *Lazy[C]) current() (C, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var zero C
	if l.closed {
		return zero, false, ErrClosed
	}
	return l.handle, l.ready, nil
}

// Get returns the shared handle, establishing it if needed.
func (l *Lazy[C]) Get(ctx context.Context) (C, error) {
	if h, ok, err := l.current(); err != nil || ok {
		return h, err
	}

	// the dial must not die with the first caller's context: other callers
	// may be waiting on the same attempt
	dialCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan("establish", func() (interface{}, error) {
		if h, ok, err := l.current(); err != nil || ok {
			return h, err
		}
		h, err := l.dial(dialCtx)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.closed {
			if l.close != nil {
				_ = l.close(context.Background(), h)
			}
			return nil, ErrClosed
		}
		l.handle, l.ready = h, true
		return h, nil
	})

	var zero C
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(C), nil
	}
}

// Close tears the handle down. Subsequent Get calls fail with ErrClosed.
func (l *Lazy[C]) Close(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	if !l.ready || l.close == nil {
		return nil
	}
	l.ready = false
	return l.close(ctx, l.handle)
}
