package sched

import (
	"errors"
	"sync"
)

// ErrCanceled is returned by Cancelable.Err after Cancel has been called.
var ErrCanceled = errors.New("sched: canceled")

// cancelable implements api.Cancelable for a one-shot Schedule() callback.
type cancelable struct {
	mu       sync.Mutex
	done     chan struct{}
	canceled bool
	err      error
}

func newCancelable() *cancelable {
	return &cancelable{done: make(chan struct{})}
}

func (c *cancelable) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.done:
		return nil // already ran or already canceled
	default:
	}
	c.canceled = true
	c.err = ErrCanceled
	close(c.done)
	return nil
}

func (c *cancelable) Done() <-chan struct{} { return c.done }

func (c *cancelable) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *cancelable) isCanceled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canceled
}

func (c *cancelable) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}
