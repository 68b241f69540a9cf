// Package api
// Author: momentics <momentics@gmail.com>
//
// Cancellation primitive returned by Scheduler.Schedule to callers that
// need to abort pending work.

package api

// Cancelable defines contract for cancelable async operations.
type Cancelable interface {
    // Cancel aborts the operation if still pending.
    Cancel() error

    // Done returns a channel closed when operation completes or is canceled.
    Done() <-chan struct{}

    // Err returns cancellation or completion reason.
    Err() error
}
