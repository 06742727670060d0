// Package async provides a handle for commands whose completion the caller may
// observe but is never required to wait for.
package async

import (
	"context"
	"fmt"
)

// Task is the result channel of a detached command.
type Task struct {
	done chan struct{}
	err  error
}

// Go runs fn on its own goroutine. The context keeps the caller's values
// (trace span, logger fields) but not its cancellation.
func Go(ctx context.Context, fn func(context.Context) error) *Task {
	t := &Task{done: make(chan struct{})}
	detached := context.WithoutCancel(ctx)
	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				t.err = fmt.Errorf("async task panicked: %v", r)
			}
		}()
		t.err = fn(detached)
	}()
	return t
}

// Completed returns a task that already finished with err.
func Completed(err error) *Task {
	t := &Task{done: make(chan struct{}), err: err}
	close(t.done)
	return t
}

// Done is closed once the command finished.
func (t *Task) Done() <-chan struct{} { return t.done }

// Err is the command outcome. It is nil until Done is closed.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the command finishes or ctx ends.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
