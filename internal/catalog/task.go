package catalog

import "context"

// Task is the pending result of one operation started with Go. The store
// merge, if any, has been applied by the time Done is closed.
type Task[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go runs fn in its own goroutine. There is no timeout; cancel ctx to abandon
// the round trip.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.value, t.err = fn(ctx)
	}()
	return t
}

// Done is closed once the operation has finished.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the operation finishes and returns its result.
func (t *Task[T]) Wait() (T, error) {
	<-t.done
	return t.value, t.err
}
