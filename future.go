package executors

// Future[T] is a Task whose body invokes a stored nullary function and
// stores its return value in a typed result slot. Get waits for the task
// to finish and then returns the result, or re-raises the captured
// exception if the task Failed.
//
// The result slot is typed; the scheduler underneath (Task, Executor,
// cancellableQueue) stays untyped, per the package's "parameterize at the
// slot only" design — mirroring the teacher's promise.go (a mutex-guarded
// resolve-once value plus a close-once wait channel), generalized here to
// a generic payload the way this corpus's oy3o-task Future[T] does.
type Future[T any] struct {
	*Task
	result T
}

// newFuture wraps fn into a Future[T], whose Task body runs fn once and
// stores whatever it returns.
func newFuture[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{}
	f.Task = NewTask(func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		f.result = v
		return nil
	})
	return f
}

// Get blocks until the future is finished, then returns its result, or
// re-raises the captured exception if the underlying task Failed or was
// Canceled.
func (f *Future[T]) Get() (T, error) {
	f.Wait()
	if err := f.futureError(); err != nil {
		var zero T
		return zero, err
	}
	return f.result, nil
}

// futureError reports the error a Get should re-raise: the captured
// exception on Failed, or a sentinel on Canceled (cancellation is not an
// error per the package's taxonomy, but Get has no other way to signal
// "there is no result" than returning a non-nil error).
func (f *Future[T]) futureError() error {
	switch f.State() {
	case Failed:
		return f.GetError()
	case Canceled:
		return ErrFutureCanceled
	default:
		return nil
	}
}
