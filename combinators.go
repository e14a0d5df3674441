package executors

import "time"

// Invoke wraps fn into a Future[T] with no gates and submits it
// immediately to e.
func Invoke[T any](e *Executor, fn func() (T, error)) *Future[T] {
	f := newFuture(fn)
	e.Submit(f.Task)
	return f
}

// Then builds a Future[Y] that depends on input: fn runs once input is
// finished, regardless of input's terminal kind — fn decides how to
// observe input, typically by calling input.Get(), which re-raises on
// input's failure. The result is submitted to e immediately.
func Then[T, Y any](e *Executor, input *Future[T], fn func(*Future[T]) (Y, error)) *Future[Y] {
	f := newFuture(func() (Y, error) { return fn(input) })
	f.AddDependency(input.Task)
	e.Submit(f.Task)
	return f
}

// WhenAll builds a Future[[]T] that depends on every element of inputs.
// Once all are finished, its body collects their results in input order
// via Get — if any element Failed, Get of the result re-raises that
// element's exception.
func WhenAll[T any](e *Executor, inputs []*Future[T]) *Future[[]T] {
	f := newFuture(func() ([]T, error) {
		results := make([]T, len(inputs))
		for i, in := range inputs {
			v, err := in.Get()
			if err != nil {
				return nil, err
			}
			results[i] = v
		}
		return results, nil
	})
	for _, in := range inputs {
		f.AddDependency(in.Task)
	}
	e.Submit(f.Task)
	return f
}

// WhenFirst builds a Future[T] that triggers on any element of inputs
// finishing. Its body scans inputs in order and returns the first one
// that is finished by the time the body runs (the gate guarantees at
// least one is); ties among several already-finished inputs are broken by
// input order. The first-finished result is re-raised as-is, including a
// failure or a cancellation.
func WhenFirst[T any](e *Executor, inputs []*Future[T]) *Future[T] {
	f := newFuture(func() (T, error) {
		for _, in := range inputs {
			if in.IsFinished() {
				return in.Get()
			}
		}
		var zero T
		return zero, ErrFutureCanceled
	})
	for _, in := range inputs {
		f.AddTrigger(in.Task)
	}
	e.Submit(f.Task)
	return f
}

// WhenAllBeforeDeadline builds a Future[[]T] with no dependencies or
// triggers, gated only by a time trigger at deadline. When it fires, its
// body collects the results of whichever elements of inputs are finished
// at that instant, in input order; elements not yet finished are omitted
// rather than waited on. A finished element that Failed or was Canceled
// still re-raises through Get, failing the whole combinator, exactly as
// WhenAll does — being finished-but-unsuccessful is not the same as being
// omitted for not having finished in time.
func WhenAllBeforeDeadline[T any](e *Executor, inputs []*Future[T], deadline time.Time) *Future[[]T] {
	f := newFuture(func() ([]T, error) {
		results := make([]T, 0, len(inputs))
		for _, in := range inputs {
			if !in.IsFinished() {
				continue
			}
			v, err := in.Get()
			if err != nil {
				return nil, err
			}
			results = append(results, v)
		}
		return results, nil
	})
	f.SetTimeTrigger(deadline)
	e.Submit(f.Task)
	return f
}
