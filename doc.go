// Package executors implements a bounded thread-pool executor that
// decouples what to compute from where and when it runs.
//
// User code packages units of computation as Tasks. Tasks may be gated by
// dependencies (predecessors that must finish), triggers (predecessors
// whose finishing, any one of them, unblocks the task), and a time trigger
// (an earliest-start instant). An Executor owns a fixed pool of worker
// goroutines that drain a shared cancellable queue, running each task's
// body once its gate is satisfied and re-enqueuing it otherwise.
//
// Future[T] and its combinators (Invoke, Then, WhenAll, WhenFirst,
// WhenAllBeforeDeadline) are a thin typed layer over Task and Executor for
// composing parallel computations without managing goroutines directly.
package executors
