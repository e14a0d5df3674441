package executors

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Option configures an Executor at construction time. Options never change
// scheduling semantics; they only wire up diagnostics.
type Option func(*executorConfig)

type executorConfig struct {
	logger Logger
	name   string
}

// WithLogger injects a diagnostic sink. Worker start/stop and re-enqueue
// events are logged at Debugf level; nothing about task success or
// failure is ever logged here, since that is the caller's to observe via
// GetError/Get.
func WithLogger(l Logger) Option {
	return func(c *executorConfig) { c.logger = l }
}

// WithName attaches a diagnostic label to the executor, included in its
// Debugf log lines.
func WithName(name string) Option {
	return func(c *executorConfig) { c.name = name }
}

// Executor owns a fixed pool of N worker goroutines created eagerly at
// construction; no workers are added later. Workers drain a shared
// cancellableQueue, run each task's gate via TryExecute, and re-enqueue
// any task that TryExecute left unfinished (its gate was not yet
// satisfied).
type Executor struct {
	queue   *cancellableQueue
	wg      sync.WaitGroup
	workers int
	cfg     executorConfig

	shuttingDown int32
}

// NewExecutor constructs an Executor with n worker goroutines, started
// immediately. n must be positive.
func NewExecutor(n int, opts ...Option) *Executor {
	if n <= 0 {
		panic("executors: worker count must be positive")
	}
	e := &Executor{
		queue:   newCancellableQueue(),
		workers: n,
		cfg:     executorConfig{logger: nopLogger{}},
	}
	for _, opt := range opts {
		opt(&e.cfg)
	}

	e.wg.Add(n)
	for i := 0; i < n; i++ {
		go e.runWorker(i)
	}
	return e
}

// Submit enqueues task for execution. If the executor is shutting down,
// task is transitioned straight to Canceled instead. Otherwise task is
// only enqueued if it is still Pending — a task already Running or
// finished is left untouched. A Pending task is enqueued whether or not it
// was submitted before.
func (e *Executor) Submit(task *Task) {
	if atomic.LoadInt32(&e.shuttingDown) == 1 {
		task.Cancel()
		return
	}
	if !task.IsPending() {
		return
	}
	if !e.queue.push(task) {
		// The queue was canceled between our shuttingDown check and the
		// push (a StartShutdown raced us); honor the relaxed shutdown
		// policy by canceling directly, same as the fast path above.
		task.Cancel()
	}
}

// StartShutdown cancels the underlying queue. Idempotent. Tasks already
// queued remain eligible to be popped and run to completion by a worker;
// only tasks Submitted after this call observe cancellation. A queued task
// whose gate is still unmet when a worker pops it after this call cannot be
// re-enqueued: it is dropped and stays Pending.
func (e *Executor) StartShutdown() {
	if atomic.CompareAndSwapInt32(&e.shuttingDown, 0, 1) {
		e.cfg.logger.Debugf("[Executor:%s] shutdown started", e.cfg.name)
		e.queue.cancel()
	}
}

// WaitShutdown joins every worker goroutine. Idempotent. Safe to call
// after StartShutdown; calling it without a prior StartShutdown blocks
// until some other goroutine starts shutdown.
func (e *Executor) WaitShutdown() {
	e.wg.Wait()
}

// Close is equivalent to StartShutdown followed by WaitShutdown.
func (e *Executor) Close() {
	e.StartShutdown()
	e.WaitShutdown()
}

// NumWorkers returns the fixed worker count this executor was built with.
func (e *Executor) NumWorkers() int {
	return e.workers
}

func (e *Executor) runWorker(id int) {
	defer e.wg.Done()
	e.cfg.logger.Debugf("[Executor:%s] worker %d starting", e.cfg.name, id)
	for {
		task, ok := e.queue.pop()
		if !ok {
			e.cfg.logger.Debugf("[Executor:%s] worker %d exiting", e.cfg.name, id)
			return
		}
		if task == nil || task.IsCanceled() {
			continue
		}
		task.TryExecute()
		if !task.IsFinished() {
			// The gate was not yet satisfied. Re-enqueue onto the tail
			// and yield so a backlog of not-yet-ready tasks can't starve
			// ready ones of a worker even under GOMAXPROCS(1).
			if e.queue.push(task) {
				e.cfg.logger.Debugf("[Executor:%s] worker %d re-enqueued %s", e.cfg.name, id, task.Name())
			}
			runtime.Gosched()
		}
	}
}
