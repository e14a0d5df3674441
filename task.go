package executors

import (
	"sync"
	"sync/atomic"
	"time"
)

// TaskState is the runtime state of a Task. It is declared as a uint32
// alias (rather than a distinct named type) so atomic.CompareAndSwapUint32
// can operate on it directly without a cast detour — the same trick the
// teacher uses for its own supervisor phase field.
type TaskState = uint32

const (
	Pending TaskState = iota
	Running
	Completed
	Failed
	Canceled
)

// TaskStateString returns a human-readable name for a TaskState, for use
// in logging and test failure messages.
func TaskStateString(s TaskState) string {
	switch s {
	case Pending:
		return "Pending"
	case Running:
		return "Running"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	case Canceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// Body is the unit of work a Task runs once its gate is satisfied.
type Body func() error

// Task is a scheduled unit of computation: a state machine with optional
// gates (dependencies, triggers, a time trigger), a captured-exception
// slot, and a wait primitive, safe under concurrent observation and
// mutation.
//
// A Task is constructed via NewTask, gated with AddDependency / AddTrigger
// / SetTimeTrigger while still Pending, and then handed to an Executor via
// Submit. Calling the gate-attaching methods after Submit is a usage error
// whose behavior is undefined.
type Task struct {
	mu   sync.Mutex
	body Body
	name string

	state TaskState // transitions guarded by mu; read atomically elsewhere
	err   error
	done  chan struct{}

	deps      []*Task
	triggers  []*Task
	notBefore time.Time
}

// NewTask constructs a Pending Task around body. body is invoked at most
// once, by whichever worker wins TryExecute's Pending->Running transition.
func NewTask(body Body) *Task {
	return &Task{
		body: body,
		done: make(chan struct{}),
	}
}

// SetName attaches a diagnostic label to the task. Purely cosmetic: it
// never affects scheduling, gating, or equality.
func (t *Task) SetName(name string) *Task {
	t.name = name
	return t
}

// Name returns the task's diagnostic label, or "" if none was set.
func (t *Task) Name() string {
	return t.name
}

// AddDependency attaches d as a dependency: this task will not run until d
// is finished (in any terminal state). Not safe against concurrent
// TryExecute; call only before Submit.
func (t *Task) AddDependency(d *Task) *Task {
	t.deps = append(t.deps, d)
	return t
}

// AddTrigger attaches tr as a trigger: this task may run once at least one
// of its triggers is finished. An empty trigger list is trivially
// satisfied. Not safe against concurrent TryExecute; call only before
// Submit.
func (t *Task) AddTrigger(tr *Task) *Task {
	t.triggers = append(t.triggers, tr)
	return t
}

// SetTimeTrigger sets the earliest instant at which this task may run.
// Default is the zero time, i.e. no wait. Not safe against concurrent
// TryExecute; call only before Submit.
func (t *Task) SetTimeTrigger(ts time.Time) *Task {
	t.notBefore = ts
	return t
}

// State is an atomic, non-blocking read of the task's current state.
func (t *Task) State() TaskState {
	return atomic.LoadUint32(&t.state)
}

func (t *Task) IsPending() bool   { return t.State() == Pending }
func (t *Task) IsRunning() bool   { return t.State() == Running }
func (t *Task) IsCompleted() bool { return t.State() == Completed }
func (t *Task) IsFailed() bool    { return t.State() == Failed }
func (t *Task) IsCanceled() bool  { return t.State() == Canceled }

// IsFinished reports whether the task is in any terminal state.
func (t *Task) IsFinished() bool {
	switch t.State() {
	case Completed, Failed, Canceled:
		return true
	default:
		return false
	}
}

// GetError returns the captured exception. It is only meaningful when
// IsFailed() holds; otherwise it returns nil.
func (t *Task) GetError() error {
	if !t.IsFailed() {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Wait blocks the caller until IsFinished() holds. Multiple concurrent
// waiters are permitted — they all observe the same channel close and
// return together, never before the task finishes.
func (t *Task) Wait() {
	<-t.done
}

// Cancel attempts the atomic transition Pending->Canceled. It is a no-op
// if the task is already Running or finished, and is idempotent. Returns
// true if this call performed the transition.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	ok := atomic.CompareAndSwapUint32(&t.state, Pending, Canceled)
	t.mu.Unlock()
	if ok {
		close(t.done)
	}
	return ok
}

// TryExecute is the worker-side entry point. Under the task's lock, it
// evaluates the gate (dependencies, triggers, time trigger); if unmet, it
// returns without any state change. If the gate is met, it attempts the
// atomic transition Pending->Running — Cancel and TryExecute race on this
// same transition, and whichever wins determines the outcome. On a win,
// the lock is released, the body is invoked, and the resulting terminal
// state (Completed or Failed) is recorded and all waiters notified.
func (t *Task) TryExecute() {
	t.mu.Lock()
	if !t.gateSatisfied() {
		t.mu.Unlock()
		return
	}
	if !atomic.CompareAndSwapUint32(&t.state, Pending, Running) {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	err := t.runBody()
	t.finish(err)
}

// gateSatisfied must be called with t.mu held.
func (t *Task) gateSatisfied() bool {
	for _, d := range t.deps {
		if !d.IsFinished() {
			return false
		}
	}
	if len(t.triggers) > 0 {
		fired := false
		for _, tr := range t.triggers {
			if tr.IsFinished() {
				fired = true
				break
			}
		}
		if !fired {
			return false
		}
	}
	return !time.Now().Before(t.notBefore)
}

func (t *Task) runBody() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TaskPanicError{Recovered: r}
		}
	}()
	return t.body()
}

func (t *Task) finish(err error) {
	t.mu.Lock()
	t.err = err
	final := TaskState(Completed)
	if err != nil {
		final = Failed
	}
	atomic.StoreUint32(&t.state, final)
	t.mu.Unlock()
	close(t.done)
}
