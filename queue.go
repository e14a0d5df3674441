package executors

import (
	"sync"

	"github.com/eapache/queue"
)

// cancellableQueue is an unbounded multi-producer/multi-consumer FIFO of
// *Task, with a sticky canceled flag.
//
// Storage is a ring buffer (github.com/eapache/queue) guarded by a mutex
// and a condition variable, the same lock+cond shape the corpus uses for
// its own worker-stack bookkeeping. FIFO order is per push across all
// consumers; Cancel never drops items already pushed, it only rejects new
// pushes and wakes consumers blocked on an empty queue.
type cancellableQueue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    *queue.Queue
	canceled bool
}

func newCancellableQueue() *cancellableQueue {
	q := &cancellableQueue{items: queue.New()}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends x to the tail and wakes one waiting consumer. Returns false
// and does nothing if the queue has been canceled.
func (q *cancellableQueue) push(x *Task) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.canceled {
		return false
	}
	q.items.Add(x)
	q.cond.Signal()
	return true
}

// pop blocks until the queue is non-empty or canceled. It returns the head
// element and true if one was available; it returns (nil, false) only once
// the queue is both canceled and drained — already-enqueued items are
// still delivered to pop after Cancel is called.
func (q *cancellableQueue) pop() (*Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.items.Length() == 0 && !q.canceled {
		q.cond.Wait()
	}
	if q.items.Length() == 0 {
		return nil, false
	}
	return q.items.Remove().(*Task), true
}

// cancel sets the sticky canceled flag and wakes every blocked consumer.
// Idempotent.
func (q *cancellableQueue) cancel() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.canceled {
		return
	}
	q.canceled = true
	q.cond.Broadcast()
}

func (q *cancellableQueue) isCanceled() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.canceled
}
