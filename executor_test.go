package executors_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	ex "github.com/thenromanov/Executors"
)

func TestExecutorRunsSubmittedTask(t *testing.T) {
	e := ex.NewExecutor(2)
	defer e.Close()

	ran := make(chan struct{})
	task := ex.NewTask(func() error { close(ran); return nil })
	e.Submit(task)

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("submitted task never ran")
	}
	task.Wait()
	mustEqual(t, task.IsCompleted(), true)
}

func TestExecutorBoundedParallelism(t *testing.T) {
	const workers = 3
	e := ex.NewExecutor(workers)
	defer e.Close()

	var running int32
	var maxSeen int32
	var wg sync.WaitGroup
	release := make(chan struct{})

	const tasks = 12
	wg.Add(tasks)
	for i := 0; i < tasks; i++ {
		task := ex.NewTask(func() error {
			defer wg.Done()
			n := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&maxSeen)
				if n <= old || atomic.CompareAndSwapInt32(&maxSeen, old, n) {
					break
				}
			}
			<-release
			atomic.AddInt32(&running, -1)
			return nil
		})
		e.Submit(task)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&maxSeen); got > int32(workers) {
		t.Fatalf("observed %d concurrently Running tasks, want <= %d", got, workers)
	}
}

func TestExecutorReenqueuesNotYetReadyTask(t *testing.T) {
	e := ex.NewExecutor(1)
	defer e.Close()

	dep := ex.NewTask(func() error { return nil })
	ran := make(chan struct{})
	task := ex.NewTask(func() error { close(ran); return nil })
	task.AddDependency(dep)

	e.Submit(task)
	time.Sleep(20 * time.Millisecond) // give the worker a few idle re-enqueue cycles
	e.Submit(dep)

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("dependent task never ran after its dependency was submitted and finished")
	}
}

func TestExecutorSubmitAfterShutdownCancels(t *testing.T) {
	e := ex.NewExecutor(2)
	e.StartShutdown()
	e.WaitShutdown()

	task := ex.NewTask(func() error { t.Fatal("body must not run after shutdown"); return nil })
	e.Submit(task)
	if !task.IsCanceled() {
		t.Fatalf("state = %s, want Canceled", ex.TaskStateString(task.State()))
	}
}

func TestExecutorNoThreadLeakageAfterShutdown(t *testing.T) {
	e := ex.NewExecutor(4)
	done := make(chan struct{})
	go func() {
		e.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitShutdown never returned; workers may have leaked")
	}
}

func TestExecutorInFlightTasksFinishDuringShutdown(t *testing.T) {
	e := ex.NewExecutor(1)

	started := make(chan struct{})
	release := make(chan struct{})
	finished := make(chan struct{})
	task := ex.NewTask(func() error {
		close(started)
		<-release
		return nil
	})
	e.Submit(task)
	<-started

	go func() {
		e.StartShutdown()
		task.Wait()
		close(finished)
	}()

	time.Sleep(20 * time.Millisecond)
	close(release)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("in-flight task never finished after shutdown began")
	}
	mustEqual(t, task.IsCompleted(), true)
	e.WaitShutdown()
}
