// Package sched provides the single-threaded cooperative task scheduler
// used by the ioctl adapter and the data plane's RX path. A Worker drains a
// FIFO queue of tasks on one dedicated goroutine, which is what gives the
// core its completion/timeout ordering guarantees: nothing queued onto the
// same Worker can be reordered or run concurrently with anything else
// queued onto it.
package sched

import (
	"context"
	"sync"
	"time"
)

// Task is a unit of work posted to a Worker.
type Task func()

// Worker drains posted tasks on a single goroutine in FIFO order.
type Worker struct {
	tasks  chan Task
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWorker starts a Worker with the given task queue depth. Callers should
// size depth generously: Post blocks once the queue is full, and a blocked
// Post from the IRQ-derived caller would defeat the point of re-posting
// work off that thread.
func NewWorker(depth int) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		tasks:  make(chan Task, depth),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go w.loop(ctx)
	return w
}

func (w *Worker) loop(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case t := <-w.tasks:
			t()
		}
	}
}

func (w *Worker) drain() {
	for {
		select {
		case t := <-w.tasks:
			t()
		default:
			return
		}
	}
}

// Post enqueues a task to run on the worker goroutine. Posting after Close
// is a no-op.
func (w *Worker) Post(t Task) {
	select {
	case w.tasks <- t:
	case <-w.done:
	}
}

// PostAfter schedules t to run on the worker goroutine no earlier than d
// from now. It returns a TimerHandle that can cancel the timer before it
// fires; cancellation after the timer has already fired (or already been
// posted) is a no-op that reports failure, matching the firmware timeout
// task's "cancellation must observably succeed or fail" contract.
func (w *Worker) PostAfter(d time.Duration, t Task) *TimerHandle {
	h := &TimerHandle{}
	timer := time.AfterFunc(d, func() {
		if h.fire() {
			w.Post(t)
		}
	})
	h.timer = timer
	return h
}

// Close stops accepting new tasks, runs any tasks already queued, and
// waits for the worker goroutine to exit.
func (w *Worker) Close() {
	w.cancel()
	<-w.done
}

// TimerHandle lets a caller cancel a PostAfter task before it runs.
type TimerHandle struct {
	timer *time.Timer
	mu    sync.Mutex
	fired bool
}

// fire marks the handle as having fired exactly once; returns false if it
// was already canceled or had already fired.
func (h *TimerHandle) fire() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.fired {
		return false
	}
	h.fired = true
	return true
}

// Cancel attempts to prevent the timer task from running. Returns true iff
// the task had not already fired (i.e. cancellation actually prevented it).
func (h *TimerHandle) Cancel() bool {
	stopped := h.timer.Stop()
	h.mu.Lock()
	defer h.mu.Unlock()
	if stopped || !h.fired {
		// Marking the handle fired makes a timer callback that is already
		// running (Stop lost the race) skip posting the task.
		h.fired = true
		return true
	}
	return false
}
