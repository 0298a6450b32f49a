package sched

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPostRunsTasksInFIFOOrder(t *testing.T) {
	w := NewWorker(16)
	defer w.Close()

	var mu sync.Mutex
	var order []int
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		w.Post(func() {
			mu.Lock()
			order = append(order, i)
			if len(order) == 5 {
				close(done)
			}
			mu.Unlock()
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tasks never drained")
	}
	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestCloseRunsQueuedTasks(t *testing.T) {
	w := NewWorker(16)

	ran := make(chan struct{}, 1)
	w.Post(func() { ran <- struct{}{} })
	w.Close()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("queued task dropped by Close")
	}
}

func TestPostAfterFires(t *testing.T) {
	w := NewWorker(16)
	defer w.Close()

	fired := make(chan struct{})
	w.PostAfter(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer task never ran")
	}
}

func TestTimerCancelBeforeFiring(t *testing.T) {
	w := NewWorker(16)
	defer w.Close()

	h := w.PostAfter(time.Hour, func() { t.Error("canceled timer task ran") })
	require.True(t, h.Cancel())

	// Give a mis-canceled timer a chance to fire before the test ends.
	time.Sleep(10 * time.Millisecond)
}

func TestTimerCancelAfterFiringReportsFailure(t *testing.T) {
	w := NewWorker(16)
	defer w.Close()

	fired := make(chan struct{})
	h := w.PostAfter(time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer task never ran")
	}
	require.False(t, h.Cancel())
}
