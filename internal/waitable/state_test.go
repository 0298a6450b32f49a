package waitable

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetReturnsInitialValue(t *testing.T) {
	s := NewState(true)
	require.True(t, s.Get())
}

func TestSetUpdatesValue(t *testing.T) {
	s := NewState(0)
	s.Set(42)
	require.Equal(t, 42, s.Get())
}

func TestWaitReturnsImmediatelyWhenSatisfied(t *testing.T) {
	s := NewState(false)
	s.Wait(func(v bool) bool { return !v })
}

func TestWaitBlocksUntilSet(t *testing.T) {
	s := NewState(true)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Wait(func(v bool) bool { return !v })
	}()

	// The waiter must still be blocked before the flag clears.
	time.Sleep(10 * time.Millisecond)
	s.Set(false)
	wg.Wait()
}

func TestWaitWakesEveryWaiter(t *testing.T) {
	s := NewState(0)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Wait(func(v int) bool { return v == 7 })
		}()
	}

	time.Sleep(10 * time.Millisecond)
	s.Set(7)
	wg.Wait()
}

func TestCompareAndSet(t *testing.T) {
	s := NewState(1)
	eq := func(a, b int) bool { return a == b }

	require.True(t, s.CompareAndSet(eq, 1, 2))
	require.Equal(t, 2, s.Get())

	require.False(t, s.CompareAndSet(eq, 1, 3))
	require.Equal(t, 2, s.Get())
}
