package core

import (
	"sync"
	"testing"
)

func TestSpinlockMutualExclusion(t *testing.T) {
	var (
		l       Spinlock
		counter int
		wg      sync.WaitGroup
	)

	const workers, iterations = 8, 1000
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				l.Lock()
				counter++
				l.Unlock()
			}
		}()
	}
	wg.Wait()

	if counter != workers*iterations {
		t.Errorf("counter = %d, want %d", counter, workers*iterations)
	}
}

func TestSpinlockReset(t *testing.T) {
	var l Spinlock
	l.Lock()
	l.reset()

	done := make(chan struct{})
	go func() {
		l.Lock()
		l.Unlock()
		close(done)
	}()
	<-done
}

// Interrupts fired from another goroutine while the engine is armed must
// each be delivered exactly once.
func TestConcurrentInterruptDelivery(t *testing.T) {
	e, hal, rec := newTestEngine(t)
	armEngine(t, e)

	const n = 200
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			hal.fire(EventRxEOF, 0x3FFB1000)
		}
	}()
	for i := 0; i < n; i++ {
		e.Stats()
		e.RxCompletionDescriptor()
	}
	wg.Wait()

	if got := rec.count(); got != n {
		t.Errorf("RX done called %d times, want %d", got, n)
	}
}
