//go:build !tinygo

package core

import "runtime"

// interruptState is a placeholder for interrupt state on regular Go
type interruptState uintptr

// disableInterrupts is a no-op on regular Go (for testing)
func disableInterrupts() interruptState {
	return 0
}

// restoreInterrupts is a no-op on regular Go (for testing)
func restoreInterrupts(state interruptState) {
	// No-op
}

// spinWait lets the lock holder make progress. On the host the "interrupt"
// is another goroutine, so hand the processor over instead of burning it.
func spinWait() {
	runtime.Gosched()
}

// yieldFromInterrupt asks the scheduler to run any goroutine woken by the
// completion callback before the caller continues.
func yieldFromInterrupt() {
	runtime.Gosched()
}
