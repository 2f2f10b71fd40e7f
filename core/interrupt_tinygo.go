//go:build tinygo

package core

import "runtime/interrupt"

type interruptState = interrupt.State

// disableInterrupts disables interrupts and returns the previous state
func disableInterrupts() interruptState {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt state
func restoreInterrupts(state interruptState) {
	interrupt.Restore(state)
}

// spinWait busy-waits. Interrupts are masked by the caller, so the only
// possible contender is another core.
func spinWait() {
}

// yieldFromInterrupt is a no-op: the TinyGo scheduler is cooperative and
// picks up goroutines woken from an interrupt at the next scheduling point
// after the handler returns.
func yieldFromInterrupt() {
}
