package core

import "sync/atomic"

// Spinlock is a critical section usable from both interrupt and task
// context. Lock masks interrupts on the calling core, then spins on an owner
// word for the benefit of the other core. It never sleeps.
//
// The zero value is unlocked.
type Spinlock struct {
	owner uint32
	state interruptState
}

// Lock enters the critical section.
func (l *Spinlock) Lock() {
	state := disableInterrupts()
	for !atomic.CompareAndSwapUint32(&l.owner, 0, 1) {
		spinWait()
	}
	l.state = state
}

// Unlock leaves the critical section and restores the interrupt state saved
// by the matching Lock.
func (l *Spinlock) Unlock() {
	state := l.state
	atomic.StoreUint32(&l.owner, 0)
	restoreInterrupts(state)
}

// reset puts the lock back in the unlocked state. Only valid while no other
// context can hold it (before the interrupt is enabled).
func (l *Spinlock) reset() {
	atomic.StoreUint32(&l.owner, 0)
	l.state = 0
}
