package core

import "errors"

// InterruptSource identifies a peripheral interrupt line on the interrupt
// matrix.
type InterruptSource uint32

// SourceDMACopy is the copy-DMA peripheral's interrupt source.
const SourceDMACopy InterruptSource = 67

// InterruptFlags select priority, triggering and placement of a handler.
type InterruptFlags uint32

const (
	IntrLevel1       InterruptFlags = 1 << 1
	IntrLevel2       InterruptFlags = 1 << 2
	IntrLevel3       InterruptFlags = 1 << 3
	IntrLevel4       InterruptFlags = 1 << 4
	IntrLevel5       InterruptFlags = 1 << 5
	IntrLevel6       InterruptFlags = 1 << 6
	IntrNMI          InterruptFlags = 1 << 7
	IntrShared       InterruptFlags = 1 << 8
	IntrEdge         InterruptFlags = 1 << 9
	IntrIRAM         InterruptFlags = 1 << 10
	IntrIntrDisabled InterruptFlags = 1 << 11

	IntrLowMed   = IntrLevel1 | IntrLevel2 | IntrLevel3
	IntrHigh     = IntrLevel4 | IntrLevel5 | IntrLevel6 | IntrNMI
	IntrLevelMsk = IntrLowMed | IntrHigh
)

// Interrupt controller errors.
var (
	ErrNoInterruptSlot = errors.New("no free interrupt at requested level")
	ErrInvalidFlags    = errors.New("invalid interrupt flags")
)

// Levels returns the priority levels allowed by f. No level bits means any
// low/medium level.
func (f InterruptFlags) Levels() InterruptFlags {
	if f&IntrLevelMsk == 0 {
		return IntrLowMed
	}
	return f & IntrLevelMsk
}

// Validate rejects combinations an interrupt controller cannot honor.
func (f InterruptFlags) Validate() error {
	if f&IntrShared != 0 && f&IntrEdge != 0 {
		return ErrInvalidFlags
	}
	if f&IntrShared != 0 && f.Levels()&IntrHigh != 0 {
		return ErrInvalidFlags
	}
	return nil
}

// InterruptHandler runs in interrupt context with the argument it was
// registered with.
type InterruptHandler func(arg any)

// InterruptHandle is a registration returned by an InterruptController.
type InterruptHandle interface {
	// Free disables the interrupt and releases the registration.
	Free() error
}

// InterruptController installs handlers for peripheral interrupt sources.
type InterruptController interface {
	// Allocate routes src to a CPU interrupt matching flags and installs
	// handler, which will be called with arg.
	Allocate(src InterruptSource, flags InterruptFlags, handler InterruptHandler, arg any) (InterruptHandle, error)
}

var interruptController InterruptController

// SetInterruptController is called by target-specific code to register its
// interrupt controller.
func SetInterruptController(c InterruptController) {
	interruptController = c
}

// MustInterruptController returns the configured controller or panics if
// missing.
func MustInterruptController() InterruptController {
	if interruptController == nil {
		panic("interrupt controller not configured")
	}
	return interruptController
}
