//go:build tinygo && esp32s2

package main

import (
	"cpdma/core"
	"runtime/interrupt"
	"runtime/volatile"
	"unsafe"
)

const (
	interruptMatrixBase = 0x3F4C2000

	// CPU interrupt reserved for the copy-DMA: level-triggered, priority 1.
	cpuIntCopyDMA = 12
)

// intMap is the interrupt matrix: one routing register per peripheral source.
var intMap = (*[128]volatile.Register32)(unsafe.Pointer(uintptr(interruptMatrixBase)))

// IntcDriver implements core.InterruptController with a single statically
// assigned CPU interrupt.
type IntcDriver struct {
	intr    interrupt.Interrupt
	src     core.InterruptSource
	handler core.InterruptHandler
	arg     any
}

var intc = &IntcDriver{}

func init() {
	intc.intr = interrupt.New(cpuIntCopyDMA, func(interrupt.Interrupt) {
		if intc.handler != nil {
			intc.handler(intc.arg)
		}
	})
}

type intcHandle struct {
	d *IntcDriver
}

// Allocate routes src to the reserved CPU interrupt. Only level 1, non-NMI,
// level-triggered requests fit that line.
func (d *IntcDriver) Allocate(src core.InterruptSource, flags core.InterruptFlags, handler core.InterruptHandler, arg any) (core.InterruptHandle, error) {
	if err := flags.Validate(); err != nil {
		return nil, err
	}
	if flags.Levels()&core.IntrLevel1 == 0 || flags&core.IntrEdge != 0 {
		return nil, core.ErrNoInterruptSlot
	}

	state := interrupt.Disable()
	defer interrupt.Restore(state)

	if d.handler != nil {
		return nil, core.ErrNoInterruptSlot
	}
	d.src = src
	d.handler = handler
	d.arg = arg
	intMap[src].Set(cpuIntCopyDMA)
	if flags&core.IntrIntrDisabled == 0 {
		d.intr.Enable()
	}
	return &intcHandle{d: d}, nil
}

func (h *intcHandle) Free() error {
	state := interrupt.Disable()
	defer interrupt.Restore(state)

	d := h.d
	d.intr.Disable()
	// Routing a source to CPU interrupt 6 (internal timer) parks it.
	intMap[d.src].Set(6)
	d.handler = nil
	d.arg = nil
	return nil
}
