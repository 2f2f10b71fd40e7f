// Copy-DMA engine
// Moves data between internal RAM regions by walking a TX (outlink) and an
// RX (inlink) descriptor chain, and reports RX end-of-frame from interrupt
// context.
package core

import "sync/atomic"

// EngineState is the lifecycle state of a CopyEngine.
type EngineState uint8

const (
	StateUninitialized EngineState = iota
	StateInitialized               // hardware configured, interrupt disabled
	StateArmed                     // DMA and interrupt enabled
	StateStopped                   // DMA and interrupt disabled, still configured
	StateDeinitialized             // hardware released
)

func (s EngineState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateArmed:
		return "armed"
	case StateStopped:
		return "stopped"
	case StateDeinitialized:
		return "deinitialized"
	}
	return "unknown"
}

// RxDoneFunc is called from interrupt context when the RX chain reaches an
// EOF descriptor. It may call RequestYield on the engine.
type RxDoneFunc func(e *CopyEngine)

// EngineStats counts interrupt activity.
type EngineStats struct {
	Interrupts uint32 // handler invocations
	RxDone     uint32 // RX EOF notifications delivered
	Yields     uint32 // yields requested from the handler
	LastStatus Event  // status mask of the latest invocation
}

// CopyEngine drives one copy-DMA channel and its interrupt line.
type CopyEngine struct {
	hal      CopyDMADriver
	intc     InterruptController
	onRxDone RxDoneFunc
	yield    func()

	// lock guards the status read-and-clear against the same line firing
	// again, and against the other core.
	lock Spinlock

	// needYield is only touched from interrupt context.
	needYield bool

	outlink DescriptorAddr
	inlink  DescriptorAddr
	state   EngineState

	interrupts atomic.Uint32
	rxDone     atomic.Uint32
	yields     atomic.Uint32
	lastStatus atomic.Uint32
}

// NewCopyEngine binds an engine to its register driver, interrupt controller
// and completion callback. No hardware is touched until Init.
func NewCopyEngine(hal CopyDMADriver, intc InterruptController, onRxDone RxDoneFunc) *CopyEngine {
	return &CopyEngine{
		hal:      hal,
		intc:     intc,
		onRxDone: onRxDone,
		yield:    yieldFromInterrupt,
	}
}

// NewDefaultCopyEngine uses the driver and interrupt controller registered by
// the target.
func NewDefaultCopyEngine(onRxDone RxDoneFunc) *CopyEngine {
	return NewCopyEngine(MustCopyDMA(), MustInterruptController(), onRxDone)
}

// SetYieldHook replaces the function used to yield at the end of the
// interrupt handler.
func (e *CopyEngine) SetYieldHook(fn func()) {
	if fn == nil {
		fn = yieldFromInterrupt
	}
	e.yield = fn
}

// State returns the lifecycle state.
func (e *CopyEngine) State() EngineState {
	return e.state
}

// configured reports whether the hardware holds a chain and its clock.
func (e *CopyEngine) configured() bool {
	switch e.state {
	case StateInitialized, StateArmed, StateStopped:
		return true
	}
	return false
}

// Init programs the hardware with the descriptor chain heads. The interrupt
// stays disabled until Start. The only failure is the hardware's; the
// channel is released again when that happens.
func (e *CopyEngine) Init(outlink, inlink DescriptorAddr) error {
	if e.state == StateArmed {
		DebugPrintln(tracePrefix + "init while armed")
	}

	e.lock.reset()
	e.needYield = false

	if err := e.hal.Configure(CopyDMAConfig{OutlinkBase: outlink, InlinkBase: inlink}); err != nil {
		e.hal.Deinit()
		e.outlink = 0
		e.inlink = 0
		e.state = StateUninitialized
		return err
	}

	e.outlink = outlink
	e.inlink = inlink
	e.state = StateInitialized
	RecordTrace(EvtInit, uint32(outlink), uint32(inlink))
	return nil
}

// AllocateInterrupt installs the engine's handler on the copy-DMA interrupt
// source. The returned handle belongs to the caller, who must Free it before
// Deinit.
func (e *CopyEngine) AllocateInterrupt(flags InterruptFlags) (InterruptHandle, error) {
	h, err := e.intc.Allocate(SourceDMACopy, flags, handleCopyDMAInterrupt, e)
	if err != nil {
		return nil, err
	}
	RecordTrace(EvtAllocIntr, uint32(flags), 0)
	return h, nil
}

// Start enables DMA and its interrupt. Init must have succeeded first.
func (e *CopyEngine) Start() error {
	if !e.configured() {
		DebugPrintln(tracePrefix + "start before init")
		return nil
	}
	e.hal.Start()
	e.state = StateArmed
	RecordTrace(EvtStart, 0, 0)
	DebugPrintln(tracePrefix + "started")
	return nil
}

// Stop disables DMA and its interrupt. Stopping an engine that was never
// started, or stopping twice, is harmless.
func (e *CopyEngine) Stop() error {
	if !e.configured() {
		return nil
	}
	e.hal.Stop()
	e.state = StateStopped
	RecordTrace(EvtStop, 0, 0)
	return nil
}

// Restart resumes both links from their current descriptor, e.g. after
// descriptors were appended to a running chain or after a stall. It leaves
// the interrupt enable alone: after Stop the links run but nothing is
// reported until the next Start.
func (e *CopyEngine) Restart() error {
	if !e.configured() {
		DebugPrintln(tracePrefix + "restart before init")
		return nil
	}
	if e.state != StateArmed {
		DebugPrintln(tracePrefix + "restart with interrupt disabled")
	}
	e.hal.RestartRx()
	e.hal.RestartTx()
	RecordTrace(EvtRestart, 0, 0)
	return nil
}

// Deinit releases the channel. The caller must have stopped the engine and
// freed its interrupt.
func (e *CopyEngine) Deinit() error {
	if !e.configured() {
		return nil
	}
	if e.state == StateArmed {
		DebugPrintln(tracePrefix + "deinit while armed")
	}
	e.hal.Deinit()
	e.outlink = 0
	e.inlink = 0
	e.state = StateDeinitialized
	RecordTrace(EvtDeinit, 0, 0)
	return nil
}

// IsBufferAddressValid reports whether the copy-DMA can reach both buffers.
// Only internal SRAM is addressable.
func (e *CopyEngine) IsBufferAddressValid(src, dst uintptr) bool {
	return IsInternalMemory(src) && IsInternalMemory(dst)
}

// RxCompletionDescriptor returns the descriptor at which the hardware latched
// the last RX EOF.
func (e *CopyEngine) RxCompletionDescriptor() DescriptorAddr {
	return e.hal.RxEOFDescriptorAddress()
}

// Chain returns the descriptor chain heads given to Init.
func (e *CopyEngine) Chain() (outlink, inlink DescriptorAddr) {
	return e.outlink, e.inlink
}

// RequestYield asks the interrupt handler to yield to the scheduler once it
// is done. Only valid from the RX done callback.
func (e *CopyEngine) RequestYield() {
	e.needYield = true
}

// Stats returns a snapshot of the interrupt counters.
func (e *CopyEngine) Stats() EngineStats {
	return EngineStats{
		Interrupts: e.interrupts.Load(),
		RxDone:     e.rxDone.Load(),
		Yields:     e.yields.Load(),
		LastStatus: Event(e.lastStatus.Load()),
	}
}

func handleCopyDMAInterrupt(arg any) {
	arg.(*CopyEngine).HandleInterrupt()
}

// HandleInterrupt is the copy-DMA interrupt handler. It acknowledges exactly
// the bits it observed, so a condition raised after the read stays pending
// and fires the handler again.
func (e *CopyEngine) HandleInterrupt() {
	e.lock.Lock()
	status := e.hal.InterruptStatus()
	e.hal.ClearInterrupt(status)
	e.lock.Unlock()

	e.interrupts.Add(1)
	e.lastStatus.Store(uint32(status))
	RecordTrace(EvtInterrupt, uint32(status), 0)

	// End-of-frame on RX side
	if status&EventRxEOF != 0 {
		e.rxDone.Add(1)
		RecordTrace(EvtRxDone, uint32(e.hal.RxEOFDescriptorAddress()), uint32(status))
		if e.onRxDone != nil {
			e.onRxDone(e)
		}
	}

	if e.needYield {
		e.needYield = false
		e.yields.Add(1)
		RecordTrace(EvtYield, 0, 0)
		e.yield()
	}
}
