package core

// Event is a bitmask of copy-DMA interrupt conditions, laid out as in the
// peripheral's raw/status/clear registers.
type Event uint32

const (
	EventInDone      Event = 1 << 0 // RX descriptor filled
	EventInSucEOF    Event = 1 << 1 // RX reached a descriptor with EOF set
	EventOutDone     Event = 1 << 2 // TX descriptor consumed
	EventOutEOF      Event = 1 << 3 // TX reached a descriptor with EOF set
	EventInDscrErr   Event = 1 << 4 // RX descriptor error
	EventOutDscrErr  Event = 1 << 5 // TX descriptor error
	EventInDscrEmpty Event = 1 << 6 // RX ran out of descriptors
	EventOutTotalEOF Event = 1 << 7 // last TX descriptor sent
	EventCRCDone     Event = 1 << 8

	// EventRxEOF is the condition that completes a copy.
	EventRxEOF = EventInSucEOF

	EventAll Event = 1<<9 - 1
)

// Has reports whether all bits of mask are set in e.
func (e Event) Has(mask Event) bool {
	return e&mask == mask
}

// CopyDMAConfig holds the descriptor chain heads programmed at init.
type CopyDMAConfig struct {
	OutlinkBase DescriptorAddr // TX: descriptors that read the source buffers
	InlinkBase  DescriptorAddr // RX: descriptors that write the destination buffers
}

// CopyDMADriver is the register-level interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type CopyDMADriver interface {
	// Configure enables the peripheral clock, resets the channel and
	// programs the descriptor chain heads. Interrupts stay disabled.
	Configure(cfg CopyDMAConfig) error

	// Deinit resets the channel and gates its clock.
	Deinit()

	// Start enables the interrupt and kicks both links.
	Start()

	// Stop disables the interrupt and stops both links.
	Stop()

	// RestartRx resumes the RX link from its current descriptor.
	RestartRx()

	// RestartTx resumes the TX link from its current descriptor.
	RestartTx()

	// InterruptStatus returns the pending (masked) interrupt bits.
	InterruptStatus() Event

	// ClearInterrupt acknowledges exactly the given bits.
	ClearInterrupt(mask Event)

	// RxEOFDescriptorAddress returns the descriptor the hardware latched on
	// the last successful RX EOF.
	RxEOFDescriptorAddress() DescriptorAddr
}

// Global singleton used by core code.
var copyDMADriver CopyDMADriver

// SetCopyDMADriver is called by target-specific code to register its driver.
func SetCopyDMADriver(d CopyDMADriver) {
	copyDMADriver = d
}

// MustCopyDMA returns the configured driver or panics if missing.
func MustCopyDMA() CopyDMADriver {
	if copyDMADriver == nil {
		panic("copy DMA driver not configured")
	}
	return copyDMADriver
}
