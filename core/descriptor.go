package core

// DescriptorAddr is the bus address of a DMA descriptor. Descriptor memory
// is owned by whoever built the chain; the engine only passes addresses to
// the hardware.
type DescriptorAddr uintptr

// Descriptor is the hardware layout of one link in a descriptor chain.
//
//	DW0 bits 0-11  size    buffer capacity in bytes
//	DW0 bits 12-23 length  bytes valid in the buffer
//	DW0 bit 28     err_eof
//	DW0 bit 30     suc_eof
//	DW0 bit 31     owner   1 = DMA, 0 = CPU
type Descriptor struct {
	DW0    uint32
	Buffer uint32
	Next   uint32
}

const (
	DescriptorMaxBufferSize = 4095

	descSizeMask   = 0xFFF
	descLengthPos  = 12
	descLengthMask = 0xFFF << descLengthPos
	descErrEOF     = 1 << 28
	descSucEOF     = 1 << 30
	descOwnerDMA   = 1 << 31
)

// Size returns the buffer capacity.
func (d *Descriptor) Size() uint32 { return d.DW0 & descSizeMask }

// SetSize sets the buffer capacity.
func (d *Descriptor) SetSize(n uint32) {
	d.DW0 = d.DW0&^descSizeMask | n&descSizeMask
}

// Length returns the number of valid bytes.
func (d *Descriptor) Length() uint32 { return (d.DW0 & descLengthMask) >> descLengthPos }

// SetLength sets the number of valid bytes.
func (d *Descriptor) SetLength(n uint32) {
	d.DW0 = d.DW0&^descLengthMask | (n<<descLengthPos)&descLengthMask
}

// EOF reports whether this is the last descriptor of a frame.
func (d *Descriptor) EOF() bool { return d.DW0&descSucEOF != 0 }

// SetEOF marks or clears end of frame.
func (d *Descriptor) SetEOF(eof bool) { d.setBit(descSucEOF, eof) }

// ErrEOF reports whether the hardware flagged a receive error.
func (d *Descriptor) ErrEOF() bool { return d.DW0&descErrEOF != 0 }

// OwnedByDMA reports whether the hardware may still use the descriptor.
func (d *Descriptor) OwnedByDMA() bool { return d.DW0&descOwnerDMA != 0 }

// SetOwnedByDMA hands the descriptor to the hardware (true) or the CPU.
func (d *Descriptor) SetOwnedByDMA(dma bool) { d.setBit(descOwnerDMA, dma) }

func (d *Descriptor) setBit(bit uint32, on bool) {
	if on {
		d.DW0 |= bit
	} else {
		d.DW0 &^= bit
	}
}
