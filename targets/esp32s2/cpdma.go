//go:build tinygo && esp32s2

package main

import (
	"cpdma/core"
	"runtime/volatile"
	"unsafe"
)

// cpDMARegs is the copy-DMA register block.
type cpDMARegs struct {
	INT_RAW              volatile.Register32 // 0x00
	INT_ST               volatile.Register32 // 0x04
	INT_ENA              volatile.Register32 // 0x08
	INT_CLR              volatile.Register32 // 0x0C
	OUT_LINK             volatile.Register32 // 0x10
	IN_LINK              volatile.Register32 // 0x14
	OUT_EOF_DES_ADDR     volatile.Register32 // 0x18
	IN_EOF_DES_ADDR      volatile.Register32 // 0x1C
	OUT_EOF_BFR_DES_ADDR volatile.Register32 // 0x20
	INLINK_DSCR          volatile.Register32 // 0x24
	INLINK_DSCR_BF0      volatile.Register32 // 0x28
	INLINK_DSCR_BF1      volatile.Register32 // 0x2C
	OUTLINK_DSCR         volatile.Register32 // 0x30
	OUTLINK_DSCR_BF0     volatile.Register32 // 0x34
	OUTLINK_DSCR_BF1     volatile.Register32 // 0x38
	CONF                 volatile.Register32 // 0x3C
}

const cpDMABase = 0x3F4C3000

const (
	// OUT_LINK / IN_LINK
	linkAddrMsk = 0xFFFFF
	linkStop    = 1 << 28
	linkStart   = 1 << 29
	linkRestart = 1 << 30

	// CONF
	confInRst       = 1 << 0
	confOutRst      = 1 << 1
	confCmdFifoRst  = 1 << 2
	confFifoRst     = 1 << 3
	confCheckOwner  = 1 << 7
	confClkEn       = 1 << 31
	confResetFields = confInRst | confOutRst | confCmdFifoRst | confFifoRst
)

// CPDMADriver implements core.CopyDMADriver on the copy-DMA registers.
type CPDMADriver struct {
	dev *cpDMARegs
}

// NewCPDMADriver constructs the driver but does not configure the channel.
func NewCPDMADriver() *CPDMADriver {
	return &CPDMADriver{
		dev: (*cpDMARegs)(unsafe.Pointer(uintptr(cpDMABase))),
	}
}

// Configure ungates the clock, resets both links and the FIFOs, masks and
// acknowledges every interrupt, then programs the chain heads.
func (d *CPDMADriver) Configure(cfg core.CopyDMAConfig) error {
	d.dev.CONF.SetBits(confClkEn)

	d.dev.CONF.SetBits(confResetFields)
	d.dev.CONF.ClearBits(confResetFields)

	d.dev.INT_ENA.Set(0)
	d.dev.INT_CLR.Set(uint32(core.EventAll))

	d.dev.CONF.SetBits(confCheckOwner)

	d.dev.IN_LINK.ReplaceBits(uint32(cfg.InlinkBase), linkAddrMsk, 0)
	d.dev.OUT_LINK.ReplaceBits(uint32(cfg.OutlinkBase), linkAddrMsk, 0)
	return nil
}

// Deinit gates the clock.
func (d *CPDMADriver) Deinit() {
	d.dev.INT_ENA.Set(0)
	d.dev.CONF.ClearBits(confClkEn)
}

// Start enables the RX EOF interrupt and starts both links.
func (d *CPDMADriver) Start() {
	d.dev.INT_ENA.SetBits(uint32(core.EventRxEOF))
	d.dev.IN_LINK.SetBits(linkStart)
	d.dev.OUT_LINK.SetBits(linkStart)
}

// Stop masks the RX EOF interrupt and stops both links.
func (d *CPDMADriver) Stop() {
	d.dev.INT_ENA.ClearBits(uint32(core.EventRxEOF))
	d.dev.IN_LINK.SetBits(linkStop)
	d.dev.OUT_LINK.SetBits(linkStop)
}

func (d *CPDMADriver) RestartRx() {
	d.dev.IN_LINK.SetBits(linkRestart)
}

func (d *CPDMADriver) RestartTx() {
	d.dev.OUT_LINK.SetBits(linkRestart)
}

func (d *CPDMADriver) InterruptStatus() core.Event {
	return core.Event(d.dev.INT_ST.Get())
}

func (d *CPDMADriver) ClearInterrupt(mask core.Event) {
	d.dev.INT_CLR.Set(uint32(mask))
}

func (d *CPDMADriver) RxEOFDescriptorAddress() core.DescriptorAddr {
	return core.DescriptorAddr(d.dev.IN_EOF_DES_ADDR.Get())
}
