//go:build tinygo && esp32s2

package main

import (
	"cpdma/core"
	"sync/atomic"
	"time"
	"unsafe"
)

const (
	copySize  = 8192
	chunkSize = core.DescriptorMaxBufferSize &^ 3 // word aligned
	nchunks   = (copySize + chunkSize - 1) / chunkSize
)

var (
	src [copySize]byte
	dst [copySize]byte

	txChain [nchunks]core.Descriptor
	rxChain [nchunks]core.Descriptor

	// Set from interrupt context.
	rxDoneCount uint32
	lastEOF     uint32
)

func main() {
	core.SetDebugWriter(func(s string) { println(s) })
	core.SetDebugEnabled(true)

	core.SetCopyDMADriver(NewCPDMADriver())
	core.SetInterruptController(intc)

	for i := range src {
		src[i] = byte(i * 7)
	}

	engine := core.NewDefaultCopyEngine(onRxDone)

	srcAddr := uintptr(unsafe.Pointer(&src[0]))
	dstAddr := uintptr(unsafe.Pointer(&dst[0]))
	if !engine.IsBufferAddressValid(srcAddr, dstAddr) {
		core.DebugPrintln("[CPDMA] buffers not in internal RAM")
		return
	}

	buildChain(&txChain, srcAddr, true)
	buildChain(&rxChain, dstAddr, false)

	err := engine.Init(descAddr(&txChain[0]), descAddr(&rxChain[0]))
	if err != nil {
		core.DebugPrintln("[CPDMA] init failed: " + err.Error())
		return
	}
	handle, err := engine.AllocateInterrupt(core.IntrLevel1)
	if err != nil {
		core.DebugPrintln("[CPDMA] interrupt allocation failed: " + err.Error())
		if err := engine.Deinit(); err != nil {
			core.DebugPrintln("[CPDMA] deinit failed: " + err.Error())
		}
		return
	}
	if err := engine.Start(); err != nil {
		core.DebugPrintln("[CPDMA] start failed: " + err.Error())
		return
	}

	deadline := time.Now().Add(100 * time.Millisecond)
	for atomic.LoadUint32(&rxDoneCount) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	if err := engine.Stop(); err != nil {
		core.DebugPrintln("[CPDMA] stop failed: " + err.Error())
	}
	if err := handle.Free(); err != nil {
		core.DebugPrintln("[CPDMA] interrupt free failed: " + err.Error())
	}
	if err := engine.Deinit(); err != nil {
		core.DebugPrintln("[CPDMA] deinit failed: " + err.Error())
	}

	if atomic.LoadUint32(&rxDoneCount) == 0 {
		core.DebugPrintln("[CPDMA] copy timed out")
	} else if atomic.LoadUint32(&lastEOF) != uint32(descAddr(&rxChain[nchunks-1])) {
		core.DebugPrintln("[CPDMA] unexpected EOF descriptor")
	} else if src != dst {
		core.DebugPrintln("[CPDMA] copy mismatch")
	} else {
		core.DebugPrintln("[CPDMA] copy ok")
	}
	core.DumpTrace()

	for {
		time.Sleep(time.Second)
	}
}

// onRxDone runs in interrupt context.
func onRxDone(e *core.CopyEngine) {
	atomic.StoreUint32(&lastEOF, uint32(e.RxCompletionDescriptor()))
	atomic.AddUint32(&rxDoneCount, 1)
	// Wake the main goroutine promptly.
	e.RequestYield()
}

// buildChain splits a buffer across a linked descriptor chain, with EOF on
// the last link. TX links carry a length, RX links only a capacity.
func buildChain(chain *[nchunks]core.Descriptor, buf uintptr, tx bool) {
	remaining := uint32(copySize)
	for i := range chain {
		n := remaining
		if n > chunkSize {
			n = chunkSize
		}
		d := &chain[i]
		d.DW0 = 0
		d.SetSize(n)
		if tx {
			d.SetLength(n)
		}
		d.Buffer = uint32(buf) + uint32(i*chunkSize)
		if i == len(chain)-1 {
			d.SetEOF(true)
			d.Next = 0
		} else {
			d.Next = uint32(descAddr(&chain[i+1]))
		}
		d.SetOwnedByDMA(true)
		remaining -= n
	}
}

func descAddr(d *core.Descriptor) core.DescriptorAddr {
	return core.DescriptorAddr(uintptr(unsafe.Pointer(d)))
}
