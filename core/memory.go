package core

// MemoryRegion is a half-open address range [Start, End).
type MemoryRegion struct {
	Name  string
	Start uintptr
	End   uintptr
}

// Contains reports whether addr falls inside r.
func (r MemoryRegion) Contains(addr uintptr) bool {
	return addr >= r.Start && addr < r.End
}

// Address map of the copy-DMA's host SoC.
const (
	InternalMemLow  = 0x3FF9E000 // start of internal SRAM (data bus view)
	InternalMemHigh = 0x40072000 // end of internal SRAM (instruction bus view)
	RTCDataLow      = 0x50000000
	RTCDataHigh     = 0x50002000

	ExternalDRAMLow  = 0x3F500000
	ExternalDRAMHigh = 0x3FF80000
)

// InternalMemory lists every region the copy-DMA can address. It is SRAM
// only: flash-mapped and PSRAM windows are out of reach.
var InternalMemory = []MemoryRegion{
	{Name: "sram", Start: InternalMemLow, End: InternalMemHigh},
	{Name: "rtc_data", Start: RTCDataLow, End: RTCDataHigh},
}

// IsInternalMemory reports whether addr lies in internal memory.
func IsInternalMemory(addr uintptr) bool {
	for _, r := range InternalMemory {
		if r.Contains(addr) {
			return true
		}
	}
	return false
}
