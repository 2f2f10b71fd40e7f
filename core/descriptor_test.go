package core

import "testing"

func TestDescriptorFields(t *testing.T) {
	var d Descriptor

	d.SetSize(DescriptorMaxBufferSize)
	d.SetLength(100)
	d.SetEOF(true)
	d.SetOwnedByDMA(true)

	if d.Size() != DescriptorMaxBufferSize {
		t.Errorf("Size = %d", d.Size())
	}
	if d.Length() != 100 {
		t.Errorf("Length = %d", d.Length())
	}
	if !d.EOF() || !d.OwnedByDMA() || d.ErrEOF() {
		t.Errorf("flags: eof=%v owner=%v err=%v", d.EOF(), d.OwnedByDMA(), d.ErrEOF())
	}
	if d.DW0 != 0xC0064FFF {
		t.Errorf("DW0 = %#x, want 0xc0064fff", d.DW0)
	}

	// Fields do not bleed into each other.
	d.SetLength(0x1FFF)
	if d.Length() != 0xFFF || d.Size() != DescriptorMaxBufferSize || !d.EOF() {
		t.Errorf("after overflow: length=%#x size=%#x eof=%v", d.Length(), d.Size(), d.EOF())
	}

	d.SetOwnedByDMA(false)
	d.SetEOF(false)
	if d.OwnedByDMA() || d.EOF() {
		t.Errorf("flags not cleared: DW0 = %#x", d.DW0)
	}
}

func TestEventHas(t *testing.T) {
	status := EventRxEOF | EventInDone
	if !status.Has(EventRxEOF) {
		t.Errorf("Has(RxEOF) = false")
	}
	if status.Has(EventRxEOF | EventOutEOF) {
		t.Errorf("Has(RxEOF|OutEOF) = true")
	}
	if EventAll != 0x1FF {
		t.Errorf("EventAll = %#x", EventAll)
	}
}

func TestInterruptFlags(t *testing.T) {
	if got := InterruptFlags(0).Levels(); got != IntrLowMed {
		t.Errorf("default levels = %#x", got)
	}
	if got := (IntrLevel3 | IntrIRAM).Levels(); got != IntrLevel3 {
		t.Errorf("levels = %#x", got)
	}
	if err := (IntrLevel1 | IntrShared).Validate(); err != nil {
		t.Errorf("shared level1: %v", err)
	}
	if err := (IntrLevel5 | IntrShared).Validate(); err != ErrInvalidFlags {
		t.Errorf("shared level5 = %v", err)
	}
}
