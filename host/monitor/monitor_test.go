package monitor

import (
	"strings"
	"testing"

	"cpdma/core"
)

const sampleConsole = `ESP-ROM:esp32s2-rc4-20191025
[CPDMA] === Trace Dump ===
[CPDMA] INIT seq=1 v1=0x3ffb0000 v2=0x3ffb1000
[CPDMA] ALLOC_INTR seq=2 v1=0x2 v2=0x0
[CPDMA] START seq=3 v1=0x0 v2=0x0
[CPDMA] INTERRUPT seq=4 v1=0x3 v2=0x0
[CPDMA] RX_DONE seq=5 v1=0x3ffb1018 v2=0x3
[CPDMA] YIELD seq=6 v1=0x0 v2=0x0
[CPDMA] INTERRUPT seq=9 v1=0x8 v2=0x0
[CPDMA] STOP seq=10 v1=0x0 v2=0x0
[CPDMA] === End Dump ===
[CPDMA] copy ok
`

func TestFollow(t *testing.T) {
	s := NewSummary()
	var seen []uint8
	err := s.Follow(strings.NewReader(sampleConsole), func(evt core.TraceEvent) {
		seen = append(seen, evt.EventType)
	})
	if err != nil {
		t.Fatalf("Follow: %v", err)
	}

	if s.Lines != 8 || len(seen) != 8 {
		t.Errorf("Lines = %d, callbacks = %d, want 8", s.Lines, len(seen))
	}
	if s.Other != 4 {
		t.Errorf("Other = %d, want 4", s.Other)
	}
	if s.Events[core.EvtInterrupt] != 2 || s.Events[core.EvtRxDone] != 1 {
		t.Errorf("Events = %v", s.Events)
	}
	if s.Gaps != 2 {
		t.Errorf("Gaps = %d, want 2", s.Gaps)
	}
	if s.LastStatus != core.EventOutEOF {
		t.Errorf("LastStatus = %#x", s.LastStatus)
	}
	if s.Unclaimed() != 0 {
		t.Errorf("Unclaimed = %d", s.Unclaimed())
	}
}

func TestUnclaimedRxInterrupt(t *testing.T) {
	s := NewSummary()
	s.Feed("[CPDMA] INTERRUPT seq=1 v1=0x2 v2=0x0")
	s.Feed("[CPDMA] INTERRUPT seq=2 v1=0x2 v2=0x0")
	s.Feed("[CPDMA] RX_DONE seq=3 v1=0x3ffb1000 v2=0x2")

	if got := s.Unclaimed(); got != 1 {
		t.Errorf("Unclaimed = %d, want 1", got)
	}
}

func TestRxDoneWithoutInterrupt(t *testing.T) {
	s := NewSummary()
	// The ring wrapped and dropped the INTERRUPT before the first RX_DONE.
	s.Feed("[CPDMA] RX_DONE seq=33 v1=0x3ffb1018 v2=0x2")
	s.Feed("[CPDMA] INTERRUPT seq=34 v1=0x2 v2=0x0")
	s.Feed("[CPDMA] RX_DONE seq=35 v1=0x3ffb1018 v2=0x2")

	if got := s.Unclaimed(); got != 0 {
		t.Errorf("Unclaimed = %d, want 0", got)
	}
	if s.Events[core.EvtRxDone] != 2 {
		t.Errorf("RX_DONE count = %d, want 2", s.Events[core.EvtRxDone])
	}

	s.Feed("[CPDMA] INTERRUPT seq=36 v1=0x3 v2=0x0")
	if got := s.Unclaimed(); got != 1 {
		t.Errorf("Unclaimed = %d after a lone INTERRUPT, want 1", got)
	}
}

func TestSequenceRestart(t *testing.T) {
	s := NewSummary()
	s.Feed("[CPDMA] START seq=40 v1=0x0 v2=0x0")
	s.Feed("[CPDMA] INIT seq=1 v1=0x0 v2=0x0")
	s.Feed("[CPDMA] START seq=2 v1=0x0 v2=0x0")

	if s.Gaps != 0 {
		t.Errorf("Gaps = %d after reboot, want 0", s.Gaps)
	}
}
