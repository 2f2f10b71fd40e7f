// Package monitor follows the copy engine's trace output on the host.
package monitor

import (
	"bufio"
	"io"

	"cpdma/core"
)

// Summary aggregates trace events seen on the console.
type Summary struct {
	Events     map[uint8]int // count per event type
	Lines      int           // trace lines parsed
	Other      int           // console lines that were not trace events
	Gaps       int           // sequence numbers skipped (ring overwrote them)
	LastStatus core.Event    // status of the latest INTERRUPT event

	pendingRx int // RX EOF interrupts still waiting for their RX_DONE
	lastSeq   uint32
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return &Summary{Events: make(map[uint8]int)}
}

// Feed accounts for one console line and returns the parsed event, if any.
func (s *Summary) Feed(line string) (core.TraceEvent, bool) {
	evt, ok := core.ParseTraceLine(line)
	if !ok {
		s.Other++
		return evt, false
	}

	s.Lines++
	s.Events[evt.EventType]++
	// Numbering restarts when the firmware reboots or clears the ring.
	if s.lastSeq != 0 && evt.Seq > s.lastSeq+1 {
		s.Gaps += int(evt.Seq - s.lastSeq - 1)
	}
	s.lastSeq = evt.Seq

	switch evt.EventType {
	case core.EvtInterrupt:
		s.LastStatus = core.Event(evt.Value1)
		if s.LastStatus.Has(core.EventRxEOF) {
			s.pendingRx++
		}
	case core.EvtRxDone:
		// The ring may have overwritten the INTERRUPT that led here.
		if s.pendingRx > 0 {
			s.pendingRx--
		}
	}
	return evt, true
}

// Unclaimed returns how many RX EOF interrupts have no matching RX_DONE
// event. Anything but zero means a completion was not delivered.
func (s *Summary) Unclaimed() int {
	return s.pendingRx
}

// Follow reads r line by line until EOF or a read error, feeding every line
// to s and passing parsed events to fn.
func (s *Summary) Follow(r io.Reader, fn func(core.TraceEvent)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if evt, ok := s.Feed(scanner.Text()); ok && fn != nil {
			fn(evt)
		}
	}
	return scanner.Err()
}
