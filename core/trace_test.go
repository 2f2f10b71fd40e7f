package core

import "testing"

func TestFormatTraceEvent(t *testing.T) {
	evt := TraceEvent{EventType: EvtInterrupt, Seq: 12, Value1: 0x2, Value2: 0}
	want := "[CPDMA] INTERRUPT seq=12 v1=0x2 v2=0x0"
	if got := FormatTraceEvent(evt); got != want {
		t.Errorf("FormatTraceEvent = %q, want %q", got, want)
	}
}

func TestParseTraceLine(t *testing.T) {
	tests := []struct {
		line string
		want TraceEvent
		ok   bool
	}{
		{"[CPDMA] INIT seq=1 v1=0x3ffb0000 v2=0x3ffb1000", TraceEvent{EvtInit, 1, 0x3FFB0000, 0x3FFB1000}, true},
		{"boot: 12ms [CPDMA] RX_DONE seq=7 v1=0x2 v2=0x0\r", TraceEvent{EvtRxDone, 7, 0x2, 0}, true},
		{"[CPDMA] === Trace Dump ===", TraceEvent{}, false},
		{"[CPDMA] started", TraceEvent{}, false},
		{"[CPDMA] BOGUS seq=1 v1=0x0 v2=0x0", TraceEvent{}, false},
		{"[CPDMA] START seq=x v1=0x0 v2=0x0", TraceEvent{}, false},
		{"[CPDMA] START seq=1 v1=0x0 v3=0x0", TraceEvent{}, false},
		{"unrelated output", TraceEvent{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseTraceLine(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseTraceLine(%q) = %+v, %v; want %+v, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTraceRingWraps(t *testing.T) {
	ClearTrace()
	defer ClearTrace()

	for i := 0; i < TraceRingSize+5; i++ {
		RecordTrace(EvtStart, uint32(i), 0)
	}

	events := TraceSnapshot()
	if len(events) != TraceRingSize {
		t.Fatalf("snapshot has %d events, want %d", len(events), TraceRingSize)
	}
	if events[0].Value1 != 5 || events[len(events)-1].Value1 != TraceRingSize+4 {
		t.Errorf("oldest=%d newest=%d", events[0].Value1, events[len(events)-1].Value1)
	}
}

func TestDumpTraceRoundTrip(t *testing.T) {
	ClearTrace()
	defer ClearTrace()

	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	defer SetDebugWriter(func(string) {})

	RecordTrace(EvtInit, 0x3FFB0000, 0x3FFB1000)
	RecordTrace(EvtInterrupt, uint32(EventRxEOF|EventInDone), 0)
	DumpTrace()

	var parsed []TraceEvent
	for _, l := range lines {
		if evt, ok := ParseTraceLine(l); ok {
			parsed = append(parsed, evt)
		}
	}
	want := TraceSnapshot()
	if len(parsed) != len(want) {
		t.Fatalf("parsed %d events from %d lines, want %d", len(parsed), len(lines), len(want))
	}
	for i := range want {
		if parsed[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, parsed[i], want[i])
		}
	}
}

func TestTraceDisabled(t *testing.T) {
	ClearTrace()
	SetTraceEnabled(false)
	defer SetTraceEnabled(true)

	RecordTrace(EvtStart, 0, 0)
	if n := len(TraceSnapshot()); n != 0 {
		t.Errorf("recorded %d events while disabled", n)
	}
}

func TestUtox(t *testing.T) {
	for n, want := range map[uint32]string{0: "0x0", 0x2: "0x2", 0x3FFB1000: "0x3ffb1000", 0xFFFFFFFF: "0xffffffff"} {
		if got := utox(n); got != want {
			t.Errorf("utox(%d) = %q, want %q", n, got, want)
		}
	}
	if got := utoa(4294967295); got != "4294967295" {
		t.Errorf("utoa(max) = %q", got)
	}
}
