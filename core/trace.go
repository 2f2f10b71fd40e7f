package core

import (
	"strconv"
	"strings"
)

var traceEventNames = map[uint8]string{
	EvtInit:      "INIT",
	EvtAllocIntr: "ALLOC_INTR",
	EvtStart:     "START",
	EvtStop:      "STOP",
	EvtRestart:   "RESTART",
	EvtDeinit:    "DEINIT",
	EvtInterrupt: "INTERRUPT",
	EvtRxDone:    "RX_DONE",
	EvtYield:     "YIELD",
}

// TraceEventName returns the dump name of an event type.
func TraceEventName(eventType uint8) string {
	if name, ok := traceEventNames[eventType]; ok {
		return name
	}
	return "UNKNOWN"
}

// FormatTraceEvent renders evt as a single dump line:
//
//	[CPDMA] INTERRUPT seq=12 v1=0x2 v2=0x0
func FormatTraceEvent(evt TraceEvent) string {
	return tracePrefix + TraceEventName(evt.EventType) +
		" seq=" + utoa(evt.Seq) +
		" v1=" + utox(evt.Value1) +
		" v2=" + utox(evt.Value2)
}

// ParseTraceLine parses a line produced by FormatTraceEvent. Lines without
// the trace prefix, dump banners and malformed lines report false.
func ParseTraceLine(line string) (TraceEvent, bool) {
	i := strings.Index(line, tracePrefix)
	if i < 0 {
		return TraceEvent{}, false
	}
	fields := strings.Fields(line[i+len(tracePrefix):])
	if len(fields) != 4 {
		return TraceEvent{}, false
	}

	var evt TraceEvent
	for code, name := range traceEventNames {
		if name == fields[0] {
			evt.EventType = code
			break
		}
	}
	if evt.EventType == 0 {
		return TraceEvent{}, false
	}

	for _, f := range fields[1:] {
		key, val, ok := strings.Cut(f, "=")
		if !ok {
			return TraceEvent{}, false
		}
		n, err := strconv.ParseUint(val, 0, 32)
		if err != nil {
			return TraceEvent{}, false
		}
		switch key {
		case "seq":
			evt.Seq = uint32(n)
		case "v1":
			evt.Value1 = uint32(n)
		case "v2":
			evt.Value2 = uint32(n)
		default:
			return TraceEvent{}, false
		}
	}
	return evt, true
}
