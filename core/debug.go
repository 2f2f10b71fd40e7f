package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TraceEvent captures an engine event for post-mortem analysis
type TraceEvent struct {
	EventType uint8  // Event type code
	Seq       uint32 // Monotonic sequence number
	Value1    uint32 // Context-dependent value
	Value2    uint32 // Context-dependent value
}

// Event type codes
const (
	EvtInit      = 1 // Init: v1=outlink v2=inlink
	EvtAllocIntr = 2 // AllocateInterrupt: v1=flags
	EvtStart     = 3
	EvtStop      = 4
	EvtRestart   = 5
	EvtDeinit    = 6
	EvtInterrupt = 7 // Handler entry: v1=status read and cleared
	EvtRxDone    = 8 // RX EOF delivered: v1=eof descriptor v2=status
	EvtYield     = 9 // Yield requested from interrupt
)

const (
	TraceRingSize = 32 // Keep last 32 events for post-mortem

	tracePrefix = "[CPDMA] "
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Trace ring buffer (non-blocking, for post-mortem)
	traceLock     Spinlock
	traceRing     [TraceRingSize]TraceEvent
	traceRingHead uint8 // Next write position
	traceSeq      uint32
	traceEnabled  bool = true
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// SetTraceEnabled turns event capture on or off
func SetTraceEnabled(enabled bool) {
	traceEnabled = enabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordTrace captures an event in the ring buffer.
// Safe from interrupt context: bounded, no allocation.
func RecordTrace(eventType uint8, value1, value2 uint32) {
	if !traceEnabled {
		return
	}
	traceLock.Lock()
	traceSeq++
	idx := traceRingHead
	traceRing[idx] = TraceEvent{
		EventType: eventType,
		Seq:       traceSeq,
		Value1:    value1,
		Value2:    value2,
	}
	traceRingHead = (idx + 1) % TraceRingSize
	traceLock.Unlock()
}

// TraceSnapshot returns the recorded events, oldest first.
func TraceSnapshot() []TraceEvent {
	traceLock.Lock()
	ring := traceRing
	start := traceRingHead
	traceLock.Unlock()

	events := make([]TraceEvent, 0, TraceRingSize)
	for i := uint8(0); i < TraceRingSize; i++ {
		evt := ring[(start+i)%TraceRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		events = append(events, evt)
	}
	return events
}

// DumpTrace outputs the trace ring (call on shutdown/error, never from an
// interrupt handler)
func DumpTrace() {
	if debugPrintln == nil {
		return
	}

	debugPrintln(tracePrefix + "=== Trace Dump ===")
	for _, evt := range TraceSnapshot() {
		debugPrintln(FormatTraceEvent(evt))
	}
	debugPrintln(tracePrefix + "=== End Dump ===")
}

// ClearTrace clears the trace buffer
func ClearTrace() {
	traceLock.Lock()
	for i := range traceRing {
		traceRing[i] = TraceEvent{}
	}
	traceRingHead = 0
	traceSeq = 0
	traceLock.Unlock()
}
