package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"cpdma/core"
	"cpdma/host/monitor"
	"cpdma/host/serial"
)

var (
	device   = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud     = flag.Int("baud", 115200, "Console baud rate")
	duration = flag.Duration("duration", 0, "Stop after this long (0 = until the port closes)")
	verbose  = flag.Bool("verbose", false, "Print every trace event")
)

func main() {
	flag.Parse()

	fmt.Println("cpdma monitor - copy engine trace follower")
	fmt.Println("==========================================")

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	// Block on reads so an idle console does not end the scan.
	cfg.ReadTimeout = 0

	fmt.Printf("Opening %s at %d baud...\n", cfg.Device, cfg.Baud)
	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	if err := port.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: flush failed: %v\n", err)
	}

	if *duration > 0 {
		time.AfterFunc(*duration, func() { port.Close() })
	}

	summary := monitor.NewSummary()
	err = summary.Follow(port, func(evt core.TraceEvent) {
		if *verbose {
			fmt.Println(core.FormatTraceEvent(evt))
		}
	})
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", cfg.Device, err)
	}

	printSummary(summary)
	if summary.Unclaimed() != 0 {
		os.Exit(2)
	}
}

func printSummary(s *monitor.Summary) {
	fmt.Printf("\n%d trace events, %d other lines, %d events lost to ring overwrite\n", s.Lines, s.Other, s.Gaps)

	types := make([]int, 0, len(s.Events))
	for t := range s.Events {
		types = append(types, int(t))
	}
	sort.Ints(types)
	for _, t := range types {
		fmt.Printf("  %-12s %d\n", core.TraceEventName(uint8(t)), s.Events[uint8(t)])
	}

	fmt.Printf("Last interrupt status: %#x\n", uint32(s.LastStatus))
	if n := s.Unclaimed(); n != 0 {
		fmt.Printf("WARNING: %d RX EOF interrupts without a completion notification\n", n)
	}
}
