package edf

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// fixedHeaderSize is the length of the leading header block; each signal
// adds another 256 bytes of per-signal fields after it.
const fixedHeaderSize = 256

// fields walks fixed-width ASCII fields over a header block. The first
// parse error sticks and poisons later reads, so call sites check err
// once at the end.
type fields struct {
	buf []byte
	off int
	err error
}

func (f *fields) str(n int) string {
	if f.err != nil {
		return ""
	}
	if f.off+n > len(f.buf) {
		f.err = fmt.Errorf("header truncated at byte %d", f.off)
		return ""
	}
	s := strings.TrimSpace(string(f.buf[f.off : f.off+n]))
	f.off += n
	return s
}

func (f *fields) int(n int, what string) int {
	s := f.str(n)
	if f.err != nil {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f.err = fmt.Errorf("failed to parse %s %q: %w", what, s, err)
		return 0
	}
	return v
}

func (f *fields) float(n int, what string) float64 {
	s := f.str(n)
	if f.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f.err = fmt.Errorf("failed to parse %s %q: %w", what, s, err)
		return 0
	}
	return v
}

// readHeader parses the fixed header and the per-signal header block.
func readHeader(r io.Reader) (*Header, error) {
	buf := make([]byte, fixedHeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	f := &fields{buf: buf}
	hdr := &Header{}
	hdr.Version = f.str(8)
	hdr.PatientID = f.str(80)
	hdr.RecordingID = f.str(80)
	dateStr := f.str(8)
	timeStr := f.str(8)
	hdr.HeaderBytes = f.int(8, "header byte count")
	f.str(44) // reserved
	hdr.DataRecords = f.int(8, "data record count")
	durationStr := f.str(8)
	signalCount := f.int(4, "signal count")
	if f.err != nil {
		return nil, f.err
	}

	startTime, err := parseStartTime(dateStr, timeStr)
	if err != nil {
		return nil, err
	}
	hdr.StartTime = startTime

	hdr.RecordDuration, err = time.ParseDuration(durationStr + "s")
	if err != nil {
		return nil, fmt.Errorf("failed to parse data record duration %q: %w", durationStr, err)
	}

	if signalCount <= 0 {
		return nil, fmt.Errorf("signal count must be positive, got %d", signalCount)
	}
	if hdr.HeaderBytes < fixedHeaderSize*(signalCount+1) {
		return nil, fmt.Errorf("header byte count %d too small for %d signals", hdr.HeaderBytes, signalCount)
	}

	sigBuf := make([]byte, fixedHeaderSize*signalCount)
	if _, err := io.ReadFull(r, sigBuf); err != nil {
		return nil, fmt.Errorf("failed to read signal headers: %w", err)
	}

	// Signal fields are stored column-wise: every signal's label, then
	// every signal's transducer, and so on.
	sf := &fields{buf: sigBuf}
	hdr.Signals = make([]SignalInfo, signalCount)
	for i := range hdr.Signals {
		hdr.Signals[i].Label = sf.str(16)
	}
	for i := range hdr.Signals {
		hdr.Signals[i].Transducer = sf.str(80)
	}
	for i := range hdr.Signals {
		hdr.Signals[i].PhysicalUnit = sf.str(8)
	}
	for i := range hdr.Signals {
		hdr.Signals[i].PhysicalMin = sf.float(8, "physical minimum")
	}
	for i := range hdr.Signals {
		hdr.Signals[i].PhysicalMax = sf.float(8, "physical maximum")
	}
	for i := range hdr.Signals {
		hdr.Signals[i].DigitalMin = sf.int(8, "digital minimum")
	}
	for i := range hdr.Signals {
		hdr.Signals[i].DigitalMax = sf.int(8, "digital maximum")
	}
	for i := range hdr.Signals {
		hdr.Signals[i].Prefiltering = sf.str(80)
	}
	for i := range hdr.Signals {
		hdr.Signals[i].SamplesPerRecord = sf.int(8, "samples per record")
	}
	for range hdr.Signals {
		sf.str(32) // reserved
	}
	if sf.err != nil {
		return nil, sf.err
	}

	for _, sig := range hdr.Signals {
		if sig.SamplesPerRecord < 0 {
			return nil, fmt.Errorf("signal %q has negative samples per record", sig.Label)
		}
	}

	return hdr, nil
}

// parseStartTime combines the header's date and time fields. EDF pivots
// two-digit years at 85: 85-99 map to 1985-1999, 00-84 to 2000-2084.
func parseStartTime(dateStr, timeStr string) (time.Time, error) {
	d, err := time.Parse("02.01.06", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse start date %q: %w", dateStr, err)
	}
	tm, err := time.Parse("15.04.05", timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse start time %q: %w", timeStr, err)
	}

	year := d.Year()
	// Go's "06" layout maps 69-84 to 1969-1984; EDF pivots at 85, so
	// those years mean 2069-2084.
	if year >= 1969 && year < 1985 {
		year += 100
	}
	return time.Date(year, d.Month(), d.Day(), tm.Hour(), tm.Minute(), tm.Second(), 0, time.UTC), nil
}
