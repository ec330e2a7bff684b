// Package edf loads European Data Format recordings into the in-memory
// model used by the quality gate and the feature pipeline. Read parses
// the header and pulls every data record into memory in one sequential
// pass; Recording and RecordingDigital then materialize channels without
// further I/O. Only reading is supported.
package edf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/UPennBJPrager/CNT-Development/ieeg"
)

// annotationLabel marks the EDF+ annotations pseudo-signal, which carries
// text events rather than samples and is excluded from recordings.
const annotationLabel = "EDF Annotations"

// ErrNoDataSignals means the file holds no sample-bearing signals.
var ErrNoDataSignals = errors.New("no data signals")

// ErrMixedRates means the file's data signals disagree on sampling
// frequency. Recordings are uniformly sampled by definition, so such a
// file cannot become one recording.
var ErrMixedRates = errors.New("mixed sampling rates")

// SignalInfo describes one signal's header entry.
type SignalInfo struct {
	Label            string
	Transducer       string
	PhysicalUnit     string
	PhysicalMin      float64
	PhysicalMax      float64
	DigitalMin       int
	DigitalMax       int
	Prefiltering     string
	SamplesPerRecord int
}

// annotation reports whether the signal is the EDF+ annotations channel.
func (s SignalInfo) annotation() bool {
	return s.Label == annotationLabel
}

// Header is the parsed EDF file header.
type Header struct {
	Version        string
	PatientID      string
	RecordingID    string
	StartTime      time.Time
	HeaderBytes    int
	DataRecords    int // -1 in the file means unknown; resolved count is on File
	RecordDuration time.Duration
	Signals        []SignalInfo
}

// File is a fully loaded EDF file: the header plus every signal's digital
// samples, concatenated across data records.
type File struct {
	header  Header
	records int
	digital [][]int16
}

// Header returns the parsed file header.
func (f *File) Header() Header {
	return f.header
}

// Records returns the number of data records actually loaded.
func (f *File) Records() int {
	return f.records
}

// Read parses an EDF file and loads all of its signal data. When the
// header leaves the record count unknown (-1), the count is derived from
// the stream length.
func Read(r io.ReadSeeker) (*File, error) {
	hdr, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	records := hdr.DataRecords
	recordSize := 0
	for _, sig := range hdr.Signals {
		recordSize += sig.SamplesPerRecord * 2
	}
	if records < 0 {
		if recordSize == 0 {
			return nil, fmt.Errorf("cannot derive record count: empty data records")
		}
		end, err := r.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to size stream: %w", err)
		}
		records = int((end - int64(hdr.HeaderBytes)) / int64(recordSize))
		if records < 0 {
			records = 0
		}
	}

	if _, err := r.Seek(int64(hdr.HeaderBytes), io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to data records: %w", err)
	}

	digital := make([][]int16, len(hdr.Signals))
	for i, sig := range hdr.Signals {
		digital[i] = make([]int16, 0, sig.SamplesPerRecord*records)
	}

	buf := make([]byte, recordSize)
	for rec := 0; rec < records; rec++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("failed to read data record %d of %d: %w", rec+1, records, err)
		}
		off := 0
		for i, sig := range hdr.Signals {
			for s := 0; s < sig.SamplesPerRecord; s++ {
				digital[i] = append(digital[i], int16(binary.LittleEndian.Uint16(buf[off:off+2])))
				off += 2
			}
		}
	}

	return &File{header: *hdr, records: records, digital: digital}, nil
}

// SampleRate returns the common sampling frequency of the data signals in
// Hz. It fails when the file has no data signals or when they disagree on
// rate.
func (f *File) SampleRate() (float64, error) {
	duration := f.header.RecordDuration.Seconds()
	if duration <= 0 {
		return 0, fmt.Errorf("data record duration must be positive, got %v", f.header.RecordDuration)
	}

	perRecord := -1
	for _, sig := range f.header.Signals {
		if sig.annotation() {
			continue
		}
		if perRecord == -1 {
			perRecord = sig.SamplesPerRecord
			continue
		}
		if sig.SamplesPerRecord != perRecord {
			return 0, fmt.Errorf("%w: %d and %d samples per record", ErrMixedRates, perRecord, sig.SamplesPerRecord)
		}
	}
	if perRecord <= 0 {
		return 0, ErrNoDataSignals
	}
	return float64(perRecord) / duration, nil
}

// Recording materializes every data signal as physical values (applying
// each signal's digital-to-physical calibration) and returns the
// recording together with its sampling frequency. The EDF+ annotations
// signal, if present, is excluded.
func (f *File) Recording() (*ieeg.Recording, float64, error) {
	rate, err := f.SampleRate()
	if err != nil {
		return nil, 0, err
	}

	var names []string
	var columns [][]float64
	for i, sig := range f.header.Signals {
		if sig.annotation() {
			continue
		}
		if sig.DigitalMax == sig.DigitalMin {
			return nil, 0, fmt.Errorf("signal %q has a flat digital range, cannot calibrate", sig.Label)
		}
		scale := (sig.PhysicalMax - sig.PhysicalMin) / float64(sig.DigitalMax-sig.DigitalMin)
		column := make([]float64, len(f.digital[i]))
		for s, d := range f.digital[i] {
			column[s] = sig.PhysicalMin + (float64(d)-float64(sig.DigitalMin))*scale
		}
		names = append(names, sig.Label)
		columns = append(columns, column)
	}

	rec, err := ieeg.New(names, columns)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build recording: %w", err)
	}
	return rec, rate, nil
}

// RecordingDigital materializes every data signal as its raw digital
// counts, uncalibrated, with the recording tagged as int16 data. The
// quality gate's element type check can then distinguish raw loads from
// calibrated ones.
func (f *File) RecordingDigital() (*ieeg.Recording, float64, error) {
	rate, err := f.SampleRate()
	if err != nil {
		return nil, 0, err
	}

	var names []string
	var columns [][]float64
	for i, sig := range f.header.Signals {
		if sig.annotation() {
			continue
		}
		column := make([]float64, len(f.digital[i]))
		for s, d := range f.digital[i] {
			column[s] = float64(d)
		}
		names = append(names, sig.Label)
		columns = append(columns, column)
	}

	rec, err := ieeg.NewTyped(names, columns, ieeg.Int16)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build recording: %w", err)
	}
	return rec, rate, nil
}
