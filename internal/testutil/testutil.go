// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"math"
	"testing"

	"github.com/UPennBJPrager/CNT-Development/ieeg"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// NewRecording builds a recording, failing the test on constructor error.
func NewRecording(t *testing.T, names []string, columns [][]float64) *ieeg.Recording {
	t.Helper()
	rec, err := ieeg.New(names, columns)
	if err != nil {
		t.Fatalf("building recording: %v", err)
	}
	return rec
}

// Sine returns n samples of amplitude*sin(2*pi*freq*t) at the given
// sampling rate.
func Sine(n int, freq, sampleRate, amplitude float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return out
}

// Constant returns n copies of v.
func Constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Inject returns a copy of samples with v written at index i.
func Inject(samples []float64, i int, v float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)
	out[i] = v
	return out
}

// SineRecording builds one channel per name, channel i carrying a unit
// sine at freqs[i] Hz, n samples at the given sampling rate.
func SineRecording(t *testing.T, names []string, freqs []float64, n int, sampleRate float64) *ieeg.Recording {
	t.Helper()
	if len(names) != len(freqs) {
		t.Fatalf("SineRecording: %d names, %d frequencies", len(names), len(freqs))
	}
	columns := make([][]float64, len(names))
	for i := range names {
		columns[i] = Sine(n, freqs[i], sampleRate, 1)
	}
	return NewRecording(t, names, columns)
}

// Snapshot deep-copies the recording's columns, keyed by channel name,
// for before/after comparison in mutation tests.
func Snapshot(rec *ieeg.Recording) map[string][]float64 {
	snap := make(map[string][]float64, rec.ChannelCount())
	rec.EachColumn(func(name string, samples []float64) {
		col := make([]float64, len(samples))
		copy(col, samples)
		snap[name] = col
	})
	return snap
}
