package arraycheck

import (
	"math"
	"strings"
	"testing"

	"github.com/UPennBJPrager/CNT-Development/ieeg"
	"github.com/UPennBJPrager/CNT-Development/internal/monitoring"
)

func mustRecording(t *testing.T, names []string, columns [][]float64) *ieeg.Recording {
	t.Helper()
	rec, err := ieeg.New(names, columns)
	if err != nil {
		t.Fatalf("ieeg.New: %v", err)
	}
	return rec
}

func intPtr(v int) *int { return &v }

func TestDims(t *testing.T) {
	rec := mustRecording(t,
		[]string{"LA1", "LA2", "LA3"},
		[][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}})

	tests := []struct {
		name         string
		wantChannels int
		wantSamples  *int
		expected     bool
	}{
		{"both match", 3, intPtr(4), true},
		{"channels match, samples skipped", 3, nil, true},
		{"channel mismatch", 2, intPtr(4), false},
		{"sample mismatch", 3, intPtr(100), false},
		{"both mismatch", 2, intPtr(100), false},
		{"channel mismatch with samples skipped", 5, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New(rec, false).Dims(tt.wantChannels, tt.wantSamples)
			if result != tt.expected {
				t.Errorf("Dims(%d, %v) = %v, want %v", tt.wantChannels, tt.wantSamples, result, tt.expected)
			}
		})
	}
}

func TestElementType(t *testing.T) {
	rec := mustRecording(t, []string{"LA1"}, [][]float64{{1, 2}})

	if !New(rec, false).ElementType(ieeg.Float64) {
		t.Error("ElementType(Float64) = false for a float64 recording, want true")
	}
	if New(rec, false).ElementType(ieeg.Int16) {
		t.Error("ElementType(Int16) = true for a float64 recording, want false")
	}
}

func TestNoInf(t *testing.T) {
	clean := mustRecording(t, []string{"LA1", "LA2"}, [][]float64{{1, 2}, {3, 4}})
	if !New(clean, false).NoInf() {
		t.Error("NoInf() = false for clean recording, want true")
	}

	infected := mustRecording(t, []string{"LA1", "LA2"},
		[][]float64{{1, math.Inf(1)}, {math.Inf(-1), 4}})
	if New(infected, false).NoInf() {
		t.Error("NoInf() = true for recording with infinities, want false")
	}

	// NaN must not trip the infinity check.
	withNaN := mustRecording(t, []string{"LA1"}, [][]float64{{1, math.NaN()}})
	if !New(withNaN, false).NoInf() {
		t.Error("NoInf() = false for recording with only NaN, want true")
	}
}

func TestNoNaN(t *testing.T) {
	clean := mustRecording(t, []string{"LA1", "LA2"}, [][]float64{{1, 2}, {3, 4}})
	if !New(clean, false).NoNaN() {
		t.Error("NoNaN() = false for clean recording, want true")
	}

	infected := mustRecording(t, []string{"LA1", "LA2"}, [][]float64{{1, 2}, {math.NaN(), 4}})
	if New(infected, false).NoNaN() {
		t.Error("NoNaN() = true for recording with NaN, want false")
	}

	// Infinity must not trip the NaN check.
	withInf := mustRecording(t, []string{"LA1"}, [][]float64{{1, math.Inf(1)}})
	if !New(withInf, false).NoNaN() {
		t.Error("NoNaN() = false for recording with only infinity, want true")
	}
}

func TestVerboseOutput(t *testing.T) {
	rec := mustRecording(t, []string{"LA1", "LA2"}, [][]float64{{1, math.NaN()}, {3, 4}})

	lines, restore := monitoring.Capture()
	c := New(rec, true)
	c.Dims(2, intPtr(2))
	c.ElementType(ieeg.Float64)
	c.NoInf()
	c.NoNaN()
	restore()

	if len(*lines) != 4 {
		t.Fatalf("captured %d lines, want 4: %v", len(*lines), *lines)
	}
	wantMarks := []string{"PASS", "PASS", "PASS", "FAIL"}
	for i, mark := range wantMarks {
		if !strings.Contains((*lines)[i], mark) {
			t.Errorf("line %d = %q, want it to contain %q", i, (*lines)[i], mark)
		}
	}
	if !strings.Contains((*lines)[3], "LA1") {
		t.Errorf("NaN failure line = %q, want it to name channel LA1", (*lines)[3])
	}
}

func TestQuietByDefault(t *testing.T) {
	rec := mustRecording(t, []string{"LA1"}, [][]float64{{1, 2}})

	lines, restore := monitoring.Capture()
	c := New(rec, false)
	c.Dims(1, nil)
	c.ElementType(ieeg.Float64)
	c.NoInf()
	c.NoNaN()
	restore()

	if len(*lines) != 0 {
		t.Errorf("captured %d lines with verbose off, want 0: %v", len(*lines), *lines)
	}
}
