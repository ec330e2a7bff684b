package quality

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/UPennBJPrager/CNT-Development/ieeg"
	"github.com/UPennBJPrager/CNT-Development/internal/monitoring"
	"github.com/UPennBJPrager/CNT-Development/internal/testutil"
)

func intPtr(v int) *int { return &v }

// fiveByHundred builds the canonical clean fixture: 5 channels, 100 samples.
func fiveByHundred(t *testing.T) *ieeg.Recording {
	t.Helper()
	names := []string{"LA1", "LA2", "LA3", "LB1", "LB2"}
	columns := make([][]float64, len(names))
	for i := range names {
		columns[i] = testutil.Sine(100, float64(5+10*i), 500, 1)
	}
	return testutil.NewRecording(t, names, columns)
}

func TestCheckAllPass(t *testing.T) {
	rec := fiveByHundred(t)

	rep, err := Check(rec, Expect{Channels: 5, Samples: intPtr(100)})
	testutil.AssertNoError(t, err)

	if !rep.OK() {
		t.Errorf("OK() = false for clean recording, report: %s", rep)
	}
	if !rep.DimsOK || !rep.ElementTypeOK || !rep.NoInfOK || !rep.NoNaNOK {
		t.Errorf("expected all checks to pass, report: %s", rep)
	}
}

func TestCheckDimensionFailureIsIndependent(t *testing.T) {
	rec := fiveByHundred(t)

	rep, err := Check(rec, Expect{Channels: 6})
	testutil.AssertNoError(t, err)

	if rep.DimsOK {
		t.Error("DimsOK = true with wrong expected channel count, want false")
	}
	// The other three checks still run and still pass.
	if !rep.ElementTypeOK || !rep.NoInfOK || !rep.NoNaNOK {
		t.Errorf("remaining checks should pass independently, report: %s", rep)
	}
	if rep.OK() {
		t.Error("OK() = true with a failed check, want false")
	}
}

func TestCheckSampleCountSkip(t *testing.T) {
	rec := fiveByHundred(t)

	// Nil sample expectation skips that comparison entirely.
	rep, err := Check(rec, Expect{Channels: 5})
	testutil.AssertNoError(t, err)
	if !rep.DimsOK {
		t.Error("DimsOK = false with sample count skipped, want true")
	}

	rep, err = Check(rec, Expect{Channels: 5, Samples: intPtr(999)})
	testutil.AssertNoError(t, err)
	if rep.DimsOK {
		t.Error("DimsOK = true with wrong expected sample count, want false")
	}
}

func TestCheckFinitenessIndependence(t *testing.T) {
	// One NaN: the NaN check fails, the infinity check still passes.
	withNaN := testutil.NewRecording(t,
		[]string{"LA1", "LA2"},
		[][]float64{testutil.Constant(10, 1), testutil.Inject(testutil.Constant(10, 1), 3, math.NaN())})

	rep, err := Check(withNaN, Expect{Channels: 2})
	testutil.AssertNoError(t, err)
	if rep.NoNaNOK {
		t.Error("NoNaNOK = true with injected NaN, want false")
	}
	if !rep.NoInfOK {
		t.Error("NoInfOK = false with only NaN present, want true")
	}

	// And the mirror image for an infinity.
	withInf := testutil.NewRecording(t,
		[]string{"LA1", "LA2"},
		[][]float64{testutil.Inject(testutil.Constant(10, 1), 0, math.Inf(-1)), testutil.Constant(10, 1)})

	rep, err = Check(withInf, Expect{Channels: 2})
	testutil.AssertNoError(t, err)
	if rep.NoInfOK {
		t.Error("NoInfOK = true with injected infinity, want false")
	}
	if !rep.NoNaNOK {
		t.Error("NoNaNOK = false with only infinity present, want true")
	}
}

func TestCheckElementTypeDefault(t *testing.T) {
	counts, err := ieeg.NewTyped([]string{"LA1"}, [][]float64{{1, 2, 3}}, ieeg.Int16)
	testutil.AssertNoError(t, err)

	// Empty DType expects float64, so an int16-typed recording fails.
	rep, err := Check(counts, Expect{Channels: 1})
	testutil.AssertNoError(t, err)
	if rep.ElementTypeOK {
		t.Error("ElementTypeOK = true for int16 recording against default expectation, want false")
	}

	rep, err = Check(counts, Expect{Channels: 1, DType: ieeg.Int16})
	testutil.AssertNoError(t, err)
	if !rep.ElementTypeOK {
		t.Error("ElementTypeOK = false with matching explicit dtype, want true")
	}
}

func TestCheckBadArguments(t *testing.T) {
	rec := fiveByHundred(t)

	tests := []struct {
		name string
		rec  *ieeg.Recording
		exp  Expect
	}{
		{"nil recording", nil, Expect{Channels: 5}},
		{"zero channels", rec, Expect{Channels: 0}},
		{"negative channels", rec, Expect{Channels: -3}},
		{"zero samples", rec, Expect{Channels: 5, Samples: intPtr(0)}},
		{"negative samples", rec, Expect{Channels: 5, Samples: intPtr(-100)}},
		{"unknown dtype", rec, Expect{Channels: 5, DType: ieeg.DType("complex128")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := Check(tt.rec, tt.exp)
			if err == nil {
				t.Fatal("Check returned nil error for malformed arguments")
			}
			if !errors.Is(err, ErrBadArgument) {
				t.Errorf("error = %v, want ErrBadArgument", err)
			}
			if rep != (Report{}) {
				t.Errorf("report = %+v, want zero value when no check ran", rep)
			}
		})
	}
}

func TestCheckDoesNotMutate(t *testing.T) {
	rec := fiveByHundred(t)
	before := testutil.Snapshot(rec)

	_, err := Check(rec, Expect{Channels: 5, Samples: intPtr(100), Verbose: true})
	testutil.AssertNoError(t, err)

	if diff := cmp.Diff(before, testutil.Snapshot(rec)); diff != "" {
		t.Errorf("recording mutated by Check (-got +want):\n%s", diff)
	}
}

func TestCheckVerboseOutput(t *testing.T) {
	rec := fiveByHundred(t)

	lines, restore := monitoring.Capture()
	_, err := Check(rec, Expect{Channels: 5, Verbose: true})
	restore()
	testutil.AssertNoError(t, err)

	if len(*lines) != 4 {
		t.Fatalf("captured %d diagnostic lines, want 4: %v", len(*lines), *lines)
	}

	lines, restore = monitoring.Capture()
	_, err = Check(rec, Expect{Channels: 5})
	restore()
	testutil.AssertNoError(t, err)

	if len(*lines) != 0 {
		t.Errorf("captured %d diagnostic lines with verbose off, want 0", len(*lines))
	}
}

func TestReportOK(t *testing.T) {
	tests := []struct {
		name     string
		report   Report
		expected bool
	}{
		{"all pass", Report{true, true, true, true}, true},
		{"dims fail", Report{false, true, true, true}, false},
		{"dtype fail", Report{true, false, true, true}, false},
		{"inf fail", Report{true, true, false, true}, false},
		{"nan fail", Report{true, true, true, false}, false},
		{"all fail", Report{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.report.OK(); got != tt.expected {
				t.Errorf("OK() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReportString(t *testing.T) {
	r := Report{DimsOK: true, ElementTypeOK: true, NoInfOK: true, NoNaNOK: false}
	s := r.String()
	if !strings.Contains(s, "no-nan FAIL") {
		t.Errorf("String() = %q, want it to mark the NaN check failed", s)
	}
	if !strings.Contains(s, "dimension PASS") {
		t.Errorf("String() = %q, want it to mark the dimension check passed", s)
	}
}
