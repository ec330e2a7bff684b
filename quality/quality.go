// Package quality runs the structural integrity checks that gate feature
// extraction: shape, element type, and freedom from infinite and NaN
// samples. The gate is advisory. A failed check comes back as data in the
// Report, never as an error, and the caller decides whether a recording
// that failed a check is still usable. The validator and the feature
// pipeline are deliberately independent; composing them is the caller's
// responsibility.
package quality

import (
	"errors"
	"fmt"

	"github.com/UPennBJPrager/CNT-Development/ieeg"
	"github.com/UPennBJPrager/CNT-Development/internal/arraycheck"
)

// ErrBadArgument flags malformed arguments to Check. When it is returned
// no check ran at all.
var ErrBadArgument = errors.New("invalid argument")

// Expect describes the structural properties a recording must have.
type Expect struct {
	// Channels is the required channel count. Must be positive.
	Channels int

	// Samples, when non-nil, is the required per-channel sample count and
	// must point at a positive value. Nil skips the sample count
	// comparison. There is no analogous skip for Channels.
	Samples *int

	// DType is the required element type. Empty selects Float64.
	DType ieeg.DType

	// Verbose emits one line per check through monitoring.Logf.
	Verbose bool
}

// dtype resolves the element type expectation, applying the default.
func (e Expect) dtype() ieeg.DType {
	if e.DType == "" {
		return ieeg.Float64
	}
	return e.DType
}

// Report holds the individual outcomes of the four structural checks.
type Report struct {
	DimsOK        bool
	ElementTypeOK bool
	NoInfOK       bool
	NoNaNOK       bool
}

// OK reports whether every check passed.
func (r Report) OK() bool {
	return r.DimsOK && r.ElementTypeOK && r.NoInfOK && r.NoNaNOK
}

// String renders the report as one line of per-check outcomes.
func (r Report) String() string {
	mark := func(ok bool) string {
		if ok {
			return "PASS"
		}
		return "FAIL"
	}
	return fmt.Sprintf("dimension %s, element type %s, no-inf %s, no-nan %s",
		mark(r.DimsOK), mark(r.ElementTypeOK), mark(r.NoInfOK), mark(r.NoNaNOK))
}

// Check runs the four structural checks against rec. All four always run
// regardless of earlier failures, so the report keeps per-check
// granularity rather than collapsing into a short-circuited boolean. The
// recording is never modified.
func Check(rec *ieeg.Recording, exp Expect) (Report, error) {
	if rec == nil {
		return Report{}, fmt.Errorf("%w: nil recording", ErrBadArgument)
	}
	if exp.Channels <= 0 {
		return Report{}, fmt.Errorf("%w: expected channel count must be positive, got %d", ErrBadArgument, exp.Channels)
	}
	if exp.Samples != nil && *exp.Samples <= 0 {
		return Report{}, fmt.Errorf("%w: expected sample count must be positive, got %d", ErrBadArgument, *exp.Samples)
	}
	want := exp.dtype()
	if !want.Valid() {
		return Report{}, fmt.Errorf("%w: unknown element type %q", ErrBadArgument, exp.DType)
	}

	c := arraycheck.New(rec, exp.Verbose)
	var rep Report
	rep.DimsOK = c.Dims(exp.Channels, exp.Samples)
	rep.ElementTypeOK = c.ElementType(want)
	rep.NoInfOK = c.NoInf()
	rep.NoNaNOK = c.NoNaN()
	return rep, nil
}
