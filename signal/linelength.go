// Package signal implements the per-channel numeric primitives used for
// iEEG feature extraction: line length and Welch band power. All functions
// are pure, deterministic, and never modify their input slices.
package signal

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoSamples reports a primitive invoked on an empty sample sequence.
var ErrNoSamples = errors.New("no samples")

// LineLength returns the sum of absolute sample-to-sample differences over
// the sequence, a cheap proxy for signal activity. A single sample has line
// length 0. NaN samples propagate into the result rather than being
// dropped.
func LineLength(samples []float64) (float64, error) {
	if len(samples) == 0 {
		return 0, fmt.Errorf("line length: %w", ErrNoSamples)
	}

	var total float64
	for i := 1; i < len(samples); i++ {
		total += math.Abs(samples[i] - samples[i-1])
	}
	return total, nil
}
