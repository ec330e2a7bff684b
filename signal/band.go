package signal

import (
	"errors"
	"fmt"
)

// ErrInvalidBand reports a malformed or out-of-range frequency band.
var ErrInvalidBand = errors.New("invalid frequency band")

// Band is a frequency interval in Hz, inclusive at both edges.
type Band struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Validate checks that the band satisfies 0 <= Low < High <= sampleRate/2.
// Power outside the Nyquist interval is not observable, so a band reaching
// past it is an argument error, not a zero result.
func (b Band) Validate(sampleRate float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("sampling frequency must be positive, got %g", sampleRate)
	}
	if b.Low < 0 {
		return fmt.Errorf("%w: low edge %g Hz is negative", ErrInvalidBand, b.Low)
	}
	if b.High <= b.Low {
		return fmt.Errorf("%w: low edge %g Hz must be below high edge %g Hz", ErrInvalidBand, b.Low, b.High)
	}
	if nyquist := sampleRate / 2; b.High > nyquist {
		return fmt.Errorf("%w: high edge %g Hz exceeds Nyquist frequency %g Hz", ErrInvalidBand, b.High, nyquist)
	}
	return nil
}

func (b Band) String() string {
	return fmt.Sprintf("%g-%g Hz", b.Low, b.High)
}
