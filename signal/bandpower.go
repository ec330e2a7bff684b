package signal

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/stat"
)

// defaultSegmentLen caps the Welch segment size; shorter inputs use a
// single full-length segment.
const defaultSegmentLen = 256

// Welch estimates the one-sided power spectral density of a uniformly
// sampled sequence by Welch's method: Hann-windowed, mean-removed segments
// with 50% overlap, periodograms averaged across segments. segmentLen <= 0
// selects the default of min(256, len(samples)).
//
// The returned frequency grid runs from 0 to sampleRate/2 with resolution
// sampleRate/segmentLen. Power is in units of amplitude²/Hz, so integrating
// the PSD over frequency recovers signal power.
func Welch(samples []float64, sampleRate float64, segmentLen int) (freqs, psd []float64, err error) {
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("welch: %w", ErrNoSamples)
	}
	if sampleRate <= 0 {
		return nil, nil, fmt.Errorf("welch: sampling frequency must be positive, got %g", sampleRate)
	}
	if segmentLen < 0 {
		return nil, nil, fmt.Errorf("welch: segment length must be non-negative, got %d", segmentLen)
	}
	if segmentLen == 0 {
		segmentLen = defaultSegmentLen
	}
	if segmentLen > len(samples) {
		segmentLen = len(samples)
	}

	// Hann coefficients, captured by windowing a unit sequence. A
	// single-sample segment keeps the unit window (the Hann phase step
	// divides by segmentLen-1).
	coeff := make([]float64, segmentLen)
	for i := range coeff {
		coeff[i] = 1
	}
	if segmentLen > 1 {
		window.Hann(coeff)
	}

	var windowPower float64
	for _, w := range coeff {
		windowPower += w * w
	}

	fft := fourier.NewFFT(segmentLen)
	bins := segmentLen/2 + 1
	psd = make([]float64, bins)
	buf := make([]float64, segmentLen)
	spectrum := make([]complex128, bins)

	step := segmentLen / 2
	if step == 0 {
		step = 1
	}

	segments := 0
	for start := 0; start+segmentLen <= len(samples); start += step {
		seg := samples[start : start+segmentLen]
		mean := stat.Mean(seg, nil)
		for i, v := range seg {
			buf[i] = (v - mean) * coeff[i]
		}

		spectrum = fft.Coefficients(spectrum, buf)
		for i, c := range spectrum {
			p := real(c)*real(c) + imag(c)*imag(c)
			// One-sided spectrum: double everything except DC and, for
			// even segment lengths, the Nyquist bin.
			if i > 0 && (segmentLen%2 == 1 || i < bins-1) {
				p *= 2
			}
			psd[i] += p
		}
		segments++
	}

	scale := 1 / (sampleRate * windowPower * float64(segments))
	for i := range psd {
		psd[i] *= scale
	}

	freqs = make([]float64, bins)
	for i := range freqs {
		freqs[i] = fft.Freq(i) * sampleRate
	}
	return freqs, psd, nil
}

// BandPower estimates the signal power confined to the given frequency
// band, by integrating the Welch PSD over the band with the trapezoidal
// rule. The band must satisfy 0 <= Low < High <= sampleRate/2.
func BandPower(samples []float64, sampleRate float64, band Band) (float64, error) {
	if err := band.Validate(sampleRate); err != nil {
		return 0, err
	}

	freqs, psd, err := Welch(samples, sampleRate, 0)
	if err != nil {
		return 0, err
	}

	lo := -1
	hi := -1
	for i, f := range freqs {
		if f < band.Low {
			continue
		}
		if f > band.High {
			break
		}
		if lo < 0 {
			lo = i
		}
		hi = i
	}
	if lo < 0 {
		// Band narrower than the frequency resolution: no bins fall inside.
		return 0, nil
	}
	if lo == hi {
		if len(freqs) < 2 {
			return 0, nil
		}
		return psd[lo] * (freqs[1] - freqs[0]), nil
	}

	var power float64
	for i := lo; i < hi; i++ {
		power += 0.5 * (psd[i] + psd[i+1]) * (freqs[i+1] - freqs[i])
	}
	return power, nil
}
