// Package features turns a loaded recording into a per-channel feature
// table. A closed registry binds each feature kind to its numeric
// primitive; Extract resolves the requested kinds and channels, validates
// the selection up front, then computes the full feature-by-channel
// cross-product in one deterministic pass.
package features

import (
	"errors"
	"fmt"

	"github.com/UPennBJPrager/CNT-Development/ieeg"
	"github.com/UPennBJPrager/CNT-Development/signal"
)

// DefaultBand is the frequency band used when a request does not carry
// one: the high-gamma range.
var DefaultBand = signal.Band{Low: 60, High: 120}

var (
	// ErrUnknownKind means a requested feature kind is not registered.
	ErrUnknownKind = errors.New("unknown feature kind")

	// ErrUnknownChannel means a requested channel is not in the recording.
	ErrUnknownChannel = errors.New("unknown channel")
)

// Options narrows an extraction request. The zero value selects every
// registered feature over every channel with the default band.
type Options struct {
	// Features selects the feature kinds to compute. Nil selects every
	// registered kind; an explicit empty selection selects none. Result
	// order is always canonical registry order, never request order.
	Features []Kind

	// Channels selects the channels to compute, in request order. Nil
	// selects all of the recording's channels in native column order; an
	// explicit empty selection selects none.
	Channels []string

	// Band is the frequency band for band power. Nil selects DefaultBand.
	Band *signal.Band
}

// Extract computes the selected features for the selected channels of rec
// and returns the assembled result table.
//
// The whole selection is validated before any primitive runs: an unknown
// or duplicated feature kind or channel name fails the call with no
// computation done, as does a recording with zero samples. A primitive
// failure on any channel fails the whole call with no partial result.
// The recording is never modified; a NaN computed from NaN input is
// data, not an error, and lands in the result like any other value.
func Extract(rec *ieeg.Recording, sampleRate float64, opts Options) (*Result, error) {
	if rec == nil {
		return nil, errors.New("nil recording")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sampling frequency must be positive, got %g", sampleRate)
	}

	kinds, err := resolveKinds(opts.Features)
	if err != nil {
		return nil, err
	}

	channels, columns, err := resolveChannels(rec, opts.Channels)
	if err != nil {
		return nil, err
	}

	if rec.SampleCount() == 0 && len(kinds) > 0 && len(channels) > 0 {
		return nil, fmt.Errorf("recording has no samples: %w", signal.ErrNoSamples)
	}

	band := DefaultBand
	if opts.Band != nil {
		band = *opts.Band
	}
	for _, k := range kinds {
		if registry[k].needsBand {
			if err := band.Validate(sampleRate); err != nil {
				return nil, err
			}
			break
		}
	}

	result := newResult(kinds, channels)
	for _, kind := range kinds {
		def := registry[kind]
		for i, name := range channels {
			v, err := def.compute(columns[i], sampleRate, band)
			if err != nil {
				return nil, fmt.Errorf("computing %s for channel %q: %w", kind, name, err)
			}
			result.set(kind, name, v)
		}
	}
	return result, nil
}

// resolveKinds expands a nil selection to all registered kinds and
// reorders an explicit selection into canonical order, rejecting unknown
// and duplicated kinds. An explicit empty selection stays empty.
func resolveKinds(requested []Kind) ([]Kind, error) {
	if requested == nil {
		return Kinds(), nil
	}
	seen := make(map[Kind]bool, len(requested))
	for _, k := range requested {
		if !k.Valid() {
			return nil, fmt.Errorf("%w %q", ErrUnknownKind, string(k))
		}
		if seen[k] {
			return nil, fmt.Errorf("duplicate feature kind %q in selection", string(k))
		}
		seen[k] = true
	}
	resolved := make([]Kind, 0, len(seen))
	for _, k := range canonicalOrder {
		if seen[k] {
			resolved = append(resolved, k)
		}
	}
	return resolved, nil
}

// resolveChannels expands a nil selection to the recording's native
// channel order and fetches each selected column, rejecting unknown and
// duplicated names. An explicit empty selection stays empty.
func resolveChannels(rec *ieeg.Recording, requested []string) ([]string, [][]float64, error) {
	if requested == nil {
		requested = rec.Channels()
	}

	channels := make([]string, 0, len(requested))
	columns := make([][]float64, 0, len(requested))
	seen := make(map[string]bool, len(requested))
	for _, name := range requested {
		if seen[name] {
			return nil, nil, fmt.Errorf("duplicate channel %q in selection", name)
		}
		seen[name] = true
		col, err := rec.Column(name)
		if err != nil {
			return nil, nil, fmt.Errorf("%w %q", ErrUnknownChannel, name)
		}
		channels = append(channels, name)
		columns = append(columns, col)
	}
	return channels, columns, nil
}
