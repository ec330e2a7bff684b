package features

import "github.com/UPennBJPrager/CNT-Development/signal"

// Kind identifies a registered feature.
type Kind string

// The registered feature kinds.
const (
	// LineLength is the signal-complexity measure: the sum of absolute
	// sample-to-sample differences over a channel.
	LineLength Kind = "LL"

	// BandPower is the signal power confined to a frequency band,
	// estimated from the channel's Welch spectrum.
	BandPower Kind = "BP"
)

// canonicalOrder fixes the result layout. Extraction output iterates kinds
// in this order regardless of request order.
var canonicalOrder = []Kind{LineLength, BandPower}

// definition binds a feature kind to the numeric primitive that computes
// it for one channel.
type definition struct {
	description string

	// needsBand marks kinds whose primitive consumes the frequency band,
	// and therefore require the band to validate before extraction runs.
	needsBand bool

	// compute produces the scalar value for one channel. sampleRate and
	// band are passed to every primitive; kinds that do not declare
	// needsBand ignore them.
	compute func(samples []float64, sampleRate float64, band signal.Band) (float64, error)
}

// registry is the closed kind-to-primitive mapping. The entry set is fixed
// at compile time, so an unknown kind is a resolution-time failure rather
// than a mid-extraction surprise.
var registry = map[Kind]definition{
	LineLength: {
		description: "line length (sum of absolute sample-to-sample differences)",
		compute: func(samples []float64, _ float64, _ signal.Band) (float64, error) {
			return signal.LineLength(samples)
		},
	},
	BandPower: {
		description: "band power (Welch-estimated power within a frequency band)",
		needsBand:   true,
		compute: func(samples []float64, sampleRate float64, band signal.Band) (float64, error) {
			return signal.BandPower(samples, sampleRate, band)
		},
	},
}

// Kinds returns every registered feature kind in canonical order.
func Kinds() []Kind {
	out := make([]Kind, len(canonicalOrder))
	copy(out, canonicalOrder)
	return out
}

// Valid reports whether k names a registered feature kind.
func (k Kind) Valid() bool {
	_, ok := registry[k]
	return ok
}

// Description returns the human-readable description of a registered kind,
// or the empty string for an unknown kind.
func (k Kind) Description() string {
	return registry[k].description
}

func (k Kind) String() string { return string(k) }
