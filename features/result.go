package features

// Result is the nested feature-then-channel value table produced by
// Extract. Iteration order is fixed at construction: kinds in canonical
// registry order, channels in request order (native recording order when
// the request named none). Repeated extraction of the same inputs yields
// the same order, so downstream consumers see a reproducible layout.
//
// Values are scalars today. The accessor surface, rather than an exposed
// raw map, is what leaves room for vector-valued features later.
type Result struct {
	kinds    []Kind
	channels []string
	values   map[Kind]map[string]float64
}

func newResult(kinds []Kind, channels []string) *Result {
	values := make(map[Kind]map[string]float64, len(kinds))
	for _, k := range kinds {
		values[k] = make(map[string]float64, len(channels))
	}
	return &Result{kinds: kinds, channels: channels, values: values}
}

func (r *Result) set(kind Kind, channel string, value float64) {
	r.values[kind][channel] = value
}

// Kinds returns the feature kinds present, in result order. The slice is
// a copy and safe to modify.
func (r *Result) Kinds() []Kind {
	out := make([]Kind, len(r.kinds))
	copy(out, r.kinds)
	return out
}

// Channels returns the channel names present, in result order. The slice
// is a copy and safe to modify.
func (r *Result) Channels() []string {
	out := make([]string, len(r.channels))
	copy(out, r.channels)
	return out
}

// Value returns the computed value for one feature and channel, and
// whether that pair is present in the result.
func (r *Result) Value(kind Kind, channel string) (float64, bool) {
	byChannel, ok := r.values[kind]
	if !ok {
		return 0, false
	}
	v, ok := byChannel[channel]
	return v, ok
}

// ChannelValues returns the channel-to-value mapping for one feature
// kind, and whether that kind is present in the result. The map is a
// copy and safe to modify; iterate Channels() for result order.
func (r *Result) ChannelValues(kind Kind) (map[string]float64, bool) {
	byChannel, ok := r.values[kind]
	if !ok {
		return nil, false
	}
	out := make(map[string]float64, len(byChannel))
	for ch, v := range byChannel {
		out[ch] = v
	}
	return out, true
}

// Each calls f once per value in result order, feature-major then
// channel-minor.
func (r *Result) Each(f func(kind Kind, channel string, value float64)) {
	for _, k := range r.kinds {
		for _, ch := range r.channels {
			f(k, ch, r.values[k][ch])
		}
	}
}
