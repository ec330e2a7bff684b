// Package ieeg holds the in-memory data model for multi-channel
// intracranial EEG recordings: a fixed set of named channels, each a
// time-ordered sample sequence of equal length, sampled at one frequency
// for the whole recording.
package ieeg

import "fmt"

// Recording is a fully materialized samples-by-channels table. Channel
// names are unique and keep their native column order. A Recording is
// read-only once constructed: neither the quality checks nor the feature
// pipeline modify it, and callers must not modify the column slices they
// handed to New after construction.
type Recording struct {
	names   []string
	index   map[string]int
	columns [][]float64
	samples int
	dtype   DType
}

// New builds a Recording from channel names and their sample columns,
// one column per name, all the same length. The element type is recorded
// as float64. The columns are adopted, not copied.
func New(names []string, columns [][]float64) (*Recording, error) {
	return NewTyped(names, columns, Float64)
}

// NewTyped is New with an explicit element type, for data that was read
// from narrower source values (for example raw int16 counts from an EDF
// file).
func NewTyped(names []string, columns [][]float64, dtype DType) (*Recording, error) {
	if !dtype.Valid() {
		return nil, fmt.Errorf("invalid element type %q", dtype)
	}
	if len(names) != len(columns) {
		return nil, fmt.Errorf("channel count mismatch: %d names, %d columns", len(names), len(columns))
	}

	samples := 0
	if len(columns) > 0 {
		samples = len(columns[0])
	}
	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("empty channel name at column %d", i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate channel name %q", name)
		}
		if len(columns[i]) != samples {
			return nil, fmt.Errorf("channel %q has %d samples, want %d", name, len(columns[i]), samples)
		}
		index[name] = i
	}

	rec := &Recording{
		names:   make([]string, len(names)),
		index:   index,
		columns: columns,
		samples: samples,
		dtype:   dtype,
	}
	copy(rec.names, names)
	return rec, nil
}

// ChannelCount returns the number of channels (columns).
func (r *Recording) ChannelCount() int {
	return len(r.names)
}

// SampleCount returns the number of samples per channel (rows).
func (r *Recording) SampleCount() int {
	return r.samples
}

// DType returns the element type of the source data.
func (r *Recording) DType() DType {
	return r.dtype
}

// Channels returns the channel names in native column order. The slice is
// a copy and safe to modify.
func (r *Recording) Channels() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Has reports whether the recording contains a channel with the given name.
func (r *Recording) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Column returns the sample sequence for the named channel. The returned
// slice is the recording's own storage and must be treated as read-only.
func (r *Recording) Column(name string) ([]float64, error) {
	i, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("unknown channel %q", name)
	}
	return r.columns[i], nil
}

// EachColumn calls f once per channel in native column order. The samples
// slice is the recording's own storage and must be treated as read-only.
func (r *Recording) EachColumn(f func(name string, samples []float64)) {
	for i, name := range r.names {
		f(name, r.columns[i])
	}
}
