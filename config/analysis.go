// Package config loads and validates analysis settings from JSON, so a
// checked-in settings file fully pins a feature-extraction run: band,
// feature and channel selections, and the structural expectations for the
// quality gate. Fields omitted from the file fall back to the package
// defaults through the Get* accessors, so partial configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/UPennBJPrager/CNT-Development/features"
	"github.com/UPennBJPrager/CNT-Development/ieeg"
	"github.com/UPennBJPrager/CNT-Development/quality"
	"github.com/UPennBJPrager/CNT-Development/signal"
)

// Analysis represents the root configuration for one analysis run. The
// schema is shared between ad-hoc runs and archived settings files, so
// the same JSON pins a run now and reproduces it later.
type Analysis struct {
	// Band power params
	BandLowHz  *float64 `json:"band_low_hz,omitempty"`
	BandHighHz *float64 `json:"band_high_hz,omitempty"`

	// Selection params
	Features []string `json:"features,omitempty"`
	Channels []string `json:"channels,omitempty"`

	// Quality gate params
	ExpectedChannels *int    `json:"expected_channels,omitempty"`
	ExpectedSamples  *int    `json:"expected_samples,omitempty"`
	ExpectedDType    *string `json:"expected_dtype,omitempty"`
	Verbose          *bool   `json:"verbose,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }
func ptrString(v string) *string    { return &v }
func ptrBool(v bool) *bool          { return &v }

// EmptyAnalysis returns an Analysis with all fields unset. Every accessor
// then reports its default, so the empty config describes a full default
// extraction with no quality expectations.
func EmptyAnalysis() *Analysis {
	return &Analysis{}
}

// Load reads an Analysis from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func Load(path string) (*Analysis, error) {
	// Validate the config file path.
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAnalysis()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid. Checks that
// need the recording's sampling frequency (the band against Nyquist) are
// deferred to extraction time.
func (c *Analysis) Validate() error {
	// The band edges come as a pair or not at all
	if (c.BandLowHz == nil) != (c.BandHighHz == nil) {
		return fmt.Errorf("band_low_hz and band_high_hz must be set together")
	}
	if c.BandLowHz != nil {
		if *c.BandLowHz < 0 {
			return fmt.Errorf("band_low_hz must be non-negative, got %g", *c.BandLowHz)
		}
		if *c.BandHighHz <= *c.BandLowHz {
			return fmt.Errorf("band_high_hz must be above band_low_hz, got %g <= %g", *c.BandHighHz, *c.BandLowHz)
		}
	}

	seenKinds := make(map[string]bool, len(c.Features))
	for _, name := range c.Features {
		if !features.Kind(name).Valid() {
			return fmt.Errorf("unknown feature %q (valid: LL, BP)", name)
		}
		if seenKinds[name] {
			return fmt.Errorf("duplicate feature %q", name)
		}
		seenKinds[name] = true
	}

	seenChannels := make(map[string]bool, len(c.Channels))
	for i, name := range c.Channels {
		if name == "" {
			return fmt.Errorf("channel %d is empty", i)
		}
		if seenChannels[name] {
			return fmt.Errorf("duplicate channel %q", name)
		}
		seenChannels[name] = true
	}

	if c.ExpectedChannels != nil && *c.ExpectedChannels <= 0 {
		return fmt.Errorf("expected_channels must be positive, got %d", *c.ExpectedChannels)
	}
	if c.ExpectedSamples != nil && *c.ExpectedSamples <= 0 {
		return fmt.Errorf("expected_samples must be positive, got %d", *c.ExpectedSamples)
	}

	if c.ExpectedDType != nil && !ieeg.DType(*c.ExpectedDType).Valid() {
		return fmt.Errorf("unknown expected_dtype %q", *c.ExpectedDType)
	}

	return nil
}

// GetBand returns the configured frequency band or the default high-gamma
// band.
func (c *Analysis) GetBand() signal.Band {
	if c.BandLowHz == nil || c.BandHighHz == nil {
		return features.DefaultBand
	}
	return signal.Band{Low: *c.BandLowHz, High: *c.BandHighHz}
}

// GetFeatures returns the configured feature kinds or all registered kinds.
func (c *Analysis) GetFeatures() []features.Kind {
	if len(c.Features) == 0 {
		return features.Kinds()
	}
	kinds := make([]features.Kind, len(c.Features))
	for i, name := range c.Features {
		kinds[i] = features.Kind(name)
	}
	return kinds
}

// GetChannels returns the configured channel selection; nil means all
// channels in native order.
func (c *Analysis) GetChannels() []string {
	if len(c.Channels) == 0 {
		return nil
	}
	out := make([]string, len(c.Channels))
	copy(out, c.Channels)
	return out
}

// GetDType returns the expected_dtype value or the default.
func (c *Analysis) GetDType() ieeg.DType {
	if c.ExpectedDType == nil {
		return ieeg.Float64
	}
	return ieeg.DType(*c.ExpectedDType)
}

// GetVerbose returns the verbose value or the default.
func (c *Analysis) GetVerbose() bool {
	if c.Verbose == nil {
		return false
	}
	return *c.Verbose
}

// Options assembles the extraction request this configuration describes.
func (c *Analysis) Options() features.Options {
	opts := features.Options{
		Features: c.GetFeatures(),
		Channels: c.GetChannels(),
	}
	if c.BandLowHz != nil && c.BandHighHz != nil {
		band := c.GetBand()
		opts.Band = &band
	}
	return opts
}

// Expect assembles the quality gate expectation this configuration
// describes. The second return is false when no expected_channels was
// configured: the gate requires a channel count, so such a config cannot
// run the gate at all.
func (c *Analysis) Expect() (quality.Expect, bool) {
	if c.ExpectedChannels == nil {
		return quality.Expect{}, false
	}
	return quality.Expect{
		Channels: *c.ExpectedChannels,
		Samples:  c.ExpectedSamples,
		DType:    c.GetDType(),
		Verbose:  c.GetVerbose(),
	}, true
}
