// Package arraycheck implements the individual integrity checks behind
// quality.Check: shape, element type, and non-finite value scans over a
// recording. Each check runs independently, returns pass or fail, and
// emits one diagnostic line through monitoring.Logf when verbose.
package arraycheck

import (
	"fmt"
	"math"
	"strings"

	"github.com/UPennBJPrager/CNT-Development/ieeg"
	"github.com/UPennBJPrager/CNT-Development/internal/monitoring"
)

// Checker binds the checks to one recording and one verbosity setting.
type Checker struct {
	rec     *ieeg.Recording
	verbose bool
}

// New returns a Checker for the given recording.
func New(rec *ieeg.Recording, verbose bool) *Checker {
	return &Checker{rec: rec, verbose: verbose}
}

// report emits one diagnostic line for a completed check when verbose.
func (c *Checker) report(name string, ok bool, detail string) {
	if !c.verbose {
		return
	}
	status := "PASS"
	if !ok {
		status = "FAIL"
	}
	if detail == "" {
		monitoring.Logf("%s check: %s", name, status)
		return
	}
	monitoring.Logf("%s check: %s (%s)", name, status, detail)
}

// Dims verifies the recording shape: the channel count always, the sample
// count only when wantSamples is non-nil.
func (c *Checker) Dims(wantChannels int, wantSamples *int) bool {
	var problems []string
	if have := c.rec.ChannelCount(); have != wantChannels {
		problems = append(problems, fmt.Sprintf("have %d channels, want %d", have, wantChannels))
	}
	if wantSamples != nil {
		if have := c.rec.SampleCount(); have != *wantSamples {
			problems = append(problems, fmt.Sprintf("have %d samples, want %d", have, *wantSamples))
		}
	}
	if len(problems) > 0 {
		c.report("dimension", false, strings.Join(problems, "; "))
		return false
	}
	if wantSamples == nil {
		c.report("dimension", true, fmt.Sprintf("%d channels, sample count not checked", wantChannels))
	} else {
		c.report("dimension", true, fmt.Sprintf("%d channels x %d samples", wantChannels, *wantSamples))
	}
	return true
}

// ElementType verifies the element type the recording was loaded with.
func (c *Checker) ElementType(want ieeg.DType) bool {
	have := c.rec.DType()
	if have != want {
		c.report("element type", false, fmt.Sprintf("have %s, want %s", have, want))
		return false
	}
	c.report("element type", true, string(have))
	return true
}

// NoInf verifies that no sample is infinite.
func (c *Checker) NoInf() bool {
	count, channels := c.scan(func(v float64) bool { return math.IsInf(v, 0) })
	if count > 0 {
		c.report("no-inf", false, fmt.Sprintf("%d infinite values in %s", count, channelList(channels)))
		return false
	}
	c.report("no-inf", true, "")
	return true
}

// NoNaN verifies that no sample is NaN.
func (c *Checker) NoNaN() bool {
	count, channels := c.scan(math.IsNaN)
	if count > 0 {
		c.report("no-nan", false, fmt.Sprintf("%d NaN values in %s", count, channelList(channels)))
		return false
	}
	c.report("no-nan", true, "")
	return true
}

// scan counts samples matching bad across the whole recording and collects
// the names of affected channels in native order.
func (c *Checker) scan(bad func(float64) bool) (count int, channels []string) {
	c.rec.EachColumn(func(name string, samples []float64) {
		hit := false
		for _, v := range samples {
			if bad(v) {
				count++
				hit = true
			}
		}
		if hit {
			channels = append(channels, name)
		}
	})
	return count, channels
}

func channelList(names []string) string {
	if len(names) == 1 {
		return "channel " + names[0]
	}
	return "channels " + strings.Join(names, ", ")
}
