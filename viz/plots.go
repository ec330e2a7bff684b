package viz

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/UPennBJPrager/CNT-Development/ieeg"
	"github.com/UPennBJPrager/CNT-Development/signal"
)

// SavePSD estimates the Welch spectrum of samples and writes a line plot
// of it to path as a PNG (format follows the path extension).
func SavePSD(path, name string, samples []float64, sampleRate float64) error {
	freqs, psd, err := signal.Welch(samples, sampleRate, 0)
	if err != nil {
		return fmt.Errorf("failed to estimate spectrum: %w", err)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - Welch PSD", name)
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = "Power density"

	pts := make(plotter.XYs, len(freqs))
	for i := range freqs {
		pts[i] = plotter.XY{X: freqs[i], Y: psd[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to build spectrum line: %w", err)
	}
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add(name, line)
	p.Legend.Top = true
	p.Legend.Left = false

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save spectrum plot: %w", err)
	}
	return nil
}

// SaveTraces writes a stacked line plot of the selected channels to path.
// Channels are drawn oldest request first from top to bottom, each offset
// vertically so traces do not overlap. An empty selection plots every
// channel in native order.
func SaveTraces(path string, rec *ieeg.Recording, sampleRate float64, channels []string) error {
	if rec == nil {
		return errors.New("nil recording")
	}
	if sampleRate <= 0 {
		return fmt.Errorf("sampling frequency must be positive, got %g", sampleRate)
	}
	if len(channels) == 0 {
		channels = rec.Channels()
	}
	if len(channels) == 0 {
		return errors.New("recording has no channels")
	}

	columns := make([][]float64, len(channels))
	for i, name := range channels {
		col, err := rec.Column(name)
		if err != nil {
			return fmt.Errorf("failed to plot traces: %w", err)
		}
		columns[i] = col
	}
	step := traceSpacing(columns)

	p := plot.New()
	p.Title.Text = "Channel Traces"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Amplitude (stacked)"

	colors := palette(len(channels))
	for i, col := range columns {
		offset := float64(len(channels)-1-i) * step
		pts := make(plotter.XYs, len(col))
		for s, v := range col {
			pts[s] = plotter.XY{X: float64(s) / sampleRate, Y: v + offset}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("failed to build trace for %q: %w", channels[i], err)
		}
		line.Color = colors[i]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(channels[i], line)
	}
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save trace plot: %w", err)
	}
	return nil
}

// traceSpacing returns the vertical gap between stacked traces: the
// largest finite peak-to-peak range across the columns, or 1 when every
// column is flat or non-finite.
func traceSpacing(columns [][]float64) float64 {
	spacing := 0.0
	for _, col := range columns {
		lo := math.Inf(1)
		hi := math.Inf(-1)
		for _, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if hi > lo && hi-lo > spacing {
			spacing = hi - lo
		}
	}
	if spacing == 0 {
		return 1
	}
	return spacing
}

// palette creates n visually distinct line colors spaced around the hue
// wheel.
func palette(n int) []color.Color {
	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		colors[i] = hslToRGB(hue, 0.7, 0.5)
	}
	return colors
}

// hslToRGB converts HSL color values to RGB.
func hslToRGB(h, s, l float64) color.RGBA {
	var r, g, b float64

	if s == 0 {
		r, g, b = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		r = hueToRGB(p, q, h+1.0/3.0)
		g = hueToRGB(p, q, h)
		b = hueToRGB(p, q, h-1.0/3.0)
	}

	return color.RGBA{
		R: uint8(r * 255),
		G: uint8(g * 255),
		B: uint8(b * 255),
		A: 255,
	}
}

// hueToRGB is a helper for hslToRGB.
func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
