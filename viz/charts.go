// Package viz renders extraction output for quick visual review: an HTML
// bar chart of the feature table, and PNG line plots of spectra and raw
// channel traces. Rendering targets are explicit (io.Writer or file path);
// nothing is written implicitly.
package viz

import (
	"errors"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/UPennBJPrager/CNT-Development/features"
)

// FeatureBars builds a bar chart of the feature table: channel names on
// the X axis, one series per feature kind. Rendering is left to the
// caller via the chart's Render method.
func FeatureBars(res *features.Result) (*charts.Bar, error) {
	if res == nil {
		return nil, errors.New("nil result")
	}
	channels := res.Channels()
	if len(channels) == 0 {
		return nil, errors.New("result has no channels")
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Channel Features", Width: "100%", Height: "720px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Per-Channel Features",
			Subtitle: fmt.Sprintf("channels=%d features=%d", len(channels), len(res.Kinds())),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	bar.SetXAxis(channels)
	for _, kind := range res.Kinds() {
		data := make([]opts.BarData, 0, len(channels))
		for _, ch := range channels {
			v, _ := res.Value(kind, ch)
			data = append(data, opts.BarData{Value: v})
		}
		bar.AddSeries(string(kind), data,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	}
	return bar, nil
}
