package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/bikefit/internal/pose"
	"github.com/banshee-data/bikefit/internal/zones"
)

// zoneOrder is the display order of zones in share charts.
var zoneOrder = []zones.Zone{
	zones.ZonePedalDown,
	zones.ZonePedalUp,
	zones.ZoneCyclingRange,
	zones.ZonePhysiological,
	zones.ZoneExtreme,
	zones.ZoneUnknown,
}

// WriteHTML renders one angle-over-time chart per joint and a zone share
// chart as a single HTML page.
func (r *Recorder) WriteHTML(w io.Writer) error {
	if r.Empty() {
		return ErrNoSamples
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Bike fit (%s)", r.bike)
	for _, j := range r.joints() {
		page.AddCharts(r.jointLine(j))
	}
	page.AddCharts(r.zoneBar())

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func (r *Recorder) jointLine(j pose.Joint) *charts.Line {
	samples := r.samples[j]
	x := make([]int, len(samples))
	y := make([]opts.LineData, len(samples))
	for i, s := range samples {
		x[i] = s.Tick
		y[i] = opts.LineData{Value: s.Degrees, Name: string(s.Zone)}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: string(j), Subtitle: fmt.Sprintf("bike=%s samples=%d", r.bike, len(samples))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "tick", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "degrees", NameLocation: "middle", NameGap: 35}),
	)

	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
	}
	if rng, ok := r.table.Lookup(r.bike, j); ok {
		seriesOpts = append(seriesOpts,
			charts.WithMarkLineNameYAxisItemOpts(
				opts.MarkLineNameYAxisItem{Name: "optimal min", YAxis: rng.Optimal.Min},
				opts.MarkLineNameYAxisItem{Name: "optimal max", YAxis: rng.Optimal.Max},
			),
		)
	}
	line.SetXAxis(x).AddSeries(string(j), y, seriesOpts...)
	return line
}

func (r *Recorder) zoneBar() *charts.Bar {
	joints := r.joints()
	names := make([]string, len(joints))
	for i, j := range joints {
		names[i] = string(j)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: "Zone share", Subtitle: fmt.Sprintf("ticks=%d", r.ticks)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names)

	summary := r.Summary()
	for _, z := range zoneOrder {
		data := make([]opts.BarData, len(summary))
		seen := false
		for i, js := range summary {
			share := js.ZoneShare[z] * 100
			if share > 0 {
				seen = true
			}
			data[i] = opts.BarData{Value: share}
		}
		if !seen {
			continue
		}
		bar.AddSeries(z.Label(), data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: z.Color()}),
			charts.WithBarChartOpts(opts.BarChart{Stack: "zones"}),
		)
	}
	return bar
}
