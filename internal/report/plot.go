package report

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Default PNG plot size.
const (
	PlotWidth  = 10 * vg.Inch
	PlotHeight = 5 * vg.Inch
)

// newPlot builds an angle-over-time plot with one line per joint.
func (r *Recorder) newPlot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Joint angles (%s)", r.bike)
	p.X.Label.Text = "Tick"
	p.Y.Label.Text = "Degrees"
	p.Y.Min = 0
	p.Y.Max = 180
	p.Add(plotter.NewGrid())

	for i, j := range r.joints() {
		samples := r.samples[j]
		pts := make(plotter.XYs, len(samples))
		for k, s := range samples {
			pts[k] = plotter.XY{X: float64(s.Tick), Y: s.Degrees}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("%s line: %w", j, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(string(j), line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// WritePNG writes the angle plot as a width×height PNG.
func (r *Recorder) WritePNG(w io.Writer, width, height vg.Length) error {
	if r.Empty() {
		return ErrNoSamples
	}
	p, err := r.newPlot()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
