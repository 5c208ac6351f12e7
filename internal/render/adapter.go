package render

import (
	"image/color"
	"math"
	"sync"

	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/bikefit/internal/config"
	"github.com/banshee-data/bikefit/internal/geom"
)

// Fill and stroke opacities for angle overlays.
const (
	sectorAlpha = 0.25
	legAlpha    = 0.9
)

var registerFonts sync.Once

// labelFont is the typeface used for angle labels.
var labelFont = font.Font{Typeface: "Liberation", Variant: "Sans"}

// Options controls overlay geometry and text.
type Options struct {
	FlipHorizontal bool
	LabelOffset    float64 // px between vertex and label box
	FontSize       float64 // pt, equal to px at 72 DPI
	ArcRadius      float64
	PointRadius    float64
	LineWidth      float64
}

// DefaultOptions returns the built-in overlay options.
func DefaultOptions() Options {
	return OptionsFromTuning(config.EmptyTuningConfig())
}

// OptionsFromTuning builds Options from a loaded TuningConfig.
func OptionsFromTuning(cfg *config.TuningConfig) Options {
	return Options{
		FlipHorizontal: cfg.GetFlipHorizontal(),
		LabelOffset:    cfg.GetLabelOffset(),
		FontSize:       cfg.GetLabelFontSize(),
		ArcRadius:      cfg.GetArcRadius(),
		PointRadius:    cfg.GetPointRadius(),
		LineWidth:      2,
	}
}

// Adapter draws screen-space geometry onto a vg.Canvas of a fixed size.
type Adapter struct {
	c      vg.Canvas
	width  float64
	height float64
	opts   Options
	face   font.Face
}

// NewAdapter wraps c, which must be width×height points.
func NewAdapter(c vg.Canvas, width, height float64, opts Options) *Adapter {
	registerFonts.Do(func() {
		font.DefaultCache.Add(liberation.Collection())
	})
	return &Adapter{
		c:      c,
		width:  width,
		height: height,
		opts:   opts,
		face:   font.DefaultCache.Lookup(labelFont, vg.Points(opts.FontSize)),
	}
}

// Size returns the canvas size in pixels.
func (a *Adapter) Size() (width, height float64) { return a.width, a.height }

// Options returns the adapter options.
func (a *Adapter) Options() Options { return a.opts }

// screen applies the horizontal flip, if any, to a model-space point.
func (a *Adapter) screen(p geom.Point) geom.Point {
	if a.opts.FlipHorizontal {
		return geom.Pt(a.width-p.X, p.Y)
	}
	return p
}

// vgPoint converts a screen-space point to vg space.
func (a *Adapter) vgPoint(p geom.Point) vg.Point {
	return vg.Point{X: vg.Length(p.X), Y: vg.Length(a.height - p.Y)}
}

// Clear fills the whole canvas with col.
func (a *Adapter) Clear(col color.Color) {
	var p vg.Path
	p.Move(vg.Point{})
	p.Line(vg.Point{X: vg.Length(a.width)})
	p.Line(vg.Point{X: vg.Length(a.width), Y: vg.Length(a.height)})
	p.Line(vg.Point{Y: vg.Length(a.height)})
	p.Close()
	a.c.SetColor(col)
	a.c.Fill(p)
}

// Line strokes a segment between two model-space points.
func (a *Adapter) Line(from, to geom.Point, col color.Color, width float64) {
	var p vg.Path
	p.Move(a.vgPoint(a.screen(from)))
	p.Line(a.vgPoint(a.screen(to)))
	a.c.SetLineWidth(vg.Length(width))
	a.c.SetLineDash(nil, 0)
	a.c.SetColor(col)
	a.c.Stroke(p)
}

// Dot fills a circle of radius r centred on a model-space point.
func (a *Adapter) Dot(centre geom.Point, r float64, col color.Color) {
	c := a.vgPoint(a.screen(centre))
	var p vg.Path
	p.Move(vg.Point{X: c.X + vg.Length(r), Y: c.Y})
	p.Arc(c, vg.Length(r), 0, 2*math.Pi)
	p.Close()
	a.c.SetColor(col)
	a.c.Fill(p)
}

// arcPaths returns the filled sector and the outline for the interior arc of
// the screen-space angle a–vertex–c. ok is false for degenerate angles.
func (a *Adapter) arcPaths(pa, vertex, pc geom.Point, radius float64) (sector, outline vg.Path, ok bool) {
	arc := geom.ArcDirection(pa, vertex, pc)
	if arc.Sweep() == 0 {
		return nil, nil, false
	}

	// vg angles run counter-clockwise with y up: negate screen angles.
	start, sweep := -arc.Start, -arc.Delta
	centre := a.vgPoint(vertex)
	r := vg.Length(radius)
	first := vg.Point{
		X: centre.X + r*vg.Length(math.Cos(start)),
		Y: centre.Y + r*vg.Length(math.Sin(start)),
	}

	sector.Move(centre)
	sector.Line(first)
	sector.Arc(centre, r, start, sweep)
	sector.Close()

	outline.Move(first)
	outline.Arc(centre, r, start, sweep)
	return sector, outline, true
}

// DrawAngle draws both legs from vertex, the interior sector and arc, and a
// label placed near the vertex. All points are model space.
func (a *Adapter) DrawAngle(pa, vertex, pc geom.Point, label string, col color.Color) {
	sa, sv, sc := a.screen(pa), a.screen(vertex), a.screen(pc)

	legCol := geom.WithAlpha(col, legAlpha)
	a.Line(pa, vertex, legCol, a.opts.LineWidth)
	a.Line(vertex, pc, legCol, a.opts.LineWidth)

	radius := a.opts.ArcRadius
	if shortest := math.Min(geom.Distance(sa, sv), geom.Distance(sc, sv)); shortest < radius {
		radius = shortest
	}
	if sector, outline, ok := a.arcPaths(sa, sv, sc, radius); ok {
		a.c.SetColor(geom.WithAlpha(col, sectorAlpha))
		a.c.Fill(sector)
		a.c.SetLineWidth(vg.Length(a.opts.LineWidth))
		a.c.SetLineDash(nil, 0)
		a.c.SetColor(col)
		a.c.Stroke(outline)
	}

	for _, p := range []geom.Point{pa, vertex, pc} {
		a.Dot(p, a.opts.PointRadius, col)
	}

	if label != "" {
		a.Label(vertex, label, col)
	}
}

// LabelBox is the screen-space top-left corner and size of a label.
type LabelBox struct {
	X, Y          float64
	Width, Height float64
}

// LabelPlacement positions a w×h label box beside a screen-space vertex,
// above and to the right, or to the left when flipped. The box is clamped so
// it stays fully inside a canvasW×canvasH canvas; a box larger than the
// canvas is pinned to the top-left.
func LabelPlacement(vertex geom.Point, w, h, canvasW, canvasH, offset float64, flipped bool) LabelBox {
	x := vertex.X + offset
	if flipped {
		x = vertex.X - offset - w
	}
	y := vertex.Y - offset - h

	return LabelBox{
		X:      clamp(x, 0, canvasW-w),
		Y:      clamp(y, 0, canvasH-h),
		Width:  w,
		Height: h,
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// Label draws text next to a model-space vertex.
func (a *Adapter) Label(vertex geom.Point, text string, col color.Color) LabelBox {
	ext := a.face.Extents()
	w := float64(a.face.Width(text))
	h := float64(ext.Ascent + ext.Descent)
	box := LabelPlacement(a.screen(vertex), w, h, a.width, a.height, a.opts.LabelOffset, a.opts.FlipHorizontal)

	baseline := geom.Pt(box.X, box.Y+float64(ext.Ascent))
	a.c.SetColor(col)
	a.c.FillString(a.face, a.vgPoint(baseline), text)
	return box
}
