package render

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/bikefit/internal/canvas"
	"github.com/banshee-data/bikefit/internal/geom"
	"github.com/banshee-data/bikefit/internal/pose"
	"github.com/banshee-data/bikefit/internal/testutil"
	"github.com/banshee-data/bikefit/internal/units"
)

// recorder is a vg.Canvas that records what was drawn.
type recorder struct {
	strokes []vg.Path
	fills   []vg.Path
	texts   []string
	textAt  []vg.Point
	dash    []vg.Length
	depth   int
}

func (r *recorder) SetLineWidth(vg.Length)                 {}
func (r *recorder) SetLineDash(p []vg.Length, _ vg.Length) { r.dash = p }
func (r *recorder) SetColor(color.Color)                   {}
func (r *recorder) Rotate(float64)                         {}
func (r *recorder) Translate(vg.Point)                     {}
func (r *recorder) Scale(float64, float64)                 {}
func (r *recorder) Push()                                  { r.depth++ }
func (r *recorder) Pop()                                   { r.depth-- }
func (r *recorder) Stroke(p vg.Path)                       { r.strokes = append(r.strokes, p) }
func (r *recorder) Fill(p vg.Path)                         { r.fills = append(r.fills, p) }
func (r *recorder) DrawImage(vg.Rectangle, image.Image)    {}

func (r *recorder) FillString(_ font.Face, pt vg.Point, s string) {
	r.texts = append(r.texts, s)
	r.textAt = append(r.textAt, pt)
}

var _ vg.Canvas = (*recorder)(nil)

func arcComps(paths []vg.Path) []vg.PathComp {
	var out []vg.PathComp
	for _, p := range paths {
		for _, c := range p {
			if c.Type == vg.ArcComp {
				out = append(out, c)
			}
		}
	}
	return out
}

// arcEnd returns the screen-space end point of an arc drawn on a canvas of
// the given height.
func arcEnd(c vg.PathComp, height float64) geom.Point {
	end := c.Start + c.Angle
	x := float64(c.Pos.X) + float64(c.Radius)*math.Cos(end)
	y := float64(c.Pos.Y) + float64(c.Radius)*math.Sin(end)
	return geom.Pt(x, height-y)
}

func TestLabelPlacement(t *testing.T) {
	tests := []struct {
		name    string
		vertex  geom.Point
		flipped bool
		want    LabelBox
	}{
		{"upper right", geom.Pt(100, 100), false, LabelBox{X: 112, Y: 68, Width: 30, Height: 20}},
		{"flipped goes left", geom.Pt(100, 100), true, LabelBox{X: 58, Y: 68, Width: 30, Height: 20}},
		{"clamped at right edge", geom.Pt(390, 100), false, LabelBox{X: 370, Y: 68, Width: 30, Height: 20}},
		{"clamped at top", geom.Pt(100, 5), false, LabelBox{X: 112, Y: 0, Width: 30, Height: 20}},
		{"flipped clamped at left edge", geom.Pt(10, 100), true, LabelBox{X: 0, Y: 68, Width: 30, Height: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LabelPlacement(tt.vertex, 30, 20, 400, 300, 12, tt.flipped)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			assert.Equal(t, tt.want.Width, got.Width)
			assert.Equal(t, tt.want.Height, got.Height)
		})
	}
}

func TestLabelPlacement_StaysInside(t *testing.T) {
	for _, v := range []geom.Point{geom.Pt(0, 0), geom.Pt(400, 300), geom.Pt(-50, 500), geom.Pt(200, 150)} {
		for _, flipped := range []bool{false, true} {
			b := LabelPlacement(v, 60, 16, 400, 300, 12, flipped)
			assert.GreaterOrEqual(t, b.X, 0.0)
			assert.GreaterOrEqual(t, b.Y, 0.0)
			assert.LessOrEqual(t, b.X+b.Width, 400.0)
			assert.LessOrEqual(t, b.Y+b.Height, 300.0)
		}
	}
}

func TestLabelPlacement_OversizedPinsTopLeft(t *testing.T) {
	b := LabelPlacement(geom.Pt(50, 50), 500, 20, 400, 300, 12, false)
	assert.Equal(t, 0.0, b.X)
}

func TestDrawAngle_InteriorArc(t *testing.T) {
	rec := &recorder{}
	a := NewAdapter(rec, 400, 400, DefaultOptions())
	pa, v, pc := testutil.RightAngle()

	a.DrawAngle(pa, v, pc, "90°", color.White)

	arcs := arcComps(rec.fills[:1])
	require.Len(t, arcs, 1)
	sector := arcs[0]
	testutil.AssertNear(t, "sector sweep", math.Abs(sector.Angle), math.Pi/2, 1e-9)

	outlines := arcComps(rec.strokes)
	require.Len(t, outlines, 1)
	assert.Equal(t, sector.Start, outlines[0].Start)
	assert.Equal(t, sector.Angle, outlines[0].Angle)

	// The arc ends on the ray towards pc.
	end := arcEnd(sector, 400)
	r := float64(sector.Radius)
	testutil.AssertPointNear(t, "arc end", end, geom.Pt(100, 100+r), 1e-9)

	require.Equal(t, []string{"90°"}, rec.texts)
}

func TestDrawAngle_NeverReflex(t *testing.T) {
	cases := [][3]geom.Point{
		{geom.Pt(150, 100), geom.Pt(100, 100), geom.Pt(50, 90)},
		{geom.Pt(50, 90), geom.Pt(100, 100), geom.Pt(150, 100)},
		{geom.Pt(100, 40), geom.Pt(100, 100), geom.Pt(160, 160)},
		{geom.Pt(40, 100), geom.Pt(100, 100), geom.Pt(40, 101)},
	}
	for _, c := range cases {
		rec := &recorder{}
		a := NewAdapter(rec, 400, 400, DefaultOptions())
		a.DrawAngle(c[0], c[1], c[2], "", color.White)

		arcs := arcComps(rec.strokes)
		require.Len(t, arcs, 1)
		want := geom.AngleBetween(c[0], c[1], c[2]) * math.Pi / 180
		testutil.AssertNear(t, "sweep", math.Abs(arcs[0].Angle), want, 1e-9)
		assert.LessOrEqual(t, math.Abs(arcs[0].Angle), math.Pi)
		assert.Empty(t, rec.texts)
	}
}

func TestDrawAngle_Flipped(t *testing.T) {
	opts := DefaultOptions()
	opts.FlipHorizontal = true
	rec := &recorder{}
	a := NewAdapter(rec, 400, 400, opts)
	pa, v, pc := testutil.RightAngle()

	a.DrawAngle(pa, v, pc, "90°", color.White)

	arcs := arcComps(rec.strokes)
	require.Len(t, arcs, 1)
	assert.InDelta(t, 300, float64(arcs[0].Pos.X), 1e-9)
	testutil.AssertNear(t, "sweep", math.Abs(arcs[0].Angle), math.Pi/2, 1e-9)

	// Mirrored, pc stays straight below the vertex.
	end := arcEnd(arcs[0], 400)
	testutil.AssertPointNear(t, "arc end", end, geom.Pt(300, 100+float64(arcs[0].Radius)), 1e-9)

	// Label sits to the left of the mirrored vertex.
	require.Len(t, rec.textAt, 1)
	assert.Less(t, float64(rec.textAt[0].X), 300.0)
}

func TestDrawAngle_DegenerateSkipsArc(t *testing.T) {
	rec := &recorder{}
	a := NewAdapter(rec, 400, 400, DefaultOptions())
	a.DrawAngle(geom.Pt(100, 100), geom.Pt(100, 100), geom.Pt(150, 100), "0°", color.White)
	assert.Empty(t, arcComps(rec.strokes))
}

func TestLabel_ClampedInsideCanvas(t *testing.T) {
	rec := &recorder{}
	a := NewAdapter(rec, 200, 100, DefaultOptions())
	box := a.Label(geom.Pt(195, 2), "178°", color.White)

	assert.GreaterOrEqual(t, box.X, 0.0)
	assert.GreaterOrEqual(t, box.Y, 0.0)
	assert.LessOrEqual(t, box.X+box.Width, 200.0)
	assert.LessOrEqual(t, box.Y+box.Height, 100.0)
	assert.Greater(t, box.Width, 0.0)
}

func TestGridLines(t *testing.T) {
	g := canvas.DefaultGridSettings()
	g.Divisions = 4

	lines := GridLines(g)
	require.Len(t, lines, 10)
	testutil.AssertPointNear(t, "first vertical start", lines[0][0], geom.Pt(0, 0), 1e-9)
	testutil.AssertPointNear(t, "first vertical end", lines[0][1], geom.Pt(0, 400), 1e-9)

	g.AngleDegrees = 90
	rotated := GridLines(g)
	testutil.AssertPointNear(t, "rotated start", rotated[0][0], geom.Pt(400, 0), 1e-9)
	testutil.AssertPointNear(t, "rotated end", rotated[0][1], geom.Pt(0, 0), 1e-9)

	g.Divisions = 0
	assert.Nil(t, GridLines(g))
}

func TestDrawGrid(t *testing.T) {
	rec := &recorder{}
	a := NewAdapter(rec, 400, 400, DefaultOptions())
	g := canvas.DefaultGridSettings()

	a.DrawGrid(g)
	assert.Empty(t, rec.strokes, "disabled grid draws nothing")

	g.Enabled = true
	a.DrawGrid(g)
	assert.Len(t, rec.strokes, 2*(g.Divisions+1))
	assert.Len(t, rec.dash, 2)
	assert.Equal(t, 0, rec.depth)

	rec = &recorder{}
	a = NewAdapter(rec, 400, 400, DefaultOptions())
	g.LineType = canvas.LineSolid
	a.DrawGrid(g)
	assert.Nil(t, rec.dash)
}

func TestDrawSession(t *testing.T) {
	s := canvas.NewSession(canvas.DefaultConfig())
	pa, v, pc := testutil.RightAngle()
	s.Click(v, false)
	s.Click(pa, false)
	s.Click(pc, false)
	s.Click(geom.Pt(300, 300), false)

	rec := &recorder{}
	a := NewAdapter(rec, 400, 400, DefaultOptions())
	a.DrawSession(s, units.Degrees)

	assert.Equal(t, []string{"90°"}, rec.texts)
	assert.Len(t, arcComps(rec.strokes), 1)
}

func TestDrawJoint_InvalidDrawsNothing(t *testing.T) {
	rec := &recorder{}
	a := NewAdapter(rec, 400, 400, DefaultOptions())
	a.DrawJoint(pose.JointAngleSample{Joint: pose.JointKnee}, "#22c55e", units.Degrees)
	assert.Empty(t, rec.strokes)
	assert.Empty(t, rec.fills)
}

func TestDrawJoint_Radians(t *testing.T) {
	rec := &recorder{}
	a := NewAdapter(rec, 400, 400, DefaultOptions())
	pa, v, pc := testutil.RightAngle()
	a.DrawJoint(pose.JointAngleSample{
		Joint: pose.JointKnee, Degrees: 90, IsValid: true,
		A: pa, Vertex: v, C: pc,
	}, "#22c55e", units.Radians)
	assert.Equal(t, []string{"1.57 rad"}, rec.texts)
}

func TestDrawSkeleton(t *testing.T) {
	f := make(pose.Frame, pose.NumKeypoints)
	for i, l := range pose.Landmarks {
		idx, _ := pose.Index(l, pose.SideLeft)
		f[idx] = &pose.Keypoint{X: float64(10 * i), Y: float64(20 * i), Confidence: 0.9}
	}

	rec := &recorder{}
	a := NewAdapter(rec, 400, 400, DefaultOptions())
	a.DrawSkeleton(f, pose.SideUndefined, 0.3)
	assert.Empty(t, rec.strokes)

	a.DrawSkeleton(f, pose.SideLeft, 0.3)
	assert.Len(t, rec.strokes, len(pose.Skeleton))
	assert.Len(t, rec.fills, len(pose.Landmarks))

	rec = &recorder{}
	a = NewAdapter(rec, 400, 400, DefaultOptions())
	a.DrawSkeleton(f, pose.SideRight, 0.3)
	assert.Empty(t, rec.strokes)
}

func TestImage_WritePNG(t *testing.T) {
	im := NewImage(64, 48, color.Black, DefaultOptions())
	pa, v, pc := geom.Pt(40, 20), geom.Pt(20, 20), geom.Pt(20, 40)
	im.DrawAngle(pa, v, pc, "90°", color.White)

	var buf bytes.Buffer
	require.NoError(t, im.WritePNG(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}
