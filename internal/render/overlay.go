package render

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/bikefit/internal/canvas"
	"github.com/banshee-data/bikefit/internal/geom"
	"github.com/banshee-data/bikefit/internal/monitoring"
	"github.com/banshee-data/bikefit/internal/pose"
	"github.com/banshee-data/bikefit/internal/units"
)

var (
	skeletonColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 220}
	authoringColor = color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 255}
	highlightColor = color.NRGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 255}
)

// DrawSkeleton draws the single-side skeleton for a pixel-space frame.
// Bones with a missing or low-confidence end are skipped.
func (a *Adapter) DrawSkeleton(f pose.Frame, side pose.Side, minConfidence float64) {
	if side == pose.SideUndefined {
		return
	}
	usable := func(l pose.Landmark) (*pose.Keypoint, bool) {
		kp := f.Landmark(l, side)
		return kp, kp != nil && kp.Confidence >= minConfidence
	}

	for _, b := range pose.Skeleton {
		from, ok1 := usable(b.From)
		to, ok2 := usable(b.To)
		if ok1 && ok2 {
			a.Line(from.Point(), to.Point(), skeletonColor, a.opts.LineWidth)
		}
	}
	for _, l := range pose.Landmarks {
		if kp, ok := usable(l); ok {
			a.Dot(kp.Point(), a.opts.PointRadius*0.75, skeletonColor)
		}
	}
}

// DrawJoint draws a measured joint angle coloured by zone. Invalid samples
// draw nothing.
func (a *Adapter) DrawJoint(s pose.JointAngleSample, zoneHex, unit string) {
	if !s.IsValid {
		return
	}
	col, err := geom.HexToRGBA(zoneHex, 1)
	if err != nil {
		monitoring.Warnf("render: joint %s: %v", s.Joint, err)
		col = color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 255}
	}
	a.DrawAngle(s.A, s.Vertex, s.C, units.FormatAngle(s.Degrees, unit), col)
}

// DrawCanvasAngle draws a user-authored angle. highlighted marks the angle
// under the pointer.
func (a *Adapter) DrawCanvasAngle(ang canvas.Angle, highlighted bool, unit string) {
	col := color.Color(authoringColor)
	if highlighted {
		col = highlightColor
	}
	a.DrawAngle(ang.A.Pos(), ang.Vertex.Pos(), ang.B.Pos(), units.FormatAngle(ang.Degrees(), unit), col)
}

// DrawPending draws the points of an angle still being placed.
func (a *Adapter) DrawPending(pts []canvas.Point) {
	for i, p := range pts {
		if i > 0 {
			a.Line(pts[0].Pos(), p.Pos(), geom.WithAlpha(authoringColor, legAlpha), a.opts.LineWidth)
		}
		a.Dot(p.Pos(), a.opts.PointRadius, authoringColor)
	}
}

// DrawSession draws the grid, every committed angle and the pending points.
func (a *Adapter) DrawSession(s *canvas.Session, unit string) {
	a.DrawGrid(s.Grid())
	hovered := s.HoveredAngleID()
	for _, ang := range s.Angles() {
		a.DrawCanvasAngle(ang, ang.ID == hovered, unit)
	}
	a.DrawPending(s.Pending())
}

// gridDash returns the dash pattern for a grid line type.
func gridDash(lt canvas.LineType, width float64) []vg.Length {
	switch lt {
	case canvas.LineDashed:
		return []vg.Length{vg.Length(6 * width), vg.Length(4 * width)}
	case canvas.LineDotted:
		return []vg.Length{vg.Length(width), vg.Length(3 * width)}
	}
	return nil
}

// GridLines returns the model-space segments of a grid: Divisions+1 lines
// in each direction, rotated about the grid centre.
func GridLines(g canvas.GridSettings) [][2]geom.Point {
	if g.Divisions < 1 || g.Size <= 0 {
		return nil
	}
	centre := g.Centre()
	rad := g.AngleDegrees * math.Pi / 180
	rot := func(p geom.Point) geom.Point {
		if rad == 0 {
			return p
		}
		return r2.Rotate(p, rad, centre)
	}

	step := g.Size / float64(g.Divisions)
	x0, y0 := g.Position.X, g.Position.Y
	lines := make([][2]geom.Point, 0, 2*(g.Divisions+1))
	for i := 0; i <= g.Divisions; i++ {
		d := float64(i) * step
		lines = append(lines,
			[2]geom.Point{rot(geom.Pt(x0+d, y0)), rot(geom.Pt(x0+d, y0+g.Size))},
			[2]geom.Point{rot(geom.Pt(x0, y0+d)), rot(geom.Pt(x0+g.Size, y0+d))},
		)
	}
	return lines
}

// DrawGrid strokes the alignment grid when it is enabled.
func (a *Adapter) DrawGrid(g canvas.GridSettings) {
	if !g.Enabled {
		return
	}
	col, err := geom.HexToRGBA(g.Color, 0.6)
	if err != nil {
		monitoring.Warnf("render: grid colour: %v", err)
		return
	}

	a.c.Push()
	defer a.c.Pop()
	a.c.SetLineWidth(vg.Length(g.LineWidth))
	a.c.SetLineDash(gridDash(g.LineType, g.LineWidth), 0)
	a.c.SetColor(col)
	for _, l := range GridLines(g) {
		var p vg.Path
		p.Move(a.vgPoint(a.screen(l[0])))
		p.Line(a.vgPoint(a.screen(l[1])))
		a.c.Stroke(p)
	}
}
