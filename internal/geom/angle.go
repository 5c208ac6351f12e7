package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a 2D position in screen space.
type Point = r2.Vec

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Arc describes how to paint the interior arc of a three-point angle.
type Arc struct {
	Start     float64 // radians, direction of vertex→a
	End       float64 // radians, direction of vertex→c
	Delta     float64 // signed sweep from Start to End, in (-π, π]
	Clockwise bool    // true when sweeping Start→End clockwise on screen
}

// Sweep returns the unsigned sweep of the arc in radians.
func (a Arc) Sweep() float64 {
	return math.Abs(a.Delta)
}

// AngleBetween returns the interior angle at vertex between the rays
// vertex→a and vertex→c, in degrees within [0, 180].
//
// A zero-length ray yields 0 rather than NaN; coincident points are routine
// while a point is being dragged across the vertex.
func AngleBetween(a, vertex, c Point) float64 {
	ba := r2.Sub(a, vertex)
	bc := r2.Sub(c, vertex)

	magA := r2.Norm(ba)
	magC := r2.Norm(bc)
	if magA == 0 || magC == 0 {
		return 0
	}

	cos := r2.Dot(ba, bc) / (magA * magC)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// ArcDirection returns the start and end directions of the two rays and the
// sweep that paints the interior (≤180°) arc matching AngleBetween.
// Degenerate input returns the zero Arc.
func ArcDirection(a, vertex, c Point) Arc {
	ba := r2.Sub(a, vertex)
	bc := r2.Sub(c, vertex)
	if r2.Norm(ba) == 0 || r2.Norm(bc) == 0 {
		return Arc{}
	}

	start := math.Atan2(ba.Y, ba.X)
	end := math.Atan2(bc.Y, bc.X)
	delta := NormalizeRadians(end - start)

	// With y pointing down a positive cross product turns clockwise.
	cross := r2.Cross(ba, bc)
	clockwise := cross > 0
	if cross == 0 {
		clockwise = delta > 0
	}

	return Arc{
		Start:     start,
		End:       end,
		Delta:     delta,
		Clockwise: clockwise,
	}
}

// NormalizeRadians maps an angle into (-π, π].
func NormalizeRadians(theta float64) float64 {
	for theta > math.Pi {
		theta -= 2 * math.Pi
	}
	for theta <= -math.Pi {
		theta += 2 * math.Pi
	}
	return theta
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return r2.Norm(r2.Sub(p, q))
}

// PointInAnnulus reports whether p lies within the ring centred on centre
// with the given inner and outer radii. Both bounds are inclusive.
func PointInAnnulus(p, centre Point, innerRadius, outerRadius float64) bool {
	d2 := r2.Norm2(r2.Sub(p, centre))
	return d2 >= innerRadius*innerRadius && d2 <= outerRadius*outerRadius
}

// PointInRotatedRect reports whether p lies inside the w×h rectangle whose
// unrotated top-left corner is origin, rotated by angleDegrees about its
// centre. Edges are inclusive.
func PointInRotatedRect(p, origin Point, w, h, angleDegrees float64) bool {
	centre := r2.Add(origin, Pt(w/2, h/2))
	local := p
	if angleDegrees != 0 {
		local = r2.Rotate(p, -angleDegrees*math.Pi/180, centre)
	}
	return local.X >= origin.X && local.X <= origin.X+w &&
		local.Y >= origin.Y && local.Y <= origin.Y+h
}

// SnapRadial rotates target about vertex onto the nearest multiple of
// stepDegrees while preserving its distance from vertex. A non-positive step
// or a target on the vertex is returned unchanged, as is a target already on
// a step boundary.
func SnapRadial(target, vertex Point, stepDegrees float64) Point {
	if stepDegrees <= 0 {
		return target
	}
	v := r2.Sub(target, vertex)
	dist := r2.Norm(v)
	if dist == 0 {
		return target
	}

	raw := math.Atan2(v.Y, v.X) * 180 / math.Pi
	snapped := math.Round(raw/stepDegrees) * stepDegrees
	if math.Abs(snapped-raw) < 1e-9 {
		return target
	}

	rad := snapped * math.Pi / 180
	return r2.Add(vertex, r2.Scale(dist, Pt(math.Cos(rad), math.Sin(rad))))
}
