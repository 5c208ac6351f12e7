package canvas

import (
	"errors"
	"math"

	"github.com/banshee-data/bikefit/internal/config"
	"github.com/banshee-data/bikefit/internal/geom"
)

// ErrAngleNotFound is returned when an angle id is not in the session.
var ErrAngleNotFound = errors.New("angle not found")

// Point is a user-placed point in canvas pixel space. Its ID is stable
// across drags.
type Point struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Pos returns the point position.
func (p Point) Pos() geom.Point { return geom.Pt(p.X, p.Y) }

func (p *Point) moveTo(q geom.Point) {
	p.X, p.Y = q.X, q.Y
}

// Role identifies which of an angle's three points is meant.
type Role int

const (
	RoleVertex Role = iota
	RoleA
	RoleB
)

func (r Role) String() string {
	switch r {
	case RoleVertex:
		return "vertex"
	case RoleA:
		return "a"
	case RoleB:
		return "b"
	}
	return "unknown"
}

// Angle is a committed three-point angle. It exclusively owns its points.
type Angle struct {
	ID     string `json:"id"`
	Vertex Point  `json:"vertex"`
	A      Point  `json:"a"`
	B      Point  `json:"b"`
}

// Degrees returns the interior angle at the vertex, computed from the
// current point positions.
func (a Angle) Degrees() float64 {
	return geom.AngleBetween(a.A.Pos(), a.Vertex.Pos(), a.B.Pos())
}

// Arc returns the interior arc for rendering.
func (a Angle) Arc() geom.Arc {
	return geom.ArcDirection(a.A.Pos(), a.Vertex.Pos(), a.B.Pos())
}

// Points returns the vertex and both legs in role order.
func (a Angle) Points() [3]Point {
	return [3]Point{a.Vertex, a.A, a.B}
}

func (a *Angle) point(r Role) *Point {
	switch r {
	case RoleVertex:
		return &a.Vertex
	case RoleA:
		return &a.A
	case RoleB:
		return &a.B
	}
	return nil
}

func (a *Angle) translate(d geom.Point) {
	for _, p := range []*Point{&a.Vertex, &a.A, &a.B} {
		p.X += d.X
		p.Y += d.Y
	}
}

// LineType is the stroke style of the grid.
type LineType string

const (
	LineSolid  LineType = "solid"
	LineDashed LineType = "dashed"
	LineDotted LineType = "dotted"
)

func (l LineType) valid() bool {
	switch l {
	case LineSolid, LineDashed, LineDotted:
		return true
	}
	return false
}

// GridSettings describe the background alignment grid: a Size×Size square
// with its unrotated top-left corner at Position, split into Divisions cells
// per side and rotated by AngleDegrees about its centre.
type GridSettings struct {
	Enabled      bool       `json:"enabled"`
	Color        string     `json:"color"`
	LineType     LineType   `json:"line_type"`
	Size         float64    `json:"size"`
	Divisions    int        `json:"divisions"`
	LineWidth    float64    `json:"line_width"`
	Position     geom.Point `json:"position"`
	AngleDegrees float64    `json:"angle_degrees"`
}

// DefaultGridSettings returns a disabled 400px grid at the origin.
func DefaultGridSettings() GridSettings {
	return GridSettings{
		Enabled:   false,
		Color:     "#ffffff",
		LineType:  LineDashed,
		Size:      400,
		Divisions: 8,
		LineWidth: 1,
	}
}

// Centre returns the rotation centre of the grid.
func (g GridSettings) Centre() geom.Point {
	return geom.Pt(g.Position.X+g.Size/2, g.Position.Y+g.Size/2)
}

// Contains reports whether p lies inside the rotated grid square.
func (g GridSettings) Contains(p geom.Point) bool {
	return geom.PointInRotatedRect(p, g.Position, g.Size, g.Size, g.AngleDegrees)
}

// SnapConfig governs radial snapping while the modifier is held.
type SnapConfig struct {
	StepDegrees float64
}

// Config holds the hit-testing geometry of the canvas, in pixels.
type Config struct {
	PointRadius       float64 // drawn radius of a point
	PointHitSlop      float64 // extra radius for point hits
	ArcPointExclusion float64 // extra radius around points excluded from arc hits
	ArcRadius         float64 // drawn radius of an angle's arc
	ArcTolerance      float64 // half-width of the arc hit annulus
	Snap              SnapConfig
}

// DefaultConfig returns the built-in canvas geometry.
func DefaultConfig() Config {
	return ConfigFromTuning(config.EmptyTuningConfig())
}

// ConfigFromTuning builds a Config from a loaded TuningConfig.
func ConfigFromTuning(cfg *config.TuningConfig) Config {
	return Config{
		PointRadius:       cfg.GetPointRadius(),
		PointHitSlop:      cfg.GetPointHitSlop(),
		ArcPointExclusion: cfg.GetArcPointExclusion(),
		ArcRadius:         cfg.GetArcRadius(),
		ArcTolerance:      cfg.GetArcTolerance(),
		Snap:              SnapConfig{StepDegrees: cfg.GetSnapStepDegrees()},
	}
}

func (c Config) pointHitRadius() float64 { return c.PointRadius + c.PointHitSlop }

func (c Config) arcExclusionRadius() float64 { return c.PointRadius + c.ArcPointExclusion }

func (c Config) arcInner() float64 { return math.Max(c.ArcRadius-c.ArcTolerance, 0) }

func (c Config) arcOuter() float64 { return c.ArcRadius + c.ArcTolerance }
