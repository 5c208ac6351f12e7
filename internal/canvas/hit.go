package canvas

import "github.com/banshee-data/bikefit/internal/geom"

// HitKind classifies what a pointer position is over.
type HitKind int

const (
	HitNone HitKind = iota
	HitPoint
	HitArc
	HitGrid
)

func (k HitKind) String() string {
	switch k {
	case HitPoint:
		return "point"
	case HitArc:
		return "arc"
	case HitGrid:
		return "grid"
	}
	return "none"
}

// Hit is the result of hit-testing a pointer position.
type Hit struct {
	Kind    HitKind
	AngleID string // set for HitPoint and HitArc
	Role    Role   // set for HitPoint
	PointID string // set for HitPoint
}

// HitTest resolves what p is over without mutating the session. Angles are
// searched newest first, matching draw order.
func (s *Session) HitTest(p geom.Point) Hit {
	if h, ok := s.hitPoint(p); ok {
		return h
	}
	if h, ok := s.hitArc(p); ok {
		return h
	}
	if s.dragGridMode && s.grid.Enabled && s.grid.Contains(p) {
		return Hit{Kind: HitGrid}
	}
	return Hit{Kind: HitNone}
}

func (s *Session) hitPoint(p geom.Point) (Hit, bool) {
	r := s.cfg.pointHitRadius()
	for i := len(s.angles) - 1; i >= 0; i-- {
		a := s.angles[i]
		for role, pt := range a.Points() {
			if geom.Distance(p, pt.Pos()) <= r {
				return Hit{Kind: HitPoint, AngleID: a.ID, Role: Role(role), PointID: pt.ID}, true
			}
		}
	}
	return Hit{}, false
}

func (s *Session) hitArc(p geom.Point) (Hit, bool) {
	inner, outer := s.cfg.arcInner(), s.cfg.arcOuter()
	exclusion := s.cfg.arcExclusionRadius()

	for i := len(s.angles) - 1; i >= 0; i-- {
		a := s.angles[i]
		if !geom.PointInAnnulus(p, a.Vertex.Pos(), inner, outer) {
			continue
		}
		nearPoint := false
		for _, pt := range a.Points() {
			if geom.Distance(p, pt.Pos()) <= exclusion {
				nearPoint = true
				break
			}
		}
		if !nearPoint {
			return Hit{Kind: HitArc, AngleID: a.ID}, true
		}
	}
	return Hit{}, false
}

// overExisting reports whether p is over an existing point or arc, which
// blocks placement.
func (s *Session) overExisting(p geom.Point) bool {
	if _, ok := s.hitPoint(p); ok {
		return true
	}
	_, ok := s.hitArc(p)
	return ok
}

// Cursor is the pointer affordance for a position or drag.
type Cursor string

const (
	CursorCrosshair Cursor = "crosshair"
	CursorGrab      Cursor = "grab"
	CursorGrabbing  Cursor = "grabbing"
	CursorMove      Cursor = "move"
)

func cursorFor(h Hit) Cursor {
	switch h.Kind {
	case HitPoint:
		return CursorGrab
	case HitArc, HitGrid:
		return CursorMove
	}
	return CursorCrosshair
}
