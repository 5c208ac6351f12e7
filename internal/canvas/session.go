package canvas

import (
	"fmt"

	"github.com/banshee-data/bikefit/internal/geom"
	"github.com/banshee-data/bikefit/internal/monitoring"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

// State is the pointer-session state of the canvas.
type State string

const (
	StateIdle          State = "idle"
	StatePlacingVertex State = "placing-vertex"
	StatePlacingA      State = "placing-a"
	StatePlacingB      State = "placing-b"
	StateDraggingPoint State = "dragging-point"
	StateDraggingAngle State = "dragging-angle"
	StateDraggingGrid  State = "dragging-grid"
)

func (s State) dragging() bool {
	switch s {
	case StateDraggingPoint, StateDraggingAngle, StateDraggingGrid:
		return true
	}
	return false
}

func (s State) placing() bool {
	switch s {
	case StatePlacingVertex, StatePlacingA, StatePlacingB:
		return true
	}
	return false
}

// drag is the transient state of an active drag.
type drag struct {
	angleID string
	role    Role
	offset  geom.Point // pointer minus anchor (vertex or grid origin)
}

// Session is one authoring canvas. It is not safe for concurrent use; all
// events are expected on a single control flow.
type Session struct {
	cfg Config

	angles  []*Angle
	pending []Point
	grid    GridSettings

	dragGridMode bool

	state State
	armed bool // a placement press is in progress
	drag  drag
	hover Hit

	newID func() string
}

// NewSession returns an empty session in the Idle state.
func NewSession(cfg Config) *Session {
	return &Session{
		cfg:   cfg,
		grid:  DefaultGridSettings(),
		state: StateIdle,
		newID: uuid.NewString,
	}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Config returns the session geometry.
func (s *Session) Config() Config { return s.cfg }

// PointerDown starts a drag or a placement press at p.
func (s *Session) PointerDown(p geom.Point, modifier bool) {
	if s.state.dragging() {
		return
	}

	if s.state == StateIdle {
		hit := s.HitTest(p)
		switch hit.Kind {
		case HitPoint:
			s.beginDrag(StateDraggingPoint, drag{angleID: hit.AngleID, role: hit.Role})
			return
		case HitArc:
			a := s.find(hit.AngleID)
			s.beginDrag(StateDraggingAngle, drag{angleID: hit.AngleID, offset: r2.Sub(p, a.Vertex.Pos())})
			return
		case HitGrid:
			s.beginDrag(StateDraggingGrid, drag{offset: r2.Sub(p, s.grid.Position)})
			return
		}
		s.state = StatePlacingVertex
		s.armed = true
		return
	}

	// Mid-placement presses over existing geometry are ignored.
	s.armed = !s.overExisting(p)
}

// PointerMove applies an active drag, or refreshes the hover affordance.
func (s *Session) PointerMove(p geom.Point, modifier bool) {
	switch s.state {
	case StateDraggingPoint:
		a := s.find(s.drag.angleID)
		if a == nil {
			s.endDrag()
			return
		}
		target := p
		if modifier && s.drag.role != RoleVertex {
			target = geom.SnapRadial(p, a.Vertex.Pos(), s.cfg.Snap.StepDegrees)
		}
		a.point(s.drag.role).moveTo(target)

	case StateDraggingAngle:
		a := s.find(s.drag.angleID)
		if a == nil {
			s.endDrag()
			return
		}
		anchor := r2.Sub(p, s.drag.offset)
		a.translate(r2.Sub(anchor, a.Vertex.Pos()))

	case StateDraggingGrid:
		s.grid.Position = r2.Sub(p, s.drag.offset)

	default:
		s.hover = s.HitTest(p)
	}
}

// PointerUp ends a drag, or completes a placement press by adding a point.
func (s *Session) PointerUp(p geom.Point, modifier bool) {
	if s.state.dragging() {
		s.endDrag()
		return
	}
	if !s.state.placing() {
		return
	}

	armed := s.armed
	s.armed = false
	if armed && !s.overExisting(p) {
		s.place(p, modifier)
	}
	s.syncPlacementState()
}

// Click is a press and release at the same position.
func (s *Session) Click(p geom.Point, modifier bool) {
	s.PointerDown(p, modifier)
	s.PointerUp(p, modifier)
}

// Cancel discards any partially placed points. Committed angles and active
// drags are unaffected.
func (s *Session) Cancel() {
	if !s.state.placing() {
		return
	}
	s.pending = nil
	s.armed = false
	s.state = StateIdle
}

// Hover hit-tests p for cursor and highlight purposes. It never mutates the
// model.
func (s *Session) Hover(p geom.Point) (Hit, Cursor) {
	h := s.HitTest(p)
	return h, cursorFor(h)
}

// Cursor returns the affordance for the current state and last hover.
func (s *Session) Cursor() Cursor {
	switch s.state {
	case StateDraggingPoint:
		return CursorGrabbing
	case StateDraggingAngle, StateDraggingGrid:
		return CursorMove
	}
	return cursorFor(s.hover)
}

// HoveredAngleID returns the angle under the pointer at the last move, if any.
func (s *Session) HoveredAngleID() string {
	return s.hover.AngleID
}

func (s *Session) beginDrag(state State, d drag) {
	s.state = state
	s.drag = d
	s.hover = Hit{}
}

func (s *Session) endDrag() {
	s.state = StateIdle
	s.drag = drag{}
	s.hover = Hit{}
}

func (s *Session) place(p geom.Point, modifier bool) {
	if modifier && len(s.pending) > 0 {
		p = geom.SnapRadial(p, s.pending[0].Pos(), s.cfg.Snap.StepDegrees)
	}
	s.pending = append(s.pending, Point{ID: s.newID(), X: p.X, Y: p.Y})
	if len(s.pending) < 3 {
		return
	}

	a := &Angle{
		ID:     s.newID(),
		Vertex: s.pending[0],
		A:      s.pending[1],
		B:      s.pending[2],
	}
	s.angles = append(s.angles, a)
	s.pending = nil
	monitoring.Debugf("canvas: committed angle %s at (%.0f,%.0f) = %.1f°", a.ID, a.Vertex.X, a.Vertex.Y, a.Degrees())
}

func (s *Session) syncPlacementState() {
	switch len(s.pending) {
	case 0:
		s.state = StateIdle
	case 1:
		s.state = StatePlacingA
	default:
		s.state = StatePlacingB
	}
}

func (s *Session) find(id string) *Angle {
	for _, a := range s.angles {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Angles returns copies of the committed angles in creation order.
func (s *Session) Angles() []Angle {
	out := make([]Angle, len(s.angles))
	for i, a := range s.angles {
		out[i] = *a
	}
	return out
}

// Angle returns a copy of the angle with the given id.
func (s *Session) Angle(id string) (Angle, bool) {
	a := s.find(id)
	if a == nil {
		return Angle{}, false
	}
	return *a, true
}

// Pending returns copies of the points placed for the angle in progress.
func (s *Session) Pending() []Point {
	return append([]Point(nil), s.pending...)
}

// PointOwner returns the id of the angle owning pointID.
func (s *Session) PointOwner(pointID string) (string, bool) {
	for _, a := range s.angles {
		for _, p := range a.Points() {
			if p.ID == pointID {
				return a.ID, true
			}
		}
	}
	return "", false
}

// DeleteAngle removes the angle and all three of its points. A drag bound to
// it ends on the next pointer move.
func (s *Session) DeleteAngle(id string) error {
	for i, a := range s.angles {
		if a.ID == id {
			s.angles = append(s.angles[:i], s.angles[i+1:]...)
			if s.hover.AngleID == id {
				s.hover = Hit{}
			}
			return nil
		}
	}
	return fmt.Errorf("delete %s: %w", id, ErrAngleNotFound)
}

// ClearAngles removes every committed angle.
func (s *Session) ClearAngles() {
	s.angles = nil
	s.hover = Hit{}
}
