package canvas

import (
	"fmt"
	"math"

	"github.com/banshee-data/bikefit/internal/geom"
)

// Grid returns a copy of the grid settings.
func (s *Session) Grid() GridSettings { return s.grid }

// SetGridEnabled shows or hides the grid.
func (s *Session) SetGridEnabled(enabled bool) { s.grid.Enabled = enabled }

// ToggleGrid flips grid visibility and returns the new value.
func (s *Session) ToggleGrid() bool {
	s.grid.Enabled = !s.grid.Enabled
	return s.grid.Enabled
}

// SetDragGridMode controls whether the grid participates in hit-testing.
func (s *Session) SetDragGridMode(on bool) { s.dragGridMode = on }

// DragGridMode reports whether grid dragging is enabled.
func (s *Session) DragGridMode() bool { return s.dragGridMode }

// SetGridColor sets the stroke colour as #rgb or #rrggbb.
func (s *Session) SetGridColor(hex string) error {
	if _, err := geom.HexToRGBA(hex, 1); err != nil {
		return fmt.Errorf("grid color: %w", err)
	}
	s.grid.Color = hex
	return nil
}

// SetGridLineType sets the stroke style.
func (s *Session) SetGridLineType(lt LineType) error {
	if !lt.valid() {
		return fmt.Errorf("grid line type %q: must be solid, dashed or dotted", lt)
	}
	s.grid.LineType = lt
	return nil
}

// SetGridSize sets the side length of the grid square in pixels.
func (s *Session) SetGridSize(size float64) error {
	if size <= 0 {
		return fmt.Errorf("grid size must be positive, got %v", size)
	}
	s.grid.Size = size
	return nil
}

// SetGridDivisions sets the number of cells per side.
func (s *Session) SetGridDivisions(n int) error {
	if n < 1 {
		return fmt.Errorf("grid divisions must be at least 1, got %d", n)
	}
	s.grid.Divisions = n
	return nil
}

// SetGridLineWidth sets the stroke width in pixels.
func (s *Session) SetGridLineWidth(w float64) error {
	if w <= 0 {
		return fmt.Errorf("grid line width must be positive, got %v", w)
	}
	s.grid.LineWidth = w
	return nil
}

// SetGridAngle sets the rotation about the grid centre, normalised to [0, 360).
func (s *Session) SetGridAngle(degrees float64) {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	s.grid.AngleDegrees = d
}

// SetGridPosition moves the unrotated top-left corner of the grid.
func (s *Session) SetGridPosition(p geom.Point) { s.grid.Position = p }
