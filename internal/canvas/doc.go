// Package canvas is the model behind the interactive angle-authoring tool.
//
// A Session owns the committed angles, the points of the angle currently
// being placed, and the background alignment grid. Pointer events mutate it
// synchronously; every read of an angle's degrees is computed from its
// current points, so the value is never stale.
//
// Pointer-down hit-testing runs in fixed priority: an angle's point, then an
// angle's arc annulus (excluding the immediate surroundings of its points),
// then the grid (only while grid dragging is enabled), and finally placement
// of a new point. Placing the third point commits an Angle whose vertex is
// the first point.
//
// States:
//
//	Idle → PlacingVertex → PlacingA → PlacingB → Idle   (angle committed)
//	Placing* → Idle                                     (Cancel)
//	Idle → DraggingPoint | DraggingAngle | DraggingGrid → Idle (pointer up)
package canvas
