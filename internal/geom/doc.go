// Package geom is the geometry kernel shared by the pose pipeline and the
// angle-authoring canvas.
//
// Responsibilities: three-point interior angles, arc start/end/direction for
// rendering, distances, annulus and rotated-rectangle containment, and radial
// snapping. All functions are pure.
//
// Coordinates are screen space: x grows right, y grows down. Angles returned
// by atan2 therefore increase clockwise on screen.
//
// Dependency rule: geom depends on nothing else in this module.
package geom
