// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"math"
	"testing"

	"github.com/banshee-data/bikefit/internal/geom"
)

// AngleTolerance is the default tolerance, in degrees, for comparing angles.
const AngleTolerance = 1e-6

// AssertNear fails the test if got and want differ by more than tol.
func AssertNear(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}

// AssertPointNear fails the test if got is further than tol from want.
func AssertPointNear(t *testing.T, name string, got, want geom.Point, tol float64) {
	t.Helper()
	if d := geom.Distance(got, want); math.IsNaN(d) || d > tol {
		t.Errorf("%s = (%.4f, %.4f), want (%.4f, %.4f) (±%v)", name, got.X, got.Y, want.X, want.Y, tol)
	}
}

// RightAngle returns a leg, vertex, leg triple forming 90° at (100, 100).
func RightAngle() (a, vertex, c geom.Point) {
	return geom.Pt(150, 100), geom.Pt(100, 100), geom.Pt(100, 150)
}
