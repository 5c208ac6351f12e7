package testutil

import (
	"testing"

	"github.com/banshee-data/bikefit/internal/geom"
)

func TestAssertNear_WithinTolerance(t *testing.T) {
	fakeT := &testing.T{}
	AssertNear(fakeT, "x", 1.0000001, 1, 1e-6)
	if fakeT.Failed() {
		t.Error("expected no failure within tolerance")
	}
}

func TestAssertPointNear_WithinTolerance(t *testing.T) {
	fakeT := &testing.T{}
	AssertPointNear(fakeT, "p", geom.Pt(1, 1), geom.Pt(1, 1.0000001), 1e-6)
	if fakeT.Failed() {
		t.Error("expected no failure within tolerance")
	}
}

func TestRightAngle(t *testing.T) {
	a, v, c := RightAngle()
	AssertNear(t, "angle", geom.AngleBetween(a, v, c), 90, AngleTolerance)
}
