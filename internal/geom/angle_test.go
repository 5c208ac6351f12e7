package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		name       string
		a, v, c    Point
		want       float64
		tolerance  float64
	}{
		{"right angle", Pt(150, 100), Pt(100, 100), Pt(100, 150), 90, 1e-9},
		{"straight", Pt(0, 0), Pt(1, 0), Pt(2, 0), 180, 1e-9},
		{"same direction", Pt(2, 0), Pt(0, 0), Pt(5, 0), 0, 1e-6},
		{"forty five", Pt(10, 0), Pt(0, 0), Pt(10, 10), 45, 1e-9},
		{"obtuse", Pt(1, 0), Pt(0, 0), Pt(-1, 1), 135, 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleBetween(tt.a, tt.v, tt.c)
			assert.InDelta(t, tt.want, got, tt.tolerance)
		})
	}
}

func TestAngleBetween_Degenerate(t *testing.T) {
	v := Pt(3, 4)
	assert.Equal(t, 0.0, AngleBetween(v, v, Pt(10, 10)))
	assert.Equal(t, 0.0, AngleBetween(Pt(10, 10), v, v))
	assert.Equal(t, 0.0, AngleBetween(v, v, v))
}

func TestAngleBetween_RangeAndSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		a := Pt(rng.Float64()*640, rng.Float64()*480)
		v := Pt(rng.Float64()*640, rng.Float64()*480)
		c := Pt(rng.Float64()*640, rng.Float64()*480)

		got := AngleBetween(a, v, c)
		require.False(t, math.IsNaN(got))
		require.GreaterOrEqual(t, got, 0.0)
		require.LessOrEqual(t, got, 180.0)
		require.Equal(t, got, AngleBetween(c, v, a))
	}
}

func TestArcDirection_MatchesInteriorAngle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		a := Pt(rng.Float64()*100-50, rng.Float64()*100-50)
		v := Pt(0, 0)
		c := Pt(rng.Float64()*100-50, rng.Float64()*100-50)

		arc := ArcDirection(a, v, c)
		want := AngleBetween(a, v, c)
		assert.InDelta(t, want, arc.Sweep()*180/math.Pi, 1e-6)
		assert.LessOrEqual(t, arc.Sweep(), math.Pi+1e-12)
	}
}

func TestArcDirection_Clockwise(t *testing.T) {
	// Screen space: from +x to +y (downwards) turns clockwise.
	arc := ArcDirection(Pt(10, 0), Pt(0, 0), Pt(0, 10))
	assert.True(t, arc.Clockwise)
	assert.InDelta(t, math.Pi/2, arc.Delta, 1e-12)
	assert.InDelta(t, 0, arc.Start, 1e-12)
	assert.InDelta(t, math.Pi/2, arc.End, 1e-12)

	arc = ArcDirection(Pt(0, 10), Pt(0, 0), Pt(10, 0))
	assert.False(t, arc.Clockwise)
	assert.InDelta(t, -math.Pi/2, arc.Delta, 1e-12)
}

func TestArcDirection_WrapsAcrossPi(t *testing.T) {
	// Rays at +170° and -170°: interior arc is 20°, crossing ±π.
	a := Pt(math.Cos(170*math.Pi/180), math.Sin(170*math.Pi/180))
	c := Pt(math.Cos(-170*math.Pi/180), math.Sin(-170*math.Pi/180))
	arc := ArcDirection(a, Pt(0, 0), c)
	assert.InDelta(t, 20*math.Pi/180, arc.Sweep(), 1e-9)
	assert.True(t, arc.Clockwise)
}

func TestArcDirection_Degenerate(t *testing.T) {
	assert.Equal(t, Arc{}, ArcDirection(Pt(1, 1), Pt(1, 1), Pt(5, 5)))
}

func TestNormalizeRadians(t *testing.T) {
	assert.InDelta(t, math.Pi, NormalizeRadians(-math.Pi), 1e-12)
	assert.InDelta(t, math.Pi, NormalizeRadians(math.Pi), 1e-12)
	assert.InDelta(t, -math.Pi/2, NormalizeRadians(3*math.Pi/2), 1e-12)
	assert.InDelta(t, 0.5, NormalizeRadians(0.5+4*math.Pi), 1e-9)
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 5.0, Distance(Pt(0, 0), Pt(3, 4)))
	assert.Equal(t, 0.0, Distance(Pt(2, 2), Pt(2, 2)))
}

func TestPointInAnnulus(t *testing.T) {
	centre := Pt(0, 0)
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside ring", Pt(7, 0), true},
		{"exactly inner", Pt(3, 4), true},
		{"exactly outer", Pt(6, 8), true},
		{"inside hole", Pt(1, 1), false},
		{"beyond outer", Pt(11, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointInAnnulus(tt.p, centre, 5, 10))
		})
	}

	// Zero inner radius includes the centre.
	assert.True(t, PointInAnnulus(centre, centre, 0, 10))
}

func TestPointInRotatedRect(t *testing.T) {
	origin := Pt(100, 100)

	assert.True(t, PointInRotatedRect(Pt(150, 150), origin, 100, 100, 0))
	assert.True(t, PointInRotatedRect(Pt(100, 100), origin, 100, 100, 0))
	assert.False(t, PointInRotatedRect(Pt(99, 150), origin, 100, 100, 0))

	// Rotated 45° about (150,150): the old corner is outside, the new
	// diamond tip straight above the centre is inside.
	assert.False(t, PointInRotatedRect(Pt(102, 102), origin, 100, 100, 45))
	assert.True(t, PointInRotatedRect(Pt(150, 150-69), origin, 100, 100, 45))
	assert.False(t, PointInRotatedRect(Pt(150, 150-72), origin, 100, 100, 45))
}

func TestSnapRadial(t *testing.T) {
	vertex := Pt(100, 100)

	t.Run("idempotent on boundary", func(t *testing.T) {
		p := Pt(110, 110) // exactly 45°
		assert.Equal(t, p, SnapRadial(p, vertex, 15))
	})

	t.Run("rounds to nearest step", func(t *testing.T) {
		p := Pt(100+50*math.Cos(50*math.Pi/180), 100+50*math.Sin(50*math.Pi/180))
		got := SnapRadial(p, vertex, 15)
		assert.InDelta(t, 50, Distance(got, vertex), 1e-9)
		assert.InDelta(t, 45, math.Atan2(got.Y-vertex.Y, got.X-vertex.X)*180/math.Pi, 1e-9)
	})

	t.Run("preserves distance", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		for i := 0; i < 200; i++ {
			p := Pt(rng.Float64()*400, rng.Float64()*400)
			got := SnapRadial(p, vertex, 15)
			assert.InDelta(t, Distance(p, vertex), Distance(got, vertex), 1e-9)
		}
	})

	t.Run("no-ops", func(t *testing.T) {
		p := Pt(123, 45)
		assert.Equal(t, p, SnapRadial(p, vertex, 0))
		assert.Equal(t, vertex, SnapRadial(vertex, vertex, 15))
	})
}
