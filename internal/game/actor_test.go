package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumukhanand/clamor/internal/geom"
)

func assertVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}

func TestSetPositionInsideExtent(t *testing.T) {
	tests := []mgl64.Vec3{
		{0, 0, 0},
		{1999.9, 2399.9, 0},
		{-1999.9, -2399.9, 50},
		{123, -456, 0},
	}
	for _, p := range tests {
		a := newActor(KindPlayer, PlayerShape)
		require.True(t, a.SetPosition(p), "position %v", p)
		assert.Equal(t, p, a.Position())
		assert.Equal(t, p, a.Bounds().Center)
		assert.False(t, a.OutOfBounds)
	}
}

func TestSetPositionOutsideExtentRejected(t *testing.T) {
	tests := []mgl64.Vec3{
		{2000, 0, 0},
		{-2000, 0, 0},
		{0, 2400, 0},
		{0, -2400.5, 0},
		{5000, 5000, 0},
	}
	for _, p := range tests {
		a := newActor(KindMissile, MissileShape)
		start := mgl64.Vec3{10, 20, 0}
		a.Place(start)

		assert.False(t, a.SetPosition(p), "position %v", p)
		assert.True(t, a.OutOfBounds)
		assert.Equal(t, start, a.Position())
		assert.Equal(t, start, a.Bounds().Center)
	}
}

func TestSetPositionClearsOutOfBounds(t *testing.T) {
	a := newActor(KindPlayer, PlayerShape)
	require.False(t, a.SetPosition(mgl64.Vec3{2100, 0, 0}))
	require.True(t, a.OutOfBounds)

	require.True(t, a.SetPosition(mgl64.Vec3{1900, 0, 0}))
	assert.False(t, a.OutOfBounds)
}

func TestWorldSphereRadius(t *testing.T) {
	a := newActor(KindPlayer, PlayerShape)
	want := math.Sqrt(3) * 60 * SphereShrink
	assert.InDelta(t, want, a.Bounds().Radius, 1e-9)

	a.scale = 2
	a.refresh()
	assert.InDelta(t, want*2, a.Bounds().Radius, 1e-9)
}

func TestRevertRestoresPriorPosition(t *testing.T) {
	a := newActor(KindPlayer, PlayerShape)
	a.Place(mgl64.Vec3{1, 1, 0})
	require.True(t, a.SetPosition(mgl64.Vec3{5, 5, 0}))
	assert.Equal(t, mgl64.Vec3{1, 1, 0}, a.PriorPosition())

	a.Revert()
	assert.Equal(t, mgl64.Vec3{1, 1, 0}, a.Position())
	assert.Equal(t, a.Position(), a.Bounds().Center)
	assert.Equal(t, a.Position(), mgl64.Vec3{a.World().At(0, 3), a.World().At(1, 3), a.World().At(2, 3)})
}

func TestKinematicIntegrate(t *testing.T) {
	a := newActor(KindMissile, MissileShape)
	a.Velocity = mgl64.Vec3{100, -40, 0}
	a.Integrate(0.5)
	assertVec(t, mgl64.Vec3{50, -20, 0}, a.Position())
	assertVec(t, mgl64.Vec3{0, 0, 0}, a.PriorPosition())
}

func TestPausedIntegrateIsNoop(t *testing.T) {
	a := newActor(KindMissile, MissileShape)
	a.Velocity = mgl64.Vec3{100, 0, 0}
	a.SetPaused(true)
	a.Integrate(1)
	assert.Equal(t, mgl64.Vec3{}, a.Position())
}

func TestPhysicsIntegrateHalfSteps(t *testing.T) {
	a := newActor(KindMine, MineShape)
	a.Physics = true
	a.Force = mgl64.Vec3{10, 0, 0}

	a.Integrate(1)
	assertVec(t, mgl64.Vec3{0, 0, 0}, a.Position())
	assertVec(t, mgl64.Vec3{5, 0, 0}, a.Velocity)

	a.Integrate(1)
	assertVec(t, mgl64.Vec3{10, 0, 0}, a.Position())
	assertVec(t, mgl64.Vec3{15, 0, 0}, a.Velocity)
}

func TestPhysicsTerminalSpeed(t *testing.T) {
	a := newActor(KindMine, MineShape)
	a.Physics = true
	a.TerminalSpeed = 50
	a.Force = mgl64.Vec3{300, 400, 0}
	for range 20 {
		a.Integrate(0.1)
	}
	assert.InDelta(t, 50, a.Velocity.Len(), 1e-9)
	assert.InDelta(t, 0.6, a.Velocity[0]/a.Velocity.Len(), 1e-9, "direction is kept")
}

func TestRotateZeroAxisIgnored(t *testing.T) {
	a := newActor(KindPlayer, PlayerShape)
	before := a.Rotation()
	assert.False(t, a.Rotate(mgl64.Vec3{}, 1))
	assert.Equal(t, before, a.Rotation())
}

func TestRotateIsIncremental(t *testing.T) {
	a := newActor(KindPlayer, PlayerShape)
	a.Rotate(geom.AxisZ, math.Pi/4)
	a.Rotate(geom.AxisZ, math.Pi/4)
	assertVec(t, mgl64.Vec3{-1, 0, 0}, a.Rotation().Rotate(mgl64.Vec3{0, 1, 0}))
}

func TestSnapHeading(t *testing.T) {
	tests := []struct {
		stick mgl64.Vec2
		want  mgl64.Vec3
	}{
		{mgl64.Vec2{0, 1}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec2{1, 0}, mgl64.Vec3{1, 0, 0}},
		{mgl64.Vec2{-1, 0}, mgl64.Vec3{-1, 0, 0}},
		{mgl64.Vec2{0, -3}, mgl64.Vec3{0, -1, 0}},
	}
	for _, tt := range tests {
		a := newActor(KindPlayer, PlayerShape)
		a.Rotate(geom.AxisZ, 1.234)
		require.True(t, a.SnapHeading(tt.stick))
		assertVec(t, tt.want, a.Facing())
	}
}

func TestSnapHeadingZeroStickIgnored(t *testing.T) {
	a := newActor(KindPlayer, PlayerShape)
	a.Rotate(geom.AxisZ, 0.5)
	before := a.Rotation()
	assert.False(t, a.SnapHeading(mgl64.Vec2{}))
	assert.Equal(t, before, a.Rotation())
	assert.False(t, math.IsNaN(a.Rotation().W))
}

func TestBoxFollowsTransform(t *testing.T) {
	a := newActor(KindPowerup, PowerupShape)
	a.Place(mgl64.Vec3{100, 0, 0})
	b := a.Box()
	assertVec(t, mgl64.Vec3{50, -50, -50}, b.Min)
	assertVec(t, mgl64.Vec3{150, 50, 50}, b.Max)

	require.True(t, a.SetPosition(mgl64.Vec3{0, 0, 0}))
	assertVec(t, mgl64.Vec3{-50, -50, -50}, a.Box().Min)
}

func TestSimulatableVariants(t *testing.T) {
	var _ Simulatable = &Player{}
	var _ Simulatable = &Missile{}
	var _ Simulatable = &Mine{}
	var _ Simulatable = &Wall{}
	var _ Simulatable = &Powerup{}

	assert.Equal(t, "wall", KindWall.String())
}
