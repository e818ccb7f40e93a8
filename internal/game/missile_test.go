package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolAcquireRelease(t *testing.T) {
	p := NewPool(2)
	assert.Equal(t, 2, p.Cap())

	a, ok := p.Acquire()
	require.True(t, ok)
	b, ok := p.Acquire()
	require.True(t, ok)
	assert.NotSame(t, a, b)

	_, ok = p.Acquire()
	assert.False(t, ok, "exhausted")

	a.Active = true
	p.Release(a)
	assert.False(t, a.Active)
	assert.Equal(t, 1, p.Available())

	p.Release(a)
	assert.Equal(t, 1, p.Available(), "double release ignored")

	c, ok := p.Acquire()
	require.True(t, ok)
	assert.Same(t, a, c)
}

func TestPoolStartsInactive(t *testing.T) {
	p := NewPool(3)
	for range 3 {
		m, ok := p.Acquire()
		require.True(t, ok)
		assert.False(t, m.Active)
		assert.Equal(t, KindMissile, m.Kind())
	}
}

func TestInactiveMissileDoesNotMove(t *testing.T) {
	p := NewPool(1)
	m, _ := p.Acquire()
	m.Velocity = mgl64.Vec3{100, 0, 0}
	m.Integrate(1)
	assert.Equal(t, mgl64.Vec3{}, m.Position())

	m.Active = true
	m.Integrate(1)
	assert.Equal(t, mgl64.Vec3{100, 0, 0}, m.Position())
}

func TestMineSlidesToRest(t *testing.T) {
	r, _ := newTestRound(t, openTwo, 2, Options{})
	owner := r.Player(0)
	m := NewMine(owner, 60)
	start := m.Position()
	assertVec(t, mgl64.Vec3{MineDropSpeed, 0, 0}, m.Velocity)

	for range 60 {
		m.Integrate(1.0 / 60)
	}
	assert.Equal(t, mgl64.Vec3{}, m.Velocity)
	travelled := m.Position().Sub(start)
	assert.Greater(t, travelled[0], 50.0)
	assert.Less(t, travelled[0], 100.0)
	assert.InDelta(t, 0, travelled[1], 1e-9)

	rest := m.Position()
	m.Integrate(1.0 / 60)
	assert.Equal(t, rest, m.Position())
}

func TestMineDetonate(t *testing.T) {
	r, _ := newTestRound(t, openTwo, 2, Options{})
	m := NewMine(r.Player(0), 60)
	m.Arm()
	m.Detonate()
	assert.False(t, m.Armed)
	assert.False(t, m.Drawable)
}
