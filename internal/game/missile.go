package game

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/sumukhanand/clamor/internal/geom"
)

const (
	MissileSpeed     = 3000.0 // units/s
	MissileHitShrink = 1.5    // missile sphere radius divisor against players
)

// Missile is a pooled projectile. It updates, draws and collides only while
// Active; the pool clears Active on release.
type Missile struct {
	Actor
	Owner  int
	Damage int

	slot int
}

// launch resets the missile and sends it along the owner's facing
func (m *Missile) launch(owner *Player, damage int) {
	m.Owner = owner.Index
	m.Damage = damage
	m.Active = true
	m.Paused = false
	m.OutOfBounds = false
	m.SetRotation(owner.Rotation())
	m.Place(owner.Position())
	m.Velocity = owner.Facing().Mul(MissileSpeed)
}

// Integrate moves an active missile
func (m *Missile) Integrate(dt float64) {
	if !m.Active {
		return
	}
	m.Actor.Integrate(dt)
}

// HitSphere is the reduced sphere tested against players
func (m *Missile) HitSphere() geom.Sphere {
	s := m.Bounds()
	s.Radius /= MissileHitShrink
	return s
}

// Pool is a fixed arena of missiles with a free list of slots
type Pool struct {
	slots []Missile
	inUse []bool
	free  []int
}

// NewPool allocates n inactive missiles
func NewPool(n int) *Pool {
	p := &Pool{
		slots: make([]Missile, n),
		inUse: make([]bool, n),
		free:  make([]int, 0, n),
	}
	for i := range p.slots {
		p.slots[i] = Missile{Actor: newActor(KindMissile, MissileShape), slot: i}
		p.slots[i].Active = false
	}
	for i := n - 1; i >= 0; i-- {
		p.free = append(p.free, i)
	}
	return p
}

// Acquire hands out a free missile, lowest slot first on a fresh pool
func (p *Pool) Acquire() (*Missile, bool) {
	if len(p.free) == 0 {
		return nil, false
	}
	i := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.inUse[i] = true
	return &p.slots[i], true
}

// Release deactivates m and returns its slot. Releasing twice is a no-op.
func (p *Pool) Release(m *Missile) {
	if m == nil || !p.inUse[m.slot] {
		return
	}
	p.inUse[m.slot] = false
	m.Active = false
	m.Velocity = mgl64.Vec3{}
	p.free = append(p.free, m.slot)
}

// Available returns the number of free slots
func (p *Pool) Available() int { return len(p.free) }

// Cap returns the pool size
func (p *Pool) Cap() int { return len(p.slots) }
