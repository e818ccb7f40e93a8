package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/sumukhanand/clamor/internal/geom"
)

const (
	MineDropSpeed = 300.0 // units/s along the facing when laid
	MineDrag      = 600.0 // opposing force magnitude per unit mass
	MineArmDelay  = 2.0   // seconds before a mine can detonate
)

// Mine is laid behind a moving player, slides to rest under drag and
// detonates on the first player it touches once armed.
type Mine struct {
	Actor
	ID       uuid.UUID
	Owner    int
	Damage   int
	Armed    bool
	Drawable bool
}

// NewMine lays a mine at the owner's position
func NewMine(owner *Player, damage int) *Mine {
	m := &Mine{
		Actor:    newActor(KindMine, MineShape),
		ID:       uuid.New(),
		Owner:    owner.Index,
		Damage:   damage,
		Drawable: true,
	}
	m.Physics = true
	m.Rotate(geom.AxisX, math.Pi/2)
	m.Place(owner.Position())
	m.Velocity = owner.Facing().Mul(MineDropSpeed)
	return m
}

func mineTimer(m *Mine) string { return "mine/" + m.ID.String() }

// Arm lets the mine detonate
func (m *Mine) Arm() { m.Armed = true }

// Detonate disarms the mine and hides it
func (m *Mine) Detonate() {
	m.Armed = false
	m.Drawable = false
}

// Integrate applies drag against the slide and stops the mine once the
// next step would reverse it.
func (m *Mine) Integrate(dt float64) {
	if m.Paused {
		return
	}
	speed := m.Velocity.Len()
	if speed <= MineDrag*dt {
		m.Velocity = mgl64.Vec3{}
		m.Force = mgl64.Vec3{}
		m.accel = mgl64.Vec3{}
		return
	}
	m.Force = m.Velocity.Mul(-MineDrag * m.Mass / speed)
	m.Actor.Integrate(dt)
}
