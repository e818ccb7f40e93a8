// Package game holds the arena simulation: entities, the collision pass and
// the round controller that drives them one frame at a time.
package game

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sumukhanand/clamor/internal/geom"
)

const (
	ExtentX      = 2000.0 // positions must satisfy |x| < ExtentX
	ExtentY      = 2400.0 // and |y| < ExtentY
	SphereShrink = 0.8    // world sphere radius factor over the local sphere
)

// Kind tags each simulated variant
type Kind int

const (
	KindPlayer Kind = iota + 1
	KindMissile
	KindMine
	KindWall
	KindPowerup
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindMissile:
		return "missile"
	case KindMine:
		return "mine"
	case KindWall:
		return "wall"
	case KindPowerup:
		return "powerup"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Simulatable is implemented by every entity variant
type Simulatable interface {
	Kind() Kind
	Integrate(dt float64)
	Bounds() geom.Sphere
	IsActive() bool
	SetPaused(paused bool)
}

// Local half extents standing in for each model's mesh
var (
	PlayerShape  = geom.BoxFromExtents(60, 60, 60)
	MissileShape = geom.BoxFromExtents(10, 10, 40)
	MineShape    = geom.BoxFromExtents(40, 40, 15)
	PowerupShape = geom.BoxFromExtents(50, 50, 50)
)

// Actor is the shared state of every simulated object. The world sphere and
// world matrix always agree with position, rotation and scale.
type Actor struct {
	kind Kind

	position mgl64.Vec3
	prior    mgl64.Vec3
	rotation mgl64.Quat
	scale    float64
	world    mgl64.Mat4

	Velocity      mgl64.Vec3
	Force         mgl64.Vec3
	Mass          float64
	TerminalSpeed float64 // 0 = unbounded
	Physics       bool
	accel         mgl64.Vec3

	shape    geom.Box // local geometry
	local    geom.Sphere
	sphere   geom.Sphere
	box      geom.Box
	boxDirty bool

	Active      bool
	Paused      bool
	OutOfBounds bool
	Lighting    bool
}

func newActor(kind Kind, shape geom.Box) Actor {
	a := Actor{
		kind:     kind,
		rotation: mgl64.QuatIdent(),
		scale:    1,
		Mass:     1,
		shape:    shape,
		local:    geom.SphereFromBox(shape),
		Active:   true,
		Lighting: true,
	}
	a.refresh()
	return a
}

// Kind returns the variant tag
func (a *Actor) Kind() Kind { return a.kind }

// IsActive reports whether the entity takes part in the frame
func (a *Actor) IsActive() bool { return a.Active }

// SetPaused freezes or releases integration
func (a *Actor) SetPaused(paused bool) { a.Paused = paused }

func (a *Actor) Position() mgl64.Vec3      { return a.position }
func (a *Actor) PriorPosition() mgl64.Vec3 { return a.prior }
func (a *Actor) Rotation() mgl64.Quat      { return a.rotation }
func (a *Actor) Scale() float64            { return a.scale }
func (a *Actor) World() mgl64.Mat4         { return a.world }

// Bounds returns the world bounding sphere
func (a *Actor) Bounds() geom.Sphere { return a.sphere }

// Box returns the world-space box, recomputed only after a transform change
func (a *Actor) Box() geom.Box {
	if a.boxDirty {
		a.box = geom.TransformBox(a.shape, a.world)
		a.boxDirty = false
	}
	return a.box
}

// Facing returns the direction the model nose points
func (a *Actor) Facing() mgl64.Vec3 { return geom.Facing(a.rotation) }

// InExtent reports whether p lies strictly inside the playfield
func InExtent(p mgl64.Vec3) bool {
	return math.Abs(p[0]) < ExtentX && math.Abs(p[1]) < ExtentY
}

// SetPosition moves the actor, recording the previous position. A position
// outside the playfield is rejected: OutOfBounds is raised and nothing else
// changes. An accepted position clears OutOfBounds.
func (a *Actor) SetPosition(p mgl64.Vec3) bool {
	if !InExtent(p) {
		a.OutOfBounds = true
		return false
	}
	a.OutOfBounds = false
	a.prior = a.position
	a.position = p
	a.refresh()
	return true
}

// Place puts the actor at p without the extent check or a prior record
func (a *Actor) Place(p mgl64.Vec3) {
	a.position = p
	a.prior = p
	a.refresh()
}

// Revert returns the actor to its prior position
func (a *Actor) Revert() {
	a.position = a.prior
	a.refresh()
}

// SetRotation replaces the orientation
func (a *Actor) SetRotation(q mgl64.Quat) {
	a.rotation = q.Normalize()
	a.refresh()
}

// Rotate applies angle radians about axis after the current orientation.
// A zero axis leaves the orientation unchanged.
func (a *Actor) Rotate(axis mgl64.Vec3, angle float64) bool {
	q, ok := geom.AxisAngle(axis, angle)
	if !ok {
		return false
	}
	a.rotation = geom.Concat(a.rotation, q)
	a.refresh()
	return true
}

// SnapHeading points the actor along stick, replacing the orientation
// outright. A zero stick is ignored.
func (a *Actor) SnapHeading(stick mgl64.Vec2) bool {
	angle, ok := geom.HeadingAngle(stick)
	if !ok {
		return false
	}
	q, _ := geom.AxisAngle(geom.AxisY, angle-math.Pi)
	tilt, _ := geom.AxisAngle(geom.AxisX, math.Pi/2)
	a.rotation = geom.Concat(q, tilt)
	a.refresh()
	return true
}

// Integrate advances the actor by dt seconds. Kinematic actors move by
// velocity; physics actors use a half-step velocity update on each side of
// the position update, then clamp to the terminal speed.
func (a *Actor) Integrate(dt float64) {
	if a.Paused {
		return
	}
	if !a.Physics {
		a.SetPosition(a.position.Add(a.Velocity.Mul(dt)))
		return
	}

	a.Velocity = a.Velocity.Add(a.accel.Mul(dt / 2))
	a.SetPosition(a.position.Add(a.Velocity.Mul(dt)))
	if a.Mass > 0 {
		a.accel = a.Force.Mul(1 / a.Mass)
	}
	a.Velocity = a.Velocity.Add(a.accel.Mul(dt / 2))
	if a.TerminalSpeed > 0 {
		a.Velocity = geom.ClampLength(a.Velocity, a.TerminalSpeed)
	}
}

// refresh recomputes the world matrix and sphere from the transform parts
func (a *Actor) refresh() {
	a.world = geom.Compose(a.scale, a.rotation, a.position)
	a.sphere = geom.Sphere{
		Center: a.position,
		Radius: a.local.Radius * a.scale * SphereShrink,
	}
	a.boxDirty = true
}
