package game

import (
	"math"

	"github.com/sumukhanand/clamor/internal/geom"
	"github.com/sumukhanand/clamor/internal/level"
)

// Powerup grants ammunition to the first player that touches it
type Powerup struct {
	Actor
	Ammo level.PowerupKind
}

// NewPowerup builds a powerup from its layout placement
func NewPowerup(p level.Powerup) *Powerup {
	pu := &Powerup{
		Actor: newActor(KindPowerup, PowerupShape),
		Ammo:  p.Kind,
	}
	pu.Rotate(geom.AxisX, math.Pi/2)
	pu.Place(level.Vec3(p.Pos))
	return pu
}

// Integrate is a no-op; powerups never move
func (p *Powerup) Integrate(float64) {}
