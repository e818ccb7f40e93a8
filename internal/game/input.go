package game

import "github.com/go-gl/mathgl/mgl64"

// Intent is one frame of input for a player. Zero fields mean "no change".
type Intent struct {
	Move   mgl64.Vec2 // drive stick in [-1,1]², ignored when zero
	Stop   bool       // stick released
	Turn   float64    // seconds of rotation held, positive turns left
	Aim    mgl64.Vec2 // snap heading, ignored when zero
	Fire   bool
	Reload bool
	Switch bool
	Weapon GunKind // slot selected when Switch is set
}

// apply pushes in into p in the order move, rotate, fire, switch, reload
func (in Intent) apply(p *Player) {
	if in.Stop {
		p.Stop()
	}
	if in.Move != (mgl64.Vec2{}) {
		p.Move(in.Move)
	}
	switch {
	case in.Turn > 0:
		p.RotateLeft(in.Turn)
	case in.Turn < 0:
		p.RotateRight(-in.Turn)
	}
	if in.Aim != (mgl64.Vec2{}) {
		p.Aim(in.Aim)
	}
	if in.Fire {
		p.Fire()
	}
	if in.Switch {
		p.SwitchWeapon(in.Weapon)
	}
	if in.Reload {
		p.Reload()
	}
}
