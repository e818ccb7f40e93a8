package game

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sumukhanand/clamor/internal/geom"
	"github.com/sumukhanand/clamor/internal/level"
	"github.com/sumukhanand/clamor/internal/timer"
)

const (
	PlayerMaxHealth     = 100
	PlayerMaxSpeed      = 1500.0 // units/s at full stick
	PlayerTerminalSpeed = 500.0
	HitDuration         = 0.3 // seconds the hit flash lasts
	DeathDelay          = 0.4 // seconds from death to removal
)

// arena is what a player needs from the round it plays in
type arena interface {
	spawnMissile(p *Player, damage int) bool
	spawnMine(p *Player, damage int) bool
	emit(kind EffectKind, owner int, at mgl64.Vec3)
	removePlayer(index int)
}

// Player is one combatant
type Player struct {
	Actor
	Index   int
	Health  int
	Alive   bool
	Guns    [GunCount]*Gun
	Current GunKind

	hit     bool
	canFire bool
	dying   bool
	timers  *timer.Scheduler
	arena   arena
}

// NewPlayer creates player index facing +X at the origin
func NewPlayer(index int, timers *timer.Scheduler, a arena) *Player {
	p := &Player{
		Actor:   newActor(KindPlayer, PlayerShape),
		Index:   index,
		Health:  PlayerMaxHealth,
		Alive:   true,
		canFire: true,
		timers:  timers,
		arena:   a,
	}
	p.TerminalSpeed = PlayerTerminalSpeed
	for k := range p.Guns {
		p.Guns[k] = NewGun(GunKind(k), index, timers)
	}
	p.Rotate(geom.AxisX, math.Pi/2)
	p.Rotate(geom.AxisZ, math.Pi/2)
	return p
}

func (p *Player) timerName(what string) string {
	return fmt.Sprintf("%s/%d", what, p.Index)
}

// Hit reports whether the player was damaged within the last HitDuration
func (p *Player) Hit() bool { return p.hit }

// Dying reports whether the death sequence has started
func (p *Player) Dying() bool { return p.dying }

// CanFire reports whether the fire cooldown has elapsed
func (p *Player) CanFire() bool { return p.canFire }

// Gun returns the selected gun
func (p *Player) Gun() *Gun { return p.Guns[p.Current] }

// SetPaused keeps a dying player frozen regardless of the round
func (p *Player) SetPaused(paused bool) {
	p.Actor.SetPaused(paused || p.dying)
}

// TakeDamage subtracts dmg and flags the hit. Returns true if health ran out.
func (p *Player) TakeDamage(dmg int) bool {
	p.Health -= dmg
	p.markHit()
	return p.Health <= 0
}

func (p *Player) markHit() {
	p.hit = true
	p.timers.Add(p.timerName("hit"), HitDuration, func() { p.hit = false }, false)
}

// Move sets velocity from an analog stick in [-1,1]²
func (p *Player) Move(stick mgl64.Vec2) {
	p.Velocity = mgl64.Vec3{stick[0] * PlayerMaxSpeed, stick[1] * PlayerMaxSpeed, 0}
}

func (p *Player) MoveUp()    { p.Move(mgl64.Vec2{0, 1}) }
func (p *Player) MoveDown()  { p.Move(mgl64.Vec2{0, -1}) }
func (p *Player) MoveLeft()  { p.Move(mgl64.Vec2{-1, 0}) }
func (p *Player) MoveRight() { p.Move(mgl64.Vec2{1, 0}) }

// Stop zeroes the drive: force for physics players, velocity otherwise
func (p *Player) Stop() {
	if p.Physics {
		p.Force = mgl64.Vec3{}
		return
	}
	p.Velocity = mgl64.Vec3{}
}

// RotateLeft turns a full circle per second held
func (p *Player) RotateLeft(seconds float64) {
	p.Rotate(geom.AxisZ, 2*math.Pi*seconds)
}

// RotateRight turns a full circle per second held
func (p *Player) RotateRight(seconds float64) {
	p.Rotate(geom.AxisZ, -2*math.Pi*seconds)
}

// Aim snaps the heading to stick
func (p *Player) Aim(stick mgl64.Vec2) bool {
	return p.SnapHeading(stick)
}

// SwitchWeapon selects a gun slot
func (p *Player) SwitchWeapon(k GunKind) bool {
	if k < 0 || int(k) >= GunCount {
		return false
	}
	p.Current = k
	return true
}

// Reload reloads the selected gun
func (p *Player) Reload() bool {
	return p.Gun().Reload()
}

// AddAmmo feeds a pickup to whichever gun takes it
func (p *Player) AddAmmo(kind level.PowerupKind) bool {
	for _, g := range p.Guns {
		if g.AddAmmo(kind) {
			return true
		}
	}
	return false
}

// Fire shoots the selected gun. Nothing is spent when the cooldown is
// running, the magazine is empty or the arena has no free projectile.
func (p *Player) Fire() bool {
	if !p.Alive || p.Paused || !p.canFire {
		return false
	}
	g := p.Gun()
	if !g.Ready() {
		return false
	}

	var ok bool
	if g.Kind == GunMineLayer {
		ok = p.arena.spawnMine(p, g.Damage)
	} else {
		ok = p.arena.spawnMissile(p, g.Damage)
	}
	if !ok {
		return false
	}

	g.Magazine--
	p.canFire = false
	p.timers.Add(p.timerName("cooldown"), g.Cooldown, func() { p.canFire = true }, false)
	return true
}

// Update runs the death sequence, auto-reloads and integrates the player
func (p *Player) Update(dt float64) {
	if !p.Alive && !p.dying {
		p.dying = true
		p.Actor.SetPaused(true)
		p.arena.emit(EffectPlayerDeath, p.Index, p.Position())
		p.timers.Add(p.timerName("kill"), DeathDelay, func() { p.arena.removePlayer(p.Index) }, false)
	}
	for _, g := range p.Guns {
		g.Update()
	}
	p.Integrate(dt)
}
