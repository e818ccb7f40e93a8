// Package bot drives players with a simple combat AI so rounds can run
// without human input.
package bot

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sumukhanand/clamor/internal/game"
	"github.com/sumukhanand/clamor/internal/geom"
)

const (
	DetectRange  = 2600.0
	ShootRange   = 1800.0
	OptimalRange = 600.0 // preferred combat distance
	MineRange    = 400.0 // lay mines when a target is this close
	MineChance   = 0.02  // per frame while a target is within MineRange
	DodgeRange   = 1200.0
	DodgeMargin  = 60.0
	EdgeSlack    = 300.0 // turn back this far inside the playfield extent

	BurstSize     = 5
	BurstCooldown = 1.5 // seconds between bursts
	DodgeCooldown = 0.3
	StrafeFlipMin = 1.5 // min seconds before strafe direction flip
	StrafeFlipMax = 3.5
	WanderDrift   = 1.0 // max radians/s the wander heading drifts
	WanderSpeed   = 0.5 // stick deflection while wandering

	DetectRangeSq = DetectRange * DetectRange
	ShootRangeSq  = ShootRange * ShootRange
	DodgeRangeSq  = DodgeRange * DodgeRange
)

// Bot produces one Intent per frame for a player
type Bot struct {
	Index int

	rng         *rand.Rand
	wander      float64 // heading while idle
	strafeDir   float64 // +1 or -1
	strafeTimer float64
	burstLeft   int
	burstCD     float64
	dodgeCD     float64
	tracking    bool
}

// New returns a bot for player index. Bots built from the same seed and
// index make the same decisions.
func New(index int, seed uint64) *Bot {
	b := &Bot{
		Index: index,
		rng:   rand.New(rand.NewPCG(seed, uint64(index))),
	}
	b.wander = (b.rng.Float64()*2 - 1) * math.Pi
	b.strafeDir = 1
	if b.rng.Float64() < 0.5 {
		b.strafeDir = -1
	}
	b.strafeTimer = b.flipDelay()
	return b
}

// Tracking reports whether the bot had a target last frame
func (b *Bot) Tracking() bool { return b.tracking }

// Dodging reports whether the bot sidestepped a missile recently
func (b *Bot) Dodging() bool { return b.dodgeCD > 0 }

func (b *Bot) flipDelay() float64 {
	return StrafeFlipMin + b.rng.Float64()*(StrafeFlipMax-StrafeFlipMin)
}

// Think decides this frame's input. A removed or dead player gets none.
func (b *Bot) Think(dt float64, r *game.Round) game.Intent {
	self := r.Player(b.Index)
	if self == nil || !self.Alive {
		return game.Intent{}
	}
	if b.burstCD > 0 {
		b.burstCD -= dt
	}
	if b.dodgeCD > 0 {
		b.dodgeCD -= dt
	}

	pos := self.Position()
	target, distSq, found := b.nearest(r, pos)
	b.tracking = found

	var in game.Intent
	var move mgl64.Vec2
	if found {
		move = b.engage(dt, pos, target, math.Sqrt(distSq))
		in.Aim = lead(pos, target)
		in.Fire = b.trigger(self, distSq)
	} else {
		move = b.roam(dt, pos)
		if g := self.Gun(); g.Magazine < g.Capacity && g.Reserve > 0 && !g.Reloading() {
			in.Reload = true
		}
	}

	if dodge, ok := b.dodge(r, pos); ok {
		move = move.Add(dodge)
	}
	in.Move = clampStick(move)
	if in.Move == (mgl64.Vec2{}) {
		in.Stop = true
	}

	if k, ok := b.pickWeapon(self, found && distSq < MineRange*MineRange); ok {
		in.Switch = true
		in.Weapon = k
	}
	return in
}

// nearest finds the closest living opponent within DetectRange
func (b *Bot) nearest(r *game.Round, pos mgl64.Vec3) (*game.Player, float64, bool) {
	var best *game.Player
	bestDist := math.MaxFloat64
	for i := range r.TotalPlayers() {
		p := r.Player(i)
		if p == nil || i == b.Index || !p.Alive {
			continue
		}
		d := p.Position().Sub(pos)
		d2 := d[0]*d[0] + d[1]*d[1]
		if d2 < DetectRangeSq && d2 < bestDist {
			best, bestDist = p, d2
		}
	}
	return best, bestDist, best != nil
}

// engage circles the target near OptimalRange
func (b *Bot) engage(dt float64, pos mgl64.Vec3, target *game.Player, dist float64) mgl64.Vec2 {
	tp := target.Position()
	angle := math.Atan2(tp[1]-pos[1], tp[0]-pos[0])
	// radial: +1 = approach, -1 = retreat
	radial := geom.Clamp((dist-OptimalRange)/(OptimalRange*0.5), -1, 1)
	tangential := b.strafeDir * (1.0 - math.Abs(radial)*0.7)

	b.strafeTimer -= dt
	if b.strafeTimer <= 0 {
		b.strafeDir = -b.strafeDir
		b.strafeTimer = b.flipDelay()
	}

	return mgl64.Vec2{
		math.Cos(angle)*radial + math.Cos(angle+math.Pi/2)*tangential,
		math.Sin(angle)*radial + math.Sin(angle+math.Pi/2)*tangential,
	}
}

// roam drifts along a wandering heading, turning back from the arena edge
func (b *Bot) roam(dt float64, pos mgl64.Vec3) mgl64.Vec2 {
	b.wander = geom.NormalizeAngle(b.wander + (b.rng.Float64()*2-1)*WanderDrift*dt)
	if math.Abs(pos[0]) > game.ExtentX-EdgeSlack || math.Abs(pos[1]) > game.ExtentY-EdgeSlack {
		b.wander = math.Atan2(-pos[1], -pos[0])
	}
	return mgl64.Vec2{math.Cos(b.wander), math.Sin(b.wander)}.Mul(WanderSpeed)
}

// lead aims where the target will be when a missile arrives
func lead(pos mgl64.Vec3, target *game.Player) mgl64.Vec2 {
	tp := target.Position()
	d := tp.Sub(pos)
	t := math.Hypot(d[0], d[1]) / game.MissileSpeed
	aim := tp.Add(target.Velocity.Mul(t)).Sub(pos)
	return mgl64.Vec2{aim[0], aim[1]}
}

// trigger runs the burst cadence: BurstSize shots, then BurstCooldown
func (b *Bot) trigger(self *game.Player, distSq float64) bool {
	if distSq > ShootRangeSq || !self.CanFire() || !self.Gun().Ready() {
		return false
	}
	switch {
	case b.burstLeft > 0:
	case b.burstCD <= 0:
		b.burstLeft = BurstSize
	default:
		return false
	}
	b.burstLeft--
	if b.burstLeft == 0 {
		b.burstCD = BurstCooldown
	}
	return true
}

// dodge sidesteps a missile whose path passes through the bot
func (b *Bot) dodge(r *game.Round, pos mgl64.Vec3) (mgl64.Vec2, bool) {
	if b.dodgeCD > 0 {
		return mgl64.Vec2{}, false
	}
	for _, m := range r.Missiles() {
		if !m.Active || m.Owner == b.Index {
			continue
		}
		mp, v := m.Position(), m.Velocity
		dx, dy := pos[0]-mp[0], pos[1]-mp[1]
		if dx*dx+dy*dy > DodgeRangeSq {
			continue
		}
		// Is it heading toward us?
		dot := dx*v[0] + dy*v[1]
		speed2 := v[0]*v[0] + v[1]*v[1]
		if dot <= 0 || speed2 < 1 {
			continue
		}
		t := dot / speed2
		cx, cy := mp[0]+v[0]*t, mp[1]+v[1]*t
		if !geom.CheckCollision(cx, cy, m.Bounds().Radius+DodgeMargin, pos[0], pos[1], 0) {
			continue
		}
		perp := mgl64.Vec2{-v[1], v[0]}.Normalize()
		if dx*v[1]-dy*v[0] < 0 {
			perp = perp.Mul(-1)
		}
		b.dodgeCD = DodgeCooldown
		return perp, true
	}
	return mgl64.Vec2{}, false
}

// pickWeapon prefers mines up close, then the SMG, then the pistol
func (b *Bot) pickWeapon(self *game.Player, close bool) (game.GunKind, bool) {
	has := func(k game.GunKind) bool {
		g := self.Guns[k]
		return g.Magazine+g.Reserve > 0
	}
	want := game.GunPistol
	switch {
	case close && has(game.GunMineLayer) && b.rng.Float64() < MineChance:
		want = game.GunMineLayer
	case has(game.GunSMG):
		want = game.GunSMG
	case self.Current == game.GunMineLayer && has(game.GunMineLayer):
		want = game.GunMineLayer
	}
	if want == self.Current {
		return want, false
	}
	return want, true
}

func clampStick(v mgl64.Vec2) mgl64.Vec2 {
	if l := v.Len(); l > 1 {
		return v.Mul(1 / l)
	}
	return v
}
