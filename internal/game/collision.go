package game

import (
	"slices"

	"github.com/sumukhanand/clamor/internal/geom"
)

// pending collects entities retired during a collision pass
type pending struct {
	missiles map[*Missile]struct{}
	mines    map[*Mine]struct{}
	powerups map[*Powerup]struct{}
}

func newPending() pending {
	return pending{
		missiles: make(map[*Missile]struct{}),
		mines:    make(map[*Mine]struct{}),
		powerups: make(map[*Powerup]struct{}),
	}
}

func (q *pending) reset() {
	clear(q.missiles)
	clear(q.mines)
	clear(q.powerups)
}

func (q *pending) missileQueued(m *Missile) bool {
	_, ok := q.missiles[m]
	return ok
}

func (q *pending) mineQueued(m *Mine) bool {
	_, ok := q.mines[m]
	return ok
}

func (q *pending) powerupQueued(p *Powerup) bool {
	_, ok := q.powerups[p]
	return ok
}

// checkCollisions runs the pairwise pass. Projectiles that left the
// playfield are retired first. Per player, in order: missiles,
// armed mines, death, powerups, earlier players. Then walls against
// missiles and walls against players.
func (r *Round) checkCollisions() {
	q := &r.pending

	for _, m := range r.missiles {
		if m.OutOfBounds {
			q.missiles[m] = struct{}{}
		}
	}
	for _, mi := range r.mines {
		if mi.OutOfBounds {
			q.mines[mi] = struct{}{}
		}
	}

	for i, p := range r.players {
		if p == nil {
			continue
		}

		for _, m := range r.missiles {
			if q.missileQueued(m) || !m.Active || m.Owner == p.Index {
				continue
			}
			if geom.SpheresIntersect(p.Bounds(), m.HitSphere()) {
				p.TakeDamage(m.Damage)
				q.missiles[m] = struct{}{}
			}
		}

		for _, mi := range r.mines {
			if q.mineQueued(mi) || !mi.Armed {
				continue
			}
			if geom.SpheresIntersect(p.Bounds(), mi.Bounds()) {
				p.TakeDamage(mi.Damage)
				mi.Detonate()
				r.emit(EffectMineBlast, mi.Owner, mi.Position())
				q.mines[mi] = struct{}{}
			}
		}

		if p.Health <= 0 && p.Alive {
			p.Alive = false
			r.log.Debug("player down", "round", r.id, "player", p.Index)
		}

		for _, pu := range r.powerups {
			if q.powerupQueued(pu) {
				continue
			}
			if geom.SpheresIntersect(p.Bounds(), pu.Bounds()) {
				p.AddAmmo(pu.Ammo)
				q.powerups[pu] = struct{}{}
			}
		}

		for _, other := range r.players[:i] {
			if other != nil && geom.SpheresIntersect(p.Bounds(), other.Bounds()) {
				p.Revert()
				break
			}
		}
	}

	for _, w := range r.walls {
		box := w.Box()
		for _, m := range r.missiles {
			if !q.missileQueued(m) && m.Active && geom.BoxSphereIntersect(box, m.Bounds()) {
				q.missiles[m] = struct{}{}
			}
		}
		for _, p := range r.players {
			if p != nil && geom.BoxSphereIntersect(box, p.Bounds()) {
				pushOut(p, w)
			}
		}
	}
}

// pushOut moves p clear of w along the wall's normal axis, keeping p on the
// side of the wall centre it was already on.
func pushOut(p *Player, w *Wall) {
	axis := 1
	if w.Vertical() {
		axis = 0
	}
	pos := p.Position()
	r := p.Bounds().Radius
	d := pos[axis] - w.Position()[axis]
	if d >= 0 {
		pos[axis] += r - d + WallPushMargin
	} else {
		pos[axis] -= r + d + WallPushMargin
	}
	p.SetPosition(pos)
}

// flush drops everything queued during the pass. Missiles go back to the
// pool and mines lose their arming timer.
func (r *Round) flush() {
	q := &r.pending
	if len(q.missiles) > 0 {
		r.missiles = slices.DeleteFunc(r.missiles, func(m *Missile) bool {
			if !q.missileQueued(m) {
				return false
			}
			r.pool.Release(m)
			return true
		})
	}
	if len(q.mines) > 0 {
		r.mines = slices.DeleteFunc(r.mines, func(m *Mine) bool {
			if !q.mineQueued(m) {
				return false
			}
			r.timers.Remove(mineTimer(m))
			return true
		})
	}
	if len(q.powerups) > 0 {
		r.powerups = slices.DeleteFunc(r.powerups, q.powerupQueued)
	}
	q.reset()
}
