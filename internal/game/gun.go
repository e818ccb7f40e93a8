package game

import (
	"fmt"

	"github.com/sumukhanand/clamor/internal/level"
	"github.com/sumukhanand/clamor/internal/timer"
)

const ReloadTime = 0.5 // seconds

// GunKind identifies a weapon slot
type GunKind int

const (
	GunPistol GunKind = iota
	GunSMG
	GunMineLayer
)

// GunCount is the number of weapon slots every player carries
const GunCount = 3

func (k GunKind) String() string {
	switch k {
	case GunPistol:
		return "pistol"
	case GunSMG:
		return "smg"
	case GunMineLayer:
		return "mines"
	}
	return fmt.Sprintf("GunKind(%d)", int(k))
}

type gunStock struct {
	reserve    int
	reserveCap int
	capacity   int
	loaded     int
	damage     int
	cooldown   float64
	pickup     int
}

var gunStocks = [GunCount]gunStock{
	GunPistol:    {reserve: 98, reserveCap: 98, capacity: 7, loaded: 7, damage: 20, cooldown: 0.3},
	GunSMG:       {reserveCap: 100, capacity: 25, damage: 10, cooldown: 0.125, pickup: 100},
	GunMineLayer: {reserveCap: 4, capacity: 1, damage: 60, cooldown: 2.5, pickup: 2},
}

// Gun tracks ammunition for one weapon slot
type Gun struct {
	Kind       GunKind
	Reserve    int
	ReserveCap int
	Magazine   int
	Capacity   int
	Damage     int
	Cooldown   float64 // seconds between shots

	owner     int
	reloading bool
	timers    *timer.Scheduler
}

// NewGun returns a gun of kind with its starting ammunition
func NewGun(kind GunKind, owner int, timers *timer.Scheduler) *Gun {
	s := gunStocks[kind]
	return &Gun{
		Kind:       kind,
		Reserve:    s.reserve,
		ReserveCap: s.reserveCap,
		Magazine:   s.loaded,
		Capacity:   s.capacity,
		Damage:     s.damage,
		Cooldown:   s.cooldown,
		owner:      owner,
		timers:     timers,
	}
}

// Reloading reports whether a reload is in progress
func (g *Gun) Reloading() bool { return g.reloading }

// Ready reports whether a round is chambered. A running reload does not
// block firing what is left in the magazine.
func (g *Gun) Ready() bool { return g.Magazine > 0 }

func (g *Gun) reloadName() string {
	return fmt.Sprintf("reload/%d/%s", g.owner, g.Kind)
}

// Reload starts a reload. It is refused while one is running, when the
// magazine is full or when nothing is left in reserve.
func (g *Gun) Reload() bool {
	if g.reloading || g.Magazine >= g.Capacity || g.Reserve <= 0 {
		return false
	}
	if !g.timers.Add(g.reloadName(), ReloadTime, g.finishReload, false) {
		return false
	}
	g.reloading = true
	return true
}

func (g *Gun) finishReload() {
	g.reloading = false
	n := min(g.Capacity-g.Magazine, g.Reserve)
	g.Magazine += n
	g.Reserve -= n
}

// Update starts a reload once the magazine runs dry
func (g *Gun) Update() {
	if g.Magazine == 0 && g.Reserve > 0 {
		g.Reload()
	}
}

// AddAmmo applies a pickup of kind if it feeds this gun
func (g *Gun) AddAmmo(kind level.PowerupKind) bool {
	switch {
	case kind == level.PowerupSMG && g.Kind == GunSMG,
		kind == level.PowerupMine && g.Kind == GunMineLayer:
	default:
		return false
	}
	g.Reserve = min(g.Reserve+gunStocks[g.Kind].pickup, g.ReserveCap)
	return true
}
