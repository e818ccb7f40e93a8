package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Drawable is what the renderer needs for one entity
type Drawable struct {
	Kind     Kind       `msgpack:"k"`
	Owner    int        `msgpack:"o"` // player index, -1 for level entities
	World    mgl64.Mat4 `msgpack:"w"`
	Lighting bool       `msgpack:"l"`
	Hit      bool       `msgpack:"h,omitempty"`
}

// GunHUD is the ammunition readout for one weapon
type GunHUD struct {
	Kind      GunKind `msgpack:"k"`
	Magazine  int     `msgpack:"m"`
	Reserve   int     `msgpack:"r"`
	Reloading bool    `msgpack:"rl,omitempty"`
}

// PlayerHUD is the readout for one player slot
type PlayerHUD struct {
	Index   int              `msgpack:"i"`
	Health  int              `msgpack:"hp"`
	Alive   bool             `msgpack:"a"`
	Current GunKind          `msgpack:"g"`
	Guns    [GunCount]GunHUD `msgpack:"gs"`
}

// HUDState is the per-frame overlay
type HUDState struct {
	RoundTime float64     `msgpack:"t"` // seconds left, whole seconds rounded up
	Players   []PlayerHUD `msgpack:"p"`
}

// ToState converts to the HUD readout
func (g *Gun) ToState() GunHUD {
	return GunHUD{
		Kind:      g.Kind,
		Magazine:  g.Magazine,
		Reserve:   g.Reserve,
		Reloading: g.reloading,
	}
}

// ToState converts to the HUD readout
func (p *Player) ToState() PlayerHUD {
	h := PlayerHUD{
		Index:   p.Index,
		Health:  max(p.Health, 0),
		Alive:   p.Alive,
		Current: p.Current,
	}
	for k, g := range p.Guns {
		h.Guns[k] = g.ToState()
	}
	return h
}

func drawable(a *Actor, owner int, hit bool) Drawable {
	return Drawable{
		Kind:     a.kind,
		Owner:    owner,
		World:    a.world,
		Lighting: a.Lighting,
		Hit:      hit,
	}
}

func roundTime(remaining float64) float64 {
	if remaining <= 0 {
		return 0
	}
	return math.Ceil(remaining)
}
