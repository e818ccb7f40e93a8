package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// EffectKind names a one-shot visual
type EffectKind int

const (
	EffectMineBlast EffectKind = iota + 1
	EffectPlayerDeath
)

func (k EffectKind) String() string {
	switch k {
	case EffectMineBlast:
		return "mine_blast"
	case EffectPlayerDeath:
		return "player_death"
	}
	return fmt.Sprintf("EffectKind(%d)", int(k))
}

// Effect is an explosion for the renderer to play once
type Effect struct {
	Kind   EffectKind `msgpack:"k"`
	Owner  int        `msgpack:"o"`
	World  mgl64.Vec3 `msgpack:"w"`
	Screen mgl64.Vec2 `msgpack:"s"` // viewport pixels through the camera of the frame it fired
}
