package game

import (
	"math"

	"github.com/sumukhanand/clamor/internal/geom"
	"github.com/sumukhanand/clamor/internal/level"
)

const (
	WallHeight     = 200.0
	WallThickness  = 100.0
	WallVertical   = 0.6  // rotation.W at or below this runs along Y
	WallPushMargin = 15.0 // clearance added when pushing a player out
)

// Wall is a static obstacle
type Wall struct {
	Actor
	Size   level.WallSize
	Turned bool
}

// NewWall builds a wall from its layout placement
func NewWall(w level.Wall) *Wall {
	shape := geom.BoxFromExtents(w.Size.Length()/2, WallHeight/2, WallThickness/2)
	wall := &Wall{
		Actor:  newActor(KindWall, shape),
		Size:   w.Size,
		Turned: w.Turned,
	}
	wall.Rotate(geom.AxisX, math.Pi/2)
	if w.Turned {
		wall.Rotate(geom.AxisZ, math.Pi/2)
	}
	wall.Place(level.Vec3(w.Pos))
	return wall
}

// Vertical reports whether the wall runs along Y, so players are pushed
// out along X
func (w *Wall) Vertical() bool {
	return w.Rotation().W <= WallVertical
}

// Integrate is a no-op; walls never move
func (w *Wall) Integrate(float64) {}
