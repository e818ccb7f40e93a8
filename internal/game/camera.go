package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sumukhanand/clamor/internal/geom"
)

const (
	CameraHeight = 2000.0
	CameraTilt   = 500.0  // eye sits this far below the target on Y
	CameraMargin = 1000.0 // added to the framed extent
	CameraNear   = 0.1
	CameraFar    = 20000.0
)

// Camera frames the living players with an orthographic projection
type Camera struct {
	View       mgl64.Mat4
	Projection mgl64.Mat4
	Center     mgl64.Vec2
	Lerp       float64 // 0..1 per frame toward the framing target
}

// NewCamera returns the camera at its opening framing
func NewCamera(lerp float64) Camera {
	return Camera{
		View:       mgl64.LookAtV(mgl64.Vec3{0, 0, CameraHeight}, mgl64.Vec3{}, geom.AxisY),
		Projection: ortho(1024, 768),
		Lerp:       lerp,
	}
}

func ortho(w, h float64) mgl64.Mat4 {
	return mgl64.Ortho(-w/2, w/2, -h/2, h/2, CameraNear, CameraFar)
}

// Frame moves the camera over the bounding box of positions. The target
// extent is square with CameraMargin added; the projection eases toward it
// by Lerp. With no positions the camera stays put.
func (c *Camera) Frame(positions []mgl64.Vec3) {
	if len(positions) == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range positions {
		minX = math.Min(minX, p[0])
		maxX = math.Max(maxX, p[0])
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
	}
	c.Center = mgl64.Vec2{(minX + maxX) / 2, (minY + maxY) / 2}
	side := math.Max(maxX-minX, maxY-minY) + CameraMargin

	c.Projection = geom.LerpMat4(c.Projection, ortho(side, side), c.Lerp)
	c.View = mgl64.LookAtV(
		mgl64.Vec3{c.Center[0], c.Center[1] - CameraTilt, CameraHeight},
		mgl64.Vec3{c.Center[0], c.Center[1], 0},
		geom.AxisY,
	)
}

// Project maps a world point to viewport pixels with the origin top-left
func (c Camera) Project(world mgl64.Vec3, viewport [2]int) mgl64.Vec2 {
	win := mgl64.Project(world, c.View, c.Projection, 0, 0, viewport[0], viewport[1])
	return mgl64.Vec2{win[0], float64(viewport[1]) - win[1]}
}
