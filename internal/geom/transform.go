package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axes used throughout the simulation
var (
	AxisX = mgl64.Vec3{1, 0, 0}
	AxisY = mgl64.Vec3{0, 1, 0}
	AxisZ = mgl64.Vec3{0, 0, 1}
)

// Compose builds the world transform scale·rotation·translation:
// a local point is scaled first, then rotated, then translated.
func Compose(scale float64, rot mgl64.Quat, pos mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(rot.Mat4()).
		Mul4(mgl64.Scale3D(scale, scale, scale))
}

// AxisAngle returns the rotation of angle radians about axis.
// A zero-length axis yields the identity and false.
func AxisAngle(axis mgl64.Vec3, angle float64) (mgl64.Quat, bool) {
	l := axis.Len()
	if l == 0 || math.IsNaN(l) {
		return mgl64.QuatIdent(), false
	}
	return mgl64.QuatRotate(angle, axis.Mul(1/l)), true
}

// Concat returns rotation q followed by rotation r
func Concat(q, r mgl64.Quat) mgl64.Quat {
	return r.Mul(q).Normalize()
}

// Facing returns where the model nose (local +Z) points under rot
func Facing(rot mgl64.Quat) mgl64.Vec3 {
	return rot.Rotate(AxisZ)
}

// HeadingAngle converts a stick direction into the snap-heading angle:
// 0 points along +Y, positive angles turn toward -X.
// Returns false for a zero-length (or NaN) stick.
func HeadingAngle(stick mgl64.Vec2) (float64, bool) {
	l := stick.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return 0, false
	}
	n := stick.Mul(1 / l)
	angle := math.Acos(Clamp(n[1], -1, 1))
	if n[0] > 0 {
		angle = -angle
	}
	return angle, true
}

// LerpMat4 interpolates every component of a toward b by t
func LerpMat4(a, b mgl64.Mat4, t float64) mgl64.Mat4 {
	var out mgl64.Mat4
	for i := range a {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}

// ClampLength scales v down to max length, preserving direction
func ClampLength(v mgl64.Vec3, max float64) mgl64.Vec3 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Mul(max / l)
}

// Clamp restricts v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// NormalizeAngle wraps angle to [-PI, PI]
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
