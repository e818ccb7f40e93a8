package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sphere is a bounding sphere
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Box is an axis-aligned bounding box
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// BoxFromExtents returns a box centred on the origin with the given half extents
func BoxFromExtents(hx, hy, hz float64) Box {
	return Box{
		Min: mgl64.Vec3{-hx, -hy, -hz},
		Max: mgl64.Vec3{hx, hy, hz},
	}
}

// Center returns the box midpoint
func (b Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Corners returns the eight corners of the box
func (b Box) Corners() [8]mgl64.Vec3 {
	return [8]mgl64.Vec3{
		{b.Min[0], b.Min[1], b.Min[2]},
		{b.Max[0], b.Min[1], b.Min[2]},
		{b.Min[0], b.Max[1], b.Min[2]},
		{b.Max[0], b.Max[1], b.Min[2]},
		{b.Min[0], b.Min[1], b.Max[2]},
		{b.Max[0], b.Min[1], b.Max[2]},
		{b.Min[0], b.Max[1], b.Max[2]},
		{b.Max[0], b.Max[1], b.Max[2]},
	}
}

// SphereFromBox returns the smallest sphere around the box centre that
// encloses every corner
func SphereFromBox(b Box) Sphere {
	c := b.Center()
	return Sphere{Center: c, Radius: b.Max.Sub(c).Len()}
}

// TransformBox returns the axis-aligned box enclosing local after transform m
func TransformBox(local Box, m mgl64.Mat4) Box {
	min := mgl64.Vec3{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64}
	max := mgl64.Vec3{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64}
	for _, c := range local.Corners() {
		p := mgl64.TransformCoordinate(c, m)
		for i := 0; i < 3; i++ {
			min[i] = math.Min(min[i], p[i])
			max[i] = math.Max(max[i], p[i])
		}
	}
	return Box{Min: min, Max: max}
}

// SpheresIntersect reports whether two spheres overlap (touching counts)
func SpheresIntersect(a, b Sphere) bool {
	d := b.Center.Sub(a.Center)
	radSum := a.Radius + b.Radius
	return d.Dot(d) <= radSum*radSum
}

// BoxSphereIntersect reports whether a box and a sphere overlap, using the
// point of the box closest to the sphere centre
func BoxSphereIntersect(b Box, s Sphere) bool {
	var distSq float64
	for i := 0; i < 3; i++ {
		c := Clamp(s.Center[i], b.Min[i], b.Max[i])
		d := s.Center[i] - c
		distSq += d * d
	}
	return distSq <= s.Radius*s.Radius
}

// CheckCollision checks if two circles in the XY plane overlap
func CheckCollision(x1, y1, r1, x2, y2, r2 float64) bool {
	return SpheresIntersect(
		Sphere{Center: mgl64.Vec3{x1, y1, 0}, Radius: r1},
		Sphere{Center: mgl64.Vec3{x2, y2, 0}, Radius: r2},
	)
}
