package geom

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// AABB is an axis-aligned box. An empty box has Min > Max on every axis.
type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// EmptyAABB returns a box that any Extend call will replace.
func EmptyAABB() AABB {
	inf := math32.Inf(1)
	return AABB{Min: Splat(inf), Max: Splat(-inf)}
}

// NewAABBFromCenter creates an AABB from a center point and half extents.
func NewAABBFromCenter(center, half rl.Vector3) AABB {
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

// Extend grows the box to include p.
func (a AABB) Extend(p rl.Vector3) AABB {
	return AABB{Min: rl.Vector3Min(a.Min, p), Max: rl.Vector3Max(a.Max, p)}
}

// Union returns the smallest box covering both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{Min: rl.Vector3Min(a.Min, b.Min), Max: rl.Vector3Max(a.Max, b.Max)}
}

// Grow expands the box by half on each side.
func (a AABB) Grow(half rl.Vector3) AABB {
	return AABB{Min: rl.Vector3Subtract(a.Min, half), Max: rl.Vector3Add(a.Max, half)}
}

// Size returns Max - Min.
func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

// Intersects reports whether the two boxes overlap, touching counts.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Contains reports whether b lies entirely inside a.
func (a AABB) Contains(b AABB) bool {
	return a.Min.X <= b.Min.X && a.Max.X >= b.Max.X &&
		a.Min.Y <= b.Min.Y && a.Max.Y >= b.Max.Y &&
		a.Min.Z <= b.Min.Z && a.Max.Z >= b.Max.Z
}

// TriangleBounds returns the AABB of a triangle.
func TriangleBounds(a, b, c rl.Vector3) AABB {
	return AABB{
		Min: rl.Vector3Min(rl.Vector3Min(a, b), c),
		Max: rl.Vector3Max(rl.Vector3Max(a, b), c),
	}
}
