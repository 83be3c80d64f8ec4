package geom

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (orthonormal)
}

// NewOBB creates an OBB whose local axes are the right/up/forward basis built
// from direction and up.
func NewOBB(center, half, direction, up rl.Vector3) OBB {
	right, u, fwd := Basis(direction, up)
	return OBB{Center: center, HalfSize: half, Axes: [3]rl.Vector3{right, u, fwd}}
}

// NewAxisAlignedOBB creates an OBB with world axes.
func NewAxisAlignedOBB(center, half rl.Vector3) OBB {
	return OBB{
		Center:   center,
		HalfSize: half,
		Axes: [3]rl.Vector3{
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
	}
}

// Extent returns the half-size of the world-space AABB enclosing the box,
// the sum of the absolute axis extents.
func (o OBB) Extent() rl.Vector3 {
	var e rl.Vector3
	for i := 0; i < 3; i++ {
		e = rl.Vector3Add(e, rl.Vector3Scale(Abs(o.Axes[i]), Axis(o.HalfSize, i)))
	}
	return e
}

// Project returns the projection radius of the box onto axis.
func (o OBB) Project(axis rl.Vector3) float32 {
	return o.HalfSize.X*math32.Abs(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*math32.Abs(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*math32.Abs(rl.Vector3DotProduct(o.Axes[2], axis))
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem
func (o OBB) IntersectsOBB(b OBB) bool {
	// Vector from A's center to B's center
	t := rl.Vector3Subtract(b.Center, o.Center)

	// 3 face normals from each box, then the 9 edge cross products
	for i := 0; i < 3; i++ {
		if !overlapOnAxis(o, b, o.Axes[i], t) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		if !overlapOnAxis(o, b, b.Axes[i], t) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := rl.Vector3CrossProduct(o.Axes[i], b.Axes[j])
			// Skip near-zero axes (parallel edges)
			if rl.Vector3Length(axis) > 0.0001 {
				axis = rl.Vector3Normalize(axis)
				if !overlapOnAxis(o, b, axis, t) {
					return false
				}
			}
		}
	}

	return true
}

// overlapOnAxis checks if two OBBs overlap when projected onto a given axis
func overlapOnAxis(a, b OBB, axis, t rl.Vector3) bool {
	distance := math32.Abs(rl.Vector3DotProduct(t, axis))
	return distance <= a.Project(axis)+b.Project(axis)
}

// ToLocal expresses a world point in the box's local frame.
func (o OBB) ToLocal(p rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(p, o.Center)
	return rl.Vector3{
		X: rl.Vector3DotProduct(d, o.Axes[0]),
		Y: rl.Vector3DotProduct(d, o.Axes[1]),
		Z: rl.Vector3DotProduct(d, o.Axes[2]),
	}
}

// DirToLocal expresses a world direction in the box's local frame.
func (o OBB) DirToLocal(v rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: rl.Vector3DotProduct(v, o.Axes[0]),
		Y: rl.Vector3DotProduct(v, o.Axes[1]),
		Z: rl.Vector3DotProduct(v, o.Axes[2]),
	}
}

// IntersectsSphere tests if an OBB intersects with a sphere
func (o OBB) IntersectsSphere(center rl.Vector3, radius float32) bool {
	closest := ClosestPointOnOBB(o, center)
	d := rl.Vector3Subtract(center, closest)
	return rl.Vector3DotProduct(d, d) <= radius*radius
}

// ClosestPointOnOBB returns the point of the box (surface or interior) closest
// to the given point.
func ClosestPointOnOBB(o OBB, point rl.Vector3) rl.Vector3 {
	local := o.ToLocal(point)

	// Clamp to box extents
	closestX := Clamp(local.X, -o.HalfSize.X, o.HalfSize.X)
	closestY := Clamp(local.Y, -o.HalfSize.Y, o.HalfSize.Y)
	closestZ := Clamp(local.Z, -o.HalfSize.Z, o.HalfSize.Z)

	// Transform back to world space
	result := o.Center
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[0], closestX))
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[1], closestY))
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[2], closestZ))

	return result
}
