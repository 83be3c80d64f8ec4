package narrow

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaySphere returns the distance along a normalized direction to a sphere.
// An origin inside the sphere hits at 0.
func RaySphere(origin, direction, center rl.Vector3, radius, maxDistance float32) (float32, bool) {
	oc := rl.Vector3Subtract(origin, center)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius
	if c <= 0 {
		return 0, true
	}
	a := rl.Vector3DotProduct(direction, direction)
	b := 2.0 * rl.Vector3DotProduct(oc, direction)

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}

	t := (-b - math32.Sqrt(discriminant)) / (2 * a)
	if t < 0 || t > maxDistance {
		return 0, false
	}
	return t, true
}

// RayBody dispatches a ray against a placed actor shape. Shapes without a
// ray test never hit.
func RayBody(origin, direction rl.Vector3, body Body, maxDistance float32) (float32, bool) {
	switch body.Shape.Kind {
	case Sphere:
		return RaySphere(origin, direction, body.Center, body.Shape.Radius, maxDistance)
	case Box:
		return RayOBB(origin, direction, body.Shape, body.Center, maxDistance)
	}
	return 0, false
}

// RayOBB runs the slab test in the box's local frame.
func RayOBB(origin, direction rl.Vector3, box Shape, center rl.Vector3, maxDistance float32) (float32, bool) {
	o := box.OBB(center)
	lo := o.ToLocal(origin)
	ld := o.DirToLocal(direction)

	tmin := float32(0)
	tmax := maxDistance
	for i := 0; i < 3; i++ {
		var p, d, h float32
		switch i {
		case 0:
			p, d, h = lo.X, ld.X, o.HalfSize.X
		case 1:
			p, d, h = lo.Y, ld.Y, o.HalfSize.Y
		default:
			p, d, h = lo.Z, ld.Z, o.HalfSize.Z
		}
		if math32.Abs(d) < parallelEpsilon {
			if p < -h || p > h {
				return 0, false
			}
			continue
		}
		t1 := (-h - p) / d
		t2 := (h - p) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
