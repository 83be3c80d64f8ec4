package geom

import rl "github.com/gen2brain/raylib-go/raylib"

// TriangleNormal returns the unnormalized face normal (b-a) x (c-a).
func TriangleNormal(a, b, c rl.Vector3) rl.Vector3 {
	return rl.Vector3CrossProduct(rl.Vector3Subtract(b, a), rl.Vector3Subtract(c, a))
}

// Centroid returns the average of the three vertices.
func Centroid(a, b, c rl.Vector3) rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(a, b), c), 1.0/3.0)
}

// ClosestPointOnTriangle finds the closest point on triangle abc to point p
func ClosestPointOnTriangle(p, a, b, c rl.Vector3) rl.Vector3 {
	// Check if P in vertex region outside A
	ab := rl.Vector3Subtract(b, a)
	ac := rl.Vector3Subtract(c, a)
	ap := rl.Vector3Subtract(p, a)

	d1 := rl.Vector3DotProduct(ab, ap)
	d2 := rl.Vector3DotProduct(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return a // barycentric coordinates (1,0,0)
	}

	// Check if P in vertex region outside B
	bp := rl.Vector3Subtract(p, b)
	d3 := rl.Vector3DotProduct(ab, bp)
	d4 := rl.Vector3DotProduct(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return b // barycentric coordinates (0,1,0)
	}

	// Check if P in edge region of AB
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return rl.Vector3Add(a, rl.Vector3Scale(ab, v)) // barycentric coordinates (1-v,v,0)
	}

	// Check if P in vertex region outside C
	cp := rl.Vector3Subtract(p, c)
	d5 := rl.Vector3DotProduct(ab, cp)
	d6 := rl.Vector3DotProduct(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return c // barycentric coordinates (0,0,1)
	}

	// Check if P in edge region of AC
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return rl.Vector3Add(a, rl.Vector3Scale(ac, w)) // barycentric coordinates (1-w,0,w)
	}

	// Check if P in edge region of BC
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return rl.Vector3Add(b, rl.Vector3Scale(rl.Vector3Subtract(c, b), w)) // barycentric coordinates (0,1-w,w)
	}

	// P inside face region
	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return rl.Vector3Add(a, rl.Vector3Add(rl.Vector3Scale(ab, v), rl.Vector3Scale(ac, w)))
}
