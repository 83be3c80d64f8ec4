package narrow

import (
	"sectorcollide/internal/geom"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const parallelEpsilon = 1e-8

// lowestRoot returns the smallest root of a*t^2 + b*t + c = 0 in [0, maxR].
func lowestRoot(a, b, c, maxR float32) (float32, bool) {
	if math32.Abs(a) < parallelEpsilon {
		if math32.Abs(b) < parallelEpsilon {
			return 0, false
		}
		t := -c / b
		return t, t >= 0 && t <= maxR
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	s := math32.Sqrt(disc)
	r1 := (-b - s) / (2 * a)
	r2 := (-b + s) / (2 * a)
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	if r1 >= 0 && r1 <= maxR {
		return r1, true
	}
	if r2 >= 0 && r2 <= maxR {
		return r2, true
	}
	return 0, false
}

// pointInTriangle reports whether p, assumed on the triangle's plane, lies
// inside it (edges included).
func pointInTriangle(p, a, b, c, n rl.Vector3) bool {
	edge := func(v0, v1 rl.Vector3) bool {
		return rl.Vector3DotProduct(rl.Vector3CrossProduct(rl.Vector3Subtract(v1, v0), rl.Vector3Subtract(p, v0)), n) >= -1e-6
	}
	return edge(a, b) && edge(b, c) && edge(c, a)
}

// SweptSphereTriangle returns the earliest fraction t in [0,1] at which a
// sphere of radius r moving from c0 by d touches triangle abc. A sphere that
// already touches the triangle reports 0.
func SweptSphereTriangle(c0, d rl.Vector3, r float32, a, b, c rl.Vector3) (float32, bool) {
	closest := geom.ClosestPointOnTriangle(c0, a, b, c)
	if diff := rl.Vector3Subtract(c0, closest); rl.Vector3DotProduct(diff, diff) <= r*r {
		return 0, true
	}
	velSq := rl.Vector3DotProduct(d, d)
	if velSq < parallelEpsilon {
		return 0, false
	}

	// Face: the first contact is on the interior if the sphere reaches the
	// plane with its contact point inside the triangle.
	raw := geom.TriangleNormal(a, b, c)
	if rl.Vector3Length(raw) > geom.Epsilon {
		face := rl.Vector3Normalize(raw)
		n := face
		dist0 := rl.Vector3DotProduct(rl.Vector3Subtract(c0, a), n)
		if dist0 < 0 {
			n = rl.Vector3Negate(n)
			dist0 = -dist0
		}
		vn := rl.Vector3DotProduct(d, n)
		if dist0 > r && vn < 0 {
			t := (dist0 - r) / -vn
			if t <= 1 {
				center := rl.Vector3Add(c0, rl.Vector3Scale(d, t))
				contact := rl.Vector3Subtract(center, rl.Vector3Scale(n, r))
				if pointInTriangle(contact, a, b, c, face) {
					return t, true
				}
			}
		}
	}

	best := float32(1)
	hit := false

	// Vertices: |c0 + t*d - v|^2 = r^2
	for _, v := range [3]rl.Vector3{a, b, c} {
		rel := rl.Vector3Subtract(c0, v)
		qa := velSq
		qb := 2 * rl.Vector3DotProduct(d, rel)
		qc := rl.Vector3DotProduct(rel, rel) - r*r
		if t, ok := lowestRoot(qa, qb, qc, best); ok {
			best, hit = t, true
		}
	}

	// Edges: the sphere center against the cylinder of radius r around each
	// edge, accepted only where the contact projects onto the segment.
	for _, e := range [3][2]rl.Vector3{{a, b}, {b, c}, {c, a}} {
		edge := rl.Vector3Subtract(e[1], e[0])
		toVertex := rl.Vector3Subtract(e[0], c0)
		edgeSq := rl.Vector3DotProduct(edge, edge)
		if edgeSq < parallelEpsilon {
			continue
		}
		edgeDotVel := rl.Vector3DotProduct(edge, d)
		edgeDotTo := rl.Vector3DotProduct(edge, toVertex)

		qa := edgeSq*-velSq + edgeDotVel*edgeDotVel
		qb := edgeSq*(2*rl.Vector3DotProduct(d, toVertex)) - 2*edgeDotVel*edgeDotTo
		qc := edgeSq*(r*r-rl.Vector3DotProduct(toVertex, toVertex)) + edgeDotTo*edgeDotTo
		t, ok := lowestRoot(qa, qb, qc, best)
		if !ok {
			continue
		}
		f := (edgeDotVel*t - edgeDotTo) / edgeSq
		if f >= 0 && f <= 1 {
			best, hit = t, true
		}
	}
	return best, hit
}

// SweptBoxTriangle returns the earliest fraction t in [0,1] at which box,
// moving by d, touches triangle abc. It is a separating-axis test run over
// time on the 13 candidate axes; a box already overlapping reports 0.
func SweptBoxTriangle(box geom.OBB, d rl.Vector3, a, b, c rl.Vector3) (float32, bool) {
	edges := [3]rl.Vector3{
		rl.Vector3Subtract(b, a),
		rl.Vector3Subtract(c, b),
		rl.Vector3Subtract(a, c),
	}
	var axes [13]rl.Vector3
	axes[0], axes[1], axes[2] = box.Axes[0], box.Axes[1], box.Axes[2]
	axes[3] = geom.TriangleNormal(a, b, c)
	n := 4
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axes[n] = rl.Vector3CrossProduct(box.Axes[i], edges[j])
			n++
		}
	}

	enter := math32.Inf(-1)
	exit := math32.Inf(1)
	for _, axis := range axes[:n] {
		l := rl.Vector3Length(axis)
		if l < geom.Epsilon {
			continue
		}
		axis = rl.Vector3Scale(axis, 1/l)

		p0 := rl.Vector3DotProduct(a, axis)
		p1 := rl.Vector3DotProduct(b, axis)
		p2 := rl.Vector3DotProduct(c, axis)
		triMin := math32.Min(p0, math32.Min(p1, p2))
		triMax := math32.Max(p0, math32.Max(p1, p2))

		center := rl.Vector3DotProduct(box.Center, axis)
		radius := box.Project(axis)
		v := rl.Vector3DotProduct(d, axis)

		// Overlap requires center+radius+v*t >= triMin and center-radius+v*t <= triMax.
		lo := triMin - center - radius
		hi := triMax - center + radius
		if math32.Abs(v) < parallelEpsilon {
			if lo > 0 || hi < 0 {
				return 0, false
			}
			continue
		}
		t1, t2 := lo/v, hi/v
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > enter {
			enter = t1
		}
		if t2 < exit {
			exit = t2
		}
		if enter > exit || enter > 1 || exit < 0 {
			return 0, false
		}
	}
	if enter < 0 {
		enter = 0
	}
	return enter, true
}

// SegmentTriangle intersects the segment p + t*d, t in [0,1], with triangle
// abc from either side.
func SegmentTriangle(p, d rl.Vector3, a, b, c rl.Vector3) (float32, bool) {
	e1 := rl.Vector3Subtract(b, a)
	e2 := rl.Vector3Subtract(c, a)
	h := rl.Vector3CrossProduct(d, e2)
	det := rl.Vector3DotProduct(e1, h)
	if math32.Abs(det) < parallelEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := rl.Vector3Subtract(p, a)
	u := inv * rl.Vector3DotProduct(s, h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := rl.Vector3CrossProduct(s, e1)
	v := inv * rl.Vector3DotProduct(d, q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := inv * rl.Vector3DotProduct(e2, q)
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}
