package narrow

import (
	"fmt"

	"sectorcollide/internal/bvh"
	"sectorcollide/internal/geom"
	"sectorcollide/internal/invariant"
	"sectorcollide/internal/mesh"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Target is one placed, indexed mesh.
type Target struct {
	Index     *bvh.Index
	Transform geom.Transform
}

// SweptShapeVsMesh moves shape from start by displacement (both in world
// space) and returns the earliest fraction in [0,1] at which it touches the
// target's triangles. ok is false when nothing is touched. A shape already
// touching the mesh reports 0.
func SweptShapeVsMesh(s Shape, start, displacement rl.Vector3, tg Target) (t float32, ok bool, err error) {
	if s.Kind == Polygon {
		return 0, false, fmt.Errorf("%w: %v against terrain", ErrShapeNotImplemented, s.Kind)
	}
	tr := tg.Transform
	p0 := tr.PointToLocal(start)
	d := tr.VectorToLocal(displacement)
	local := s.toLocal(tr)

	query := geom.EmptyAABB().Extend(p0).Extend(rl.Vector3Add(p0, d)).Grow(local.Extent())

	best := math32.Inf(1)
	tg.Index.Traverse(query, func(_ mesh.TriRef, a, b, c rl.Vector3) bool {
		var ti float32
		var hit bool
		switch local.Kind {
		case Sphere:
			ti, hit = SweptSphereTriangle(p0, d, local.Radius, a, b, c)
		case Box:
			ti, hit = SweptBoxTriangle(local.OBB(p0), d, a, b, c)
		case Line:
			ti, hit = SegmentTriangle(p0, d, a, b, c)
		}
		if hit && ti < best {
			best = ti
		}
		// Nothing beats touching at the start.
		return best > 0
	})
	if math32.IsInf(best, 1) {
		return 0, false, nil
	}
	invariant.Check(best >= 0 && best <= 1, "collision time %v outside [0,1]", best)
	return best, true, nil
}

// RaycastVsMesh casts a ray of maxLength along direction and returns the
// distance to the nearest triangle.
func RaycastVsMesh(origin, direction rl.Vector3, maxLength float32, tg Target) (float32, bool) {
	dir := geom.NormalizeOr(direction, rl.Vector3{})
	if geom.IsZero(dir) || maxLength <= 0 {
		return 0, false
	}
	t, ok, _ := SweptShapeVsMesh(NewLine(), origin, rl.Vector3Scale(dir, maxLength), tg)
	if !ok {
		return 0, false
	}
	return t * maxLength, true
}
