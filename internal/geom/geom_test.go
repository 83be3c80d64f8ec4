package geom

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec(t *testing.T, want, got rl.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-4, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-4, "z")
}

func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{
		Position:  rl.Vector3{X: 3, Y: -2, Z: 7},
		Direction: rl.Vector3{X: 1, Y: 0, Z: 1},
		Up:        rl.Vector3{X: 0, Y: 1, Z: 0.2},
		Scale:     2.5,
	}
	require.NoError(t, tr.Validate())

	p := rl.Vector3{X: 1, Y: 2, Z: 3}
	assertVec(t, p, tr.PointToLocal(tr.PointToWorld(p)))

	v := rl.Vector3{X: -4, Y: 0.5, Z: 1}
	assertVec(t, v, tr.VectorToLocal(tr.VectorToWorld(v)))
}

func TestIdentityTransform(t *testing.T) {
	tr := Identity()
	p := rl.Vector3{X: 1, Y: 2, Z: 3}
	assertVec(t, p, tr.PointToWorld(p))
	assertVec(t, p, tr.PointToLocal(p))
}

func TestTransformValidate(t *testing.T) {
	tr := Identity()
	tr.Scale = 0
	assert.ErrorIs(t, tr.Validate(), ErrDegenerateTransform)

	tr = Identity()
	tr.Up = tr.Direction
	assert.ErrorIs(t, tr.Validate(), ErrDegenerateTransform)
}

func TestOBBIntersections(t *testing.T) {
	a := NewAxisAlignedOBB(rl.Vector3{}, Splat(1))
	b := NewAxisAlignedOBB(rl.Vector3{X: 1.5}, Splat(1))
	c := NewAxisAlignedOBB(rl.Vector3{X: 2.5}, Splat(1))

	assert.True(t, a.IntersectsOBB(b))
	assert.False(t, a.IntersectsOBB(c))

	// Rotated 45 degrees around Y, the corner reaches sqrt(2).
	r := NewOBB(rl.Vector3{X: 2.3}, Splat(1), rl.Vector3{X: 1, Z: 1}, rl.Vector3{Y: 1})
	assert.True(t, a.IntersectsOBB(r))

	assert.True(t, a.IntersectsSphere(rl.Vector3{X: 1.9}, 1))
	assert.False(t, a.IntersectsSphere(rl.Vector3{X: 1.5, Y: 1.5, Z: 1.5}, 0.5))
}

func TestOBBExtent(t *testing.T) {
	o := NewOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 2, Z: 1}, rl.Vector3{X: 1, Z: 1}, rl.Vector3{Y: 1})
	e := o.Extent()
	assert.InDelta(t, 1.41421, e.X, 1e-4)
	assert.InDelta(t, 2, e.Y, 1e-4)
	assert.InDelta(t, 1.41421, e.Z, 1e-4)
}

func TestClosestPointOnTriangle(t *testing.T) {
	a := rl.Vector3{X: 0, Y: 0, Z: 0}
	b := rl.Vector3{X: 1, Y: 0, Z: 0}
	c := rl.Vector3{X: 0, Y: 1, Z: 0}

	assertVec(t, rl.Vector3{X: 0.25, Y: 0.25}, ClosestPointOnTriangle(rl.Vector3{X: 0.25, Y: 0.25, Z: 5}, a, b, c))
	assertVec(t, a, ClosestPointOnTriangle(rl.Vector3{X: -1, Y: -1}, a, b, c))
	assertVec(t, rl.Vector3{X: 0.5, Y: 0.5}, ClosestPointOnTriangle(rl.Vector3{X: 1, Y: 1}, a, b, c))
}

func TestAABB(t *testing.T) {
	box := EmptyAABB().Extend(rl.Vector3{X: 1}).Extend(rl.Vector3{Y: -1, Z: 2})
	assertVec(t, rl.Vector3{Y: -1}, box.Min)
	assertVec(t, rl.Vector3{X: 1, Z: 2}, box.Max)
	assert.True(t, box.Contains(TriangleBounds(rl.Vector3{}, rl.Vector3{X: 0.5}, rl.Vector3{Z: 1})))
	assert.False(t, box.Intersects(NewAABBFromCenter(rl.Vector3{X: 3}, Splat(0.5))))
}
