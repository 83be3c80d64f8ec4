package geom

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrDegenerateTransform is returned for placements that cannot be inverted.
var ErrDegenerateTransform = errors.New("degenerate transform")

// Transform places an object in the world: a position, a facing direction, an
// up vector and a uniform scale. Direction and up need not be normalized or
// orthogonal; Basis fixes them up.
type Transform struct {
	Position  rl.Vector3
	Direction rl.Vector3
	Up        rl.Vector3
	Scale     float32
}

// Identity returns the transform that leaves object space unchanged.
func Identity() Transform {
	return Transform{
		Direction: rl.Vector3{Z: 1},
		Up:        rl.Vector3{Y: 1},
		Scale:     1,
	}
}

// Basis returns an orthonormal right/up/forward frame from a direction and an
// up hint. Forward follows direction exactly; up is re-orthogonalized.
func Basis(direction, up rl.Vector3) (right, u, forward rl.Vector3) {
	forward = NormalizeOr(direction, rl.Vector3{Z: 1})
	u = rl.Vector3Subtract(up, rl.Vector3Scale(forward, rl.Vector3DotProduct(up, forward)))
	u = NormalizeOr(u, perpendicular(forward))
	right = rl.Vector3CrossProduct(u, forward)
	return right, u, forward
}

// perpendicular returns some unit vector orthogonal to v.
func perpendicular(v rl.Vector3) rl.Vector3 {
	if math32.Abs(v.Y) < 0.9 {
		return rl.Vector3Normalize(rl.Vector3CrossProduct(v, rl.Vector3{Y: 1}))
	}
	return rl.Vector3Normalize(rl.Vector3CrossProduct(v, rl.Vector3{X: 1}))
}

// Validate rejects transforms with a non-positive scale or unusable axes.
func (t Transform) Validate() error {
	if !(t.Scale > 0) {
		return fmt.Errorf("%w: scale %v", ErrDegenerateTransform, t.Scale)
	}
	if rl.Vector3Length(t.Direction) < Epsilon {
		return fmt.Errorf("%w: zero direction", ErrDegenerateTransform)
	}
	if rl.Vector3Length(rl.Vector3CrossProduct(t.Direction, t.Up)) < Epsilon {
		return fmt.Errorf("%w: up parallel to direction", ErrDegenerateTransform)
	}
	return nil
}

// Matrix returns the object-to-world matrix.
func (t Transform) Matrix() rl.Matrix {
	right, up, fwd := Basis(t.Direction, t.Up)
	s := t.Scale
	return rl.Matrix{
		M0: right.X * s, M4: up.X * s, M8: fwd.X * s, M12: t.Position.X,
		M1: right.Y * s, M5: up.Y * s, M9: fwd.Y * s, M13: t.Position.Y,
		M2: right.Z * s, M6: up.Z * s, M10: fwd.Z * s, M14: t.Position.Z,
		M15: 1,
	}
}

// PointToWorld maps an object-space point to world space.
func (t Transform) PointToWorld(p rl.Vector3) rl.Vector3 {
	return rl.Vector3Transform(p, t.Matrix())
}

// PointToLocal maps a world point into object space with the inverse transform.
func (t Transform) PointToLocal(p rl.Vector3) rl.Vector3 {
	return t.VectorToLocal(rl.Vector3Subtract(p, t.Position))
}

// VectorToLocal maps a world displacement into object space; translation is ignored.
func (t Transform) VectorToLocal(v rl.Vector3) rl.Vector3 {
	right, up, fwd := Basis(t.Direction, t.Up)
	inv := 1 / t.Scale
	return rl.Vector3{
		X: rl.Vector3DotProduct(v, right) * inv,
		Y: rl.Vector3DotProduct(v, up) * inv,
		Z: rl.Vector3DotProduct(v, fwd) * inv,
	}
}

// VectorToWorld maps an object-space displacement to world space.
func (t Transform) VectorToWorld(v rl.Vector3) rl.Vector3 {
	right, up, fwd := Basis(t.Direction, t.Up)
	w := rl.Vector3Scale(right, v.X)
	w = rl.Vector3Add(w, rl.Vector3Scale(up, v.Y))
	w = rl.Vector3Add(w, rl.Vector3Scale(fwd, v.Z))
	return rl.Vector3Scale(w, t.Scale)
}
