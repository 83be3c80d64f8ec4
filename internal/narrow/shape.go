// Package narrow holds the continuous and static collision tests: swept
// shapes against indexed triangle meshes, rays, and overlap between two
// actor shapes.
package narrow

import (
	"errors"
	"fmt"

	"sectorcollide/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrShapeNotImplemented marks shape pairings the engine does not support.
// Polygon shapes land here.
var ErrShapeNotImplemented = errors.New("shape pairing not implemented")

type Kind uint8

const (
	Sphere Kind = iota
	Box
	Line
	Polygon

	kindCount
)

func (k Kind) String() string {
	switch k {
	case Sphere:
		return "sphere"
	case Box:
		return "box"
	case Line:
		return "line"
	case Polygon:
		return "polygon"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Shape is a closed tagged union. Radius is used by spheres, HalfExtents and
// Axes by boxes; lines carry nothing.
type Shape struct {
	Kind        Kind
	Radius      float32
	HalfExtents rl.Vector3
	Axes        [3]rl.Vector3
}

func NewSphere(radius float32) Shape {
	return Shape{Kind: Sphere, Radius: radius}
}

// NewBox returns a box oriented by the right/up/forward basis of direction and up.
func NewBox(half, direction, up rl.Vector3) Shape {
	right, u, fwd := geom.Basis(direction, up)
	return Shape{Kind: Box, HalfExtents: half, Axes: [3]rl.Vector3{right, u, fwd}}
}

func NewLine() Shape {
	return Shape{Kind: Line}
}

// Extent returns the half-size of the axis-aligned box enclosing the shape.
func (s Shape) Extent() rl.Vector3 {
	switch s.Kind {
	case Sphere:
		return geom.Splat(s.Radius)
	case Box:
		return s.OBB(rl.Vector3{}).Extent()
	}
	return rl.Vector3{}
}

// OBB places a box shape at center.
func (s Shape) OBB(center rl.Vector3) geom.OBB {
	return geom.OBB{Center: center, HalfSize: s.HalfExtents, Axes: s.Axes}
}

// toLocal re-expresses the shape in the object space of tr. The scale is
// uniform, so spheres stay spheres and boxes stay boxes.
func (s Shape) toLocal(tr geom.Transform) Shape {
	inv := 1 / tr.Scale
	out := s
	switch s.Kind {
	case Sphere:
		out.Radius = s.Radius * inv
	case Box:
		out.HalfExtents = rl.Vector3Scale(s.HalfExtents, inv)
		for i := range s.Axes {
			out.Axes[i] = geom.NormalizeOr(tr.VectorToLocal(s.Axes[i]), s.Axes[i])
		}
	}
	return out
}
