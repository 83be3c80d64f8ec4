package narrow

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Body is a shape placed at a world-space center.
type Body struct {
	Shape  Shape
	Center rl.Vector3
}

type overlapFunc func(a, b Body) bool

// overlapTable dispatches static overlap by shape pair. Empty slots are
// pairings the engine does not implement.
var overlapTable = [kindCount][kindCount]overlapFunc{
	Sphere: {Sphere: sphereSphere, Box: sphereBox},
	Box:    {Sphere: boxSphere, Box: boxBox},
}

// Overlap reports whether two bodies overlap right now. Unsupported pairings,
// anything involving a polygon, return ErrShapeNotImplemented.
func Overlap(a, b Body) (bool, error) {
	if a.Shape.Kind >= kindCount || b.Shape.Kind >= kindCount {
		return false, fmt.Errorf("%w: %v/%v", ErrShapeNotImplemented, a.Shape.Kind, b.Shape.Kind)
	}
	fn := overlapTable[a.Shape.Kind][b.Shape.Kind]
	if fn == nil {
		return false, fmt.Errorf("%w: %v/%v", ErrShapeNotImplemented, a.Shape.Kind, b.Shape.Kind)
	}
	return fn(a, b), nil
}

func sphereSphere(a, b Body) bool {
	d := rl.Vector3Subtract(a.Center, b.Center)
	r := a.Shape.Radius + b.Shape.Radius
	return rl.Vector3DotProduct(d, d) < r*r
}

func sphereBox(s, box Body) bool {
	return box.Shape.OBB(box.Center).IntersectsSphere(s.Center, s.Shape.Radius)
}

func boxSphere(box, s Body) bool {
	return sphereBox(s, box)
}

func boxBox(a, b Body) bool {
	return a.Shape.OBB(a.Center).IntersectsOBB(b.Shape.OBB(b.Center))
}
