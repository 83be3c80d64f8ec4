package bvh

import (
	"sectorcollide/internal/geom"
	"sectorcollide/internal/mesh"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// NoChild is the child index stored in leaves.
	NoChild = 0xFFFF
	// MaxNodes is the largest tree a uint16 node index can address.
	MaxNodes = 0xFFFF

	quantMax = 255
)

type NodeKind uint8

const (
	NodeInternal NodeKind = iota
	NodeLeaf
)

func (k NodeKind) String() string {
	if k == NodeLeaf {
		return "leaf"
	}
	return "internal"
}

// QuantBox is a box stored as 8-bit fractions of the parent's dequantized box.
type QuantBox struct {
	Min [3]uint8
	Max [3]uint8
}

// Node is one tree node. Internal nodes use Left, Right and Box; leaves use
// Tri and carry NoChild in both child slots.
type Node struct {
	Kind  NodeKind
	Left  uint16
	Right uint16
	Box   QuantBox
	Tri   mesh.TriRef
}

func (n *Node) IsLeaf() bool {
	return n.Kind == NodeLeaf
}

// dequant maps q in [0,255] onto [lo,hi]. The endpoints are exact so a box
// quantized to the full range reproduces its working box bit for bit.
func dequant(q uint8, lo, hi float32) float32 {
	switch q {
	case 0:
		return lo
	case quantMax:
		return hi
	}
	return lo + (hi-lo)*float32(q)/quantMax
}

// Dequantize expands q against the working box it was quantized in.
func Dequantize(q QuantBox, work geom.AABB) geom.AABB {
	var out geom.AABB
	for i := 0; i < 3; i++ {
		lo, hi := geom.Axis(work.Min, i), geom.Axis(work.Max, i)
		out.Min = geom.SetAxis(out.Min, i, dequant(q.Min[i], lo, hi))
		out.Max = geom.SetAxis(out.Max, i, dequant(q.Max[i], lo, hi))
	}
	return out
}

// Quantize maps bounds into the working box, rounding outward so the result
// never under-covers bounds. Bounds must lie inside work.
func Quantize(bounds, work geom.AABB) QuantBox {
	var q QuantBox
	for i := 0; i < 3; i++ {
		q.Min[i], q.Max[i] = quantizeAxis(
			geom.Axis(bounds.Min, i), geom.Axis(bounds.Max, i),
			geom.Axis(work.Min, i), geom.Axis(work.Max, i),
		)
	}
	return q
}

func quantizeAxis(bmin, bmax, lo, hi float32) (uint8, uint8) {
	var fmin, fmax float32
	if span := hi - lo; span > 0 {
		fmin = (bmin - lo) / span * quantMax
		fmax = (bmax - lo) / span * quantMax
	}
	qmin := uint8(geom.Clamp(math32.Floor(fmin), 0, quantMax))
	qmax := uint8(geom.Clamp(math32.Ceil(fmax), 0, quantMax))

	// Keep a non-zero span on flat extents.
	if qmin == qmax {
		if qmax < quantMax {
			qmax++
		} else {
			qmin--
		}
	}

	// Float rounding can leave the dequantized bound a hair inside the true
	// one; walk outward until the dequantizer agrees.
	for qmin > 0 && dequant(qmin, lo, hi) > bmin {
		qmin--
	}
	for qmax < quantMax && dequant(qmax, lo, hi) < bmax {
		qmax++
	}
	return qmin, qmax
}

// longestAxis picks the axis with the largest quantized extent; ties go to
// x, then y, then z.
func longestAxis(q QuantBox) int {
	axis := 0
	maxVal := int(q.Max[0]) - int(q.Min[0])
	if y := int(q.Max[1]) - int(q.Min[1]); y > maxVal {
		axis = 1
		maxVal = y
	}
	if z := int(q.Max[2]) - int(q.Min[2]); z > maxVal {
		axis = 2
	}
	return axis
}

// item is one triangle during the build.
type item struct {
	ref      mesh.TriRef
	centroid rl.Vector3
	bounds   geom.AABB
}
