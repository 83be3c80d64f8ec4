// Package bvh implements the static geometry index: a binary bounding-volume
// tree over one mesh's triangles whose internal boxes are stored as 8-bit
// offsets inside their parent's box. Leaves reference triangles and never
// copy vertex data.
package bvh

import (
	"errors"
	"fmt"

	"sectorcollide/internal/geom"
	"sectorcollide/internal/mesh"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	// ErrEmptyMesh is returned when a mesh has no triangles to index.
	ErrEmptyMesh = errors.New("mesh has no triangles")
	// ErrOverflow is returned when the tree would need more than MaxNodes nodes.
	ErrOverflow = errors.New("geometry index overflow")
)

// Index is an immutable tree over one mesh. It is safe for concurrent readers.
type Index struct {
	mesh    *mesh.Mesh
	nodes   []Node
	root    uint16
	rootBox geom.AABB
}

// Visitor receives each candidate triangle. Returning false stops the traversal.
type Visitor func(ref mesh.TriRef, a, b, c rl.Vector3) bool

// Build indexes every triangle of m. rootBox is the object-space box the
// traversal starts from; it is widened if it does not cover the mesh.
func Build(m *mesh.Mesh, rootBox geom.AABB) (*Index, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	refs := m.Triangles()
	if len(refs) == 0 {
		return nil, ErrEmptyMesh
	}
	if need := 2*len(refs) - 1; need > MaxNodes {
		return nil, fmt.Errorf("%w: %d triangles need %d nodes, limit is %d", ErrOverflow, len(refs), need, MaxNodes)
	}

	items := make([]item, len(refs))
	meshBox := geom.EmptyAABB()
	for i, ref := range refs {
		a, b, c := m.Triangle(ref)
		if !finite(a) || !finite(b) || !finite(c) {
			return nil, fmt.Errorf("%w: non-finite vertex in submesh %d at offset %d", mesh.ErrMalformed, ref.Submesh, ref.Offset)
		}
		items[i] = item{ref: ref, centroid: geom.Centroid(a, b, c), bounds: geom.TriangleBounds(a, b, c)}
		meshBox = meshBox.Union(items[i].bounds)
	}
	if !finite(rootBox.Min) || !finite(rootBox.Max) {
		rootBox = meshBox
	}
	rootBox = rootBox.Union(meshBox)

	ix := &Index{
		mesh:    m,
		nodes:   make([]Node, 0, 2*len(items)-1),
		rootBox: rootBox,
	}
	ix.root = ix.subdivide(items, rootBox)
	return ix, nil
}

// subdivide appends the subtree for items in post-order and returns its root.
func (ix *Index) subdivide(items []item, work geom.AABB) uint16 {
	if len(items) == 1 {
		ix.nodes = append(ix.nodes, Node{
			Kind:  NodeLeaf,
			Left:  NoChild,
			Right: NoChild,
			Tri:   items[0].ref,
		})
		return uint16(len(ix.nodes) - 1)
	}

	bounds := items[0].bounds
	for _, it := range items[1:] {
		bounds = bounds.Union(it.bounds)
	}
	q := Quantize(bounds, work)
	axis := longestAxis(q)

	// Median split by count, not by spatial midpoint.
	mid := len(items) / 2
	selectNth(items, mid, axis)

	box := Dequantize(q, work)
	left := ix.subdivide(items[:mid], box)
	right := ix.subdivide(items[mid:], box)

	ix.nodes = append(ix.nodes, Node{
		Kind:  NodeInternal,
		Left:  left,
		Right: right,
		Box:   q,
	})
	return uint16(len(ix.nodes) - 1)
}

// selectNth partially orders items so that items[k] holds the element that
// would be there if sorted by centroid on axis, with smaller keys before it
// and larger keys after it.
func selectNth(items []item, k, axis int) {
	key := func(i int) float32 { return geom.Axis(items[i].centroid, axis) }
	lo, hi := 0, len(items)-1
	for lo < hi {
		pivot := medianOf3(key(lo), key((lo+hi)/2), key(hi))
		i, j := lo, hi
		for i <= j {
			for key(i) < pivot {
				i++
			}
			for key(j) > pivot {
				j--
			}
			if i <= j {
				items[i], items[j] = items[j], items[i]
				i++
				j--
			}
		}
		switch {
		case k <= j:
			hi = j
		case k >= i:
			lo = i
		default:
			return
		}
	}
}

func medianOf3(a, b, c float32) float32 {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		return a
	}
	return b
}

func finite(v rl.Vector3) bool {
	for i := 0; i < 3; i++ {
		f := geom.Axis(v, i)
		if math32.IsNaN(f) || math32.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Traverse visits every leaf triangle whose bounds overlap query, pruning
// subtrees whose dequantized box misses it.
func (ix *Index) Traverse(query geom.AABB, visit Visitor) {
	ix.traverse(query, ix.rootBox, ix.root, visit)
}

func (ix *Index) traverse(query, work geom.AABB, idx uint16, visit Visitor) bool {
	n := &ix.nodes[idx]
	if n.IsLeaf() {
		a, b, c := ix.mesh.Triangle(n.Tri)
		if !geom.TriangleBounds(a, b, c).Intersects(query) {
			return true
		}
		return visit(n.Tri, a, b, c)
	}
	box := Dequantize(n.Box, work)
	if !box.Intersects(query) {
		return true
	}
	return ix.traverse(query, box, n.Left, visit) && ix.traverse(query, box, n.Right, visit)
}

// Mesh returns the indexed mesh.
func (ix *Index) Mesh() *mesh.Mesh { return ix.mesh }

// Root returns the root node index, always the last node appended.
func (ix *Index) Root() uint16 { return ix.root }

// RootBox returns the object-space box traversal starts from.
func (ix *Index) RootBox() geom.AABB { return ix.rootBox }

// Len returns the node count.
func (ix *Index) Len() int { return len(ix.nodes) }

// Node returns a copy of node i.
func (ix *Index) Node(i uint16) Node { return ix.nodes[i] }

// Stats summarizes the tree shape for load-time logging.
type Stats struct {
	Nodes  int
	Leaves int
	Depth  int
}

func (ix *Index) Stats() Stats {
	s := Stats{Nodes: len(ix.nodes)}
	var walk func(idx uint16, depth int)
	walk = func(idx uint16, depth int) {
		if depth > s.Depth {
			s.Depth = depth
		}
		n := &ix.nodes[idx]
		if n.IsLeaf() {
			s.Leaves++
			return
		}
		walk(n.Left, depth+1)
		walk(n.Right, depth+1)
	}
	walk(ix.root, 1)
	return s
}
