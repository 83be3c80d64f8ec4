// Package mesh describes the static triangle data the collision core consumes.
// The data is supplied already loaded; nothing here parses files.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"sectorcollide/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrMalformed is returned by Validate for meshes whose buffers disagree.
var ErrMalformed = errors.New("malformed mesh")

type Vertex struct {
	Position rl.Vector3
	Normal   rl.Vector3
	TexCoord rl.Vector2
}

// Submesh is a range of the index buffer; indices are relative to BaseVertex.
type Submesh struct {
	BaseVertex int
	BaseIndex  int
	IndexCount int
}

type Mesh struct {
	Vertices  []Vertex
	Indices   []uint32
	Submeshes []Submesh
}

// TriRef identifies one triangle: a submesh and an index offset inside it.
// It never holds vertex data.
type TriRef struct {
	Submesh uint16
	Offset  uint32
}

// Validate checks that every submesh is a whole number of triangles and that
// every index resolves to a vertex.
func (m *Mesh) Validate() error {
	if len(m.Submeshes) > math.MaxUint16+1 {
		return fmt.Errorf("%w: %d submeshes", ErrMalformed, len(m.Submeshes))
	}
	for i, s := range m.Submeshes {
		if s.IndexCount%3 != 0 {
			return fmt.Errorf("%w: submesh %d index count %d is not a multiple of 3", ErrMalformed, i, s.IndexCount)
		}
		if s.BaseIndex < 0 || s.IndexCount < 0 || s.BaseIndex+s.IndexCount > len(m.Indices) {
			return fmt.Errorf("%w: submesh %d index range [%d,%d) outside %d indices",
				ErrMalformed, i, s.BaseIndex, s.BaseIndex+s.IndexCount, len(m.Indices))
		}
		for _, idx := range m.Indices[s.BaseIndex : s.BaseIndex+s.IndexCount] {
			v := s.BaseVertex + int(idx)
			if s.BaseVertex < 0 || v >= len(m.Vertices) {
				return fmt.Errorf("%w: submesh %d references vertex %d of %d", ErrMalformed, i, v, len(m.Vertices))
			}
		}
	}
	return nil
}

// TriangleCount returns the number of triangles across all submeshes.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, s := range m.Submeshes {
		n += s.IndexCount / 3
	}
	return n
}

// Triangles lists a reference to every triangle, submesh by submesh.
func (m *Mesh) Triangles() []TriRef {
	refs := make([]TriRef, 0, m.TriangleCount())
	for si, s := range m.Submeshes {
		for off := 0; off+2 < s.IndexCount; off += 3 {
			refs = append(refs, TriRef{Submesh: uint16(si), Offset: uint32(off)})
		}
	}
	return refs
}

// Triangle resolves a reference to its three vertex positions.
func (m *Mesh) Triangle(ref TriRef) (a, b, c rl.Vector3) {
	s := m.Submeshes[ref.Submesh]
	i := s.BaseIndex + int(ref.Offset)
	a = m.Vertices[s.BaseVertex+int(m.Indices[i])].Position
	b = m.Vertices[s.BaseVertex+int(m.Indices[i+1])].Position
	c = m.Vertices[s.BaseVertex+int(m.Indices[i+2])].Position
	return a, b, c
}

// Bounds returns the box covering every vertex referenced by a triangle.
func (m *Mesh) Bounds() geom.AABB {
	box := geom.EmptyAABB()
	for _, ref := range m.Triangles() {
		a, b, c := m.Triangle(ref)
		box = box.Union(geom.TriangleBounds(a, b, c))
	}
	return box
}
