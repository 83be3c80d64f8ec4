package mesh

import (
	"sectorcollide/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Builder accumulates triangles into a single submesh.
type Builder struct {
	m Mesh
}

// AddTriangle appends one triangle with a flat normal.
func (b *Builder) AddTriangle(p0, p1, p2 rl.Vector3) *Builder {
	n := geom.NormalizeOr(geom.TriangleNormal(p0, p1, p2), rl.Vector3{Y: 1})
	base := uint32(len(b.m.Vertices))
	b.m.Vertices = append(b.m.Vertices,
		Vertex{Position: p0, Normal: n, TexCoord: rl.Vector2{X: 0, Y: 0}},
		Vertex{Position: p1, Normal: n, TexCoord: rl.Vector2{X: 1, Y: 0}},
		Vertex{Position: p2, Normal: n, TexCoord: rl.Vector2{X: 0, Y: 1}},
	)
	b.m.Indices = append(b.m.Indices, base, base+1, base+2)
	return b
}

// AddQuad appends the quad p0 p1 p2 p3 as two triangles.
func (b *Builder) AddQuad(p0, p1, p2, p3 rl.Vector3) *Builder {
	b.AddTriangle(p0, p1, p2)
	b.AddTriangle(p0, p2, p3)
	return b
}

// Mesh returns the built mesh as one submesh covering every index.
func (b *Builder) Mesh() *Mesh {
	out := b.m
	out.Submeshes = []Submesh{{BaseVertex: 0, BaseIndex: 0, IndexCount: len(out.Indices)}}
	return &out
}

// FromTriangles builds a single-submesh mesh from a triangle soup.
func FromTriangles(tris [][3]rl.Vector3) *Mesh {
	var b Builder
	for _, t := range tris {
		b.AddTriangle(t[0], t[1], t[2])
	}
	return b.Mesh()
}

// Plane builds a horizontal grid of size x size centered on the origin at
// y = 0, split into divisions^2 quads facing +Y.
func Plane(size float32, divisions int) *Mesh {
	if divisions < 1 {
		divisions = 1
	}
	var b Builder
	step := size / float32(divisions)
	half := size / 2
	for i := 0; i < divisions; i++ {
		for j := 0; j < divisions; j++ {
			x0 := -half + float32(i)*step
			z0 := -half + float32(j)*step
			x1, z1 := x0+step, z0+step
			b.AddQuad(
				rl.Vector3{X: x0, Z: z0},
				rl.Vector3{X: x0, Z: z1},
				rl.Vector3{X: x1, Z: z1},
				rl.Vector3{X: x1, Z: z0},
			)
		}
	}
	return b.Mesh()
}

// Room builds the four inward-facing walls of a size x height x size box
// centered on the origin, standing on y = 0.
func Room(size, height float32) *Mesh {
	var b Builder
	h := size / 2
	corners := [4]rl.Vector3{
		{X: -h, Z: -h},
		{X: h, Z: -h},
		{X: h, Z: h},
		{X: -h, Z: h},
	}
	for i := range corners {
		p0 := corners[i]
		p1 := corners[(i+1)%4]
		up0 := rl.Vector3{X: p0.X, Y: height, Z: p0.Z}
		up1 := rl.Vector3{X: p1.X, Y: height, Z: p1.Z}
		b.AddQuad(p0, p1, up1, up0)
	}
	return b.Mesh()
}
