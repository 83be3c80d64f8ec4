package mesh

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaneTriangles(t *testing.T) {
	m := Plane(10, 4)
	require.NoError(t, m.Validate())
	assert.Equal(t, 32, m.TriangleCount())
	assert.Len(t, m.Triangles(), 32)

	box := m.Bounds()
	assert.InDelta(t, -5, box.Min.X, 1e-5)
	assert.InDelta(t, 5, box.Max.Z, 1e-5)
	assert.InDelta(t, 0, box.Max.Y, 1e-5)
}

func TestTriangleResolvesThroughSubmesh(t *testing.T) {
	m := &Mesh{
		Vertices: []Vertex{
			{Position: rl.Vector3{X: 9}},
			{Position: rl.Vector3{X: 0}},
			{Position: rl.Vector3{X: 1}},
			{Position: rl.Vector3{Y: 1}},
		},
		Indices:   []uint32{7, 7, 0, 1, 2},
		Submeshes: []Submesh{{BaseVertex: 1, BaseIndex: 2, IndexCount: 3}},
	}
	require.NoError(t, m.Validate())

	refs := m.Triangles()
	require.Len(t, refs, 1)
	a, b, c := m.Triangle(refs[0])
	assert.Equal(t, rl.Vector3{X: 0}, a)
	assert.Equal(t, rl.Vector3{X: 1}, b)
	assert.Equal(t, rl.Vector3{Y: 1}, c)
}

func TestValidateRejectsBadBuffers(t *testing.T) {
	m := FromTriangles([][3]rl.Vector3{{{}, {X: 1}, {Y: 1}}})
	m.Submeshes[0].IndexCount = 2
	assert.ErrorIs(t, m.Validate(), ErrMalformed)

	m = FromTriangles([][3]rl.Vector3{{{}, {X: 1}, {Y: 1}}})
	m.Indices[2] = 99
	assert.ErrorIs(t, m.Validate(), ErrMalformed)

	m = FromTriangles([][3]rl.Vector3{{{}, {X: 1}, {Y: 1}}})
	m.Submeshes[0].IndexCount = 6
	assert.ErrorIs(t, m.Validate(), ErrMalformed)
}

func TestRoomWallsFaceInward(t *testing.T) {
	m := Room(10, 3)
	require.NoError(t, m.Validate())
	for i := 0; i < len(m.Vertices); i += 3 {
		v := m.Vertices[i]
		// Inward normals point back toward the vertical center line.
		toCenter := rl.Vector3{X: -v.Position.X, Z: -v.Position.Z}
		assert.Greater(t, rl.Vector3DotProduct(v.Normal, toCenter), float32(0))
	}
}
