package physics

import (
	"fmt"
	"log"

	"sectorcollide/internal/bvh"
	"sectorcollide/internal/geom"
	"sectorcollide/internal/mesh"
	"sectorcollide/internal/narrow"
)

// TerrainSpec places one static mesh in the stage.
type TerrainSpec struct {
	Name      string
	Mesh      *mesh.Mesh
	Transform geom.Transform
	Ground    bool
	Wall      bool
}

// Terrain is a placed, indexed mesh. Its index is immutable once built.
type Terrain struct {
	Name      string
	Transform geom.Transform
	Ground    bool
	Wall      bool
	Index     *bvh.Index
}

func (t *Terrain) target() narrow.Target {
	return narrow.Target{Index: t.Index, Transform: t.Transform}
}

// Bounds returns the world-space box enclosing the terrain's root box.
func (t *Terrain) Bounds() geom.AABB {
	rb := t.Index.RootBox()
	out := geom.EmptyAABB()
	for i := 0; i < 8; i++ {
		c := rb.Min
		if i&1 != 0 {
			c.X = rb.Max.X
		}
		if i&2 != 0 {
			c.Y = rb.Max.Y
		}
		if i&4 != 0 {
			c.Z = rb.Max.Z
		}
		out = out.Extend(t.Transform.PointToWorld(c))
	}
	return out
}

// AddTerrain indexes spec's mesh and adds it to the stage. Any error aborts
// the stage load.
func (w *World) AddTerrain(spec TerrainSpec) (*Terrain, error) {
	if spec.Mesh == nil {
		return nil, fmt.Errorf("terrain %q: %w: no mesh", spec.Name, mesh.ErrMalformed)
	}
	if err := spec.Transform.Validate(); err != nil {
		return nil, fmt.Errorf("terrain %q: %w", spec.Name, err)
	}
	ix, err := bvh.Build(spec.Mesh, geom.EmptyAABB())
	if err != nil {
		return nil, fmt.Errorf("terrain %q: %w", spec.Name, err)
	}

	t := &Terrain{
		Name:      spec.Name,
		Transform: spec.Transform,
		Ground:    spec.Ground,
		Wall:      spec.Wall,
		Index:     ix,
	}
	w.terrains = append(w.terrains, t)

	st := ix.Stats()
	log.Printf("Physics: terrain %q indexed (%d triangles, %d nodes, depth %d, ground=%v wall=%v)",
		t.Name, spec.Mesh.TriangleCount(), st.Nodes, st.Depth, t.Ground, t.Wall)
	return t, nil
}

// Terrains returns the stage's terrain instances.
func (w *World) Terrains() []*Terrain { return w.terrains }
