package stage

import (
	"fmt"
	"log"

	"sectorcollide/internal/actor"
	"sectorcollide/internal/behavior"
	"sectorcollide/internal/geom"
	"sectorcollide/internal/gravity"
	"sectorcollide/internal/mesh"
	"sectorcollide/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Library holds meshes loaded elsewhere, looked up by terrain mesh name
// after the stage's own procedural meshes.
type Library map[string]*mesh.Mesh

func (p PhysicsDef) config() physics.Config {
	return physics.Config{
		GridUnits:    p.GridUnits,
		CellSize:     vec(p.CellSize),
		Skin:         p.Skin,
		UpTurnRate:   p.UpTurnRate,
		MaxUpTurn:    p.MaxUpTurn,
		MaxFallSpeed: p.MaxFallSpeed,
		Verbose:      p.Verbose,
	}
}

func (m MeshDef) build() (*mesh.Mesh, error) {
	switch m.Kind {
	case "plane":
		if !(m.Size > 0) {
			return nil, fmt.Errorf("mesh %q: plane size %v", m.Name, m.Size)
		}
		return mesh.Plane(m.Size, m.Divisions), nil
	case "room":
		if !(m.Size > 0) || !(m.Height > 0) {
			return nil, fmt.Errorf("mesh %q: room size %v height %v", m.Name, m.Size, m.Height)
		}
		return mesh.Room(m.Size, m.Height), nil
	case "triangles":
		tris := make([][3]rl.Vector3, len(m.Triangles))
		for i, t := range m.Triangles {
			tris[i] = [3]rl.Vector3{
				{X: t[0], Y: t[1], Z: t[2]},
				{X: t[3], Y: t[4], Z: t[5]},
				{X: t[6], Y: t[7], Z: t[8]},
			}
		}
		return mesh.FromTriangles(tris), nil
	}
	return nil, fmt.Errorf("mesh %q: unknown kind %q", m.Name, m.Kind)
}

func (t TerrainDef) transform() geom.Transform {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	return geom.Transform{
		Position:  vec(t.Position),
		Direction: vecOr(t.Direction, rl.Vector3{Z: 1}),
		Up:        vecOr(t.Up, rl.Vector3{Y: 1}),
		Scale:     scale,
	}
}

func (g GravityDef) source() *gravity.Source {
	return &gravity.Source{
		Name:      g.Name,
		Position:  vec(g.Position),
		Direction: vecOr(g.Direction, rl.Vector3{Y: -1}),
		Radius:    g.Radius,
		Strength:  g.Strength,
		Fixed:     g.Fixed,
	}
}

func (a ActorDef) build() (*actor.Actor, error) {
	shape, err := lookup(shapeByName, "shape", a.Shape)
	if err != nil {
		return nil, fmt.Errorf("actor %q: %w", a.Name, err)
	}
	coll, err := lookup(collisionByName, "collision type", a.Collision)
	if err != nil {
		return nil, fmt.Errorf("actor %q: %w", a.Name, err)
	}
	kind, err := lookup(kindByName, "kind", a.Kind)
	if err != nil {
		return nil, fmt.Errorf("actor %q: %w", a.Name, err)
	}
	mode, err := lookup(modeByName, "mode", a.Mode)
	if err != nil {
		return nil, fmt.Errorf("actor %q: %w", a.Name, err)
	}
	if a.HalfSize[0] <= 0 {
		return nil, fmt.Errorf("actor %q: half size %v", a.Name, a.HalfSize)
	}

	out := actor.New(actor.ID(a.ID), a.Name, shape, vec(a.HalfSize))
	out.Position = vec(a.Position)
	out.Direction = vecOr(a.Direction, out.Direction)
	out.Up = vecOr(a.Up, out.Up)
	if a.Scale != 0 {
		out.Scale = a.Scale
	}
	out.Collision = coll
	out.Kind = kind
	out.Mode = mode
	if a.Enabled != nil {
		out.CollisionEnabled = *a.Enabled
	}
	switch {
	case a.Behavior != "":
		b, err := behavior.Create(a.Behavior, a.Props)
		if err != nil {
			return nil, fmt.Errorf("actor %q: %w", a.Name, err)
		}
		out.Behavior = b
	case a.Velocity != [3]float32{}:
		out.Behavior = &behavior.Drift{Velocity: vec(a.Velocity)}
	}
	return out, nil
}

// Build creates the world described by f. The first error aborts the load.
func (f *File) Build(lib Library) (*physics.World, error) {
	w, err := physics.NewWorld(f.Physics.config())
	if err != nil {
		return nil, err
	}

	meshes := make(map[string]*mesh.Mesh, len(f.Meshes))
	for _, def := range f.Meshes {
		m, err := def.build()
		if err != nil {
			return nil, err
		}
		meshes[def.Name] = m
	}

	for _, def := range f.Terrains {
		m, ok := meshes[def.Mesh]
		if !ok {
			m, ok = lib[def.Mesh]
		}
		if !ok {
			return nil, fmt.Errorf("terrain %q: %w %q", def.Name, ErrUnknownMesh, def.Mesh)
		}
		_, err := w.AddTerrain(physics.TerrainSpec{
			Name:      def.Name,
			Mesh:      m,
			Transform: def.transform(),
			Ground:    def.Ground,
			Wall:      def.Wall,
		})
		if err != nil {
			return nil, err
		}
	}

	for _, def := range f.Gravity {
		w.AddGravity(def.source())
	}

	for _, def := range f.Actors {
		a, err := def.build()
		if err != nil {
			return nil, err
		}
		if err := w.AddActor(a); err != nil {
			return nil, err
		}
	}

	log.Printf("Stage: loaded %d terrains, %d gravity sources, %d actors",
		len(f.Terrains), len(f.Gravity), len(f.Actors))
	return w, nil
}
