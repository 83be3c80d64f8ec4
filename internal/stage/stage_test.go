package stage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sectorcollide/internal/actor"
	"sectorcollide/internal/behavior"
	"sectorcollide/internal/bvh"
	"sectorcollide/internal/mesh"
	"sectorcollide/internal/narrow"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arena = `
[physics]
grid_units = [8, 2, 8]
cell_size = [5, 5, 5]
skin = 0.02

[[mesh]]
name = "floor"
kind = "plane"
size = 40
divisions = 4

[[mesh]]
name = "walls"
kind = "room"
size = 40
height = 6

[[terrain]]
name = "floor"
mesh = "floor"
ground = true

[[terrain]]
name = "walls"
mesh = "walls"
wall = true

[[gravity]]
name = "down"
direction = [0, -1, 0]
strength = 20
fixed = true

[[actor]]
id = 1
name = "player"
shape = "sphere"
half_size = [0.5, 0.5, 0.5]
position = [0, 2, 0]
kind = "player"
velocity = [3, 0, 0]

[[actor]]
id = 2
name = "crate"
shape = "box"
half_size = [1, 1, 1]
position = [5, 1, 5]
collision = "solid"
collision_enabled = false
`

func TestBuildArena(t *testing.T) {
	f, err := Parse(strings.NewReader(arena))
	require.NoError(t, err)

	w, err := f.Build(nil)
	require.NoError(t, err)

	cfg := w.Config()
	assert.Equal(t, [3]int{8, 2, 8}, cfg.GridUnits)
	assert.Equal(t, float32(0.02), cfg.Skin)
	assert.Len(t, w.Terrains(), 2)
	assert.Equal(t, 1, w.Gravity().Len())
	require.Len(t, w.Actors(), 2)

	player, ok := w.Actor(1)
	require.True(t, ok)
	assert.Equal(t, narrow.Sphere, player.Shape)
	assert.Equal(t, actor.KindPlayer, player.Kind)
	assert.Equal(t, actor.Character, player.Collision)
	require.IsType(t, &behavior.Drift{}, player.Behavior)

	crate, ok := w.Actor(2)
	require.True(t, ok)
	assert.Equal(t, narrow.Box, crate.Shape)
	assert.Equal(t, actor.SolidObject, crate.Collision)
	assert.False(t, crate.CollisionEnabled)

	for i := 0; i < 120; i++ {
		w.Tick(1.0 / 60.0)
	}
	assert.True(t, player.OnGround)
	assert.Greater(t, player.Position.X, float32(1))
}

func TestDriftBouncesOffWalls(t *testing.T) {
	f, err := Parse(strings.NewReader(arena))
	require.NoError(t, err)
	w, err := f.Build(nil)
	require.NoError(t, err)

	player, _ := w.Actor(1)
	for i := 0; i < 60*15; i++ {
		w.Tick(1.0 / 60.0)
	}
	// The room is 40 wide; without walls the player would be at x = 45.
	assert.Less(t, player.Position.X, float32(20))
	assert.Greater(t, player.Position.X, float32(-20))
}

func TestCollectiblePickedUp(t *testing.T) {
	src := `
[[actor]]
id = 1
name = "player"
half_size = [0.5, 0.5, 0.5]
kind = "player"

[[actor]]
id = 2
name = "coin"
half_size = [0.5, 0.5, 0.5]
position = [0.8, 0, 0]
collision = "item"
kind = "item"
behavior = "collectible"

[actor.props]
points = 50
`
	f, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	w, err := f.Build(nil)
	require.NoError(t, err)

	coin, ok := w.Actor(2)
	require.True(t, ok)
	c, ok := coin.Behavior.(*behavior.Collectible)
	require.True(t, ok)
	assert.Equal(t, float32(50), c.Points)

	w.Tick(1.0 / 60.0)
	_, ok = w.Actor(2)
	assert.False(t, ok)
	assert.True(t, c.Collected)
	assert.Equal(t, 1, w.Stats().Removed)

	player, _ := w.Actor(1)
	assert.Equal(t, float32(0), player.Position.X)
}

func TestUnknownBehavior(t *testing.T) {
	src := `
[[actor]]
id = 1
name = "ghost"
half_size = [1, 1, 1]
behavior = "haunt"
`
	f, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	_, err = f.Build(nil)
	assert.ErrorIs(t, err, behavior.ErrUnknownBehavior)
}

func TestUnknownMesh(t *testing.T) {
	src := `
[[terrain]]
name = "rock"
mesh = "boulder"
`
	f, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	_, err = f.Build(nil)
	assert.ErrorIs(t, err, ErrUnknownMesh)

	lib := Library{"boulder": mesh.FromTriangles([][3]rl.Vector3{
		{{X: 0}, {X: 1}, {Z: 1}},
	})}
	w, err := f.Build(lib)
	require.NoError(t, err)
	assert.Len(t, w.Terrains(), 1)
}

func TestBuildErrors(t *testing.T) {
	cases := map[string]string{
		"bad shape": `
[[actor]]
id = 1
shape = "capsule"
half_size = [1, 1, 1]
`,
		"bad kind": `
[[actor]]
id = 1
kind = "boss"
half_size = [1, 1, 1]
`,
		"no size": `
[[actor]]
id = 1
`,
		"bad mesh kind": `
[[mesh]]
name = "m"
kind = "torus"
`,
		"bad grid": `
[physics]
grid_units = [0, 1, 1]
`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			f, err := Parse(strings.NewReader(src))
			require.NoError(t, err)
			_, err = f.Build(nil)
			assert.Error(t, err)
		})
	}
}

func TestDuplicateActorAbortsLoad(t *testing.T) {
	src := `
[[actor]]
id = 7
half_size = [1, 1, 1]

[[actor]]
id = 7
half_size = [1, 1, 1]
`
	f, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	_, err = f.Build(nil)
	assert.Error(t, err)
}

func TestEmptyTrianglesMesh(t *testing.T) {
	src := `
[[mesh]]
name = "nothing"
kind = "triangles"

[[terrain]]
name = "void"
mesh = "nothing"
`
	f, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	_, err = f.Build(nil)
	assert.True(t, errors.Is(err, bvh.ErrEmptyMesh))
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("[physics]\ngravity = 3\n"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader("[[actor]\n"))
	assert.Error(t, err)
}

func TestLoadAndEncode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.toml")
	require.NoError(t, os.WriteFile(path, []byte(arena), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Actors, 2)

	var buf bytes.Buffer
	require.NoError(t, f.Encode(&buf))
	again, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, f.Actors[0].Velocity, again.Actors[0].Velocity)
	assert.Equal(t, *f.Actors[1].Enabled, *again.Actors[1].Enabled)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestShippedArenaLoads(t *testing.T) {
	f, err := Load(filepath.Join("..", "..", "assets", "stages", "arena.toml"))
	require.NoError(t, err)
	w, err := f.Build(nil)
	require.NoError(t, err)
	assert.Len(t, w.Terrains(), 3)
	assert.Len(t, w.Actors(), 6)

	for i := 0; i < 60; i++ {
		w.Tick(1.0 / 60.0)
	}
	player, ok := w.Actor(1)
	require.True(t, ok)
	assert.True(t, player.OnGround)
}
