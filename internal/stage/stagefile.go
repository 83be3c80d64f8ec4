// Package stage reads TOML stage descriptions and builds the physics world
// they describe.
package stage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"sectorcollide/internal/actor"
	"sectorcollide/internal/narrow"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pelletier/go-toml/v2"
)

// ErrUnknownMesh is returned when a terrain names a mesh the stage does not define.
var ErrUnknownMesh = errors.New("unknown mesh")

// --- TOML types ---

type File struct {
	Physics  PhysicsDef   `toml:"physics"`
	Meshes   []MeshDef    `toml:"mesh"`
	Terrains []TerrainDef `toml:"terrain"`
	Gravity  []GravityDef `toml:"gravity"`
	Actors   []ActorDef   `toml:"actor"`
}

type PhysicsDef struct {
	GridUnits    [3]int     `toml:"grid_units"`
	CellSize     [3]float32 `toml:"cell_size"`
	Skin         float32    `toml:"skin"`
	UpTurnRate   float32    `toml:"up_turn_rate"`
	MaxUpTurn    float32    `toml:"max_up_turn"`
	MaxFallSpeed float32    `toml:"max_fall_speed"`
	Verbose      bool       `toml:"verbose"`
}

// MeshDef is a procedural mesh: "plane", "room" or "triangles".
type MeshDef struct {
	Name      string       `toml:"name"`
	Kind      string       `toml:"kind"`
	Size      float32      `toml:"size"`
	Height    float32      `toml:"height"`
	Divisions int          `toml:"divisions"`
	Triangles [][9]float32 `toml:"triangles"`
}

type TerrainDef struct {
	Name      string     `toml:"name"`
	Mesh      string     `toml:"mesh"`
	Position  [3]float32 `toml:"position"`
	Direction [3]float32 `toml:"direction"`
	Up        [3]float32 `toml:"up"`
	Scale     float32    `toml:"scale"`
	Ground    bool       `toml:"ground"`
	Wall      bool       `toml:"wall"`
}

type GravityDef struct {
	Name      string     `toml:"name"`
	Position  [3]float32 `toml:"position"`
	Direction [3]float32 `toml:"direction"`
	Radius    float32    `toml:"radius"`
	Strength  float32    `toml:"strength"`
	Fixed     bool       `toml:"fixed"`
}

type ActorDef struct {
	ID        uint32         `toml:"id"`
	Name      string         `toml:"name"`
	Shape     string         `toml:"shape"`
	HalfSize  [3]float32     `toml:"half_size"`
	Position  [3]float32     `toml:"position"`
	Direction [3]float32     `toml:"direction"`
	Up        [3]float32     `toml:"up"`
	Scale     float32        `toml:"scale"`
	Collision string         `toml:"collision"`
	Kind      string         `toml:"kind"`
	Mode      string         `toml:"mode"`
	Enabled   *bool          `toml:"collision_enabled,omitempty"`
	Velocity  [3]float32     `toml:"velocity"`
	Behavior  string         `toml:"behavior,omitempty"`
	Props     map[string]any `toml:"props,omitempty"`
}

// --- Name mapping ---

var shapeByName = map[string]narrow.Kind{
	"":        narrow.Sphere,
	"sphere":  narrow.Sphere,
	"box":     narrow.Box,
	"polygon": narrow.Polygon,
}

var collisionByName = map[string]actor.CollisionType{
	"":          actor.Character,
	"character": actor.Character,
	"solid":     actor.SolidObject,
	"item":      actor.Item,
}

var kindByName = map[string]actor.Kind{
	"":              actor.KindNeutral,
	"neutral":       actor.KindNeutral,
	"player":        actor.KindPlayer,
	"enemy":         actor.KindEnemy,
	"player-attack": actor.KindPlayerAttack,
	"enemy-attack":  actor.KindEnemyAttack,
	"item":          actor.KindItem,
}

var modeByName = map[string]actor.MoveMode{
	"":          actor.ModeWalk,
	"walk":      actor.ModeWalk,
	"ballistic": actor.ModeBallistic,
	"path":      actor.ModePathFollow,
}

func lookup[T any](table map[string]T, what, name string) (T, error) {
	v, ok := table[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown %s %q", what, name)
	}
	return v, nil
}

func vec(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// vecOr returns fallback for an unset (all zero) vector.
func vecOr(v [3]float32, fallback rl.Vector3) rl.Vector3 {
	if v == [3]float32{} {
		return fallback
	}
	return vec(v)
}

// --- Loading ---

// Parse decodes a stage description. Unknown keys are errors.
func Parse(r io.Reader) (*File, error) {
	var f File
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("parse stage: line %d column %d: %w", row, col, err)
		}
		return nil, fmt.Errorf("parse stage: %w", err)
	}
	return &f, nil
}

// Load reads and decodes the stage file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stage: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Encode writes f as TOML.
func (f *File) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w).SetIndentTables(true)
	return enc.Encode(f)
}
