// Package actor holds the collision facet of a moving game actor: its
// placement, shape, collision tags and the state the pipeline writes back
// each tick.
package actor

import (
	"fmt"

	"sectorcollide/internal/geom"
	"sectorcollide/internal/narrow"
	"sectorcollide/internal/sector"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ID orders actors; lower IDs win ties inside a cell.
type ID uint32

// MoveMode selects how planar movement is clamped against terrain.
type MoveMode uint8

const (
	ModeWalk MoveMode = iota
	// ModeBallistic actors ignore ground terrain while moving.
	ModeBallistic
	// ModePathFollow actors ignore ground terrain while moving.
	ModePathFollow
)

func (m MoveMode) String() string {
	switch m {
	case ModeWalk:
		return "walk"
	case ModeBallistic:
		return "ballistic"
	case ModePathFollow:
		return "path"
	}
	return fmt.Sprintf("MoveMode(%d)", uint8(m))
}

// Behavior is the hook into whatever drives the actor. Displacement is asked
// once per tick; OnCollision fires for every contact with another actor.
type Behavior interface {
	Displacement(self *Actor, dt float32) rl.Vector3
	OnCollision(self, other *Actor, c Case)
}

// Actor is the collision facet. Exported fields are read and written by the
// pipeline; the behavior layer should only change Direction, Up and Mode, or
// call MarkDead.
type Actor struct {
	ID        ID
	Name      string
	Position  rl.Vector3
	Direction rl.Vector3
	Up        rl.Vector3
	Scale     float32

	// Shape is Sphere, Box or Polygon. HalfSize is the unscaled half-size;
	// spheres use HalfSize.X as radius.
	Shape     narrow.Kind
	HalfSize  rl.Vector3
	Collision CollisionType
	Kind      Kind
	Mode      MoveMode

	CollisionEnabled bool
	OnGround         bool
	OnWall           bool
	Sector           sector.Coord
	VerticalSpeed    float32

	Behavior Behavior

	pending rl.Vector3
	dead    bool
}

// New returns an actor with an identity orientation and collision enabled.
func New(id ID, name string, shape narrow.Kind, halfSize rl.Vector3) *Actor {
	return &Actor{
		ID:               id,
		Name:             name,
		Direction:        rl.Vector3{Z: 1},
		Up:               rl.Vector3{Y: 1},
		Scale:            1,
		Shape:            shape,
		HalfSize:         halfSize,
		Collision:        Character,
		Kind:             KindNeutral,
		CollisionEnabled: true,
	}
}

func (a *Actor) String() string {
	return fmt.Sprintf("%s#%d", a.Name, a.ID)
}

// SetPosition moves the actor to p plus any pending displacement, then
// clears the pending displacement.
func (a *Actor) SetPosition(p rl.Vector3) {
	a.Position = rl.Vector3Add(p, a.pending)
	a.pending = rl.Vector3{}
}

// Push accumulates a displacement applied on the next SetPosition.
func (a *Actor) Push(d rl.Vector3) {
	a.pending = rl.Vector3Add(a.pending, d)
}

// Pending returns the displacement waiting for the next SetPosition.
func (a *Actor) Pending() rl.Vector3 { return a.pending }

func (a *Actor) MarkDead()  { a.dead = true }
func (a *Actor) Dead() bool { return a.dead }

// WorldShape returns the shape at the actor's current scale and orientation.
func (a *Actor) WorldShape() narrow.Shape {
	s := a.scale()
	switch a.Shape {
	case narrow.Sphere:
		return narrow.NewSphere(a.HalfSize.X * s)
	case narrow.Box:
		return narrow.NewBox(rl.Vector3Scale(a.HalfSize, s), a.Direction, a.Up)
	}
	return narrow.Shape{Kind: a.Shape}
}

// Body places the world shape at the actor's position.
func (a *Actor) Body() narrow.Body {
	return narrow.Body{Shape: a.WorldShape(), Center: a.Position}
}

// HalfHeight is the half-extent along the actor's own up vector.
func (a *Actor) HalfHeight() float32 {
	if a.Shape == narrow.Sphere {
		return a.HalfSize.X * a.scale()
	}
	return a.HalfSize.Y * a.scale()
}

// RadiusAlong returns the half-extent of the world shape projected onto a
// unit axis.
func (a *Actor) RadiusAlong(axis rl.Vector3) float32 {
	switch a.Shape {
	case narrow.Sphere:
		return a.HalfSize.X * a.scale()
	case narrow.Box:
		return a.WorldShape().OBB(a.Position).Project(axis)
	}
	return rl.Vector3Length(rl.Vector3Scale(a.HalfSize, a.scale()))
}

// Forward returns the normalized facing direction.
func (a *Actor) Forward() rl.Vector3 {
	_, _, fwd := geom.Basis(a.Direction, a.Up)
	return fwd
}

func (a *Actor) scale() float32 {
	if a.Scale <= 0 {
		return 1
	}
	return a.Scale
}
