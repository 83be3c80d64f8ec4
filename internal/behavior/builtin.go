package behavior

import (
	"fmt"
	"log"

	"sectorcollide/internal/actor"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	Register("drift", newDrift)
	Register("collectible", newCollectible)
	Register("spinner", newSpinner)
}

// Drift moves at a constant velocity, reverses off walls and counts its
// contacts.
type Drift struct {
	Velocity rl.Vector3
	Contacts int
}

func newDrift(props map[string]any) (actor.Behavior, error) {
	v, err := propVec(props, "velocity")
	if err != nil {
		return nil, err
	}
	return &Drift{Velocity: rl.Vector3{X: v[0], Y: v[1], Z: v[2]}}, nil
}

func (d *Drift) Displacement(self *actor.Actor, dt float32) rl.Vector3 {
	if self.OnWall {
		d.Velocity = rl.Vector3Negate(d.Velocity)
	}
	return rl.Vector3Scale(d.Velocity, dt)
}

func (d *Drift) OnCollision(self, other *actor.Actor, c actor.Case) {
	d.Contacts++
}

// Collectible stays put and removes itself the first time an actor of the
// target kind touches it.
type Collectible struct {
	Points    float32
	Target    actor.Kind
	Collected bool
}

var kindNames = map[string]actor.Kind{
	"player": actor.KindPlayer,
	"enemy":  actor.KindEnemy,
}

func newCollectible(props map[string]any) (actor.Behavior, error) {
	points, err := propFloat(props, "points", 10)
	if err != nil {
		return nil, err
	}
	name, err := propString(props, "target", "player")
	if err != nil {
		return nil, err
	}
	kind, ok := kindNames[name]
	if !ok {
		return nil, fmt.Errorf("prop %q: unknown kind %q", "target", name)
	}
	return &Collectible{Points: points, Target: kind}, nil
}

func (c *Collectible) Displacement(self *actor.Actor, dt float32) rl.Vector3 {
	return rl.Vector3{}
}

func (c *Collectible) OnCollision(self, other *actor.Actor, _ actor.Case) {
	if c.Collected || other.Kind != c.Target {
		return
	}
	c.Collected = true
	log.Printf("Behavior: %v collected by %v (+%.0f points)", self, other, c.Points)
	self.MarkDead()
}

// Spinner turns the actor's facing around its up vector.
type Spinner struct {
	// Speed in degrees per second.
	Speed float32
}

func newSpinner(props map[string]any) (actor.Behavior, error) {
	speed, err := propFloat(props, "speed", 90)
	if err != nil {
		return nil, err
	}
	return &Spinner{Speed: speed}, nil
}

func (s *Spinner) Displacement(self *actor.Actor, dt float32) rl.Vector3 {
	q := rl.QuaternionFromAxisAngle(rl.Vector3Normalize(self.Up), s.Speed*dt*rl.Deg2rad)
	self.Direction = rl.Vector3RotateByQuaternion(self.Direction, q)
	return rl.Vector3{}
}

func (s *Spinner) OnCollision(self, other *actor.Actor, c actor.Case) {}
