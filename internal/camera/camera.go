// Package camera provides the free-flying debug camera used by the stage
// viewer.
package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type FlyCamera struct {
	Position  rl.Vector3
	Yaw       float32 // degrees, 0 looks down +X
	Pitch     float32 // degrees
	MoveSpeed float32 // units per second
	LookSpeed float32 // degrees per pixel of mouse travel
	Boost     float32 // speed multiplier while shift is held
}

// New returns a camera at pos looking at target.
func New(pos, target rl.Vector3) *FlyCamera {
	c := &FlyCamera{
		Position:  pos,
		MoveSpeed: 15,
		LookSpeed: 0.15,
		Boost:     4,
	}
	c.LookAt(target)
	return c
}

// LookAt turns the camera towards target.
func (c *FlyCamera) LookAt(target rl.Vector3) {
	d := rl.Vector3Subtract(target, c.Position)
	if rl.Vector3Length(d) == 0 {
		return
	}
	d = rl.Vector3Normalize(d)
	c.Yaw = math32.Atan2(d.Z, d.X) * rl.Rad2deg
	c.Pitch = clampPitch(math32.Asin(d.Y) * rl.Rad2deg)
}

func clampPitch(p float32) float32 {
	return math32.Max(-89, math32.Min(89, p))
}

// Input is one frame of movement intent; each axis is in [-1, 1].
type Input struct {
	Forward, Right, Up float32
	Look               rl.Vector2
	Boost              bool
}

// ReadInput samples the keyboard and mouse. Mouse look only applies while
// the right button is held.
func ReadInput() Input {
	var in Input
	if rl.IsKeyDown(rl.KeyW) {
		in.Forward++
	}
	if rl.IsKeyDown(rl.KeyS) {
		in.Forward--
	}
	if rl.IsKeyDown(rl.KeyD) {
		in.Right++
	}
	if rl.IsKeyDown(rl.KeyA) {
		in.Right--
	}
	if rl.IsKeyDown(rl.KeyE) {
		in.Up++
	}
	if rl.IsKeyDown(rl.KeyQ) {
		in.Up--
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		in.Look = rl.GetMouseDelta()
	}
	in.Boost = rl.IsKeyDown(rl.KeyLeftShift)
	return in
}

// Update applies one frame of input.
func (c *FlyCamera) Update(in Input, dt float32) {
	c.Yaw += in.Look.X * c.LookSpeed
	c.Pitch = clampPitch(c.Pitch - in.Look.Y*c.LookSpeed)

	forward, right := c.directions()
	move := rl.Vector3Scale(forward, in.Forward)
	move = rl.Vector3Add(move, rl.Vector3Scale(right, in.Right))
	move.Y += in.Up

	// Normalize so diagonals are not faster.
	if l := rl.Vector3Length(move); l > 1 {
		move = rl.Vector3Scale(move, 1/l)
	}
	speed := c.MoveSpeed
	if in.Boost {
		speed *= c.Boost
	}
	c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(move, speed*dt))
}

// directions returns the horizontal forward and right vectors.
func (c *FlyCamera) directions() (forward, right rl.Vector3) {
	yaw := c.Yaw * rl.Deg2rad
	forward = rl.Vector3{X: math32.Cos(yaw), Z: math32.Sin(yaw)}
	right = rl.Vector3{X: -math32.Sin(yaw), Z: math32.Cos(yaw)}
	return
}

// Look returns the unit view direction.
func (c *FlyCamera) Look() rl.Vector3 {
	yaw := c.Yaw * rl.Deg2rad
	pitch := c.Pitch * rl.Deg2rad
	return rl.Vector3{
		X: math32.Cos(yaw) * math32.Cos(pitch),
		Y: math32.Sin(pitch),
		Z: math32.Sin(yaw) * math32.Cos(pitch),
	}
}

func (c *FlyCamera) Camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position,
		Target:     rl.Vector3Add(c.Position, c.Look()),
		Up:         rl.Vector3{Y: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}
