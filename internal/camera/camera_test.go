package camera

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got rl.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4)
	assert.InDelta(t, want.Y, got.Y, 1e-4)
	assert.InDelta(t, want.Z, got.Z, 1e-4)
}

func TestLookAt(t *testing.T) {
	c := New(rl.Vector3{}, rl.Vector3{Z: 10})
	assert.InDelta(t, 90, c.Yaw, 1e-3)
	assert.InDelta(t, 0, c.Pitch, 1e-3)
	assertVec(t, rl.Vector3{Z: 1}, c.Look())

	c.LookAt(rl.Vector3{Y: 100})
	assert.InDelta(t, 89, c.Pitch, 1e-3)

	// Looking at its own position leaves the camera unchanged.
	c.LookAt(c.Position)
	assert.InDelta(t, 89, c.Pitch, 1e-3)
}

func TestUpdateMovesAlongView(t *testing.T) {
	c := New(rl.Vector3{}, rl.Vector3{X: 1})
	c.MoveSpeed = 2

	c.Update(Input{Forward: 1}, 0.5)
	assertVec(t, rl.Vector3{X: 1}, c.Position)

	c.Update(Input{Right: 1}, 0.5)
	assertVec(t, rl.Vector3{X: 1, Z: 1}, c.Position)

	c.Update(Input{Up: -1, Boost: true}, 0.5)
	assertVec(t, rl.Vector3{X: 1, Y: -4, Z: 1}, c.Position)
}

func TestDiagonalNotFaster(t *testing.T) {
	c := New(rl.Vector3{}, rl.Vector3{X: 1})
	c.MoveSpeed = 1
	c.Update(Input{Forward: 1, Right: 1, Up: 1}, 1)
	assert.InDelta(t, 1, rl.Vector3Length(c.Position), 1e-4)
}

func TestPitchClamped(t *testing.T) {
	c := New(rl.Vector3{}, rl.Vector3{X: 1})
	c.Update(Input{Look: rl.Vector2{Y: -10000}}, 0)
	assert.Equal(t, float32(89), c.Pitch)

	cam := c.Camera3D()
	assertVec(t, rl.Vector3Add(c.Position, c.Look()), cam.Target)
}
