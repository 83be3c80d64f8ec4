package gravity

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestActivePrefersNearestContainingSource(t *testing.T) {
	var f Field
	down := &Source{Name: "down", Direction: rl.Vector3{Y: -1}, Strength: 9.8, Fixed: true}
	a := &Source{Name: "a", Position: rl.Vector3{X: 10}, Radius: 20, Strength: 5}
	b := &Source{Name: "b", Position: rl.Vector3{X: -5}, Radius: 20, Strength: 5}
	f.Add(down)
	f.Add(a)
	f.Add(b)

	assert.Same(t, b, f.Active(rl.Vector3{}))
	assert.Same(t, a, f.Active(rl.Vector3{X: 8}))
	assert.Same(t, down, f.Active(rl.Vector3{X: 100}), "outside every radius")

	f.Reset()
	assert.Nil(t, f.Active(rl.Vector3{}))
}

func assertDir(t *testing.T, want, got rl.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-6)
	assert.InDelta(t, want.Y, got.Y, 1e-6)
	assert.InDelta(t, want.Z, got.Z, 1e-6)
}

func TestPull(t *testing.T) {
	fixed := &Source{Direction: rl.Vector3{Y: -3}, Fixed: true}
	assertDir(t, rl.Vector3{Y: -1}, fixed.Pull(rl.Vector3{X: 50}))

	planet := &Source{Position: rl.Vector3{Y: -10}, Radius: 50}
	assertDir(t, rl.Vector3{Y: -1}, planet.Pull(rl.Vector3{}))
	assertDir(t, rl.Vector3{X: 1}, planet.Pull(rl.Vector3{X: -4, Y: -10}))

	// At the center the source falls back to its direction.
	assertDir(t, rl.Vector3{Y: -1}, planet.Pull(rl.Vector3{Y: -10}))
}
