package actor

import (
	"testing"

	"sectorcollide/internal/narrow"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func sphereAt(id ID, pos rl.Vector3, r float32) *Actor {
	a := New(id, "s", narrow.Sphere, rl.Vector3{X: r, Y: r, Z: r})
	a.Position = pos
	return a
}

func TestPendingDisplacementAccumulates(t *testing.T) {
	a := sphereAt(1, rl.Vector3{}, 1)
	a.Push(rl.Vector3{X: 1})
	a.Push(rl.Vector3{X: 0.5, Y: 2})
	assert.Equal(t, rl.Vector3{}, a.Position, "pushes are deferred")
	assert.Equal(t, rl.Vector3{X: 1.5, Y: 2}, a.Pending())

	a.SetPosition(rl.Vector3{Z: 1})
	assert.Equal(t, rl.Vector3{X: 1.5, Y: 2, Z: 1}, a.Position)
	assert.Equal(t, rl.Vector3{}, a.Pending())

	a.SetPosition(rl.Vector3{})
	assert.Equal(t, rl.Vector3{}, a.Position, "pending is applied once")
}

func TestWorldShape(t *testing.T) {
	s := sphereAt(1, rl.Vector3{}, 0.5)
	s.Scale = 2
	assert.Equal(t, narrow.Sphere, s.WorldShape().Kind)
	assert.Equal(t, float32(1), s.WorldShape().Radius)
	assert.Equal(t, float32(1), s.HalfHeight())

	b := New(2, "b", narrow.Box, rl.Vector3{X: 1, Y: 2, Z: 3})
	assert.Equal(t, float32(2), b.HalfHeight())
	assert.InDelta(t, 1, b.RadiusAlong(rl.Vector3{X: 1}), 1e-5)
	assert.InDelta(t, 3, b.RadiusAlong(rl.Vector3{Z: -1}), 1e-5)

	p := New(3, "p", narrow.Polygon, rl.Vector3{X: 1, Y: 1, Z: 1})
	assert.Equal(t, narrow.Polygon, p.WorldShape().Kind)
}

func TestCompatibility(t *testing.T) {
	assert.False(t, Compatible(KindPlayerAttack, KindItem))
	assert.False(t, Compatible(KindItem, KindPlayerAttack))
	assert.True(t, Compatible(KindPlayer, KindEnemy))
	assert.True(t, Compatible(KindEnemy, KindPlayer))
	assert.True(t, Compatible(KindItem, KindPlayer))
	assert.False(t, Compatible(KindPlayerAttack, KindPlayer))
	assert.False(t, Compatible(KindEnemyAttack, KindEnemy))
	assert.False(t, Compatible(Kind(99), KindPlayer))

	for i := Kind(0); i < kindCount; i++ {
		for j := Kind(0); j < kindCount; j++ {
			assert.Equal(t, Compatible(i, j), Compatible(j, i), "%v/%v", i, j)
		}
	}
}

func TestResistanceSplit(t *testing.T) {
	a, b := Split(Character, Character)
	assert.InDelta(t, 0.5, a, 1e-6)
	assert.InDelta(t, 0.5, b, 1e-6)

	a, b = Split(Character, SolidObject)
	assert.Equal(t, float32(1), a)
	assert.Equal(t, float32(0), b)

	a, b = Split(SolidObject, Character)
	assert.Equal(t, float32(0), a)
	assert.Equal(t, float32(1), b)

	a, b = Split(Item, Item)
	assert.Zero(t, a)
	assert.Zero(t, b)

	for i := CollisionType(0); i < collisionTypeCount; i++ {
		assert.Zero(t, Resistance(SolidObject, i), "solid objects never move")
	}
}

func TestClassify(t *testing.T) {
	lower := sphereAt(1, rl.Vector3{}, 1)
	upper := sphereAt(2, rl.Vector3{Y: 1.5}, 1)

	a, b := Classify(lower, upper)
	assert.Equal(t, CaseUpper, a)
	assert.Equal(t, CaseLower, b)

	a, b = Classify(upper, lower)
	assert.Equal(t, CaseLower, a)
	assert.Equal(t, CaseUpper, b)

	side := sphereAt(3, rl.Vector3{X: 1.5, Y: 0.5}, 1)
	a, b = Classify(lower, side)
	assert.Equal(t, CaseCenter, a)
	assert.Equal(t, CaseCenter, b)

	same := sphereAt(4, rl.Vector3{}, 1)
	a, b = Classify(lower, same)
	assert.Equal(t, CaseCenter, a)
	assert.Equal(t, CaseCenter, b)

	flipped := sphereAt(5, rl.Vector3{Y: 1.5}, 1)
	flipped.Up = rl.Vector3{Y: -1}
	a, b = Classify(lower, flipped)
	assert.Equal(t, CaseCenter, a)
	assert.Equal(t, CaseCenter, b)
}
