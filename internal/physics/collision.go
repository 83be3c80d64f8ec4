package physics

import (
	"errors"

	"sectorcollide/internal/actor"
	"sectorcollide/internal/geom"
	"sectorcollide/internal/invariant"
	"sectorcollide/internal/narrow"
	"sectorcollide/internal/sector"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// separationSlack absorbs float error in the post-separation check.
const separationSlack = 1e-3

// resolveActors runs the actor-actor pass over neighboring sectors. Only
// pending displacements are written, so sector membership is stable during
// the walk.
func (w *World) resolveActors() {
	w.grid.ForEachNeighborPair(func(c0, c1 sector.Coord, a0, a1 []*actor.Actor) bool {
		for _, x := range a0 {
			for _, y := range a1 {
				if x == y {
					continue
				}
				// Same cell: each pair once, lower ID first.
				if c0 == c1 && x.ID >= y.ID {
					continue
				}
				w.collide(x, y)
			}
		}
		return true
	})
}

// collide tests one candidate pair and, on overlap, notifies both actors and
// queues their separation.
func (w *World) collide(a, b *actor.Actor) {
	if !a.CollisionEnabled || !b.CollisionEnabled {
		return
	}
	if !actor.Compatible(a.Kind, b.Kind) {
		return
	}
	w.stats.PairsTested++

	hit, err := narrow.Overlap(a.Body(), b.Body())
	if err != nil {
		if errors.Is(err, narrow.ErrShapeNotImplemented) {
			w.reportUnimplemented(pairKey(a.Shape, b.Shape), err)
			return
		}
		invariant.Check(false, "overlap %v/%v: %v", a, b, err)
		return
	}
	if !hit {
		return
	}
	w.stats.Contacts++

	ca, cb := actor.Classify(a, b)
	if a.Behavior != nil {
		a.Behavior.OnCollision(a, b, ca)
	}
	if b.Behavior != nil {
		b.Behavior.OnCollision(b, a, cb)
	}
	w.separate(a, b)
}

// separate pushes a and b apart along the line between their centers until
// their extents along it no longer overlap, split by resistance.
func (w *World) separate(a, b *actor.Actor) {
	diff := rl.Vector3Subtract(b.Position, a.Position)
	dist := rl.Vector3Length(diff)
	axis := a.Forward()
	if dist >= geom.Epsilon {
		axis = rl.Vector3Scale(diff, 1/dist)
	}

	need := a.RadiusAlong(axis) + b.RadiusAlong(axis)
	depth := need - dist
	if depth <= 0 {
		return
	}
	wa, wb := actor.Split(a.Collision, b.Collision)
	invariant.Check(dist+depth*(wa+wb) <= need+separationSlack,
		"separation of %v and %v overshoots: %v > %v", a, b, dist+depth*(wa+wb), need)

	if wa > 0 {
		a.Push(rl.Vector3Scale(axis, -depth*wa))
	}
	if wb > 0 {
		b.Push(rl.Vector3Scale(axis, depth*wb))
	}
}
