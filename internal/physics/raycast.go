package physics

import (
	"sectorcollide/internal/actor"
	"sectorcollide/internal/geom"
	"sectorcollide/internal/narrow"
	"sectorcollide/internal/sector"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaycastHit is the nearest thing a ray touched. Exactly one of Actor and
// Terrain is set.
type RaycastHit struct {
	Actor    *actor.Actor
	Terrain  *Terrain
	Point    rl.Vector3
	Distance float32
}

// Raycast returns the nearest terrain or actor hit within maxLength. Actors
// are only tested in the sectors touched by the ray's bounding box.
func (w *World) Raycast(origin, direction rl.Vector3, maxLength float32) (RaycastHit, bool) {
	dir := geom.NormalizeOr(direction, rl.Vector3{})
	if geom.IsZero(dir) || !(maxLength > 0) {
		return RaycastHit{}, false
	}

	var closest RaycastHit
	closest.Distance = maxLength
	hit := false

	for _, tr := range w.terrains {
		if d, ok := narrow.RaycastVsMesh(origin, dir, maxLength, tr.target()); ok && (!hit || d < closest.Distance) {
			closest = RaycastHit{Terrain: tr, Distance: d}
			hit = true
		}
	}

	end := rl.Vector3Add(origin, rl.Vector3Scale(dir, maxLength))
	box := geom.EmptyAABB().Extend(origin).Extend(end)
	w.grid.CellsInBox(box, func(_ sector.Coord, members []*actor.Actor) bool {
		for _, a := range members {
			if a.Dead() {
				continue
			}
			if d, ok := narrow.RayBody(origin, dir, a.Body(), closest.Distance); ok && (!hit || d < closest.Distance) {
				closest = RaycastHit{Actor: a, Distance: d}
				hit = true
			}
		}
		return true
	})

	if hit {
		closest.Point = rl.Vector3Add(origin, rl.Vector3Scale(dir, closest.Distance))
	}
	return closest, hit
}
