package physics

import (
	"errors"

	"sectorcollide/internal/actor"
	"sectorcollide/internal/geom"
	"sectorcollide/internal/invariant"
	"sectorcollide/internal/narrow"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func isWall(t *Terrain) bool   { return t.Wall }
func isGround(t *Terrain) bool { return t.Ground }

// sweep returns the earliest fraction of d at which a touches any terrain
// selected by use, or 1 if none is touched.
func (w *World) sweep(a *actor.Actor, d rl.Vector3, use func(*Terrain) bool) float32 {
	best := float32(1)
	shape := a.WorldShape()
	for _, tr := range w.terrains {
		if !use(tr) {
			continue
		}
		t, ok, err := narrow.SweptShapeVsMesh(shape, a.Position, d, tr.target())
		if err != nil {
			if errors.Is(err, narrow.ErrShapeNotImplemented) {
				w.reportUnimplemented(terrainKey(a.Shape), err)
				return 1
			}
			invariant.Check(false, "sweep %v against %q: %v", a, tr.Name, err)
			continue
		}
		if ok && t < best {
			best = t
		}
	}
	invariant.Check(best >= 0, "negative collision time %v for %v", best, a)
	return best
}

// applyMove moves a by the fraction t of d, stopping Skin short of the
// contact when t < 1, then re-buckets it.
func (w *World) applyMove(a *actor.Actor, d rl.Vector3, t float32) {
	frac := t
	if t < 1 {
		frac = math32.Max(0, t-w.cfg.Skin/rl.Vector3Length(d))
	}
	if frac > 0 {
		a.SetPosition(rl.Vector3Add(a.Position, rl.Vector3Scale(d, frac)))
	}
	w.relocate(a)
}

// move applies the actor's own displacement for this tick, clamped against
// wall terrain and, for walking actors, ground terrain. It reports false when
// the actor asked for no displacement.
func (w *World) move(a *actor.Actor, dt float32) bool {
	if a.Behavior == nil {
		return false
	}
	d := a.Behavior.Displacement(a, dt)
	if geom.IsZero(d) {
		return false
	}

	t := float32(1)
	a.OnWall = false
	if a.CollisionEnabled {
		tWall := w.sweep(a, d, isWall)
		tGround := float32(1)
		if a.Mode != actor.ModeBallistic && a.Mode != actor.ModePathFollow {
			tGround = w.sweep(a, d, isGround)
		}
		a.OnWall = tWall < 1
		if tGround < math32.Min(1, tWall) {
			t = tGround
			a.OnGround = true
			a.OnWall = false
		} else {
			t = tWall
		}
	}
	w.applyMove(a, d, t)
	return true
}

// fall turns the actor's up vector toward the active gravity source and
// integrates its vertical speed, clamping against ground terrain.
func (w *World) fall(a *actor.Actor, dt float32) {
	src := w.field.Active(a.Position)
	if src == nil {
		return
	}
	down := src.Pull(a.Position)
	w.turnUp(a, rl.Vector3Negate(down), src.Strength, dt)

	a.VerticalSpeed = geom.Clamp(a.VerticalSpeed+src.Strength*dt, -w.cfg.MaxFallSpeed, w.cfg.MaxFallSpeed)
	if a.VerticalSpeed == 0 {
		return
	}

	d := rl.Vector3Scale(down, a.VerticalSpeed*dt)
	if !a.CollisionEnabled {
		a.OnGround = false
		w.applyMove(a, d, 1)
		return
	}

	// Probe one skin further than the step so an actor resting a skin
	// above the ground stays grounded.
	l := rl.Vector3Length(d)
	if l == 0 {
		return
	}
	probe := l + w.cfg.Skin
	t := w.sweep(a, rl.Vector3Scale(d, probe/l), isGround)
	a.OnGround = t < 1 && a.VerticalSpeed > 0
	if t >= 1 {
		w.applyMove(a, d, 1)
		return
	}
	a.VerticalSpeed = 0
	if frac := math32.Max(0, t*probe-w.cfg.Skin) / l; frac > 0 {
		a.SetPosition(rl.Vector3Add(a.Position, rl.Vector3Scale(d, math32.Min(frac, 1))))
	}
	w.relocate(a)
}

// turnUp rotates the actor's up vector, and its facing with it, toward
// target by at most the per-tick bound.
func (w *World) turnUp(a *actor.Actor, target rl.Vector3, strength, dt float32) {
	up := geom.NormalizeOr(a.Up, rl.Vector3{Y: 1})
	angle := rl.Vector3Angle(up, target)
	if angle < geom.Epsilon {
		return
	}
	step := math32.Min(w.cfg.UpTurnRate*math32.Abs(strength)*dt, w.cfg.MaxUpTurn)
	if step <= 0 {
		return
	}
	if step >= angle {
		step = angle
	}

	axis := rl.Vector3CrossProduct(up, target)
	if rl.Vector3Length(axis) < geom.Epsilon {
		// Opposite vectors: tip over the actor's right axis.
		axis, _, _ = geom.Basis(a.Direction, up)
	}
	q := rl.QuaternionFromAxisAngle(rl.Vector3Normalize(axis), step)
	a.Up = rl.Vector3RotateByQuaternion(up, q)
	a.Direction = rl.Vector3RotateByQuaternion(a.Direction, q)
}
