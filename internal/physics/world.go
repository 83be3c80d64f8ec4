// Package physics runs the per-tick collision pipeline of one stage: actor
// movement clamped against indexed terrain, gravity, and the sector-based
// actor-actor pass.
package physics

import (
	"errors"
	"fmt"
	"log"

	"sectorcollide/internal/actor"
	"sectorcollide/internal/gravity"
	"sectorcollide/internal/invariant"
	"sectorcollide/internal/narrow"
	"sectorcollide/internal/sector"
)

// ErrDuplicateActor is returned when two actors share an ID.
var ErrDuplicateActor = errors.New("duplicate actor id")

// Stats describes the last tick.
type Stats struct {
	Ticks       uint64
	Actors      int
	Terrains    int
	PairsTested int
	Contacts    int
	Relocations int
	Removed     int
}

// World is the context of one loaded stage. It is not safe for concurrent use.
type World struct {
	cfg      Config
	terrains []*Terrain
	actors   []*actor.Actor
	ids      map[actor.ID]*actor.Actor
	grid     *sector.Grid[*actor.Actor]
	field    gravity.Field
	stats    Stats

	// unimplemented remembers shape pairings already logged.
	unimplemented map[string]bool
}

func NewWorld(cfg Config) (*World, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	grid, err := cfg.grid()
	if err != nil {
		return nil, fmt.Errorf("physics: %w", err)
	}
	return &World{
		cfg:           cfg,
		ids:           make(map[actor.ID]*actor.Actor),
		grid:          grid,
		unimplemented: make(map[string]bool),
	}, nil
}

func (w *World) Config() Config { return w.cfg }

// AddActor places a into its sector. IDs must be unique within the stage.
func (w *World) AddActor(a *actor.Actor) error {
	if a == nil {
		return errors.New("physics: nil actor")
	}
	if _, dup := w.ids[a.ID]; dup {
		return fmt.Errorf("%w: %d (%s)", ErrDuplicateActor, a.ID, a.Name)
	}
	w.ids[a.ID] = a
	w.actors = append(w.actors, a)
	a.Sector = w.grid.Insert(a, a.Position)
	return nil
}

// AddGravity registers a gravity source.
func (w *World) AddGravity(src *gravity.Source) {
	w.field.Add(src)
}

// Actors returns the live actors in insertion order.
func (w *World) Actors() []*actor.Actor { return w.actors }

// Actor looks up a live actor by ID.
func (w *World) Actor(id actor.ID) (*actor.Actor, bool) {
	a, ok := w.ids[id]
	return a, ok
}

func (w *World) Grid() *sector.Grid[*actor.Actor] { return w.grid }
func (w *World) Gravity() *gravity.Field          { return &w.field }

func (w *World) Stats() Stats {
	s := w.stats
	s.Actors = len(w.actors)
	s.Terrains = len(w.terrains)
	return s
}

// Tick advances every actor by dt seconds.
func (w *World) Tick(dt float32) {
	w.stats = Stats{Ticks: w.stats.Ticks + 1}

	for _, a := range w.actors {
		// An actor with nothing to do this tick goes straight to the
		// actor-actor phase.
		if !w.move(a, dt) {
			continue
		}
		w.fall(a, dt)
	}

	w.resolveActors()
	w.flushPending()
	w.sweepDead()
}

// relocate re-buckets a after its position changed.
func (w *World) relocate(a *actor.Actor) {
	c, moved := w.grid.Relocate(a, a.Sector, a.Position)
	a.Sector = c
	if moved {
		w.stats.Relocations++
	}
	if invariant.Enabled {
		invariant.Check(w.grid.Contains(a, a.Sector), "%v not a member of sector %v", a, a.Sector)
	}
}

// flushPending applies every actor's accumulated collision response once.
func (w *World) flushPending() {
	for _, a := range w.actors {
		p := a.Pending()
		if p.X == 0 && p.Y == 0 && p.Z == 0 {
			continue
		}
		a.SetPosition(a.Position)
		w.relocate(a)
	}
}

// sweepDead drops actors marked dead during the tick.
func (w *World) sweepDead() {
	live := w.actors[:0]
	for _, a := range w.actors {
		if !a.Dead() {
			live = append(live, a)
			continue
		}
		w.grid.Remove(a, a.Sector)
		delete(w.ids, a.ID)
		w.stats.Removed++
		if w.cfg.Verbose {
			log.Printf("Physics: removed dead actor %v", a)
		}
	}
	clear(w.actors[len(live):])
	w.actors = live
}

// pairKey names an actor shape pairing independent of argument order.
func pairKey(a, b narrow.Kind) string {
	if b < a {
		a, b = b, a
	}
	return a.String() + "/" + b.String()
}

// terrainKey names an actor shape swept against terrain.
func terrainKey(k narrow.Kind) string {
	return k.String() + "/terrain"
}

// reportUnimplemented logs an unsupported pairing once per stage.
func (w *World) reportUnimplemented(key string, err error) {
	if w.unimplemented[key] {
		return
	}
	w.unimplemented[key] = true
	log.Printf("Physics: %v", err)
}

// Unload discards the stage: terrain indexes, actors, sector contents and
// gravity sources.
func (w *World) Unload() {
	n, t := len(w.actors), len(w.terrains)
	w.terrains = nil
	w.actors = nil
	w.ids = make(map[actor.ID]*actor.Actor)
	w.grid.Reset()
	w.field.Reset()
	w.unimplemented = make(map[string]bool)
	w.stats = Stats{}
	log.Printf("Physics: stage unloaded (%d actors, %d terrains)", n, t)
}
