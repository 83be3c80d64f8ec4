// Stress test for the sector broad phase and terrain sweeps: random drifting
// actors in a walled arena, timed per tick and checked against a brute-force
// overlap count.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"sectorcollide/internal/narrow"
	"sectorcollide/internal/physics"
	"sectorcollide/internal/stage"
)

func main() {
	ticks := flag.Int("ticks", 60, "ticks per run")
	stagePath := flag.String("stage", "", "run this stage file instead of generated arenas")
	dump := flag.String("dump", "", "write the largest generated arena to this file and exit")
	flag.Parse()

	if *stagePath != "" {
		f, err := stage.Load(*stagePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		run(*stagePath, f, *ticks)
		return
	}

	testCounts := []int{100, 500, 1000, 2000, 5000}

	if *dump != "" {
		out, err := os.Create(*dump)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		defer out.Close()
		if err := arena(testCounts[len(testCounts)-1]).Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	for _, count := range testCounts {
		run(fmt.Sprintf("%5d actors", count), arena(count), *ticks)
	}
}

// arena generates a walled square stage with count random actors.
func arena(count int) *stage.File {
	rng := rand.New(rand.NewSource(42)) // Consistent results

	// Arena size scales with count to keep density reasonable
	size := float32(40.0) + float32(count)/20.0
	cells := int(size/8) + 1

	f := &stage.File{
		Physics: stage.PhysicsDef{
			GridUnits: [3]int{cells, 4, cells},
			CellSize:  [3]float32{8, 8, 8},
		},
		Meshes: []stage.MeshDef{
			{Name: "floor", Kind: "plane", Size: size, Divisions: 16},
			{Name: "walls", Kind: "room", Size: size, Height: 8},
		},
		Terrains: []stage.TerrainDef{
			{Name: "floor", Mesh: "floor", Ground: true},
			{Name: "walls", Mesh: "walls", Wall: true},
		},
		Gravity: []stage.GravityDef{
			{Name: "down", Direction: [3]float32{0, -1, 0}, Strength: 20, Fixed: true},
		},
	}

	half := size/2 - 2
	for i := 0; i < count; i++ {
		shape := "sphere"
		if i%3 == 0 {
			shape = "box"
		}
		r := 0.4 + rng.Float32()*0.4
		f.Actors = append(f.Actors, stage.ActorDef{
			ID:       uint32(i + 1),
			Name:     fmt.Sprintf("%s-%d", shape, i),
			Shape:    shape,
			HalfSize: [3]float32{r, r, r},
			Position: [3]float32{
				rng.Float32()*2*half - half,
				1 + rng.Float32()*4,
				rng.Float32()*2*half - half,
			},
			Velocity: [3]float32{rng.Float32()*6 - 3, 0, rng.Float32()*6 - 3},
		})
	}
	return f
}

func run(label string, f *stage.File, ticks int) {
	w, err := f.Build(nil)
	if err != nil {
		fmt.Printf("%s: LOAD ERROR: %v\n", label, err)
		return
	}
	defer w.Unload()

	// Warm up
	w.Tick(1.0 / 60.0)

	var pairs, contacts int
	start := time.Now()
	for i := 0; i < ticks; i++ {
		w.Tick(1.0 / 60.0)
		st := w.Stats()
		pairs += st.PairsTested
		contacts += st.Contacts
	}
	tickTime := time.Since(start) / time.Duration(max(ticks, 1))

	fmt.Printf("%s: tick %8v | %6d pairs/tick | %5d contacts/tick | %5d brute-force overlaps\n",
		label, tickTime.Round(time.Microsecond), pairs/max(ticks, 1), contacts/max(ticks, 1), bruteForce(w))
}

// bruteForce counts overlapping actor pairs with the naive O(n²) loop.
func bruteForce(w *physics.World) int {
	actors := w.Actors()
	n := 0
	for i := 0; i < len(actors); i++ {
		for j := i + 1; j < len(actors); j++ {
			if hit, err := narrow.Overlap(actors[i].Body(), actors[j].Body()); err == nil && hit {
				n++
			}
		}
	}
	return n
}
