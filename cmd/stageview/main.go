// Debug viewer: loads a stage file and draws terrain wireframes, actors and
// sector occupancy, with pause and single-step controls.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"sectorcollide/internal/actor"
	"sectorcollide/internal/camera"
	"sectorcollide/internal/narrow"
	"sectorcollide/internal/physics"
	"sectorcollide/internal/stage"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type viewer struct {
	path  string
	world *physics.World

	paused      bool
	step        bool
	showSectors bool
	timeScale   float32

	cam    *camera.FlyCamera
	picked *actor.Actor
	status string
}

func main() {
	path := flag.String("stage", "assets/stages/arena.toml", "stage file to view")
	flag.Parse()

	v := &viewer{path: *path, timeScale: 1}
	if err := v.load(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer v.world.Unload()

	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, "sectorcollide stage viewer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	v.cam = camera.New(rl.Vector3{X: 30, Y: 30, Z: 30}, rl.Vector3{})

	for !rl.WindowShouldClose() {
		v.update()
		v.draw()
	}
}

func (v *viewer) load() error {
	f, err := stage.Load(v.path)
	if err != nil {
		return err
	}
	w, err := f.Build(nil)
	if err != nil {
		return err
	}
	if v.world != nil {
		v.world.Unload()
	}
	v.world = w
	v.picked = nil
	return nil
}

func (v *viewer) update() {
	v.cam.Update(camera.ReadInput(), rl.GetFrameTime())
	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}

	if !v.paused || v.step {
		v.world.Tick(rl.GetFrameTime() * v.timeScale)
		v.step = false
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && rl.GetMousePosition().X > 220 {
		ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), v.cam.Camera3D())
		hit, ok := v.world.Raycast(ray.Position, ray.Direction, 500)
		switch {
		case !ok:
			v.picked = nil
			v.status = "nothing hit"
		case hit.Actor != nil:
			v.picked = hit.Actor
			v.status = fmt.Sprintf("%v at %.2f", hit.Actor, hit.Distance)
		default:
			v.picked = nil
			v.status = fmt.Sprintf("terrain %q at (%.1f, %.1f, %.1f)", hit.Terrain.Name, hit.Point.X, hit.Point.Y, hit.Point.Z)
		}
	}
}

func (v *viewer) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(18, 18, 24, 255))

	rl.BeginMode3D(v.cam.Camera3D())
	for _, t := range v.world.Terrains() {
		drawTerrain(t)
	}
	if v.showSectors {
		v.drawSectors()
	}
	for _, a := range v.world.Actors() {
		drawActor(a, a == v.picked)
	}
	rl.EndMode3D()

	v.drawPanel()
	rl.EndDrawing()
}

func drawTerrain(t *physics.Terrain) {
	color := rl.Gray
	if t.Wall {
		color = rl.SkyBlue
	}
	m := t.Index.Mesh()
	for _, ref := range m.Triangles() {
		a, b, c := m.Triangle(ref)
		a = t.Transform.PointToWorld(a)
		b = t.Transform.PointToWorld(b)
		c = t.Transform.PointToWorld(c)
		rl.DrawLine3D(a, b, color)
		rl.DrawLine3D(b, c, color)
		rl.DrawLine3D(c, a, color)
	}
}

func drawActor(a *actor.Actor, picked bool) {
	color := rl.Orange
	switch {
	case picked:
		color = rl.Yellow
	case !a.CollisionEnabled:
		color = rl.DarkGray
	case a.OnWall:
		color = rl.Red
	case a.OnGround:
		color = rl.Lime
	}

	s := a.WorldShape()
	switch s.Kind {
	case narrow.Sphere:
		rl.DrawSphereWires(a.Position, s.Radius, 8, 8, color)
	case narrow.Box:
		drawOBB(s, a.Position, color)
	default:
		rl.DrawCubeWiresV(a.Position, rl.Vector3Scale(a.HalfSize, 2*a.Scale), rl.Magenta)
	}
	rl.DrawLine3D(a.Position, rl.Vector3Add(a.Position, rl.Vector3Scale(a.Forward(), 1.5)), rl.White)
}

func drawOBB(s narrow.Shape, center rl.Vector3, color rl.Color) {
	var corners [8]rl.Vector3
	for i := range corners {
		p := center
		for axis := 0; axis < 3; axis++ {
			sign := float32(-1)
			if i&(1<<axis) != 0 {
				sign = 1
			}
			var h float32
			switch axis {
			case 0:
				h = s.HalfExtents.X
			case 1:
				h = s.HalfExtents.Y
			default:
				h = s.HalfExtents.Z
			}
			p = rl.Vector3Add(p, rl.Vector3Scale(s.Axes[axis], sign*h))
		}
		corners[i] = p
	}
	for i := 0; i < 8; i++ {
		for axis := 0; axis < 3; axis++ {
			j := i | 1<<axis
			if j != i {
				rl.DrawLine3D(corners[i], corners[j], color)
			}
		}
	}
}

func (v *viewer) drawSectors() {
	g := v.world.Grid()
	size := g.CellSize()
	for _, a := range v.world.Actors() {
		rl.DrawCubeWiresV(g.CellCenter(a.Sector), size, rl.NewColor(108, 99, 255, 120))
	}
}

func (v *viewer) drawPanel() {
	rl.DrawRectangle(0, 0, 220, int32(rl.GetScreenHeight()), rl.NewColor(18, 18, 24, 245))

	label := "Pause"
	if v.paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: 10, Y: 10, Width: 95, Height: 28}, label) {
		v.paused = !v.paused
	}
	if gui.Button(rl.Rectangle{X: 115, Y: 10, Width: 95, Height: 28}, "Step") {
		v.paused = true
		v.step = true
	}
	if gui.Button(rl.Rectangle{X: 10, Y: 46, Width: 200, Height: 28}, "Reload stage") {
		if err := v.load(); err != nil {
			log.Printf("Stage: reload failed: %v", err)
			v.status = "reload failed"
		}
	}
	v.showSectors = gui.CheckBox(rl.Rectangle{X: 10, Y: 84, Width: 20, Height: 20}, "Show sectors", v.showSectors)
	v.timeScale = gui.Slider(rl.Rectangle{X: 60, Y: 114, Width: 110, Height: 20}, "Speed", fmt.Sprintf("%.2f", v.timeScale), v.timeScale, 0.05, 2)

	st := v.world.Stats()
	lines := []string{
		fmt.Sprintf("Actors: %d", st.Actors),
		fmt.Sprintf("Terrains: %d", st.Terrains),
		fmt.Sprintf("Pairs tested: %d", st.PairsTested),
		fmt.Sprintf("Contacts: %d", st.Contacts),
		fmt.Sprintf("Relocations: %d", st.Relocations),
		fmt.Sprintf("FPS: %d", rl.GetFPS()),
	}
	if v.picked != nil {
		p := v.picked
		lines = append(lines,
			"",
			p.String(),
			fmt.Sprintf("pos %.1f %.1f %.1f", p.Position.X, p.Position.Y, p.Position.Z),
			fmt.Sprintf("sector %v", p.Sector),
			fmt.Sprintf("ground %v wall %v", p.OnGround, p.OnWall),
		)
	}
	if v.status != "" {
		lines = append(lines, "", v.status)
	}
	for i, line := range lines {
		rl.DrawText(line, 10, int32(150+i*20), 16, rl.LightGray)
	}
}
