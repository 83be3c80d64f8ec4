package sector

import (
	"sectorcollide/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// forward is the half of the 3x3x3 neighbourhood that lies after the center
// in X, then Y, then Z order, plus the center itself. Walking it from every
// cell reaches each unordered pair of adjacent cells once.
var forward = func() []Coord {
	out := []Coord{{0, 0, 0}}
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dz > 0 || (dz == 0 && dy > 0) || (dz == 0 && dy == 0 && dx > 0) {
					out = append(out, Coord{dx, dy, dz})
				}
			}
		}
	}
	return out
}()

// PairVisitor receives two neighboring cells and their members. c0 == c1 for
// the self pair. Returning false stops the walk.
type PairVisitor[T comparable] func(c0, c1 Coord, a0, a1 []T) bool

// ForEachNeighborPair visits every unordered pair of cells whose coordinates
// differ by at most one on each axis exactly once, including each cell with
// itself. Empty cells are skipped. The pairs visited are exactly the cell
// adjacency set, diagonals of mixed sign such as (+1,-1,0) included, so two
// members closer than one cell apart are always offered together.
func (g *Grid[T]) ForEachNeighborPair(visit PairVisitor[T]) {
	for z := 0; z < g.units[2]; z++ {
		for y := 0; y < g.units[1]; y++ {
			for x := 0; x < g.units[0]; x++ {
				c0 := Coord{x, y, z}
				a0 := g.cells[g.slot(c0)]
				if len(a0) == 0 {
					continue
				}
				for _, off := range forward {
					c1 := Coord{x + off.X, y + off.Y, z + off.Z}
					if !g.InRange(c1) {
						continue
					}
					a1 := g.cells[g.slot(c1)]
					if len(a1) == 0 {
						continue
					}
					if !visit(c0, c1, a0, a1) {
						return
					}
				}
			}
		}
	}
}

// CellsInBox visits every cell overlapping the box [min, max]; the box is
// clamped to the grid like CoordOf.
func (g *Grid[T]) CellsInBox(box geom.AABB, visit func(c Coord, members []T) bool) {
	lo := g.CoordOf(rl.Vector3Min(box.Min, box.Max))
	hi := g.CoordOf(rl.Vector3Max(box.Min, box.Max))
	for z := lo.Z; z <= hi.Z; z++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for x := lo.X; x <= hi.X; x++ {
				c := Coord{x, y, z}
				if !visit(c, g.cells[g.slot(c)]) {
					return
				}
			}
		}
	}
}
