// Package sector buckets moving actors into a fixed uniform 3D grid centered
// on the origin, so the actor-actor pass only compares neighbors.
package sector

import (
	"errors"
	"fmt"

	"sectorcollide/internal/geom"
	"sectorcollide/internal/invariant"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrBadGrid is returned for grids with a non-positive unit count or cell size.
var ErrBadGrid = errors.New("bad sector grid")

// Coord addresses one cell.
type Coord struct {
	X, Y, Z int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Grid holds members of type T. Each member lives in exactly one cell.
type Grid[T comparable] struct {
	units    [3]int
	cellSize rl.Vector3
	half     rl.Vector3
	cells    [][]T
	where    map[T]int // member -> slot in its cell
	count    int
}

// NewGrid builds a grid of units[0] x units[1] x units[2] cells of cellSize,
// centered on the origin.
func NewGrid[T comparable](units [3]int, cellSize rl.Vector3) (*Grid[T], error) {
	for i, u := range units {
		if u <= 0 {
			return nil, fmt.Errorf("%w: unit count %d on axis %d", ErrBadGrid, u, i)
		}
		if s := geom.Axis(cellSize, i); !(s > 0) || math32.IsInf(s, 0) {
			return nil, fmt.Errorf("%w: cell size %v on axis %d", ErrBadGrid, s, i)
		}
	}
	g := &Grid[T]{
		units:    units,
		cellSize: cellSize,
		half: rl.Vector3{
			X: float32(units[0]) * cellSize.X / 2,
			Y: float32(units[1]) * cellSize.Y / 2,
			Z: float32(units[2]) * cellSize.Z / 2,
		},
		cells: make([][]T, units[0]*units[1]*units[2]),
		where: make(map[T]int),
	}
	return g, nil
}

func (g *Grid[T]) Units() [3]int        { return g.units }
func (g *Grid[T]) CellSize() rl.Vector3 { return g.cellSize }

// Len returns the number of members.
func (g *Grid[T]) Len() int { return g.count }

// InRange reports whether c addresses a cell of the grid.
func (g *Grid[T]) InRange(c Coord) bool {
	return c.X >= 0 && c.X < g.units[0] &&
		c.Y >= 0 && c.Y < g.units[1] &&
		c.Z >= 0 && c.Z < g.units[2]
}

func (g *Grid[T]) slot(c Coord) int {
	invariant.Check(g.InRange(c), "sector %v outside grid %v", c, g.units)
	return (c.Z*g.units[1]+c.Y)*g.units[0] + c.X
}

// CoordOf returns the cell containing pos. Positions off the map are
// attributed to the nearest edge cell.
func (g *Grid[T]) CoordOf(pos rl.Vector3) Coord {
	var out [3]int
	for i := 0; i < 3; i++ {
		f := math32.Floor((geom.Axis(pos, i) + geom.Axis(g.half, i)) / geom.Axis(g.cellSize, i))
		switch {
		case math32.IsNaN(f) || f < 0:
			out[i] = 0
		case f > float32(g.units[i]-1):
			out[i] = g.units[i] - 1
		default:
			out[i] = int(f)
		}
	}
	return Coord{out[0], out[1], out[2]}
}

// CellCenter returns the world position of the center of c.
func (g *Grid[T]) CellCenter(c Coord) rl.Vector3 {
	return rl.Vector3{
		X: (float32(c.X)+0.5)*g.cellSize.X - g.half.X,
		Y: (float32(c.Y)+0.5)*g.cellSize.Y - g.half.Y,
		Z: (float32(c.Z)+0.5)*g.cellSize.Z - g.half.Z,
	}
}

// Insert adds m to the cell containing pos and returns that cell.
func (g *Grid[T]) Insert(m T, pos rl.Vector3) Coord {
	c := g.CoordOf(pos)
	g.insertAt(m, c)
	return c
}

func (g *Grid[T]) insertAt(m T, c Coord) {
	_, dup := g.where[m]
	invariant.Check(!dup, "member inserted twice")
	s := g.slot(c)
	g.where[m] = len(g.cells[s])
	g.cells[s] = append(g.cells[s], m)
	g.count++
}

// Remove takes m out of cell c. Removing a member that is not in c is a no-op.
func (g *Grid[T]) Remove(m T, c Coord) {
	if !g.InRange(c) {
		return
	}
	s := g.slot(c)
	i, ok := g.where[m]
	cell := g.cells[s]
	if !ok || i >= len(cell) || cell[i] != m {
		return
	}
	last := len(cell) - 1
	if i != last {
		cell[i] = cell[last]
		g.where[cell[i]] = i
	}
	var zero T
	cell[last] = zero
	g.cells[s] = cell[:last]
	delete(g.where, m)
	g.count--
}

// Relocate moves m from old to the cell containing pos. It reports whether
// the membership changed.
func (g *Grid[T]) Relocate(m T, old Coord, pos rl.Vector3) (Coord, bool) {
	c := g.CoordOf(pos)
	if c == old {
		return c, false
	}
	g.Remove(m, old)
	g.insertAt(m, c)
	return c, true
}

// Contains reports whether m is a member of cell c.
func (g *Grid[T]) Contains(m T, c Coord) bool {
	if !g.InRange(c) {
		return false
	}
	i, ok := g.where[m]
	cell := g.cells[g.slot(c)]
	return ok && i < len(cell) && cell[i] == m
}

// Members returns the members of c. The slice is owned by the grid and is
// only valid until the next mutation.
func (g *Grid[T]) Members(c Coord) []T {
	if !g.InRange(c) {
		return nil
	}
	return g.cells[g.slot(c)]
}

// Reset empties every cell.
func (g *Grid[T]) Reset() {
	for i := range g.cells {
		clear(g.cells[i])
		g.cells[i] = g.cells[i][:0]
	}
	clear(g.where)
	g.count = 0
}
