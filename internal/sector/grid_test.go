package sector

import (
	"math/rand"
	"testing"

	"sectorcollide/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGrid(t *testing.T) *Grid[int] {
	t.Helper()
	g, err := NewGrid[int]([3]int{3, 3, 3}, rl.Vector3{X: 10, Y: 10, Z: 10})
	require.NoError(t, err)
	return g
}

func TestNewGridRejectsBadSizes(t *testing.T) {
	_, err := NewGrid[int]([3]int{0, 3, 3}, rl.Vector3{X: 1, Y: 1, Z: 1})
	assert.ErrorIs(t, err, ErrBadGrid)
	_, err = NewGrid[int]([3]int{3, 3, 3}, rl.Vector3{X: 1, Y: -1, Z: 1})
	assert.ErrorIs(t, err, ErrBadGrid)
}

func TestCoordOfRoundTrip(t *testing.T) {
	g := newTestGrid(t)
	for z := 0; z < 3; z++ {
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				c := Coord{x, y, z}
				assert.Equal(t, c, g.CoordOf(g.CellCenter(c)))
			}
		}
	}
	assert.Equal(t, rl.Vector3{}, g.CellCenter(Coord{1, 1, 1}))
}

func TestCoordOfClamps(t *testing.T) {
	g := newTestGrid(t)
	assert.Equal(t, Coord{0, 0, 0}, g.CoordOf(rl.Vector3{X: -100, Y: -15.5, Z: -1e9}))
	assert.Equal(t, Coord{2, 2, 2}, g.CoordOf(rl.Vector3{X: 15, Y: 100, Z: 1e9}))
	assert.Equal(t, Coord{0, 1, 2}, g.CoordOf(rl.Vector3{X: -20, Y: 0, Z: 40}))
	assert.Equal(t, Coord{0, 0, 0}, g.CoordOf(rl.Vector3{X: -15, Y: -15, Z: -15}))
}

func TestInsertRemoveRelocate(t *testing.T) {
	g := newTestGrid(t)
	a := g.Insert(1, rl.Vector3{X: -12})
	b := g.Insert(2, rl.Vector3{X: -11})
	g.Insert(3, rl.Vector3{X: -10.5})
	assert.Equal(t, a, b)
	assert.Equal(t, 3, g.Len())
	assert.Len(t, g.Members(a), 3)

	g.Remove(1, a)
	assert.Equal(t, 2, g.Len())
	assert.ElementsMatch(t, []int{2, 3}, g.Members(a))
	assert.False(t, g.Contains(1, a))

	// Removing from the wrong cell does nothing.
	g.Remove(2, Coord{2, 2, 2})
	assert.True(t, g.Contains(2, a))

	c, moved := g.Relocate(2, a, rl.Vector3{X: -11.5})
	assert.False(t, moved)
	assert.Equal(t, a, c)

	c, moved = g.Relocate(2, a, rl.Vector3{X: 12})
	assert.True(t, moved)
	assert.Equal(t, Coord{2, 1, 1}, c)
	assert.True(t, g.Contains(2, c))
	assert.False(t, g.Contains(2, a))
	assert.Equal(t, []int{3}, g.Members(a))

	g.Reset()
	assert.Equal(t, 0, g.Len())
	assert.Empty(t, g.Members(c))
}

type pair struct{ a, b int }

func ordered(a, b int) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

func adjacent(a, b Coord) bool {
	d := func(x, y int) bool { return x-y <= 1 && y-x <= 1 }
	return d(a.X, b.X) && d(a.Y, b.Y) && d(a.Z, b.Z)
}

func TestNeighborPairsCompleteAndUnique(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, units := range [][3]int{{3, 3, 3}, {5, 2, 4}, {1, 1, 1}, {6, 1, 1}} {
		g, err := NewGrid[int](units, rl.Vector3{X: 4, Y: 4, Z: 4})
		require.NoError(t, err)

		const n = 200
		coords := make([]Coord, n)
		for i := range coords {
			pos := rl.Vector3{
				X: (rng.Float32()*2 - 1) * 15,
				Y: (rng.Float32()*2 - 1) * 15,
				Z: (rng.Float32()*2 - 1) * 15,
			}
			coords[i] = g.Insert(i, pos)
		}

		seen := map[pair]int{}
		g.ForEachNeighborPair(func(c0, c1 Coord, a0, a1 []int) bool {
			for _, i := range a0 {
				for _, j := range a1 {
					if i == j || (c0 == c1 && i > j) {
						continue
					}
					seen[ordered(i, j)]++
				}
			}
			return true
		})

		want := 0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if adjacent(coords[i], coords[j]) {
					want++
					assert.Equal(t, 1, seen[pair{i, j}], "units %v pair %d,%d at %v %v", units, i, j, coords[i], coords[j])
				}
			}
		}
		assert.Len(t, seen, want, "units %v", units)
	}
}

func TestNeighborPairsStop(t *testing.T) {
	g := newTestGrid(t)
	for i := 0; i < 27; i++ {
		g.Insert(i, g.CellCenter(Coord{i % 3, (i / 3) % 3, i / 9}))
	}
	calls := 0
	g.ForEachNeighborPair(func(c0, c1 Coord, a0, a1 []int) bool {
		calls++
		return calls < 5
	})
	assert.Equal(t, 5, calls)
}

func TestCellsInBox(t *testing.T) {
	g := newTestGrid(t)
	g.Insert(7, rl.Vector3{X: 12, Y: 0, Z: 0})

	var cells []Coord
	found := false
	g.CellsInBox(geom.AABB{Min: rl.Vector3{X: 0, Y: -1, Z: -1}, Max: rl.Vector3{X: 30, Y: 1, Z: 1}}, func(c Coord, members []int) bool {
		cells = append(cells, c)
		for _, m := range members {
			found = found || m == 7
		}
		return true
	})
	assert.ElementsMatch(t, []Coord{{1, 1, 1}, {2, 1, 1}}, cells)
	assert.True(t, found)
}
