// Package gravity resolves which gravity source pulls on a point.
package gravity

import (
	"sectorcollide/internal/geom"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Source is one gravity record of a stage. A fixed source pulls along
// Direction everywhere; any other source pulls toward Position for points
// within Radius.
type Source struct {
	Name      string
	Position  rl.Vector3
	Direction rl.Vector3
	Radius    float32
	Strength  float32
	Fixed     bool
}

// Pull returns the unit direction gravity acts in at p.
func (s *Source) Pull(p rl.Vector3) rl.Vector3 {
	if s.Fixed {
		return geom.NormalizeOr(s.Direction, rl.Vector3{Y: -1})
	}
	return geom.NormalizeOr(rl.Vector3Subtract(s.Position, p), geom.NormalizeOr(s.Direction, rl.Vector3{Y: -1}))
}

// Field is the set of sources of one stage.
type Field struct {
	sources []*Source
}

func (f *Field) Add(s *Source) { f.sources = append(f.sources, s) }
func (f *Field) Len() int      { return len(f.sources) }
func (f *Field) Reset()        { f.sources = nil }

func (f *Field) Sources() []*Source { return f.sources }

// Active returns the source acting on p: the nearest positional source whose
// radius contains p, else the first fixed source, else nil.
func (f *Field) Active(p rl.Vector3) *Source {
	var best, fixed *Source
	bestDist := math32.Inf(1)
	for _, s := range f.sources {
		if s.Fixed {
			if fixed == nil {
				fixed = s
			}
			continue
		}
		d := rl.Vector3Distance(s.Position, p)
		if d <= s.Radius && d < bestDist {
			best, bestDist = s, d
		}
	}
	if best != nil {
		return best
	}
	return fixed
}
