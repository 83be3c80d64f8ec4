package physics

import (
	"fmt"

	"sectorcollide/internal/actor"
	"sectorcollide/internal/sector"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Config tunes one World. Zero values are replaced by DefaultConfig's.
type Config struct {
	// GridUnits and CellSize shape the sector grid, centered on the origin.
	GridUnits [3]int
	CellSize  rl.Vector3

	// Skin is how far short of a terrain contact a clamped move stops.
	Skin float32

	// UpTurnRate is the up-vector turn speed in radians per second per unit of
	// gravity strength; MaxUpTurn bounds the turn of a single tick.
	UpTurnRate float32
	MaxUpTurn  float32

	// MaxFallSpeed caps the vertical speed along gravity.
	MaxFallSpeed float32

	// Verbose logs per-tick events such as dead-actor sweeps.
	Verbose bool
}

func DefaultConfig() Config {
	return Config{
		GridUnits:    [3]int{16, 4, 16},
		CellSize:     rl.Vector3{X: 8, Y: 8, Z: 8},
		Skin:         0.01,
		UpTurnRate:   0.5,
		MaxUpTurn:    0.1,
		MaxFallSpeed: 50,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.GridUnits == ([3]int{}) {
		c.GridUnits = d.GridUnits
	}
	if c.CellSize == (rl.Vector3{}) {
		c.CellSize = d.CellSize
	}
	if c.Skin == 0 {
		c.Skin = d.Skin
	}
	if c.UpTurnRate == 0 {
		c.UpTurnRate = d.UpTurnRate
	}
	if c.MaxUpTurn == 0 {
		c.MaxUpTurn = d.MaxUpTurn
	}
	if c.MaxFallSpeed == 0 {
		c.MaxFallSpeed = d.MaxFallSpeed
	}
	return c
}

func (c Config) validate() error {
	if c.Skin < 0 {
		return fmt.Errorf("physics: negative skin %v", c.Skin)
	}
	if c.UpTurnRate < 0 || c.MaxUpTurn < 0 {
		return fmt.Errorf("physics: negative up-vector turn rate")
	}
	if c.MaxFallSpeed < 0 {
		return fmt.Errorf("physics: negative max fall speed %v", c.MaxFallSpeed)
	}
	return nil
}

// grid builds an empty sector grid for this configuration.
func (c Config) grid() (*sector.Grid[*actor.Actor], error) {
	return sector.NewGrid[*actor.Actor](c.GridUnits, c.CellSize)
}
