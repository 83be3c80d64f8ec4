// Package geom holds the small amount of 3D math shared by the collision core:
// boxes, oriented boxes, placement transforms and triangle helpers, all on
// raylib's Vector3.
package geom

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Epsilon is the length below which a direction is treated as zero.
const Epsilon = 1e-6

// Axis returns component i (0=X, 1=Y, 2=Z) of v.
func Axis(v rl.Vector3, i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// SetAxis returns v with component i replaced by f.
func SetAxis(v rl.Vector3, i int, f float32) rl.Vector3 {
	switch i {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	default:
		v.Z = f
	}
	return v
}

// Abs returns the component-wise absolute value.
func Abs(v rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: math32.Abs(v.X), Y: math32.Abs(v.Y), Z: math32.Abs(v.Z)}
}

// IsZero reports whether every component of v is exactly zero.
func IsZero(v rl.Vector3) bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// NormalizeOr returns v normalized, or fallback when v is too short to normalize.
func NormalizeOr(v, fallback rl.Vector3) rl.Vector3 {
	l := rl.Vector3Length(v)
	if l < Epsilon {
		return fallback
	}
	return rl.Vector3Scale(v, 1/l)
}

// Splat returns a vector with all three components set to f.
func Splat(f float32) rl.Vector3 {
	return rl.Vector3{X: f, Y: f, Z: f}
}

// Clamp restricts a value to a range
func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
