package pflow

import "github.com/papadanku/papaganda/pkg/pmath"

// Flow vectors live in two unit systems: pixels (what the solver
// produces) and normalized display-size units (what gets stored, so
// fields survive resolution changes). The conversion factor is the
// size of one pixel on each axis in normalized units; callers hand it
// in, which is how one kernel serves every pyramid level.

// ToNormalized converts a pixel-unit vector to normalized units,
// saturating to the storable range.
func ToNormalized(pixels, pixelSize pmath.Vec2) pmath.Vec2 {
	return pixels.MulElem(pixelSize.Abs()).Clamp(-1, 1)
}

// ToPixel converts a normalized vector back to pixel units. Exact
// inverse of ToNormalized for vectors small enough not to saturate.
func ToPixel(normalized, pixelSize pmath.Vec2) pmath.Vec2 {
	return normalized.DivElem(pixelSize.Abs())
}
