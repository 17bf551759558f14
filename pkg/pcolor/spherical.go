package pcolor

import(
	"math"

	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/papadanku/papaganda/pkg/pmath"
)

// Flow estimation compares colors across frames, so it wants a color
// representation that holds still when the lighting changes. We get one
// by treating linear RGB as a point in a spherical coordinate system
// and keeping only the two angles: scaling every channel by the same
// factor (exposure flicker, shadow passing over the scene) moves the
// radius but not the angles.

var(
	// Ratio fallbacks for the two points where an angle is undefined.
	// When R=G=0 there is no hue direction, so we sit on the RG
	// bisector; when the color is pure black there is no elevation, so
	// we sit on the gray axis.
	rgBisector = 1.0 / math.Sqrt2
	grayAxis   = 1.0 / math.Sqrt(3.0)
)

// SphericalRG maps a linear RGB sample to its two spherical angles,
// each rescaled into [0,1]. Defined for every finite input, black
// included; never returns NaN or Inf.
func SphericalRG(c hdrcolor.RGB) pmath.Vec2 {
	rgLen := math.Hypot(c.R, c.G)
	rgbLen := math.Sqrt(c.R*c.R + c.G*c.G + c.B*c.B)

	azimuth := rgBisector
	if rgLen != 0 {
		azimuth = c.G / rgLen
	}

	inclination := grayAxis
	if rgbLen != 0 {
		inclination = rgLen / rgbLen
	}

	// asin of the ratio magnitude gives an angle in [0, pi/2]; rescale
	// so a full right angle comes out as 1.0. The ratios get clamped
	// first: the two lengths round independently, so a ratio can land
	// a whisker above 1, which asin would turn into NaN.
	return pmath.Vec2{
		math.Asin(pmath.Clamp(math.Abs(azimuth), 0, 1)) * 2.0 / math.Pi,
		math.Asin(pmath.Clamp(math.Abs(inclination), 0, 1)) * 2.0 / math.Pi,
	}
}
