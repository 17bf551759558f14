package pflow

import(
	"github.com/x448/float16"

	"github.com/papadanku/papaganda/pkg/pmath"
)

// Flow vectors at rest are pairs of half precision floats in
// "fixed-range" units: a normalized value in [-1,1] is stretched so
// that 1.0 lands exactly on the largest finite value the format can
// hold. Spending the format's whole exponent range this way wrings the
// most precision out of 16 bits per component.

// FixedMax is that largest finite magnitude (2^15 x (1 + 1023/1024)).
// Derived from the format itself rather than spelled out as 65504.0,
// so it cannot drift from it.
var FixedMax = float64(float16.Frombits(0x7BFF).Float32())

// An EncodedVector is one motion vector at rest. The zero value
// decodes to the zero vector.
type EncodedVector struct {
	U, V float16.Float16
}

// Fixed returns the raw component values, still in fixed-range units.
// The warp composition works directly in these units.
func (e EncodedVector)Fixed() pmath.Vec2 {
	return pmath.Vec2{float64(e.U.Float32()), float64(e.V.Float32())}
}

// DecodeToNormalized maps an encoded vector back into [-1,1]^2.
// Components pushed out of range (the half precision infinities
// included) clamp back in, so nothing non-finite escapes.
func DecodeToNormalized(e EncodedVector) pmath.Vec2 {
	return pmath.Vec2{
		float64(e.U.Float32()) / FixedMax,
		float64(e.V.Float32()) / FixedMax,
	}.Clamp(-1, 1)
}

// EncodeFromNormalized maps a normalized vector into fixed-range
// units. Inputs are expected in [-1,1]; anything bigger saturates on
// the way back out through DecodeToNormalized.
func EncodeFromNormalized(n pmath.Vec2) EncodedVector {
	return EncodedVector{
		U: float16.Fromfloat32(float32(n[0] * FixedMax)),
		V: float16.Fromfloat32(float32(n[1] * FixedMax)),
	}
}
