package pmath

// Basic 2-vector sums and products, used all over the flow passes

import(
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// Use a local type so we can hang methods off it
type Vec2 f64.Vec2

func (v Vec2)Add(o Vec2) Vec2 {
	return Vec2{v[0] + o[0], v[1] + o[1]}
}

func (v Vec2)Sub(o Vec2) Vec2 {
	return Vec2{v[0] - o[0], v[1] - o[1]}
}

func (v Vec2)Scale(f float64) Vec2 {
	return Vec2{v[0] * f, v[1] * f}
}

// Element-wise product; this is how vectors change units (pixels to
// normalized and back), so it comes up a lot.
func (v Vec2)MulElem(o Vec2) Vec2 {
	return Vec2{v[0] * o[0], v[1] * o[1]}
}

func (v Vec2)DivElem(o Vec2) Vec2 {
	return Vec2{v[0] / o[0], v[1] / o[1]}
}

func (v Vec2)Dot(o Vec2) float64 {
	return v[0]*o[0] + v[1]*o[1]
}

func (v Vec2)Len() float64 {
	return math.Hypot(v[0], v[1])
}

func (v Vec2)Abs() Vec2 {
	return Vec2{math.Abs(v[0]), math.Abs(v[1])}
}

func (v Vec2)Clamp(min, max float64) Vec2 {
	return Vec2{Clamp(v[0], min, max), Clamp(v[1], min, max)}
}

func (v Vec2)Rotate(thetaDeg float64) Vec2 {
	cosTheta := math.Cos(thetaDeg * math.Pi / 180.0)
	sinTheta := math.Sin(thetaDeg * math.Pi / 180.0)
	return Vec2{
		v[0]*cosTheta - v[1]*sinTheta,
		v[0]*sinTheta + v[1]*cosTheta,
	}
}

func (v Vec2)String() string {
	return fmt.Sprintf("[%12.10f, %12.10f]", v[0], v[1])
}
