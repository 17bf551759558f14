package pflow

import "github.com/papadanku/papaganda/pkg/pmath"

// RefineFlow runs one refinement of one pixel's flow vector against a
// frame pair. `coord` addresses the pixel in [0,1)^2; `incoming` is
// the vector proposed by the coarser pyramid level. The result is the
// incoming flow plus whatever correction the window supports, back in
// encoded form. A pure function of its arguments, which is what makes
// the parallel level passes deterministic.
func (k *Kernel)RefineFlow(coord pmath.Vec2, incoming EncodedVector, cur, prev FrameSampler, pixelSize pmath.Vec2) EncodedVector {
	half := pmath.Vec2{0.5, 0.5}

	// Compose the warped sampling coordinate in fixed-range units:
	// centering first puts the addition where the format keeps its
	// precision, then the decode clamps the result back onto the frame.
	centered := coord.Sub(half).Scale(FixedMax).Add(incoming.Fixed())
	warped := centered.Scale(1.0 / FixedMax).Clamp(-1, 1).Add(half).Clamp(0, 1)

	correction := k.Solve(k.Accumulate(cur, prev, coord, warped, pixelSize))

	refined := DecodeToNormalized(incoming).Add(ToNormalized(correction, pixelSize)).Clamp(-1, 1)
	return EncodeFromNormalized(refined)
}
