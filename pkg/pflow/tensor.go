package pflow

import(
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/papadanku/papaganda/pkg/pcolor"
	"github.com/papadanku/papaganda/pkg/pmath"
)

// A FrameSampler fetches a frame's color at a normalized coordinate in
// [0,1)^2. The two trailing vectors describe the per-pixel coordinate
// step, for implementations that pick detail levels by footprint; the
// CPU samplers ignore them.
type FrameSampler func(coord, dX, dY pmath.Vec2) hdrcolor.RGB

// A StructureTensor holds what the sampling window accumulates: the
// three spatial gradient products, the two space-time products, and
// the sum of squared temporal differences. Both invariant channels
// contribute to every sum.
type StructureTensor struct {
	IxIx, IyIy, IxIy float64
	IxIt, IyIt       float64
	SSD              float64
}

// A Kernel is the fixed machinery of the refinement step: the rotated
// window offsets (in pixel units) and the confidence threshold, built
// once so the per-pixel work is pure arithmetic.
type Kernel struct {
	threshold float64
	offsets   []pmath.Vec2
}

func NewKernel(cfg Config) *Kernel {
	k := Kernel{threshold: cfg.ConfidenceThreshold}

	r := cfg.WindowRadius
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			off := pmath.Vec2{float64(x), float64(y)}.Rotate(cfg.WindowRotationDeg)
			k.offsets = append(k.offsets, off)
		}
	}
	return &k
}

// Accumulate runs the window over one pixel: the current frame gets
// sampled at the warped coordinate, the previous frame at the unwarped
// one. Every color goes through the invariant before any differencing,
// so a lighting change between the frames mostly cancels out. The y
// axis points down the image, as raster coordinates do.
func (k *Kernel)Accumulate(cur, prev FrameSampler, unwarped, warped, pixelSize pmath.Vec2) StructureTensor {
	dX := pmath.Vec2{pixelSize[0], 0}
	dY := pmath.Vec2{0, pixelSize[1]}

	st := StructureTensor{}
	for _, off := range k.offsets {
		d := off.MulElem(pixelSize)
		pc := unwarped.Add(d)
		cc := warped.Add(d)

		it := pcolor.SphericalRG(cur(cc, dX, dY)).Sub(pcolor.SphericalRG(prev(pc, dX, dY)))

		ix := pcolor.SphericalRG(cur(cc.Add(dX), dX, dY)).Sub(pcolor.SphericalRG(cur(cc.Sub(dX), dX, dY)))
		iy := pcolor.SphericalRG(cur(cc.Add(dY), dX, dY)).Sub(pcolor.SphericalRG(cur(cc.Sub(dY), dX, dY)))

		st.IxIx += ix.Dot(ix)
		st.IyIy += iy.Dot(iy)
		st.IxIy += ix.Dot(iy)
		st.IxIt += ix.Dot(it)
		st.IyIt += iy.Dot(it)
		st.SSD += it.Dot(it)
	}
	return st
}
