package pimage

import(
	"math"

	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/papadanku/papaganda/pkg/pmath"
)

// Sampler returns a bilinear fetch over the plane's first 3 channels,
// addressed by normalized coordinates in [0,1) with texel centers at
// (x+0.5)/w. Out-of-range coordinates clamp to the edge texel. The
// derivative arguments are part of the fetch contract (samplers backed
// by mipped textures want them); a plain CPU fetch has no use for them.
func (p *Plane)Sampler() func(coord, dX, dY pmath.Vec2) hdrcolor.RGB {
	w, h := p.width, p.height

	return func(coord, dX, dY pmath.Vec2) hdrcolor.RGB {
		fx := coord[0]*float64(w) - 0.5
		fy := coord[1]*float64(h) - 0.5

		x0 := int(math.Floor(fx))
		y0 := int(math.Floor(fy))
		tx := fx - float64(x0)
		ty := fy - float64(y0)

		x1 := clampi(x0+1, 0, w-1)
		y1 := clampi(y0+1, 0, h-1)
		x0 = clampi(x0, 0, w-1)
		y0 = clampi(y0, 0, h-1)

		var rgb [3]float64
		for c := 0; c < 3; c++ {
			top := pmath.Lerp(p.Get(x0, y0, c), p.Get(x1, y0, c), tx)
			bot := pmath.Lerp(p.Get(x0, y1, c), p.Get(x1, y1, c), tx)
			rgb[c] = pmath.Lerp(top, bot, ty)
		}
		return hdrcolor.RGB{R: rgb[0], G: rgb[1], B: rgb[2]}
	}
}

func clampi(v, min, max int) int {
	if v < min { return min }
	if v > max { return max }
	return v
}
