package pimage

import(
	"fmt"
	"math"
)

// A Plane is a grid of float64 samples with a fixed number of channels
// per cell, with some operations. Frames live in one as 3-channel
// linear RGB; flow fields get decoded into 2-channel planes so they
// can share the filtering code.
type Plane struct {
	width    int
	height   int
	channels int
	values   []float64
}

func NewPlane(w, h, channels int) *Plane {
	return &Plane{
		width:    w,
		height:   h,
		channels: channels,
		values:   make([]float64, w*h*channels),
	}
}

func (g1 *Plane)NewFromThis() *Plane { return NewPlane(g1.width, g1.height, g1.channels) }

func (p *Plane)Dx() int       { return p.width }
func (p *Plane)Dy() int       { return p.height }
func (p *Plane)Channels() int { return p.channels }

func (p *Plane)Set(x, y, c int, v float64) { p.values[(p.width*y+x)*p.channels+c] = v }
func (p *Plane)Get(x, y, c int) float64    { return p.values[(p.width*y+x)*p.channels+c] }

func (g1 *Plane)Copy() *Plane {
	g2 := g1.NewFromThis()
	copy(g2.values, g1.values)
	return g2
}

// GaussianBlur runs a separable [1 2 1]/4 pass over every channel. The
// edge rows/cols blend 3/4 of themselves with 1/4 of their inner
// neighbour, which keeps the overall weight at 1 without reading
// outside the grid.
func (g1 *Plane)GaussianBlur() *Plane {
	width := g1.width
	height := g1.height
	nc := g1.channels

	// A single row or column has no inner neighbours to blend
	if width < 2 || height < 2 { return g1.Copy() }

	g2 := g1.NewFromThis()

	T := g1.NewFromThis()

	//--- X blur, build up in T
	for y := 0; y < height; y++ {
		for x := 1; x < width-1; x++ {
			for c := 0; c < nc; c++ {
				t := 2.0 * g1.Get(x, y, c)
				t += g1.Get(x-1, y, c)
				t += g1.Get(x+1, y, c)
				T.Set(x, y, c, t/4.0)
			}
		}
		for c := 0; c < nc; c++ {
			T.Set(0, y, c, (3.0*g1.Get(0, y, c)+g1.Get(1, y, c))/4.0)
			T.Set(width-1, y, c, (3.0*g1.Get(width-1, y, c)+g1.Get(width-2, y, c))/4.0)
		}
	}

	//--- Y blur, read from T and generate output
	for x := 0; x < width; x++ {
		for y := 1; y < height-1; y++ {
			for c := 0; c < nc; c++ {
				t := 2.0 * T.Get(x, y, c)
				t += T.Get(x, y-1, c)
				t += T.Get(x, y+1, c)
				g2.Set(x, y, c, t/4.0)
			}
		}
		for c := 0; c < nc; c++ {
			g2.Set(x, 0, c, (3.0*T.Get(x, 0, c)+T.Get(x, 1, c))/4.0)
			g2.Set(x, height-1, c, (3.0*T.Get(x, height-1, c)+T.Get(x, height-2, c))/4.0)
		}
	}

	return g2
}

// DownSample returns a plane 1/4 of the size, averaging 2x2 blocks of
// the original.
func (g1 *Plane)DownSample() *Plane {
	width := g1.width / 2
	height := g1.height / 2
	g2 := NewPlane(width, height, g1.channels)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for c := 0; c < g1.channels; c++ {
				p := g1.Get(2*x, 2*y, c)
				p += g1.Get(2*x+1, 2*y, c)
				p += g1.Get(2*x, 2*y+1, c)
				p += g1.Get(2*x+1, 2*y+1, c)
				g2.Set(x, y, c, p/4.0)
			}
		}
	}

	return g2
}

// UpSampleInto populates a plane `B`, assumed to be 2x as big with the
// same channel count, by copying each value from `A` into a 2x2 block
// of values in `B`.
func (A *Plane)UpSampleInto(B *Plane) {
	awidth := A.width
	aheight := A.height

	for y := 0; y < B.height; y++ {
		for x := 0; x < B.width; x++ {
			ax := x / 2
			ay := y / 2
			if ax >= awidth { ax = awidth - 1 }
			if ay >= aheight { ay = aheight - 1 }
			for c := 0; c < B.channels; c++ {
				B.Set(x, y, c, A.Get(ax, ay, c))
			}
		}
	}
}

func (p *Plane)Stats() string {
	min := math.MaxFloat64
	max := -1.0 * min

	for i := 0; i < len(p.values); i++ {
		if p.values[i] > max { max = p.values[i] }
		if p.values[i] < min { min = p.values[i] }
	}
	return fmt.Sprintf("plane[%dx%dx%d, vals{%f,%f}]", p.width, p.height, p.channels, min, max)
}
