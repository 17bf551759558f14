package pflow

import(
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/papadanku/papaganda/pkg/pimage"
	"github.com/papadanku/papaganda/pkg/pmath"
)

// A Field is a dense grid of encoded motion vectors, one per pixel:
// the form flow takes at rest between pyramid levels and at the end of
// a run.
type Field struct {
	width  int
	height int
	vecs   []EncodedVector
}

func NewField(w, h int) *Field {
	return &Field{width: w, height: h, vecs: make([]EncodedVector, w*h)}
}

func (f *Field)Dx() int { return f.width }
func (f *Field)Dy() int { return f.height }

func (f *Field)Set(x, y int, v EncodedVector) { f.vecs[f.width*y+x] = v }
func (f *Field)Get(x, y int) EncodedVector    { return f.vecs[f.width*y+x] }

// Decode expands the field into a 2-channel normalized plane, which is
// where the filtering happens.
func (f *Field)Decode() *pimage.Plane {
	p := pimage.NewPlane(f.width, f.height, 2)
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			n := DecodeToNormalized(f.Get(x, y))
			p.Set(x, y, 0, n[0])
			p.Set(x, y, 1, n[1])
		}
	}
	return p
}

// FieldFromPlane re-encodes a 2-channel normalized plane.
func FieldFromPlane(p *pimage.Plane) *Field {
	f := NewField(p.Dx(), p.Dy())
	for y := 0; y < p.Dy(); y++ {
		for x := 0; x < p.Dx(); x++ {
			f.Set(x, y, EncodeFromNormalized(pmath.Vec2{p.Get(x, y, 0), p.Get(x, y, 1)}))
		}
	}
	return f
}

// Filter blurs the field: decode, the given number of separable
// Gaussian passes in the normalized domain, re-encode. Run between
// levels, it pulls outlier vectors back toward their neighbourhood
// before the next level sharpens things up again.
func (f *Field)Filter(passes int) *Field {
	if passes <= 0 { return f }

	p := f.Decode()
	for i := 0; i < passes; i++ {
		p = p.GaussianBlur()
	}
	return FieldFromPlane(p)
}

// UpSampleInto replicates each vector into a 2x2 block of the finer
// field `g`. Normalized units mean the same thing at every resolution,
// so the values carry over unchanged.
func (f *Field)UpSampleInto(g *Field) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fx := x / 2
			fy := y / 2
			if fx >= f.width { fx = f.width - 1 }
			if fy >= f.height { fy = f.height - 1 }
			g.Set(x, y, f.Get(fx, fy))
		}
	}
}

// FieldStats summarizes vector magnitudes in pixel units at the
// field's own resolution.
type FieldStats struct {
	Mean float64
	P50  float64
	P95  float64
	Max  float64
}

func (f *Field)Stats() FieldStats {
	s := FieldStats{}
	if len(f.vecs) == 0 { return s }

	pixelSize := pmath.Vec2{1 / float64(f.width), 1 / float64(f.height)}
	mags := make([]float64, 0, len(f.vecs))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			mags = append(mags, ToPixel(DecodeToNormalized(f.Get(x, y)), pixelSize).Len())
		}
	}
	sort.Float64s(mags)

	s.Mean = stat.Mean(mags, nil)
	s.P50 = stat.Quantile(0.5, stat.Empirical, mags, nil)
	s.P95 = stat.Quantile(0.95, stat.Empirical, mags, nil)
	s.Max = mags[len(mags)-1]
	return s
}

func (s FieldStats)String() string {
	return fmt.Sprintf("flow[px: mean=%.3f p50=%.3f p95=%.3f max=%.3f]", s.Mean, s.P50, s.P95, s.Max)
}
