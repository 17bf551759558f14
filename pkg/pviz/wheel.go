package pviz

import(
	"image"
	"image/color"
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"

	"github.com/papadanku/papaganda/pkg/pflow"
	"github.com/papadanku/papaganda/pkg/pimage"
	"github.com/papadanku/papaganda/pkg/pmath"
)

// RenderWheel is the classic color wheel: hue is the flow direction,
// saturation ramps up with magnitude, so still pixels come out white.
// Magnitudes are scaled against a high percentile rather than the max,
// which keeps one outlier vector from washing out the whole render.
func RenderWheel(f *pflow.Field, bg *pimage.Plane, cfg pflow.Config) image.Image {
	pixelSize := fieldPixelSize(f)
	scale := displayScale(f, pixelSize)

	img := image.NewRGBA(image.Rect(0, 0, f.Dx(), f.Dy()))
	for y := 0; y < f.Dy(); y++ {
		for x := 0; x < f.Dx(); x++ {
			px := pflow.ToPixel(pflow.DecodeToNormalized(f.Get(x, y)), pixelSize)

			hue := math.Atan2(px[1], px[0]) * 180.0 / math.Pi
			if hue < 0 { hue += 360.0 }
			sat := pmath.Clamp(px.Len()/scale, 0, 1)

			r, g, b := colorful.Hsv(hue, sat, 1).RGB255()
			img.Set(x, y, color.RGBA{r, g, b, 0xFF})
		}
	}
	return img
}

// RenderGray maps flow magnitude to a grayscale, gamma scaled to look
// normal for human vision.
func RenderGray(f *pflow.Field, bg *pimage.Plane, cfg pflow.Config) image.Image {
	pixelSize := fieldPixelSize(f)

	max := 0.0
	for y := 0; y < f.Dy(); y++ {
		for x := 0; x < f.Dx(); x++ {
			if mag := pflow.ToPixel(pflow.DecodeToNormalized(f.Get(x, y)), pixelSize).Len(); mag > max {
				max = mag
			}
		}
	}
	if max == 0.0 { max = 1.0 }

	img := image.NewRGBA64(image.Rectangle{Max: image.Point{f.Dx(), f.Dy()}})
	for x := 0; x < f.Dx(); x++ {
		for y := 0; y < f.Dy(); y++ {
			mag := pflow.ToPixel(pflow.DecodeToNormalized(f.Get(x, y)), pixelSize).Len()
			gray := pmath.GammaExpand_F64(mag / max)
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, y, col)
		}
	}
	return img
}

func fieldPixelSize(f *pflow.Field) pmath.Vec2 {
	return pmath.Vec2{1 / float64(f.Dx()), 1 / float64(f.Dy())}
}

// displayScale picks the magnitude that should saturate the render:
// the 98th percentile of the nonzero magnitudes, in pixels.
func displayScale(f *pflow.Field, pixelSize pmath.Vec2) float64 {
	mags := []float64{}
	for y := 0; y < f.Dy(); y++ {
		for x := 0; x < f.Dx(); x++ {
			if mag := pflow.ToPixel(pflow.DecodeToNormalized(f.Get(x, y)), pixelSize).Len(); mag > 0 {
				mags = append(mags, mag)
			}
		}
	}
	if len(mags) == 0 { return 1.0 }

	sort.Float64s(mags)
	scale := stat.Quantile(0.98, stat.Empirical, mags, nil)
	if scale <= 0 { return 1.0 }
	return scale
}
