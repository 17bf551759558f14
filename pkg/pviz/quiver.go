package pviz

import(
	"image"

	"github.com/fogleman/gg"

	"github.com/papadanku/papaganda/pkg/pflow"
	"github.com/papadanku/papaganda/pkg/pimage"
	"github.com/papadanku/papaganda/pkg/pmath"
)

// RenderQuiver draws one arrow per grid cell, each arrow being the
// actual displacement in pixels. When a background plane is handed in
// it gets a dim grayscale render underneath, so the arrows line up
// with the content that produced them.
func RenderQuiver(f *pflow.Field, bg *pimage.Plane, cfg pflow.Config) image.Image {
	step := cfg.QuiverStep
	if step <= 0 { step = 16 }

	dc := gg.NewContextForImage(quiverBackdrop(f, bg))
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(1)

	pixelSize := fieldPixelSize(f)
	for y := step / 2; y < f.Dy(); y += step {
		for x := step / 2; x < f.Dx(); x += step {
			px := pflow.ToPixel(pflow.DecodeToNormalized(f.Get(x, y)), pixelSize)
			mag := px.Len()
			if mag < 0.1 { continue }

			base := pmath.Vec2{float64(x), float64(y)}
			tip := base.Add(px)
			dc.DrawLine(base[0], base[1], tip[0], tip[1])

			barb := mag / 3.0
			if barb > 4.0 { barb = 4.0 }
			back := px.Scale(-barb / mag)
			for _, deg := range []float64{25, -25} {
				b := tip.Add(back.Rotate(deg))
				dc.DrawLine(tip[0], tip[1], b[0], b[1])
			}
			dc.Stroke()
		}
	}
	return dc.Image()
}

// quiverBackdrop is the canvas the arrows go on: the frame itself when
// we have it, dimmed so white arrows stay legible, else black.
func quiverBackdrop(f *pflow.Field, bg *pimage.Plane) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, f.Dx(), f.Dy()))
	if bg == nil || bg.Dx() != f.Dx() || bg.Dy() != f.Dy() {
		for i := 3; i < len(img.Pix); i += 4 { img.Pix[i] = 0xFF }
		return img
	}

	for y := 0; y < f.Dy(); y++ {
		for x := 0; x < f.Dx(); x++ {
			lum := 0.0
			for c := 0; c < bg.Channels(); c++ {
				lum += bg.Get(x, y, c)
			}
			lum = pmath.Clamp(lum/float64(bg.Channels()), 0, 1)
			gray := uint8(pmath.GammaExpand_F64(lum) * 0.5 * 255.0)
			i := img.PixOffset(x, y)
			img.Pix[i+0] = gray
			img.Pix[i+1] = gray
			img.Pix[i+2] = gray
			img.Pix[i+3] = 0xFF
		}
	}
	return img
}
