package pviz

import(
	"image"
	"testing"

	"github.com/papadanku/papaganda/pkg/pflow"
	"github.com/papadanku/papaganda/pkg/pmath"
)

func uniformField(w, h int, px pmath.Vec2) *pflow.Field {
	f := pflow.NewField(w, h)
	pixelSize := pmath.Vec2{1 / float64(w), 1 / float64(h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.Set(x, y, pflow.EncodeFromNormalized(pflow.ToNormalized(px, pixelSize)))
		}
	}
	return f
}

func rgbaAt(img image.Image, x, y int) (uint32, uint32, uint32) {
	r, g, b, _ := img.At(x, y).RGBA()
	return r >> 8, g >> 8, b >> 8
}

func TestWheelStillSceneIsWhite(t *testing.T) {
	img := RenderWheel(pflow.NewField(8, 8), nil, pflow.NewConfig())

	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Fatalf("want 8x8, got %v", img.Bounds())
	}
	for _, pt := range [][2]int{{0, 0}, {4, 4}, {7, 7}} {
		if r, g, b := rgbaAt(img, pt[0], pt[1]); r != 255 || g != 255 || b != 255 {
			t.Errorf("still pixel (%d,%d): want white, got %d,%d,%d", pt[0], pt[1], r, g, b)
		}
	}
}

func TestWheelHueTracksDirection(t *testing.T) {
	// Rightward flow sits at the red end of the wheel
	img := RenderWheel(uniformField(8, 8, pmath.Vec2{2, 0}), nil, pflow.NewConfig())
	r, g, b := rgbaAt(img, 4, 4)
	if r <= g || r <= b {
		t.Errorf("rightward flow: want red-dominated, got %d,%d,%d", r, g, b)
	}

	// Downward flow lands a quarter turn around, in the greens
	img = RenderWheel(uniformField(8, 8, pmath.Vec2{0, 2}), nil, pflow.NewConfig())
	r, g, b = rgbaAt(img, 4, 4)
	if g < r || g <= b {
		t.Errorf("downward flow: want green-dominated, got %d,%d,%d", r, g, b)
	}
}

func TestGrayTracksMagnitude(t *testing.T) {
	f := pflow.NewField(8, 8)
	pixelSize := pmath.Vec2{1.0 / 8, 1.0 / 8}
	f.Set(4, 4, pflow.EncodeFromNormalized(pflow.ToNormalized(pmath.Vec2{2, 0}, pixelSize)))

	img := RenderGray(f, nil, pflow.NewConfig())

	if r, g, b := rgbaAt(img, 4, 4); r != 255 || g != 255 || b != 255 {
		t.Errorf("peak magnitude: want white, got %d,%d,%d", r, g, b)
	}
	if r, g, b := rgbaAt(img, 0, 0); r != 0 || g != 0 || b != 0 {
		t.Errorf("still pixel: want black, got %d,%d,%d", r, g, b)
	}
}

func TestGrayAllStillIsBlack(t *testing.T) {
	img := RenderGray(pflow.NewField(4, 4), nil, pflow.NewConfig())
	if r, g, b := rgbaAt(img, 2, 2); r != 0 || g != 0 || b != 0 {
		t.Errorf("still field: want black, got %d,%d,%d", r, g, b)
	}
}
