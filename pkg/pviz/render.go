// Package pviz turns flow fields into something you can look at.
package pviz

import(
	"image"
	"log"

	"github.com/fogleman/gg"

	"github.com/papadanku/papaganda/pkg/pflow"
	"github.com/papadanku/papaganda/pkg/pimage"
)

// A Renderer draws a flow field into an image. The background plane
// and config are there for renderers that want them; the simple ones
// ignore both.
type Renderer func(f *pflow.Field, bg *pimage.Plane, cfg pflow.Config) image.Image

func GetRenderer(cfg pflow.Config) Renderer {
	switch cfg.Visualizer {
	case "wheel":  return RenderWheel
	case "gray":   return RenderGray
	case "quiver": return RenderQuiver
	default:
		log.Fatalf("no Visualizer strategy named '%s'", cfg.Visualizer)
		return nil
	}
}

// DumpField saves a quick wheel render with a title scribbled on it,
// for eyeballing intermediate fields.
func DumpField(f *pflow.Field, title, filename string) {
	img := RenderWheel(f, nil, pflow.Config{})

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1, 1, 1)
	dc.DrawString(title, 10, 20)
	dc.SavePNG(filename)
}
