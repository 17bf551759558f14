package main

import(
	"flag"
	"image"
	"log"

	xdraw "golang.org/x/image/draw"

	"github.com/papadanku/papaganda/pkg/pflow"
	"github.com/papadanku/papaganda/pkg/pimage"
	"github.com/papadanku/papaganda/pkg/pviz"
)

var(
	fOutputFilename string
	fVisualizer string
	fScale int
)

func init() {
	flag.StringVar(&fOutputFilename, "o", "flow.png", "name of output image file")
	flag.StringVar(&fVisualizer, "visualizer", "wheel", "how to render the field: wheel / gray / quiver")
	flag.IntVar(&fScale, "scale", 1, "integer upscale for the render")
	flag.Parse()
}

func main() {
	if flag.NArg() != 1 {
		log.Fatalf("usage: flow2png [flags] some.flo\n")
	}

	field, err := pviz.ReadFlo(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded '%s': %s\n", flag.Arg(0), field.Stats())

	cfg := pflow.NewConfig()
	cfg.Visualizer = fVisualizer
	img := pviz.GetRenderer(cfg)(field, nil, cfg)

	if fScale > 1 {
		b := img.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*fScale, b.Dy()*fScale))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
		img = dst
	}

	if err := pimage.WritePNG(img, fOutputFilename); err != nil {
		log.Fatal(err)
	}
	log.Printf("render written '%s'\n", fOutputFilename)
}
