package main

import(
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/skypies/util/histogram"

	"github.com/papadanku/papaganda/pkg/pflow"
	"github.com/papadanku/papaganda/pkg/pimage"
	"github.com/papadanku/papaganda/pkg/pmath"
	"github.com/papadanku/papaganda/pkg/pviz"
)

var(
	fVerbosity int
	fConfigFilename string
	fOutputFilename string
	fFloFilename string
	fVisualizer string
	fQuiverStep int
	fWindowRadius int
	fWindowRotation float64
	fConfidence float64
	fLevels int
	fFilterPasses int
	fMaxDimension int
	fDumpLevels bool
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fConfigFilename, "config", "", "yaml config file to start from")
	flag.StringVar(&fOutputFilename, "o", "flow.png", "name of output image file")
	flag.StringVar(&fFloFilename, "flo", "", "also write the raw field to this .flo file")
	flag.StringVar(&fVisualizer, "visualizer", "", "how to render the field: wheel / gray / quiver")
	flag.IntVar(&fQuiverStep, "quiverstep", 0, "arrow spacing for the quiver renderer, in pixels")

	flag.IntVar(&fWindowRadius, "radius", 0, "sampling window radius, in pixels")
	flag.Float64Var(&fWindowRotation, "rotation", -1, "sampling window rotation, in degrees (-1: keep config)")
	flag.Float64Var(&fConfidence, "confidence", -1, "confidence threshold for corrections (-1: keep config)")
	flag.IntVar(&fLevels, "levels", 0, "pyramid depth (0: derive from frame size)")
	flag.IntVar(&fFilterPasses, "filterpasses", -1, "blur passes over the field after each level (-1: keep config)")
	flag.IntVar(&fMaxDimension, "maxdim", 0, "prescale frames so neither side exceeds this")

	flag.BoolVar(&fDumpLevels, "dumplevels", false, "write a render of the field at every pyramid level")
	flag.Parse()

	log.Printf("papaganda starting\n")
}

func main() {
	cfg := pflow.NewConfig()
	if fConfigFilename != "" {
		b, err := ioutil.ReadFile(fConfigFilename)
		if err != nil {
			log.Fatal(err)
		}
		if cfg, err = pflow.NewConfigFromYaml(b); err != nil {
			log.Fatalf("bad config '%s': %v\n", fConfigFilename, err)
		}
	}

	// Override the config file with command line args, if relevant
	cfg.Verbosity = fVerbosity
	if fWindowRadius > 0 { cfg.WindowRadius = fWindowRadius }
	if fWindowRotation >= 0 { cfg.WindowRotationDeg = fWindowRotation }
	if fConfidence >= 0 { cfg.ConfidenceThreshold = fConfidence }
	if fLevels > 0 { cfg.Levels = fLevels }
	if fFilterPasses >= 0 { cfg.FilterPasses = fFilterPasses }
	if fMaxDimension > 0 { cfg.MaxDimension = fMaxDimension }
	if fVisualizer != "" { cfg.Visualizer = fVisualizer }
	if fQuiverStep > 0 { cfg.QuiverStep = fQuiverStep }

	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	frames := gatherFrames(flag.Args())
	nPairs := len(frames) - 1

	est := pflow.NewEstimator(cfg)
	if fDumpLevels {
		est.OnLevel = func(level int, f *pflow.Field) {
			pviz.DumpField(f, fmt.Sprintf("level %d", level), fmt.Sprintf("flow-level-%02d.png", level))
		}
	}

	prev := loadFrame(frames[0], cfg)
	for i := 1; i < len(frames); i++ {
		cur := loadFrame(frames[i], cfg)

		field, err := est.EstimateFlow(prev, cur)
		if err != nil {
			log.Fatalf("flow %s -> %s: %v\n", frames[i-1], frames[i], err)
		}
		log.Printf("flow %s -> %s: %s\n", frames[i-1], frames[i], field.Stats())
		if cfg.Verbosity > 0 {
			logMagnitudes(field)
		}

		img := pviz.GetRenderer(cfg)(field, cur, cfg)
		outFilename := numbered(fOutputFilename, i, nPairs)
		if err := pimage.WritePNG(img, outFilename); err != nil {
			log.Fatal(err)
		}
		log.Printf("flow render written '%s'\n", outFilename)

		if fFloFilename != "" {
			floFilename := numbered(fFloFilename, i, nPairs)
			if err := pviz.WriteFlo(field, floFilename); err != nil {
				log.Fatal(err)
			}
			log.Printf("flow field written '%s'\n", floFilename)
		}

		prev = cur
	}
}

// gatherFrames turns the command line into an ordered frame list: two
// image files as they are, or one directory swept for frames and put
// into capture order.
func gatherFrames(args []string) []string {
	if len(args) == 1 {
		if fi, err := os.Stat(args[0]); err == nil && fi.IsDir() {
			frames, err := pimage.ListFrames(args[0])
			if err != nil {
				log.Fatal(err)
			}
			if len(frames) < 2 {
				log.Fatalf("'%s' holds %d frame(s), need at least 2\n", args[0], len(frames))
			}
			return pimage.SortByCaptureTime(frames)
		}
	}
	if len(args) < 2 {
		log.Fatalf("usage: papaganda [flags] <prev> <cur> ...  (or one directory of frames)\n")
	}
	return args
}

func loadFrame(filename string, cfg pflow.Config) *pimage.Plane {
	img, err := pimage.Decode(filename)
	if err != nil {
		log.Fatal(err)
	}
	img = pimage.FitWithin(img, cfg.MaxDimension)

	p := pimage.FromImage(img)
	if cfg.Verbosity > 0 {
		log.Printf("loaded '%s': %s\n", filename, p.Stats())
	}
	return p
}

// numbered splices a pair index into a filename, once there is more
// than one pair to write.
func numbered(filename string, idx, nPairs int) string {
	if nPairs <= 1 { return filename }
	ext := filepath.Ext(filename)
	return fmt.Sprintf("%s-%04d%s", strings.TrimSuffix(filename, ext), idx, ext)
}

// logMagnitudes prints a histogram of flow magnitudes, bucketed in
// tenths of a pixel.
func logMagnitudes(f *pflow.Field) {
	h := histogram.Histogram{NumBuckets: 20, ValMin: 0, ValMax: 100}
	pixelSize := pmath.Vec2{1 / float64(f.Dx()), 1 / float64(f.Dy())}
	for y := 0; y < f.Dy(); y++ {
		for x := 0; x < f.Dx(); x++ {
			px := pflow.ToPixel(pflow.DecodeToNormalized(f.Get(x, y)), pixelSize)
			h.Add(histogram.ScalarVal(int(px.Len() * 10)))
		}
	}
	log.Printf("flow magnitudes, tenths of a pixel: %v\n", h)
}
