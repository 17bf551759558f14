package pflow

import(
	"fmt"
	"log"

	"github.com/papadanku/papaganda/pkg/pimage"
	"github.com/papadanku/papaganda/pkg/pmath"
)

// A Pyramid holds one frame at every scale: level 0 is the frame
// itself, and each level above is the one below blurred and 2x
// decimated.
type Pyramid struct {
	levels []*pimage.Plane
}

func NewPyramid(base *pimage.Plane, nLevels int) *Pyramid {
	p := Pyramid{levels: make([]*pimage.Plane, nLevels)}

	p.levels[0] = base.Copy()
	for k := 1; k < nLevels; k++ {
		lowerLevelBlurred := p.levels[k-1].GaussianBlur()
		p.levels[k] = lowerLevelBlurred.DownSample()
	}
	return &p
}

func (p *Pyramid)NumLevels() int            { return len(p.levels) }
func (p *Pyramid)Level(k int) *pimage.Plane { return p.levels[k] }

// NumLevels figures out how deep a pyramid a frame supports: halve
// until the short side would drop below 8.
func NumLevels(width, height int) int {
	nLevels := 0
	minDim := height
	if width < minDim { minDim = width }
	for minDim >= 8 {
		minDim /= 2
		nLevels++
	}
	if nLevels < 1 { nLevels = 1 }
	return nLevels
}

// An Estimator runs the whole coarse-to-fine estimation for a frame
// pair.
type Estimator struct {
	cfg    Config
	kernel *Kernel

	// OnLevel, when set, sees each level's filtered field as it
	// completes (finest is level 0); the CLI hangs debug renders off
	// this.
	OnLevel func(level int, f *Field)
}

func NewEstimator(cfg Config) *Estimator {
	return &Estimator{cfg: cfg, kernel: NewKernel(cfg)}
}

// EstimateFlow estimates per-pixel motion between two 3-channel
// linear RGB planes of the same size. The returned field is at frame
// resolution, in normalized units; the vector at a pixel points from
// that spot in the previous frame to where its content lands in the
// current one.
func (e *Estimator)EstimateFlow(prev, cur *pimage.Plane) (*Field, error) {
	if prev.Dx() != cur.Dx() || prev.Dy() != cur.Dy() {
		return nil, fmt.Errorf("frame sizes differ: %dx%d vs %dx%d",
			prev.Dx(), prev.Dy(), cur.Dx(), cur.Dy())
	}
	if prev.Dx() < 1 || prev.Dy() < 1 {
		return nil, fmt.Errorf("degenerate frame: %dx%d", prev.Dx(), prev.Dy())
	}

	nLevels := e.cfg.Levels
	if nLevels <= 0 {
		nLevels = NumLevels(cur.Dx(), cur.Dy())
	}
	// However deep the config asks to go, every level must keep at
	// least one pixel on each side
	maxLevels := 1
	minDim := cur.Dy()
	if cur.Dx() < minDim { minDim = cur.Dx() }
	for minDim >= 2 {
		minDim /= 2
		maxLevels++
	}
	if nLevels > maxLevels { nLevels = maxLevels }

	prevPyr := NewPyramid(prev, nLevels)
	curPyr := NewPyramid(cur, nLevels)

	coarsest := curPyr.Level(nLevels - 1)
	field := NewField(coarsest.Dx(), coarsest.Dy())

	for lvl := nLevels - 1; lvl >= 0; lvl-- {
		field = e.refineLevel(lvl, field, prevPyr.Level(lvl), curPyr.Level(lvl))
		field = field.Filter(e.cfg.FilterPasses)
		if e.OnLevel != nil { e.OnLevel(lvl, field) }

		if lvl > 0 {
			finer := NewField(curPyr.Level(lvl-1).Dx(), curPyr.Level(lvl-1).Dy())
			field.UpSampleInto(finer)
			field = finer
		}
	}
	return field, nil
}

// refineLevel runs RefineFlow across one level, row bands in
// parallel. Each band writes only its own rows and RefineFlow is
// pure, so the result matches a serial sweep exactly.
func (e *Estimator)refineLevel(lvl int, incoming *Field, prevPlane, curPlane *pimage.Plane) *Field {
	width, height := curPlane.Dx(), curPlane.Dy()
	pixelSize := pmath.Vec2{1 / float64(width), 1 / float64(height)}
	curSample := curPlane.Sampler()
	prevSample := prevPlane.Sampler()

	if e.cfg.Verbosity > 0 {
		log.Printf("flow level %d: %dx%d, incoming %s\n", lvl, width, height, incoming.Stats())
	}

	out := NewField(width, height)
	pimage.ParallelRows(height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < width; x++ {
				coord := pmath.Vec2{
					(float64(x) + 0.5) / float64(width),
					(float64(y) + 0.5) / float64(height),
				}
				out.Set(x, y, e.kernel.RefineFlow(coord, incoming.Get(x, y), curSample, prevSample, pixelSize))
			}
		}
	})
	return out
}
