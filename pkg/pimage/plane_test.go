package pimage

import(
	"math"
	"strings"
	"testing"
)

const eps = 1e-12

func constantPlane(w, h, nc int, v float64) *Plane {
	p := NewPlane(w, h, nc)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < nc; c++ {
				p.Set(x, y, c, v)
			}
		}
	}
	return p
}

func TestPlaneSetGet(t *testing.T) {
	p := NewPlane(4, 3, 2)
	if p.Dx() != 4 || p.Dy() != 3 || p.Channels() != 2 {
		t.Fatalf("dims: got %dx%dx%d", p.Dx(), p.Dy(), p.Channels())
	}

	p.Set(2, 1, 0, 0.25)
	p.Set(2, 1, 1, -0.5)
	if got := p.Get(2, 1, 0); got != 0.25 {
		t.Errorf("Get(2,1,0): want 0.25, got %g", got)
	}
	if got := p.Get(2, 1, 1); got != -0.5 {
		t.Errorf("Get(2,1,1): want -0.5, got %g", got)
	}
	if got := p.Get(1, 2, 0); got != 0 {
		t.Errorf("untouched cell: want 0, got %g", got)
	}
}

func TestPlaneCopyIsIndependent(t *testing.T) {
	p := constantPlane(3, 3, 1, 1)
	q := p.Copy()
	q.Set(1, 1, 0, 9)
	if got := p.Get(1, 1, 0); got != 1 {
		t.Errorf("copy wrote through to original: got %g", got)
	}
}

func TestGaussianBlurPreservesConstant(t *testing.T) {
	p := constantPlane(7, 5, 3, 0.75)
	q := p.GaussianBlur()
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			for c := 0; c < 3; c++ {
				if got := q.Get(x, y, c); math.Abs(got-0.75) > eps {
					t.Fatalf("at (%d,%d,%d): want 0.75, got %g", x, y, c, got)
				}
			}
		}
	}
}

func TestGaussianBlurImpulse(t *testing.T) {
	p := NewPlane(5, 5, 2)
	p.Set(2, 2, 0, 1)
	// Channel 1 stays flat so we can see the channels don't bleed
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			p.Set(x, y, 1, 0.5)
		}
	}

	q := p.GaussianBlur()

	if got := q.Get(2, 2, 0); math.Abs(got-0.25) > eps {
		t.Errorf("center: want 0.25, got %g", got)
	}
	if got := q.Get(2, 1, 0); math.Abs(got-0.125) > eps {
		t.Errorf("adjacent: want 0.125, got %g", got)
	}
	if got := q.Get(1, 1, 0); math.Abs(got-0.0625) > eps {
		t.Errorf("diagonal neighbour: want 0.0625, got %g", got)
	}

	// Kernel weights sum to 1, so the impulse mass is conserved
	sum := 0.0
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			sum += q.Get(x, y, 0)
		}
	}
	if math.Abs(sum-1) > eps {
		t.Errorf("mass: want 1, got %g", sum)
	}

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if got := q.Get(x, y, 1); math.Abs(got-0.5) > eps {
				t.Fatalf("channel bleed at (%d,%d): want 0.5, got %g", x, y, got)
			}
		}
	}
}

func TestGaussianBlurDegenerateDims(t *testing.T) {
	// Coarse pyramid levels can be a single row or column; blurring
	// them must hand the values back rather than walk off the grid
	for _, dims := range [][2]int{{1, 1}, {1, 4}, {4, 1}} {
		p := constantPlane(dims[0], dims[1], 2, 0.25)
		q := p.GaussianBlur()
		if q.Dx() != dims[0] || q.Dy() != dims[1] {
			t.Fatalf("%dx%d: dims changed to %dx%d", dims[0], dims[1], q.Dx(), q.Dy())
		}
		if got := q.Get(0, 0, 1); got != 0.25 {
			t.Errorf("%dx%d: want 0.25, got %g", dims[0], dims[1], got)
		}
	}
}

func TestDownSample(t *testing.T) {
	p := NewPlane(4, 2, 1)
	vals := [][]float64{
		{1, 3, 5, 7},
		{1, 3, 5, 7},
	}
	for y, row := range vals {
		for x, v := range row {
			p.Set(x, y, 0, v)
		}
	}

	q := p.DownSample()
	if q.Dx() != 2 || q.Dy() != 1 {
		t.Fatalf("dims: got %dx%d", q.Dx(), q.Dy())
	}
	if got := q.Get(0, 0, 0); math.Abs(got-2) > eps {
		t.Errorf("block 0: want 2, got %g", got)
	}
	if got := q.Get(1, 0, 0); math.Abs(got-6) > eps {
		t.Errorf("block 1: want 6, got %g", got)
	}
}

func TestDownSampleOddDims(t *testing.T) {
	p := constantPlane(5, 5, 2, 1)
	q := p.DownSample()
	if q.Dx() != 2 || q.Dy() != 2 {
		t.Fatalf("dims: got %dx%d", q.Dx(), q.Dy())
	}
	if got := q.Get(1, 1, 1); math.Abs(got-1) > eps {
		t.Errorf("constant survives decimation: want 1, got %g", got)
	}
}

func TestUpSampleInto(t *testing.T) {
	a := NewPlane(2, 2, 1)
	a.Set(0, 0, 0, 1)
	a.Set(1, 0, 0, 2)
	a.Set(0, 1, 0, 3)
	a.Set(1, 1, 0, 4)

	b := NewPlane(5, 4, 1)
	a.UpSampleInto(b)

	wants := [][]float64{
		{1, 1, 2, 2, 2},
		{1, 1, 2, 2, 2},
		{3, 3, 4, 4, 4},
		{3, 3, 4, 4, 4},
	}
	for y, row := range wants {
		for x, want := range row {
			if got := b.Get(x, y, 0); got != want {
				t.Errorf("at (%d,%d): want %g, got %g", x, y, want, got)
			}
		}
	}
}

func TestPlaneStats(t *testing.T) {
	p := constantPlane(5, 4, 3, 0.5)
	got := p.Stats()
	if !strings.HasPrefix(got, "plane[5x4x3") {
		t.Errorf("Stats: got %q", got)
	}
}
