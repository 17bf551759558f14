package pflow

import(
	"math"
	"testing"

	"github.com/x448/float16"

	"github.com/papadanku/papaganda/pkg/pmath"
)

func TestFixedMaxIsTheFormatCeiling(t *testing.T) {
	if FixedMax != 65504.0 {
		t.Errorf("FixedMax: want 65504, got %v", FixedMax)
	}
	// 2^15 x (1 + 1023/1024), written out
	if want := math.Pow(2, 15) * (1 + 1023.0/1024.0); FixedMax != want {
		t.Errorf("FixedMax: want %v, got %v", want, FixedMax)
	}
}

func TestZeroValueDecodesToZero(t *testing.T) {
	var e EncodedVector
	if got := DecodeToNormalized(e); got != (pmath.Vec2{}) {
		t.Errorf("zero value: want (0,0), got %s", got)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	// Within one unit of half precision's resolution, which is 2^-11
	// relative at the top of each binade
	const tol = 1e-3

	vals := []float64{-1, -0.9997, -0.75, -1.0 / 3, -0.001, 0, 0.0001, 0.125, 0.5, 0.9997, 1}
	for _, u := range vals {
		for _, v := range vals {
			in := pmath.Vec2{u, v}
			got := DecodeToNormalized(EncodeFromNormalized(in))
			if math.Abs(got[0]-u) > tol || math.Abs(got[1]-v) > tol {
				t.Errorf("round trip %s: got %s", in, got)
			}
		}
	}
}

func TestCodecEndpointsAreExact(t *testing.T) {
	// +-1 hit the format's largest finite value dead on
	for _, v := range []float64{-1, 0, 1} {
		got := DecodeToNormalized(EncodeFromNormalized(pmath.Vec2{v, -v}))
		if got[0] != v || got[1] != -v {
			t.Errorf("endpoint %g: got %s", v, got)
		}
	}
}

func TestDecodeClampsOutOfRange(t *testing.T) {
	// An encoded infinity (or any overflowed value) must come back as
	// a saturated, finite component
	e := EncodedVector{U: float16.Inf(1), V: float16.Inf(-1)}
	got := DecodeToNormalized(e)
	if got[0] != 1 || got[1] != -1 {
		t.Errorf("infinities: want (1,-1), got %s", got)
	}

	// Encoding something out of contract saturates on decode too
	big := EncodeFromNormalized(pmath.Vec2{4, -4})
	got = DecodeToNormalized(big)
	if got[0] != 1 || got[1] != -1 {
		t.Errorf("overflow: want (1,-1), got %s", got)
	}
}

func TestFixedTracksComponents(t *testing.T) {
	e := EncodeFromNormalized(pmath.Vec2{0.5, -0.25})
	fixed := e.Fixed()
	if math.Abs(fixed[0]-0.5*FixedMax) > 8 || math.Abs(fixed[1]+0.25*FixedMax) > 8 {
		t.Errorf("Fixed: got %s", fixed)
	}
}
