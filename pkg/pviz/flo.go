package pviz

import(
	"encoding/binary"
	"fmt"
	"os"

	"github.com/papadanku/papaganda/pkg/pflow"
	"github.com/papadanku/papaganda/pkg/pmath"
)

// The Middlebury optical flow interchange format: a float32 sanity
// tag, int32 dimensions, then row-major interleaved (u,v) float32
// pairs in pixel units.
const floTag = float32(202021.25)

func WriteFlo(f *pflow.Field, filename string) error {
	pixelSize := fieldPixelSize(f)
	data := make([]float32, 0, 2*f.Dx()*f.Dy())
	for y := 0; y < f.Dy(); y++ {
		for x := 0; x < f.Dx(); x++ {
			px := pflow.ToPixel(pflow.DecodeToNormalized(f.Get(x, y)), pixelSize)
			data = append(data, float32(px[0]), float32(px[1]))
		}
	}

	fd, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fd.Close()

	for _, v := range []interface{}{floTag, int32(f.Dx()), int32(f.Dy()), data} {
		if err := binary.Write(fd, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("write flo '%s': %v", filename, err)
		}
	}
	return nil
}

func ReadFlo(filename string) (*pflow.Field, error) {
	fd, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r flo '%s': %v", filename, err)
	}
	defer fd.Close()

	var tag float32
	var w, h int32
	if err := binary.Read(fd, binary.LittleEndian, &tag); err != nil {
		return nil, fmt.Errorf("read flo '%s': %v", filename, err)
	} else if tag != floTag {
		return nil, fmt.Errorf("'%s' is not a flo file (tag %f)", filename, tag)
	}
	if err := binary.Read(fd, binary.LittleEndian, &w); err != nil {
		return nil, err
	}
	if err := binary.Read(fd, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if w < 1 || h < 1 || w > 1<<15 || h > 1<<15 {
		return nil, fmt.Errorf("'%s' has silly dimensions %dx%d", filename, w, h)
	}

	data := make([]float32, 2*w*h)
	if err := binary.Read(fd, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("read flo '%s': %v", filename, err)
	}

	f := pflow.NewField(int(w), int(h))
	pixelSize := fieldPixelSize(f)
	i := 0
	for y := 0; y < f.Dy(); y++ {
		for x := 0; x < f.Dx(); x++ {
			px := pmath.Vec2{float64(data[i]), float64(data[i+1])}
			f.Set(x, y, pflow.EncodeFromNormalized(pflow.ToNormalized(px, pixelSize)))
			i += 2
		}
	}
	return f, nil
}
