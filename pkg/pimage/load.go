package pimage

import(
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mdouchement/hdr"
	_ "github.com/mdouchement/hdr/codec/rgbe" // registers Radiance .hdr with image.Decode
	"github.com/nfnt/resize"
	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"
)

// Decode loads one frame image. TIFFs get decoded explicitly (the
// 16-bit ones are what cameras export); everything else goes through
// image.Decode, which picks up PNG, JPEG and Radiance HDR via the
// codecs imported above.
func Decode(filename string) (image.Image, error) {
	if reader, err := os.Open(filename); err != nil {
		return nil, fmt.Errorf("open+r img '%s': %v", filename, err)

	} else if strings.ToLower(filepath.Ext(filename)) == ".tif" || strings.ToLower(filepath.Ext(filename)) == ".tiff" {
		defer reader.Close()
		img, err := tiff.Decode(reader)
		if err != nil {
			return nil, fmt.Errorf("tiff loading '%s': %v", filename, err)
		}
		return img, nil

	} else {
		defer reader.Close()
		img, _, err := image.Decode(reader)
		if err != nil {
			return nil, fmt.Errorf("img loading '%s': %v", filename, err)
		}
		return img, nil
	}
}

// FromImage copies an image into a 3-channel linear plane. HDR images
// keep their float values as-is; LDR images map [0, 0xFFFF] channel
// values to [0.0, 1.0].
func FromImage(img image.Image) *Plane {
	b := img.Bounds()
	p := NewPlane(b.Dx(), b.Dy(), 3)

	if hdrImg, ok := img.(hdr.Image); ok {
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				r, g, bl, _ := hdrImg.HDRAt(b.Min.X+x, b.Min.Y+y).HDRRGBA()
				p.Set(x, y, 0, r)
				p.Set(x, y, 1, g)
				p.Set(x, y, 2, bl)
			}
		}
		return p
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			p.Set(x, y, 0, float64(r)/float64(0xFFFF))
			p.Set(x, y, 1, float64(g)/float64(0xFFFF))
			p.Set(x, y, 2, float64(bl)/float64(0xFFFF))
		}
	}
	return p
}

// LoadFrame is Decode plus the plane conversion.
func LoadFrame(filename string) (*Plane, error) {
	img, err := Decode(filename)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// FitWithin shrinks an image so neither side exceeds maxDim, keeping
// the aspect ratio. Lanczos, since this only happens once per frame.
func FitWithin(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 { return img }

	b := img.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim { return img }

	if b.Dx() >= b.Dy() {
		return resize.Resize(uint(maxDim), 0, img, resize.Lanczos3)
	}
	return resize.Resize(0, uint(maxDim), img, resize.Lanczos3)
}

// CaptureTime digs the capture timestamp out of a frame's EXIF.
func CaptureTime(filename string) (time.Time, error) {
	if reader, err := os.Open(filename); err != nil {
		return time.Time{}, fmt.Errorf("open+r exif '%s': %v", filename, err)

	} else if ex, err := exif.Decode(reader); err != nil {
		reader.Close()
		return time.Time{}, fmt.Errorf("exif parsing '%s': %v", filename, err)

	} else {
		reader.Close()
		when, err := ex.DateTime()
		if err != nil {
			return time.Time{}, fmt.Errorf("exif datetime '%s': %v", filename, err)
		}
		return when, nil
	}
}

// SortByCaptureTime orders frame files by their EXIF capture time,
// oldest first. If any frame has no usable timestamp the whole set
// falls back to filename order, so the ordering stays consistent.
func SortByCaptureTime(paths []string) []string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)

	times := map[string]time.Time{}
	for _, path := range paths {
		when, err := CaptureTime(path)
		if err != nil {
			log.Printf("no capture time for %s, ordering frames by filename (%v)\n", path, err)
			sort.Strings(sorted)
			return sorted
		}
		times[path] = when
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := times[sorted[i]], times[sorted[j]]
		if ti.Equal(tj) {
			return sorted[i] < sorted[j]
		}
		return ti.Before(tj)
	})
	return sorted
}

// ListFrames returns the image files directly under a directory.
func ListFrames(dir string) ([]string, error) {
	contents, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("readdir %s: %v", dir, err)
	}

	frames := []string{}
	for _, content := range contents {
		if content.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(content.Name())) {
		case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".hdr":
			frames = append(frames, filepath.Join(dir, content.Name()))
		}
	}
	return frames, nil
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}
