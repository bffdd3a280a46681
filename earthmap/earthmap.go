// Package earthmap loads the day and night world maps drawn behind the
// application's map view and projects latitude and longitude onto them.
//
// Both maps are equirectangular: x runs from 180°W to 180°E, y from 90°N
// to 90°S.
package earthmap

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	_ "golang.org/x/image/bmp"

	"github.com/srlehn/fbport/internal/consts"
	"github.com/srlehn/fbport/internal/errors"
	"github.com/srlehn/fbport/pixfmt"
	"github.com/srlehn/fbport/resize"
	"github.com/srlehn/fbport/resize/rdefault"
)

// Map is a day and night map pair in RGB565 with shared dimensions.
type Map struct {
	Day, Night    []uint16
	Width, Height int
}

// Validate checks that both maps cover Width x Height.
func (m *Map) Validate() error {
	if m == nil {
		return errors.NilReceiver()
	}
	n := m.Width * m.Height
	if m.Width <= 0 || m.Height <= 0 || len(m.Day) != n || len(m.Night) != n {
		return errors.WrapPrefix(consts.ErrMapSize, `earth map`, 0)
	}
	return nil
}

// Index is the map offset of the given position. Longitudes wrap around,
// latitudes are clamped to the poles.
func (m *Map) Index(lat, lng float64) int {
	x := int(math.Floor((lng + 180) / 360 * float64(m.Width)))
	x %= m.Width
	if x < 0 {
		x += m.Width
	}
	y := int(math.Floor((90 - lat) / 180 * float64(m.Height)))
	y = min(max(y, 0), m.Height-1)
	return y*m.Width + x
}

// Color blends day and night color at lat, lng. fractDay is 1 in full
// daylight and 0 at night.
func (m *Map) Color(lat, lng, fractDay float64) pixfmt.Pixel {
	i := m.Index(lat, lng)
	day := pixfmt.FromRGB565(pixfmt.RGB565(m.Day[i]))
	night := pixfmt.FromRGB565(pixfmt.RGB565(m.Night[i]))
	return pixfmt.Blend(night, day, fractDay)
}

// Decode reads a PNG, JPEG or BMP image.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.New(err)
	}
	return img, nil
}

// ToRGB565 resizes img to size and converts it row by row.
func ToRGB565(img image.Image, size image.Point, rsz resize.Resizer) ([]uint16, error) {
	if rsz == nil {
		rsz = &rdefault.Resizer{}
	}
	m, err := rsz.Resize(img, size)
	if err != nil {
		return nil, err
	}
	b := m.Bounds()
	if b.Size() != size {
		return nil, errors.WrapPrefix(consts.ErrMapSize, `resized image`, 0)
	}
	out := make([]uint16, 0, size.X*size.Y)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, uint16(pixfmt.FromColor(m.At(x, y)).RGB565()))
		}
	}
	return out, nil
}

// Load decodes the day and night images and fits them to size.
// A nil resizer picks one by image type.
func Load(day, night io.Reader, size image.Point, rsz resize.Resizer) (*Map, error) {
	if day == nil || night == nil {
		return nil, errors.NilParam()
	}
	m := &Map{Width: size.X, Height: size.Y}
	for _, l := range []struct {
		r   io.Reader
		dst *[]uint16
	}{{day, &m.Day}, {night, &m.Night}} {
		img, err := Decode(l.r)
		if err != nil {
			return nil, err
		}
		pix, err := ToRGB565(img, size, rsz)
		if err != nil {
			return nil, err
		}
		*l.dst = pix
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFiles is Load for image files.
func LoadFiles(dayFile, nightFile string, size image.Point, rsz resize.Resizer) (*Map, error) {
	day, err := os.Open(dayFile)
	if err != nil {
		return nil, errors.New(err)
	}
	defer day.Close()
	night, err := os.Open(nightFile)
	if err != nil {
		return nil, errors.New(err)
	}
	defer night.Close()
	return Load(day, night, size, rsz)
}
