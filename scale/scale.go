// Package scale maps the fixed 800x480 logical resolution onto a native
// resolution that is an integer multiple of it.
package scale

import (
	"image"

	"github.com/srlehn/fbport/internal/consts"
	"github.com/srlehn/fbport/internal/errors"
)

const (
	LogicalWidth  = 800
	LogicalHeight = 480
	MaxScale      = 4
)

// Profile is one of the supported native resolutions.
type Profile struct {
	Scale  int
	Native image.Point
}

// Profiles lists the supported resolutions by ascending scale.
func Profiles() []Profile {
	ps := make([]Profile, 0, MaxScale)
	for s := 1; s <= MaxScale; s++ {
		ps = append(ps, Profile{Scale: s, Native: image.Pt(s*LogicalWidth, s*LogicalHeight)})
	}
	return ps
}

// Scaler converts between logical, native and device coordinates.
// The native canvas is placed at Offset on the device.
type Scaler struct {
	Scale   int
	Logical image.Point
	Native  image.Point
	Offset  image.Point
}

// ForScale returns the scaler for an explicit scale factor.
func ForScale(s int) (*Scaler, error) {
	if s < 1 || s > MaxScale {
		return nil, errors.New(consts.ErrInvalidScale)
	}
	return &Scaler{
		Scale:   s,
		Logical: image.Pt(LogicalWidth, LogicalHeight),
		Native:  image.Pt(s*LogicalWidth, s*LogicalHeight),
	}, nil
}

// ForDevice picks the largest profile fitting a device of w x h pixels and
// centers it. A device smaller than the logical resolution is an error.
func ForDevice(w, h int) (*Scaler, error) {
	s := min(w/LogicalWidth, h/LogicalHeight, MaxScale)
	sc, err := ForScale(s)
	if err != nil {
		return nil, err
	}
	sc.Center(w, h)
	return sc, nil
}

// Center places the native canvas in the middle of a w x h surface.
// Surfaces smaller than the canvas get a zero offset.
func (s *Scaler) Center(w, h int) {
	if s == nil {
		return
	}
	s.Offset = image.Pt(max(0, (w-s.Native.X)/2), max(0, (h-s.Native.Y)/2))
}

func (s *Scaler) ToNative(x, y int) (nx, ny int) { return x * s.Scale, y * s.Scale }

func (s *Scaler) ToLogical(nx, ny int) (x, y int) {
	return floorDiv(nx, s.Scale), floorDiv(ny, s.Scale)
}

// Block returns the native pixels covered by logical pixel (x, y).
func (s *Scaler) Block(x, y int) image.Rectangle {
	nx, ny := s.ToNative(x, y)
	return image.Rect(nx, ny, nx+s.Scale, ny+s.Scale)
}

// RectToNative scales a logical rectangle.
func (s *Scaler) RectToNative(r image.Rectangle) image.Rectangle {
	return image.Rectangle{Min: r.Min.Mul(s.Scale), Max: r.Max.Mul(s.Scale)}
}

// DeviceToNative translates device coordinates into native canvas coordinates.
// ok is false for positions in the border.
func (s *Scaler) DeviceToNative(dx, dy int) (nx, ny int, ok bool) {
	nx, ny = dx-s.Offset.X, dy-s.Offset.Y
	return nx, ny, image.Pt(nx, ny).In(s.NativeBounds())
}

func (s *Scaler) NativeBounds() image.Rectangle { return image.Rectangle{Max: s.Native} }

func (s *Scaler) LogicalBounds() image.Rectangle { return image.Rectangle{Max: s.Logical} }

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
