package pixfmt

import (
	"image"
	"image/color"
	"image/draw"
)

// Image is an in memory image of native pixels.
type Image struct {
	Pix    []Pixel
	Stride int
	Rect   image.Rectangle
}

var _ draw.Image = (*Image)(nil)

func NewImage(r image.Rectangle) *Image {
	return &Image{
		Pix:    make([]Pixel, r.Dx()*r.Dy()),
		Stride: r.Dx(),
		Rect:   r,
	}
}

func (m *Image) ColorModel() color.Model { return Model }
func (m *Image) Bounds() image.Rectangle { return m.Rect }

func (m *Image) PixOffset(x, y int) int {
	return (y-m.Rect.Min.Y)*m.Stride + (x - m.Rect.Min.X)
}

func (m *Image) At(x, y int) color.Color { return m.PixelAt(x, y) }

func (m *Image) PixelAt(x, y int) Pixel {
	if !(image.Point{x, y}.In(m.Rect)) {
		return 0
	}
	return m.Pix[m.PixOffset(x, y)]
}

func (m *Image) Set(x, y int, c color.Color) { m.SetPixel(x, y, FromColor(c)) }

func (m *Image) SetPixel(x, y int, p Pixel) {
	if !(image.Point{x, y}.In(m.Rect)) {
		return
	}
	m.Pix[m.PixOffset(x, y)] = p
}

// Row returns the pixels of row y within [x0, x1).
func (m *Image) Row(y, x0, x1 int) []Pixel {
	i := m.PixOffset(x0, y)
	return m.Pix[i : i+(x1-x0)]
}

// SubImage shares the pixels of m.
func (m *Image) SubImage(r image.Rectangle) image.Image {
	r = r.Intersect(m.Rect)
	if r.Empty() {
		return &Image{}
	}
	return &Image{
		Pix:    m.Pix[m.PixOffset(r.Min.X, r.Min.Y):],
		Stride: m.Stride,
		Rect:   r,
	}
}

func (m *Image) Fill(p Pixel) {
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		row := m.Row(y, m.Rect.Min.X, m.Rect.Max.X)
		for i := range row {
			row[i] = p
		}
	}
}

// Clone returns a deep copy with its own compact stride.
func (m *Image) Clone() *Image {
	c := NewImage(m.Rect)
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		copy(c.Row(y, m.Rect.Min.X, m.Rect.Max.X), m.Row(y, m.Rect.Min.X, m.Rect.Max.X))
	}
	return c
}

// RGB24 returns the image as packed 24 bit RGB rows.
func (m *Image) RGB24() []byte {
	w := m.Rect.Dx()
	buf := make([]byte, 3*w*m.Rect.Dy())
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		off := 3 * w * (y - m.Rect.Min.Y)
		PackRGB(buf[off:off+3*w], m.Row(y, m.Rect.Min.X, m.Rect.Max.X))
	}
	return buf
}

// FromImage converts img into a new native image.
func FromImage(img image.Image) *Image {
	if m, ok := img.(*Image); ok {
		return m.Clone()
	}
	b := img.Bounds()
	m := NewImage(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m.Pix[m.PixOffset(x, y)] = FromColor(img.At(x, y))
		}
	}
	return m
}
