// Package font holds glyph tables in the layout of the Adafruit GFX library:
// one bit per pixel, most significant bit first, rows packed without padding.
package font

import (
	"image"
	"strings"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/srlehn/fbport/internal/errors"
	"github.com/srlehn/fbport/pixfmt"
	"github.com/srlehn/fbport/raster"
)

type Glyph struct {
	BitmapOffset int
	Width        int
	Height       int
	XAdvance     int
	// offsets of the upper left corner from the cursor on the baseline
	XOffset int
	YOffset int
}

type Font struct {
	First, Last rune
	Bitmap      []byte
	Glyphs      []Glyph
	YAdvance    int
}

func (f *Font) Glyph(r rune) (Glyph, bool) {
	if f == nil || r < f.First || r > f.Last {
		return Glyph{}, false
	}
	i := int(r - f.First)
	if i >= len(f.Glyphs) {
		return Glyph{}, false
	}
	return f.Glyphs[i], true
}

// DrawRune draws r with its baseline origin at (x, y), each font pixel
// magnified to a size x size block. It returns the horizontal advance.
func (f *Font) DrawRune(p raster.Plotter, x, y int, r rune, c pixfmt.Pixel, size int) int {
	g, ok := f.Glyph(r)
	if !ok {
		return 0
	}
	size = max(size, 1)
	bit := g.BitmapOffset * 8
	for yy := 0; yy < g.Height; yy++ {
		for xx := 0; xx < g.Width; xx++ {
			i := bit / 8
			if i < len(f.Bitmap) && f.Bitmap[i]&(0x80>>(bit%8)) != 0 {
				px, py := x+(g.XOffset+xx)*size, y+(g.YOffset+yy)*size
				if size == 1 {
					p.Plot(px, py, c)
				} else {
					raster.FillRect(p, px, py, size, size, c)
				}
			}
			bit++
		}
	}
	return g.XAdvance * size
}

// Measure returns the advance width of the widest line and the total
// height of s.
func (f *Font) Measure(s string, size int) (w, h int) {
	if f == nil {
		return 0, 0
	}
	size = max(size, 1)
	lines := strings.Split(s, "\n")
	for _, l := range lines {
		var lw int
		for _, r := range l {
			if g, ok := f.Glyph(r); ok {
				lw += g.XAdvance
			}
		}
		w = max(w, lw)
	}
	return w * size, len(lines) * f.YAdvance * size
}

// Ascent is the distance from the top of the tallest glyph to the baseline.
func (f *Font) Ascent() int {
	if f == nil {
		return 0
	}
	var a int
	for _, g := range f.Glyphs {
		a = max(a, -g.YOffset)
	}
	return a
}

// FromFace rasterizes the runes first..last of face into a glyph table.
// Mask values of at least half intensity are set.
func FromFace(face xfont.Face, first, last rune) (*Font, error) {
	if face == nil {
		return nil, errors.NilParam()
	}
	if last < first {
		return nil, errors.New(`empty rune range`)
	}
	f := &Font{
		First:    first,
		Last:     last,
		Glyphs:   make([]Glyph, 0, last-first+1),
		YAdvance: face.Metrics().Height.Ceil(),
	}
	for r := first; r <= last; r++ {
		dr, mask, mp, adv, ok := face.Glyph(fixed.P(0, 0), r)
		g := Glyph{BitmapOffset: len(f.Bitmap), XAdvance: adv.Round()}
		if !ok || mask == nil || dr.Empty() {
			f.Glyphs = append(f.Glyphs, g)
			continue
		}
		g.Width, g.Height = dr.Dx(), dr.Dy()
		g.XOffset, g.YOffset = dr.Min.X, dr.Min.Y
		f.Bitmap = append(f.Bitmap, packMask(mask, image.Rectangle{Min: mp, Max: mp.Add(dr.Size())})...)
		f.Glyphs = append(f.Glyphs, g)
	}
	return f, nil
}

func packMask(mask image.Image, r image.Rectangle) []byte {
	n := r.Dx() * r.Dy()
	buf := make([]byte, (n+7)/8)
	var bit int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if _, _, _, a := mask.At(x, y).RGBA(); a >= 0x8000 {
				buf[bit/8] |= 0x80 >> (bit % 8)
			}
			bit++
		}
	}
	return buf
}

var defaultFont = sync.OnceValue(func() *Font {
	f, err := FromFace(basicfont.Face7x13, 0x20, 0x7e)
	if err != nil {
		panic(err)
	}
	return f
})

// Default is the printable ASCII range of the 7x13 fixed font.
func Default() *Font { return defaultFont() }
