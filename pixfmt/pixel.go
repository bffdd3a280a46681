// Package pixfmt converts between the controller's 16 bit RGB565 colors and
// the native 32 bit pixel representation used by the canvas.
package pixfmt

import "image/color"

// Pixel is a native pixel, 0x00RRGGBB.
type Pixel uint32

// RGB565 is a compact 16 bit color, RRRRRGGGGGGBBBBB.
type RGB565 uint16

func RGB(r, g, b uint8) Pixel {
	return Pixel(r)<<16 | Pixel(g)<<8 | Pixel(b)
}

func (p Pixel) RGB() (r, g, b uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// FromRGB565 expands a 16 bit color by replicating the high bits of each
// channel into the low bits, so that full intensity maps to 0xff.
func FromRGB565(c RGB565) Pixel {
	r := uint8(c>>11) & 0x1f
	g := uint8(c>>5) & 0x3f
	b := uint8(c) & 0x1f
	return RGB(r<<3|r>>2, g<<2|g>>4, b<<3|b>>2)
}

// RGB565 truncates the pixel to 16 bit.
func (p Pixel) RGB565() RGB565 {
	r, g, b := p.RGB()
	return RGB565From888(r, g, b)
}

func RGB565From888(r, g, b uint8) RGB565 {
	return RGB565(r>>3)<<11 | RGB565(g>>2)<<5 | RGB565(b>>3)
}

func (c RGB565) RGB() (r, g, b uint8) { return FromRGB565(c).RGB() }

// RGBA implements color.Color.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := p.RGB()
	r, g, b = uint32(r8), uint32(g8), uint32(b8)
	return r | r<<8, g | g<<8, b | b<<8, 0xffff
}

// RGBA implements color.Color.
func (c RGB565) RGBA() (r, g, b, a uint32) { return FromRGB565(c).RGBA() }

var (
	Model       color.Model = color.ModelFunc(pixelModel)
	RGB565Model color.Model = color.ModelFunc(rgb565Model)
)

func pixelModel(c color.Color) color.Color {
	if p, ok := c.(Pixel); ok {
		return p
	}
	return FromColor(c)
}

func rgb565Model(c color.Color) color.Color {
	if p, ok := c.(RGB565); ok {
		return p
	}
	return FromColor(c).RGB565()
}

// FromColor converts any color, compositing translucent colors over black.
func FromColor(c color.Color) Pixel {
	switch p := c.(type) {
	case Pixel:
		return p
	case RGB565:
		return FromRGB565(p)
	}
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Blend mixes a and b channel wise, weight 0 yields a and 1 yields b.
func Blend(a, b Pixel, weight float64) Pixel {
	switch {
	case weight <= 0:
		return a
	case weight >= 1:
		return b
	}
	ar, ag, ab := a.RGB()
	br, bg, bb := b.RGB()
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*weight + 0.5)
	}
	return RGB(mix(ar, br), mix(ag, bg), mix(ab, bb))
}
