package pixfmt_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srlehn/fbport/pixfmt"
)

func TestRGB565RoundTrip(t *testing.T) {
	for c := 0; c <= 0xffff; c++ {
		p := pixfmt.RGB565(c)
		if got := pixfmt.FromRGB565(p).RGB565(); got != p {
			t.Fatalf("round trip of %#04x yielded %#04x", c, got)
		}
	}
}

func TestFromRGB565Extremes(t *testing.T) {
	assert.Equal(t, pixfmt.Pixel(0xffffff), pixfmt.FromRGB565(0xffff))
	assert.Equal(t, pixfmt.Pixel(0), pixfmt.FromRGB565(0))
	assert.Equal(t, pixfmt.Pixel(0xff0000), pixfmt.FromRGB565(0xf800))
	assert.Equal(t, pixfmt.Pixel(0x00ff00), pixfmt.FromRGB565(0x07e0))
	assert.Equal(t, pixfmt.Pixel(0x0000ff), pixfmt.FromRGB565(0x001f))
}

func TestFromColor(t *testing.T) {
	assert.Equal(t, pixfmt.RGB(1, 2, 3), pixfmt.FromColor(color.RGBA{R: 1, G: 2, B: 3, A: 0xff}))
	assert.Equal(t, pixfmt.FromRGB565(0x1234), pixfmt.FromColor(pixfmt.RGB565(0x1234)))
	assert.Equal(t, pixfmt.RGB565(0xf800), pixfmt.RGB565Model.Convert(color.RGBA{R: 0xff, A: 0xff}))
}

func TestBlend(t *testing.T) {
	a, b := pixfmt.RGB(0, 100, 200), pixfmt.RGB(100, 200, 0)
	assert.Equal(t, a, pixfmt.Blend(a, b, 0))
	assert.Equal(t, b, pixfmt.Blend(a, b, 1))
	assert.Equal(t, pixfmt.RGB(50, 150, 100), pixfmt.Blend(a, b, 0.5))
}

func TestPlanes(t *testing.T) {
	src := []pixfmt.Pixel{pixfmt.RGB(1, 2, 3), pixfmt.RGB(4, 5, 6)}
	r, g, b := pixfmt.SplitPlanes(src)
	assert.Equal(t, []uint8{1, 4}, r)
	assert.Equal(t, []uint8{2, 5}, g)
	assert.Equal(t, []uint8{3, 6}, b)
	assert.Equal(t, src, pixfmt.JoinPlanes(r, g, b))

	buf := make([]byte, 6)
	assert.Equal(t, 6, pixfmt.PackRGB(buf, src))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, buf)
	back := make([]pixfmt.Pixel, 2)
	assert.Equal(t, 2, pixfmt.UnpackRGB(back, buf))
	assert.Equal(t, src, back)
}

func TestEncodeRow(t *testing.T) {
	src := []pixfmt.Pixel{pixfmt.RGB(0xff, 0, 0), pixfmt.RGB(0, 0, 0xff)}
	tests := map[string]struct {
		format pixfmt.DeviceFormat
		want   []byte
	}{
		`rgb565`: {pixfmt.FormatRGB565LE, []byte{0x00, 0xf8, 0x1f, 0x00}},
		`xrgb`:   {pixfmt.FormatXRGB8888, []byte{0, 0, 0xff, 0, 0xff, 0, 0, 0}},
		`xbgr`:   {pixfmt.FormatXBGR8888, []byte{0xff, 0, 0, 0, 0, 0, 0xff, 0}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			dst := make([]byte, len(tc.want))
			n := pixfmt.EncodeRow(dst, src, tc.format)
			assert.Equal(t, len(tc.want), n)
			assert.Equal(t, tc.want, dst)
		})
	}
	assert.Error(t, pixfmt.DeviceFormat{BitsPerPixel: 24}.Validate())
}

func TestImageSubImage(t *testing.T) {
	m := pixfmt.NewImage(image.Rect(0, 0, 4, 3))
	m.SetPixel(2, 1, 7)
	sub := m.SubImage(image.Rect(1, 1, 3, 3)).(*pixfmt.Image)
	assert.Equal(t, pixfmt.Pixel(7), sub.PixelAt(2, 1))
	sub.SetPixel(1, 2, 9)
	assert.Equal(t, pixfmt.Pixel(9), m.PixelAt(1, 2))
	assert.Equal(t, pixfmt.Pixel(0), m.PixelAt(10, 10))

	c := m.Clone()
	c.SetPixel(0, 0, 5)
	assert.Equal(t, pixfmt.Pixel(0), m.PixelAt(0, 0))
	assert.Len(t, m.RGB24(), 4*3*3)
}
