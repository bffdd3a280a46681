package font_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"

	"github.com/srlehn/fbport/font"
	"github.com/srlehn/fbport/pixfmt"
	"github.com/srlehn/fbport/raster"
)

func TestGlyphTable(t *testing.T) {
	f := &font.Font{
		First: 'A',
		Last:  'A',
		// 3x2 glyph: ### / #.#
		Bitmap:   []byte{0b11110100},
		Glyphs:   []font.Glyph{{Width: 3, Height: 2, XAdvance: 4, XOffset: 0, YOffset: -2}},
		YAdvance: 3,
	}
	got := map[image.Point]bool{}
	adv := f.DrawRune(raster.PlotFunc(func(x, y int, _ pixfmt.Pixel) { got[image.Pt(x, y)] = true }), 10, 10, 'A', 1, 1)
	assert.Equal(t, 4, adv)
	assert.Equal(t, map[image.Point]bool{
		{10, 8}: true, {11, 8}: true, {12, 8}: true,
		{10, 9}: true, {12, 9}: true,
	}, got)

	_, ok := f.Glyph('B')
	assert.False(t, ok)
	assert.Equal(t, 0, f.DrawRune(raster.PlotFunc(func(int, int, pixfmt.Pixel) {}), 0, 0, 'B', 1, 1))

	big := map[image.Point]bool{}
	assert.Equal(t, 8, f.DrawRune(raster.PlotFunc(func(x, y int, _ pixfmt.Pixel) { big[image.Pt(x, y)] = true }), 0, 0, 'A', 1, 2))
	assert.Len(t, big, 5*4)
}

func TestDefault(t *testing.T) {
	f := font.Default()
	require.NotNil(t, f)
	assert.Equal(t, rune(0x20), f.First)
	assert.Equal(t, rune(0x7e), f.Last)
	assert.Len(t, f.Glyphs, 0x7e-0x20+1)
	assert.Equal(t, basicfont.Face7x13.Height, f.YAdvance)

	g, ok := f.Glyph('M')
	require.True(t, ok)
	assert.Equal(t, 7, g.XAdvance)
	assert.Positive(t, g.Height)
	assert.Negative(t, g.YOffset)

	w, h := f.Measure("ab\nxyz", 2)
	assert.Equal(t, 3*7*2, w)
	assert.Equal(t, 2*f.YAdvance*2, h)
}

func TestFromFaceNil(t *testing.T) {
	_, err := font.FromFace(nil, 0, 1)
	assert.Error(t, err)
}
