package resize_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/fbport/resize"
	"github.com/srlehn/fbport/resize/bild"
	"github.com/srlehn/fbport/resize/gift"
	"github.com/srlehn/fbport/resize/imaging"
	"github.com/srlehn/fbport/resize/nfnt"
	"github.com/srlehn/fbport/resize/rdefault"
	"github.com/srlehn/fbport/resize/rez"
	"github.com/srlehn/fbport/resize/xdraw"
)

func resizers() map[string]resize.Resizer {
	return map[string]resize.Resizer{
		`bild`:     &bild.Resizer{},
		`gift`:     &gift.Resizer{},
		`imaging`:  &imaging.Resizer{},
		`nfnt`:     &nfnt.Resizer{},
		`rdefault`: &rdefault.Resizer{},
		`rez`:      rez.Resizer{},
		`xdraw`:    xdraw.ApproxBiLinear(),
		`nearest`:  xdraw.NearestNeighbor(),
	}
}

func uniform(size image.Point, c color.Color) *image.NRGBA {
	m := image.NewNRGBA(image.Rectangle{Max: size})
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			m.Set(x, y, c)
		}
	}
	return m
}

func TestResizers(t *testing.T) {
	src := uniform(image.Pt(64, 32), color.NRGBA{R: 200, G: 40, B: 10, A: 255})
	for name, r := range resizers() {
		t.Run(name, func(t *testing.T) {
			for _, size := range []image.Point{{160, 80}, {16, 8}, {64, 32}} {
				m, err := r.Resize(src, size)
				require.NoError(t, err)
				require.Equal(t, size, m.Bounds().Size())
				cr, cg, cb, _ := m.At(m.Bounds().Min.X+size.X/2, m.Bounds().Min.Y+size.Y/2).RGBA()
				assert.InDelta(t, 200, cr>>8, 2)
				assert.InDelta(t, 40, cg>>8, 2)
				assert.InDelta(t, 10, cb>>8, 2)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	_, err := resize.Check(nil, image.Pt(1, 1))
	assert.Error(t, err)
	_, err = resize.Check(src, image.Pt(0, 3))
	assert.Error(t, err)
	same, err := resize.Check(src, image.Pt(4, 4))
	require.NoError(t, err)
	assert.True(t, same)
}
