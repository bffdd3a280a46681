package raster_test

import (
	"bytes"
	"image"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srlehn/fbport/internal/logx"
	"github.com/srlehn/fbport/pixfmt"
	"github.com/srlehn/fbport/raster"
)

type pixelSet map[image.Point]pixfmt.Pixel

func (s pixelSet) Plot(x, y int, c pixfmt.Pixel) { s[image.Pt(x, y)] = c }

func TestLineEndpoints(t *testing.T) {
	tests := map[string][4]int{
		`horizontal`: {0, 5, 9, 5},
		`vertical`:   {3, 9, 3, 0},
		`shallow`:    {0, 0, 10, 3},
		`steep`:      {2, 1, -3, 12},
		`diagonal`:   {5, 5, 0, 0},
	}
	for name, l := range tests {
		t.Run(name, func(t *testing.T) {
			s := pixelSet{}
			raster.Line(s, l[0], l[1], l[2], l[3], 1)
			assert.Contains(t, s, image.Pt(l[0], l[1]))
			assert.Contains(t, s, image.Pt(l[2], l[3]))
			dx, dy := l[2]-l[0], l[3]-l[1]
			assert.Len(t, s, max(abs(dx), abs(dy))+1)
		})
	}
}

func TestThickLineOneIsLine(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for rangeIter := 0; rangeIter < 200; rangeIter++ {
		x0, y0, x1, y1 := rnd.Intn(60)-30, rnd.Intn(60)-30, rnd.Intn(60)-30, rnd.Intn(60)-30
		for _, mode := range []raster.ThicknessMode{raster.ThicknessMiddle, raster.ThicknessClockwise, raster.ThicknessCounterClockwise} {
			thin, thick := pixelSet{}, pixelSet{}
			raster.Line(thin, x0, y0, x1, y1, 1)
			raster.ThickLine(thick, x0, y0, x1, y1, 1, mode, 1)
			assert.Equal(t, thin, thick)
		}
	}
}

func TestThickLineCoversCenter(t *testing.T) {
	for _, thickness := range []int{2, 3, 5} {
		center, thick := pixelSet{}, pixelSet{}
		raster.Line(center, 0, 0, 40, 17, 1)
		raster.ThickLine(thick, 0, 0, 40, 17, thickness, raster.ThicknessMiddle, 1)
		for pt := range center {
			assert.Contains(t, thick, pt)
		}
		assert.Greater(t, len(thick), (thickness-1)*len(center))
	}
	// horizontal line grows vertically
	s := pixelSet{}
	raster.ThickLine(s, 0, 10, 9, 10, 3, raster.ThicknessMiddle, 1)
	assert.Len(t, s, 30)
	for y := 9; y <= 11; y++ {
		assert.Contains(t, s, image.Pt(5, y))
	}
}

func TestCircleFootprint(t *testing.T) {
	for r := 0; r <= 12; r++ {
		filled, outline := pixelSet{}, pixelSet{}
		raster.FillCircle(filled, 0, 0, r, 1)
		raster.Circle(outline, 0, 0, r, 1)
		outer := (2*r + 1) * (2*r + 1)
		inner := (2*r - 1) * (2*r - 1)
		for y := -r - 2; y <= r+2; y++ {
			for x := -r - 2; x <= r+2; x++ {
				d4 := 4 * (x*x + y*y)
				pt := image.Pt(x, y)
				if d4 <= outer {
					assert.Contains(t, filled, pt)
				} else {
					assert.NotContains(t, filled, pt)
				}
				if r > 0 && d4 >= inner && d4 <= outer {
					assert.Contains(t, outline, pt)
				} else if r > 0 {
					assert.NotContains(t, outline, pt)
				}
			}
		}
	}
	s := pixelSet{}
	raster.Circle(s, 3, 4, 0, 1)
	assert.Equal(t, pixelSet{image.Pt(3, 4): 1}, s)
}

func TestFillTriangle(t *testing.T) {
	s := pixelSet{}
	raster.FillTriangle(s, 0, 0, 10, 10, 0, 10, 1)
	for _, pt := range []image.Point{{0, 0}, {10, 10}, {0, 10}, {2, 5}} {
		assert.Contains(t, s, pt)
	}
	assert.NotContains(t, s, image.Pt(8, 2))
	for y := 0; y <= 10; y++ {
		assert.Contains(t, s, image.Pt(0, y))
	}

	flat := pixelSet{}
	raster.FillTriangle(flat, 5, 3, 0, 3, 9, 3, 1)
	assert.Len(t, flat, 10)
}

func TestRect(t *testing.T) {
	s := pixelSet{}
	raster.Rect(s, 1, 1, 4, 3, 1)
	assert.Len(t, s, 10)
	assert.NotContains(t, s, image.Pt(2, 2))
	f := pixelSet{}
	raster.FillRect(f, 1, 1, 4, 3, 1)
	assert.Len(t, f, 12)
}

func TestBounded(t *testing.T) {
	s := pixelSet{}
	b := &raster.Bounded{Dst: s, Bounds: image.Rect(0, 0, 5, 5)}
	raster.FillCircle(b, 0, 0, 3, 1)
	for pt := range s {
		assert.True(t, pt.In(b.Bounds))
	}
	assert.NotEmpty(t, s)
}

func TestBoundedReportsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b := &raster.Bounded{Dst: pixelSet{}, Bounds: image.Rect(0, 0, 5, 5), Logger: logx.Prov(logger)}

	raster.FillRect(b, -10, -10, 10, 10, 1)
	assert.Equal(t, 100, b.Report(`FillRect`))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), `op=FillRect`)
	assert.Contains(t, buf.String(), `count=100`)

	assert.Zero(t, b.Report(`FillRect`))
	raster.FillRect(b, 0, 0, 5, 5, 1)
	assert.Zero(t, b.Report(`FillRect`))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
