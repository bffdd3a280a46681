// Package raster scan converts lines, rectangles, circles and triangles in
// native pixel coordinates.
//
// Every primitive writes through a Plotter. Wrap the destination with
// Bounded to reject coordinates outside the canvas.
package raster

import (
	"image"

	"golang.org/x/exp/constraints"

	"github.com/srlehn/fbport/internal/logx"
	"github.com/srlehn/fbport/pixfmt"
)

type Plotter interface {
	Plot(x, y int, c pixfmt.Pixel)
}

// PlotFunc adapts a function to the Plotter interface.
type PlotFunc func(x, y int, c pixfmt.Pixel)

func (f PlotFunc) Plot(x, y int, c pixfmt.Pixel) { f(x, y, c) }

// ImagePlotter plots into a native image.
func ImagePlotter(m *pixfmt.Image) Plotter { return PlotFunc(m.SetPixel) }

// Bounded drops pixels outside Bounds and counts them until Report.
type Bounded struct {
	Dst    Plotter
	Bounds image.Rectangle
	Logger logx.LoggerProvider

	dropped int
	first   image.Point
}

var _ Plotter = (*Bounded)(nil)

func (b *Bounded) Plot(x, y int, c pixfmt.Pixel) {
	if b == nil || b.Dst == nil {
		return
	}
	if !(image.Point{x, y}.In(b.Bounds)) {
		if b.dropped == 0 {
			b.first = image.Pt(x, y)
		}
		b.dropped++
		return
	}
	b.Dst.Plot(x, y, c)
}

// Report logs the pixels dropped since the last Report as one record and
// returns their number.
func (b *Bounded) Report(op string) int {
	if b == nil || b.dropped == 0 {
		return 0
	}
	n := b.dropped
	logx.Debug(`pixels out of bounds`, b.Logger, `op`, op, `count`, n, `first`, b.first, `bounds`, b.Bounds)
	b.dropped = 0
	return n
}

func abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

func sign[T constraints.Signed](v T) T {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func order[T constraints.Ordered](a, b T) (T, T) {
	if a > b {
		return b, a
	}
	return a, b
}
