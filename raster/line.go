package raster

import "github.com/srlehn/fbport/pixfmt"

// Overlap selects extra pixels plotted where the stepper moves in both
// directions, so that parallel passes of a thick line leave no gaps.
type Overlap uint8

const (
	OverlapNone  Overlap = 0
	OverlapMajor Overlap = 1
	OverlapMinor Overlap = 2
	OverlapBoth  Overlap = OverlapMajor | OverlapMinor
)

// ThicknessMode selects on which side of the center line a thick line grows.
type ThicknessMode uint8

const (
	ThicknessMiddle ThicknessMode = iota
	ThicknessClockwise
	ThicknessCounterClockwise
)

func HLine(p Plotter, x0, x1, y int, c pixfmt.Pixel) {
	x0, x1 = order(x0, x1)
	for x := x0; x <= x1; x++ {
		p.Plot(x, y, c)
	}
}

func VLine(p Plotter, x, y0, y1 int, c pixfmt.Pixel) {
	y0, y1 = order(y0, y1)
	for y := y0; y <= y1; y++ {
		p.Plot(x, y, c)
	}
}

// Line draws a one pixel wide line including both end points.
func Line(p Plotter, x0, y0, x1, y1 int, c pixfmt.Pixel) {
	LineOverlap(p, x0, y0, x1, y1, OverlapNone, c)
}

// LineOverlap is a Bresenham stepper that additionally plots the pixel before
// (major) and/or after (minor) each diagonal step.
func LineOverlap(p Plotter, x0, y0, x1, y1 int, overlap Overlap, c pixfmt.Pixel) {
	if x0 == x1 || y0 == y1 {
		xa, xb := order(x0, x1)
		ya, yb := order(y0, y1)
		for y := ya; y <= yb; y++ {
			HLine(p, xa, xb, y, c)
		}
		return
	}
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	dx2, dy2 := dx<<1, dy<<1

	p.Plot(x0, y0, c)
	if dx > dy {
		e := dy2 - dx
		for x0 != x1 {
			x0 += sx
			if e >= 0 {
				if overlap&OverlapMajor != 0 {
					p.Plot(x0, y0, c)
				}
				y0 += sy
				if overlap&OverlapMinor != 0 {
					p.Plot(x0-sx, y0, c)
				}
				e -= dx2
			}
			e += dy2
			p.Plot(x0, y0, c)
		}
		return
	}
	e := dx2 - dy
	for y0 != y1 {
		y0 += sy
		if e >= 0 {
			if overlap&OverlapMajor != 0 {
				p.Plot(x0, y0, c)
			}
			x0 += sx
			if overlap&OverlapMinor != 0 {
				p.Plot(x0, y0-sy, c)
			}
			e -= dy2
		}
		e += dx2
		p.Plot(x0, y0, c)
	}
}

// ThickLine draws thickness parallel passes of a line, offset perpendicular
// to its major axis. A thickness of one or less is a plain Line.
func ThickLine(p Plotter, x0, y0, x1, y1, thickness int, mode ThicknessMode, c pixfmt.Pixel) {
	if thickness <= 1 {
		LineOverlap(p, x0, y0, x1, y1, OverlapNone, c)
		return
	}
	// the perpendicular stepper swaps the axes of the line
	dy, dx := x1-x0, y1-y0
	swap := true
	sx, sy := 1, 1
	if dx < 0 {
		dx, sx, swap = -dx, -1, !swap
	}
	if dy < 0 {
		dy, sy, swap = -dy, -1, !swap
	}
	dx2, dy2 := dx<<1, dy<<1

	adjust := thickness / 2
	switch mode {
	case ThicknessCounterClockwise:
		adjust = thickness - 1
	case ThicknessClockwise:
		adjust = 0
	}

	if dx >= dy {
		if swap {
			adjust = (thickness - 1) - adjust
			sy = -sy
		} else {
			sx = -sx
		}
		e := dy2 - dx
		for i := adjust; i > 0; i-- {
			x0, x1 = x0-sx, x1-sx
			if e >= 0 {
				y0, y1 = y0-sy, y1-sy
				e -= dx2
			}
			e += dy2
		}
		Line(p, x0, y0, x1, y1, c)
		e = dy2 - dx
		for i := thickness; i > 1; i-- {
			x0, x1 = x0+sx, x1+sx
			overlap := OverlapNone
			if e >= 0 {
				y0, y1 = y0+sy, y1+sy
				e -= dx2
				overlap = OverlapBoth
			}
			e += dy2
			LineOverlap(p, x0, y0, x1, y1, overlap, c)
		}
		return
	}

	if swap {
		sx = -sx
	} else {
		adjust = (thickness - 1) - adjust
		sy = -sy
	}
	e := dx2 - dy
	for i := adjust; i > 0; i-- {
		y0, y1 = y0-sy, y1-sy
		if e >= 0 {
			x0, x1 = x0-sx, x1-sx
			e -= dy2
		}
		e += dx2
	}
	Line(p, x0, y0, x1, y1, c)
	e = dx2 - dy
	for i := thickness; i > 1; i-- {
		y0, y1 = y0+sy, y1+sy
		overlap := OverlapNone
		if e >= 0 {
			x0, x1 = x0+sx, x1+sx
			e -= dy2
			overlap = OverlapBoth
		}
		e += dx2
		LineOverlap(p, x0, y0, x1, y1, overlap, c)
	}
}
