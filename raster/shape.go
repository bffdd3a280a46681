package raster

import "github.com/srlehn/fbport/pixfmt"

// Rect outlines the w x h rectangle with its top left corner at (x, y).
func Rect(p Plotter, x, y, w, h int, c pixfmt.Pixel) {
	if w <= 0 || h <= 0 {
		return
	}
	x1, y1 := x+w-1, y+h-1
	HLine(p, x, x1, y, c)
	if h > 1 {
		HLine(p, x, x1, y1, c)
	}
	if h > 2 {
		VLine(p, x, y+1, y1-1, c)
		if w > 1 {
			VLine(p, x1, y+1, y1-1, c)
		}
	}
}

func FillRect(p Plotter, x, y, w, h int, c pixfmt.Pixel) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			p.Plot(xx, yy, c)
		}
	}
}

// Circle outlines the pixels whose distance d from the center satisfies
// (2r-1)² <= 4d² <= (2r+1)².
func Circle(p Plotter, cx, cy, r int, c pixfmt.Pixel) {
	if r < 0 {
		return
	}
	if r == 0 {
		p.Plot(cx, cy, c)
		return
	}
	inner, outer := (2*r-1)*(2*r-1), (2*r+1)*(2*r+1)
	circle(p, cx, cy, r, c, func(d4 int) bool { return d4 >= inner && d4 <= outer })
}

// FillCircle fills the pixels whose distance d from the center satisfies
// 4d² <= (2r+1)².
func FillCircle(p Plotter, cx, cy, r int, c pixfmt.Pixel) {
	if r < 0 {
		return
	}
	outer := (2*r + 1) * (2*r + 1)
	circle(p, cx, cy, r, c, func(d4 int) bool { return d4 <= outer })
}

func circle(p Plotter, cx, cy, r int, c pixfmt.Pixel, in func(d4 int) bool) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if in(4 * (dx*dx + dy*dy)) {
				p.Plot(cx+dx, cy+dy, c)
			}
		}
	}
}

func Triangle(p Plotter, x0, y0, x1, y1, x2, y2 int, c pixfmt.Pixel) {
	Line(p, x0, y0, x1, y1, c)
	Line(p, x1, y1, x2, y2, c)
	Line(p, x2, y2, x0, y0, c)
}

// FillTriangle sorts the vertices by y and fills the upper and lower part
// row by row between the two bounding edges.
func FillTriangle(p Plotter, x0, y0, x1, y1, x2, y2 int, c pixfmt.Pixel) {
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	if y1 > y2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}

	if y0 == y2 {
		a, b := min(x0, x1, x2), max(x0, x1, x2)
		HLine(p, a, b, y0, c)
		return
	}

	dx01, dy01 := x1-x0, y1-y0
	dx02, dy02 := x2-x0, y2-y0
	dx12, dy12 := x2-x1, y2-y1
	var sa, sb int

	// the row of the middle vertex belongs to the upper part unless the
	// lower edge is flat
	last := y1 - 1
	if y1 == y2 {
		last = y1
	}
	y := y0
	for ; y <= last; y++ {
		a := x0 + sa/dy01
		b := x0 + sb/dy02
		sa += dx01
		sb += dx02
		HLine(p, a, b, y, c)
	}

	sa = dx12 * (y - y1)
	sb = dx02 * (y - y0)
	for ; y <= y2; y++ {
		a := x1 + sa/dy12
		b := x0 + sb/dy02
		sa += dx12
		sb += dx02
		HLine(p, a, b, y, c)
	}
}
