package fbport

import (
	"image"

	"github.com/srlehn/fbport/internal/logx"
	"github.com/srlehn/fbport/pixfmt"
	"github.com/srlehn/fbport/raster"
)

// Color converts 8 bit channels to the 16 bit color taken by the drawing
// calls.
func Color(r, g, b uint8) pixfmt.RGB565 { return pixfmt.RGB565From888(r, g, b) }

func (s *session) center(x, y int) (nx, ny int) {
	nx, ny = s.sc.ToNative(x, y)
	h := s.sc.Scale / 2
	return nx + h, ny + h
}

// draw runs fn with the scale and a plotter on the locked canvas.
func (d *Display) draw(op string, fn func(s *session, p raster.Plotter)) {
	s := d.canvasFor(op)
	if s == nil {
		return
	}
	s.comp.DrawOp(op, func(p raster.Plotter) { fn(s, p) })
}

// DrawPixel fills the native block of the logical pixel x, y.
func (d *Display) DrawPixel(x, y int, c pixfmt.RGB565) {
	d.draw(`DrawPixel`, func(s *session, p raster.Plotter) {
		if !image.Pt(x, y).In(s.sc.LogicalBounds()) {
			logx.Debug(`pixel out of bounds`, d, `x`, x, `y`, y)
			return
		}
		b := s.sc.Block(x, y)
		raster.FillRect(p, b.Min.X, b.Min.Y, b.Dx(), b.Dy(), pixfmt.FromRGB565(c))
	})
}

// DrawLine draws a line as wide as a logical pixel.
func (d *Display) DrawLine(x0, y0, x1, y1 int, c pixfmt.RGB565) {
	d.DrawLineThick(x0, y0, x1, y1, 1, c)
}

// DrawLineThick draws a line thickness logical pixels wide, centered on
// the line through the pixel centers.
func (d *Display) DrawLineThick(x0, y0, x1, y1, thickness int, c pixfmt.RGB565) {
	d.draw(`DrawLineThick`, func(s *session, p raster.Plotter) {
		nx0, ny0 := s.center(x0, y0)
		nx1, ny1 := s.center(x1, y1)
		raster.ThickLine(p, nx0, ny0, nx1, ny1, thickness*s.sc.Scale, raster.ThicknessMiddle, pixfmt.FromRGB565(c))
	})
}

// DrawRect outlines w x h logical pixels with the top left at x, y.
func (d *Display) DrawRect(x, y, w, h int, c pixfmt.RGB565) {
	if w <= 0 || h <= 0 {
		return
	}
	d.draw(`DrawRect`, func(s *session, p raster.Plotter) {
		r := s.sc.RectToNative(image.Rect(x, y, x+w, y+h))
		t := s.sc.Scale
		px := pixfmt.FromRGB565(c)
		raster.FillRect(p, r.Min.X, r.Min.Y, r.Dx(), t, px)
		raster.FillRect(p, r.Min.X, r.Max.Y-t, r.Dx(), t, px)
		raster.FillRect(p, r.Min.X, r.Min.Y+t, t, r.Dy()-2*t, px)
		raster.FillRect(p, r.Max.X-t, r.Min.Y+t, t, r.Dy()-2*t, px)
	})
}

func (d *Display) FillRect(x, y, w, h int, c pixfmt.RGB565) {
	d.draw(`FillRect`, func(s *session, p raster.Plotter) {
		r := s.sc.RectToNative(image.Rect(x, y, x+w, y+h))
		raster.FillRect(p, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), pixfmt.FromRGB565(c))
	})
}

// DrawCircle outlines a circle of radius r around the logical pixel x, y
// with a ring one logical pixel wide.
func (d *Display) DrawCircle(x, y, r int, c pixfmt.RGB565) {
	d.draw(`DrawCircle`, func(s *session, p raster.Plotter) {
		cx, cy := s.center(x, y)
		px := pixfmt.FromRGB565(c)
		nr := r * s.sc.Scale
		for k := 0; k < min(s.sc.Scale, nr+1); k++ {
			raster.Circle(p, cx, cy, nr-k, px)
		}
	})
}

func (d *Display) FillCircle(x, y, r int, c pixfmt.RGB565) {
	d.draw(`FillCircle`, func(s *session, p raster.Plotter) {
		cx, cy := s.center(x, y)
		raster.FillCircle(p, cx, cy, r*s.sc.Scale, pixfmt.FromRGB565(c))
	})
}

func (d *Display) DrawTriangle(x0, y0, x1, y1, x2, y2 int, c pixfmt.RGB565) {
	d.draw(`DrawTriangle`, func(s *session, p raster.Plotter) {
		px := pixfmt.FromRGB565(c)
		pts := [3]image.Point{}
		for i, v := range [3][2]int{{x0, y0}, {x1, y1}, {x2, y2}} {
			pts[i].X, pts[i].Y = s.center(v[0], v[1])
		}
		for i := 0; i < 3; i++ {
			a, b := pts[i], pts[(i+1)%3]
			raster.ThickLine(p, a.X, a.Y, b.X, b.Y, s.sc.Scale, raster.ThicknessMiddle, px)
		}
	})
}

func (d *Display) FillTriangle(x0, y0, x1, y1, x2, y2 int, c pixfmt.RGB565) {
	d.draw(`FillTriangle`, func(s *session, p raster.Plotter) {
		nx0, ny0 := s.center(x0, y0)
		nx1, ny1 := s.center(x1, y1)
		nx2, ny2 := s.center(x2, y2)
		raster.FillTriangle(p, nx0, ny0, nx1, ny1, nx2, ny2, pixfmt.FromRGB565(c))
	})
}

// FillScreen sets the whole canvas.
func (d *Display) FillScreen(c pixfmt.RGB565) {
	if s := d.canvasFor(`FillScreen`); s != nil {
		s.comp.Fill(pixfmt.FromRGB565(c))
	}
}

// Raw calls take native canvas coordinates.

func (d *Display) DrawPixelRaw(nx, ny int, c pixfmt.RGB565) {
	if s := d.canvasFor(`DrawPixelRaw`); s != nil {
		s.comp.SetPixel(nx, ny, pixfmt.FromRGB565(c))
	}
}

// PixelRaw reads back a canvas pixel.
func (d *Display) PixelRaw(nx, ny int) (pixfmt.RGB565, bool) {
	s := d.canvasFor(`PixelRaw`)
	if s == nil {
		return 0, false
	}
	p, ok := s.comp.Pixel(nx, ny)
	return p.RGB565(), ok
}

func (d *Display) DrawLineRaw(nx0, ny0, nx1, ny1, thickness int, c pixfmt.RGB565) {
	d.draw(`DrawLineRaw`, func(_ *session, p raster.Plotter) {
		raster.ThickLine(p, nx0, ny0, nx1, ny1, thickness, raster.ThicknessMiddle, pixfmt.FromRGB565(c))
	})
}

func (d *Display) DrawRectRaw(nx, ny, w, h int, c pixfmt.RGB565) {
	d.draw(`DrawRectRaw`, func(_ *session, p raster.Plotter) {
		raster.Rect(p, nx, ny, w, h, pixfmt.FromRGB565(c))
	})
}

func (d *Display) FillRectRaw(nx, ny, w, h int, c pixfmt.RGB565) {
	d.draw(`FillRectRaw`, func(_ *session, p raster.Plotter) {
		raster.FillRect(p, nx, ny, w, h, pixfmt.FromRGB565(c))
	})
}

func (d *Display) DrawCircleRaw(nx, ny, r int, c pixfmt.RGB565) {
	d.draw(`DrawCircleRaw`, func(_ *session, p raster.Plotter) {
		raster.Circle(p, nx, ny, r, pixfmt.FromRGB565(c))
	})
}

func (d *Display) FillCircleRaw(nx, ny, r int, c pixfmt.RGB565) {
	d.draw(`FillCircleRaw`, func(_ *session, p raster.Plotter) {
		raster.FillCircle(p, nx, ny, r, pixfmt.FromRGB565(c))
	})
}

func (d *Display) DrawTriangleRaw(nx0, ny0, nx1, ny1, nx2, ny2 int, c pixfmt.RGB565) {
	d.draw(`DrawTriangleRaw`, func(_ *session, p raster.Plotter) {
		raster.Triangle(p, nx0, ny0, nx1, ny1, nx2, ny2, pixfmt.FromRGB565(c))
	})
}

func (d *Display) FillTriangleRaw(nx0, ny0, nx1, ny1, nx2, ny2 int, c pixfmt.RGB565) {
	d.draw(`FillTriangleRaw`, func(_ *session, p raster.Plotter) {
		raster.FillTriangle(p, nx0, ny0, nx1, ny1, nx2, ny2, pixfmt.FromRGB565(c))
	})
}

// DrawImage draws img with its top left corner at the native position nx, ny.
func (d *Display) DrawImage(nx, ny int, img image.Image) {
	if img == nil {
		return
	}
	d.draw(`DrawImage`, func(s *session, p raster.Plotter) {
		b := img.Bounds()
		dst := image.Rect(nx, ny, nx+b.Dx(), ny+b.Dy()).Intersect(s.comp.Bounds())
		for y := dst.Min.Y; y < dst.Max.Y; y++ {
			for x := dst.Min.X; x < dst.Max.X; x++ {
				c := img.At(b.Min.X+x-nx, b.Min.Y+y-ny)
				if _, _, _, a := c.RGBA(); a < 0x8000 {
					continue
				}
				p.Plot(x, y, pixfmt.FromColor(c))
			}
		}
	})
}
