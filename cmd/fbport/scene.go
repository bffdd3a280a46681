package main

import (
	"image"
	"os"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/srlehn/fbport"
	"github.com/srlehn/fbport/earthmap"
	"github.com/srlehn/fbport/font"
	"github.com/srlehn/fbport/internal/errors"
	"github.com/srlehn/fbport/resize/rdefault"
)

var (
	ttfFlag      string
	ttfSizeFlag  float64
	mapDayFlag   string
	mapNightFlag string
	resizerFlag  string
)

func addSceneFlags(cmdFlags interface {
	StringVar(p *string, name, value, usage string)
	Float64Var(p *float64, name string, value float64, usage string)
}) {
	cmdFlags.StringVar(&ttfFlag, `ttf`, ``, `TrueType font for text, default is the built in fixed font`)
	cmdFlags.Float64Var(&ttfSizeFlag, `ttf-size`, 16, `TrueType font size in points`)
	cmdFlags.StringVar(&mapDayFlag, `map-day`, ``, `day side earth map image`)
	cmdFlags.StringVar(&mapNightFlag, `map-night`, ``, `night side earth map image`)
	cmdFlags.StringVar(&resizerFlag, `resizer`, ``, `earth map resizer, one of `+strings.Join(rdefault.Names(), `, `))
}

func loadFace(path string, size float64) (xfont.Face, error) {
	ttf := goregular.TTF
	if len(path) > 0 {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.New(err)
		}
		ttf = b
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, errors.New(err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}

// drawScene paints either the earth map or a test pattern.
func drawScene(d *fbport.Display, now time.Time) error {
	if len(ttfFlag) > 0 {
		face, err := loadFace(ttfFlag, ttfSizeFlag)
		if err != nil {
			return err
		}
		f, err := font.FromFace(face, 0x20, 0x7e)
		_ = face.Close()
		if err != nil {
			return err
		}
		d.SetFont(f)
	}
	if len(mapDayFlag) > 0 || len(mapNightFlag) > 0 {
		if len(mapDayFlag) == 0 || len(mapNightFlag) == 0 {
			return errors.New(`--map-day and --map-night go together`)
		}
		if err := drawEarth(d, now); err != nil {
			return err
		}
	} else {
		drawPattern(d)
	}
	return drawSplash(d)
}

func drawEarth(d *fbport.Display, now time.Time) error {
	rsz, err := rdefault.ByName(resizerFlag)
	if err != nil {
		return err
	}
	size := d.NativeSize()
	m, err := earthmap.LoadFiles(mapDayFlag, mapNightFlag, size, rsz)
	if err != nil {
		return err
	}
	if err := d.SetEarthMap(m); err != nil {
		return err
	}
	decl, subLng := subsolarPoint(now)
	for ny := 0; ny < size.Y; ny++ {
		lat := 90 - (float64(ny)+0.5)*180/float64(size.Y)
		for nx := 0; nx < size.X; nx++ {
			lng := -180 + (float64(nx)+0.5)*360/float64(size.X)
			d.DrawEarthPixel(nx, ny, lat, lng, dayFraction(lat, lng, decl, subLng))
		}
	}
	return nil
}

func drawPattern(d *fbport.Display) {
	w, h := d.Width(), d.Height()
	d.FillScreen(fbport.Color(0x10, 0x10, 0x20))
	bars := []struct{ r, g, b uint8 }{
		{0xff, 0xff, 0xff}, {0xff, 0xff, 0}, {0, 0xff, 0xff}, {0, 0xff, 0},
		{0xff, 0, 0xff}, {0xff, 0, 0}, {0, 0, 0xff},
	}
	bw := w / len(bars)
	for i, c := range bars {
		d.FillRect(i*bw, 0, bw, h/4, fbport.Color(c.r, c.g, c.b))
	}
	white := fbport.Color(0xff, 0xff, 0xff)
	d.DrawRect(0, 0, w, h, white)
	d.DrawLine(0, h/4, w-1, h-1, white)
	d.DrawLineThick(0, h-1, w-1, h/4, 3, fbport.Color(0xff, 0x80, 0))
	d.DrawCircle(w/4, h*5/8, h/6, white)
	d.FillCircle(w/4, h*5/8, h/10, fbport.Color(0, 0x80, 0xff))
	d.DrawTriangle(w*3/4, h*3/8, w*5/8, h*7/8, w*7/8, h*7/8, white)
	d.FillTriangle(w*3/4, h/2, w*11/16, h*13/16, w*13/16, h*13/16, fbport.Color(0xff, 0x40, 0x40))

	d.SetTextColor(white)
	d.SetTextSize(1)
	d.SetCursor(8, h/4+20)
	d.Print("fbport " + d.Backend() + "\ntype to print, Esc quits")
}

// drawSplash renders an antialiased label with gg and blits it to the
// native canvas.
func drawSplash(d *fbport.Display) error {
	native := d.NativeSize()
	scale := max(d.Scale(), 1)
	face, err := loadFace(``, float64(14*scale))
	if err != nil {
		return err
	}
	defer face.Close()
	w, h := 160*scale, 28*scale
	c := gg.NewContext(w, h)
	c.SetRGBA(0, 0, 0, 0)
	c.Clear()
	c.SetRGBA(0.05, 0.05, 0.2, 0.9)
	c.DrawRoundedRectangle(0, 0, float64(w), float64(h), float64(6*scale))
	c.Fill()
	c.SetFontFace(face)
	c.SetRGB(1, 1, 1)
	c.DrawStringAnchored(`fbport `+d.Backend(), float64(w)/2, float64(h)/2, 0.5, 0.35)
	img := c.Image()
	at := image.Pt(native.X-w-8*scale, native.Y-h-8*scale)
	d.DrawImage(at.X, at.Y, img)
	return nil
}
