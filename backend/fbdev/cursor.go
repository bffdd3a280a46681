package fbdev

import (
	"image"

	"github.com/srlehn/fbport/pixfmt"
)

// 'X' outline, '.' fill, hot spot top left
var cursorArt = []string{
	`X`,
	`XX`,
	`X.X`,
	`X..X`,
	`X...X`,
	`X....X`,
	`X.....X`,
	`X......X`,
	`X.......X`,
	`X........X`,
	`X.....XXXXX`,
	`X..X..X`,
	`X.X X..X`,
	`XX  X..X`,
	`X    X..X`,
	`     X..X`,
	`      XX`,
}

const (
	cursorOutline = pixfmt.Pixel(0x000000)
	cursorFill    = pixfmt.Pixel(0xffffff)
)

type cursorGlyph struct {
	w, h    int
	outline []bool
	fill    []bool
}

var arrow = newCursorGlyph(cursorArt)

func newCursorGlyph(art []string) cursorGlyph {
	g := cursorGlyph{h: len(art)}
	for _, l := range art {
		g.w = max(g.w, len(l))
	}
	g.outline = make([]bool, g.w*g.h)
	g.fill = make([]bool, g.w*g.h)
	for y, l := range art {
		for x, c := range l {
			switch c {
			case 'X':
				g.outline[y*g.w+x] = true
			case '.':
				g.fill[y*g.w+x] = true
			}
		}
	}
	return g
}

// cursor is the software pointer drawn over the stage.
type cursor struct {
	glyph   cursorGlyph
	scale   int
	pos     image.Point
	visible bool
}

// Rect is the area covered by the cursor, empty if hidden.
func (c *cursor) Rect() image.Rectangle {
	if !c.visible {
		return image.Rectangle{}
	}
	s := max(c.scale, 1)
	return image.Rect(c.pos.X, c.pos.Y, c.pos.X+c.glyph.w*s, c.pos.Y+c.glyph.h*s)
}

// overlay draws the cursor pixels of canvas row y into row, which starts at x0.
func (c *cursor) overlay(row []pixfmt.Pixel, x0, y int) {
	r := c.Rect()
	if y < r.Min.Y || y >= r.Max.Y {
		return
	}
	s := max(c.scale, 1)
	gy := (y - c.pos.Y) / s
	for i := range row {
		x := x0 + i
		if x < r.Min.X || x >= r.Max.X {
			continue
		}
		j := gy*c.glyph.w + (x-c.pos.X)/s
		switch {
		case c.glyph.outline[j]:
			row[i] = cursorOutline
		case c.glyph.fill[j]:
			row[i] = cursorFill
		}
	}
}
