package fbport

import (
	"image"
	"sync"

	"github.com/srlehn/fbport/font"
	"github.com/srlehn/fbport/pixfmt"
	"github.com/srlehn/fbport/raster"
)

// textState is the text cursor, in logical coordinates at the baseline.
type textState struct {
	mu    sync.Mutex
	font  *font.Font
	color pixfmt.Pixel
	size  int
	pos   image.Point
}

func (t *textState) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.font = font.Default()
	t.color = pixfmt.RGB(0xff, 0xff, 0xff)
	t.size = 1
	t.pos = image.Point{}
}

// SetFont selects the font for Print, nil restores the default.
func (d *Display) SetFont(f *font.Font) {
	if f == nil {
		f = font.Default()
	}
	d.text.mu.Lock()
	defer d.text.mu.Unlock()
	d.text.font = f
}

func (d *Display) SetTextColor(c pixfmt.RGB565) {
	d.text.mu.Lock()
	defer d.text.mu.Unlock()
	d.text.color = pixfmt.FromRGB565(c)
}

// SetTextSize sets the integer glyph magnification.
func (d *Display) SetTextSize(size int) {
	d.text.mu.Lock()
	defer d.text.mu.Unlock()
	d.text.size = max(size, 1)
}

// SetCursor moves the text cursor to the logical baseline position x, y.
func (d *Display) SetCursor(x, y int) {
	d.text.mu.Lock()
	defer d.text.mu.Unlock()
	d.text.pos = image.Pt(x, y)
}

func (d *Display) GetCursor() (x, y int) {
	d.text.mu.Lock()
	defer d.text.mu.Unlock()
	return d.text.pos.X, d.text.pos.Y
}

// Print draws s at the text cursor and advances it. A newline moves the
// cursor to the left edge of the next line.
func (d *Display) Print(s string) {
	d.text.mu.Lock()
	defer d.text.mu.Unlock()
	ts := &d.text
	d.draw(`Print`, func(sess *session, p raster.Plotter) {
		sc := sess.sc.Scale
		for _, r := range s {
			if r == '\n' {
				ts.pos.X = 0
				ts.pos.Y += ts.font.YAdvance * ts.size
				continue
			}
			nx, ny := sess.sc.ToNative(ts.pos.X, ts.pos.Y)
			adv := ts.font.DrawRune(p, nx, ny, r, ts.color, ts.size*sc)
			ts.pos.X += adv / sc
		}
	})
}

// TextBounds is the logical size of s in the current font and size.
func (d *Display) TextBounds(s string) (w, h int) {
	d.text.mu.Lock()
	defer d.text.mu.Unlock()
	return d.text.font.Measure(s, d.text.size)
}
