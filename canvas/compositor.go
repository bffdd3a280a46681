// Package canvas holds the pixel buffers behind the display: the canvas all
// drawing goes to and the stage that mirrors what was last presented.
package canvas

import (
	"context"
	"image"
	"sync"

	"github.com/srlehn/fbport/internal/errors"
	"github.com/srlehn/fbport/internal/logx"
	"github.com/srlehn/fbport/pixfmt"
	"github.com/srlehn/fbport/raster"
)

// Presenter pushes a rectangle of the stage to the display surface.
type Presenter interface {
	Present(r image.Rectangle, stage *pixfmt.Image) error
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(r image.Rectangle, stage *pixfmt.Image) error

func (f PresenterFunc) Present(r image.Rectangle, stage *pixfmt.Image) error { return f(r, stage) }

// Compositor owns the canvas and stage buffers. Drawing locks the canvas,
// presentation locks the stage and holds the canvas lock only while diffing.
type Compositor struct {
	mu        sync.Mutex
	canvas    *pixfmt.Image
	plotter   *raster.Bounded
	dirty     bool
	protected image.Rectangle
	forced    bool
	waiters   []chan struct{}
	invalid   image.Rectangle

	presentMu sync.Mutex
	stage     *pixfmt.Image

	logger logx.LoggerProvider
}

func New(size image.Point, logger logx.LoggerProvider) *Compositor {
	r := image.Rectangle{Max: size}
	c := &Compositor{
		canvas: pixfmt.NewImage(r),
		stage:  pixfmt.NewImage(r),
		logger: logger,
	}
	c.plotter = &raster.Bounded{
		Dst:    raster.PlotFunc(c.set),
		Bounds: r,
		Logger: logger,
	}
	return c
}

func (c *Compositor) Bounds() image.Rectangle { return c.canvas.Rect }

// set requires c.mu and valid coordinates.
func (c *Compositor) set(x, y int, p pixfmt.Pixel) {
	c.canvas.Pix[c.canvas.PixOffset(x, y)] = p
	c.dirty = true
}

// Draw runs fn with the canvas locked. Pixels plotted outside of the canvas
// are dropped. fn must not call other Compositor methods.
func (c *Compositor) Draw(fn func(p raster.Plotter)) { c.DrawOp(`Draw`, fn) }

// DrawOp is Draw logging the pixels dropped by fn as a single record
// naming op.
func (c *Compositor) DrawOp(op string, fn func(p raster.Plotter)) {
	if c == nil || fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.plotter)
	c.plotter.Report(op)
}

func (c *Compositor) SetPixel(x, y int, p pixfmt.Pixel) {
	c.DrawOp(`SetPixel`, func(pl raster.Plotter) { pl.Plot(x, y, p) })
}

// Pixel reads back a canvas pixel.
func (c *Compositor) Pixel(x, y int) (pixfmt.Pixel, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !(image.Point{x, y}.In(c.canvas.Rect)) {
		return 0, false
	}
	return c.canvas.PixelAt(x, y), true
}

func (c *Compositor) Fill(p pixfmt.Pixel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.canvas.Fill(p)
	c.dirty = true
}

// Dirty reports whether the canvas changed since the last present.
func (c *Compositor) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Invalidate schedules r for presentation even if the canvas did not change,
// e.g. after the window system discarded the window contents.
func (c *Compositor) Invalidate(r image.Rectangle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalid = c.invalid.Union(r.Intersect(c.canvas.Rect))
}

// SetProtectedRegion excludes r from routine diffing. A region not contained
// in the canvas is logged and ignored, keeping the previous one. An empty
// rectangle clears the region. Pixels held back by a previous region are
// diffed again with the next present.
func (c *Compositor) SetProtectedRegion(r image.Rectangle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r.Empty() {
		r = image.Rectangle{}
	} else if !r.In(c.canvas.Rect) {
		logx.Warn(`protected region out of bounds`, c.logger, `region`, r, `bounds`, c.canvas.Rect)
		return false
	}
	if r != c.protected {
		c.protected = r
		c.dirty = true
	}
	return true
}

func (c *Compositor) ProtectedRegion() image.Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.protected
}

// ForceProtectedRedraw blocks until the render loop has presented the
// protected region. It does not return if no render loop is running.
func (c *Compositor) ForceProtectedRedraw() {
	_ = c.ForceProtectedRedrawContext(context.Background())
}

func (c *Compositor) ForceProtectedRedrawContext(ctx context.Context) error {
	ch := make(chan struct{})
	c.mu.Lock()
	c.forced = true
	c.waiters = append(c.waiters, ch)
	c.mu.Unlock()
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return errors.New(ctx.Err())
	}
}

// PresentIfDirty copies the pixels that differ between canvas and stage into
// the stage and presents their bounding box together with extra.
// The canvas lock is released before p is called. It returns the presented
// rectangle, which is empty if nothing had to be presented.
func (c *Compositor) PresentIfDirty(p Presenter, extra image.Rectangle) (image.Rectangle, error) {
	if c == nil {
		return image.Rectangle{}, errors.NilReceiver()
	}
	c.presentMu.Lock()
	defer c.presentMu.Unlock()

	c.mu.Lock()
	bounds := c.canvas.Rect
	rect := c.invalid.Union(extra.Intersect(bounds))
	forced := c.forced
	if !c.dirty && !forced && rect.Empty() {
		c.mu.Unlock()
		return image.Rectangle{}, nil
	}
	if c.dirty || forced {
		rect = rect.Union(c.diff(forced))
	}
	if forced {
		rect = rect.Union(c.protected)
	}
	waiters := c.waiters
	c.waiters = nil
	c.forced = false
	c.dirty = false
	c.invalid = image.Rectangle{}
	c.mu.Unlock()

	var err error
	if !rect.Empty() && p != nil {
		err = p.Present(rect, c.stage)
	}
	for _, w := range waiters {
		close(w)
	}
	if err != nil {
		// the stage already holds rect, present it again next time
		c.Invalidate(rect)
		return rect, errors.New(err)
	}
	return rect, nil
}

// diff requires c.mu and c.presentMu.
func (c *Compositor) diff(forced bool) image.Rectangle {
	var box image.Rectangle
	b := c.canvas.Rect
	prot := c.protected
	for y := b.Min.Y; y < b.Max.Y; y++ {
		if forced || prot.Empty() || y < prot.Min.Y || y >= prot.Max.Y {
			box = c.diffSpan(box, y, b.Min.X, b.Max.X)
			continue
		}
		box = c.diffSpan(box, y, b.Min.X, prot.Min.X)
		box = c.diffSpan(box, y, prot.Max.X, b.Max.X)
	}
	return box
}

func (c *Compositor) diffSpan(box image.Rectangle, y, x0, x1 int) image.Rectangle {
	if x1 <= x0 {
		return box
	}
	src := c.canvas.Row(y, x0, x1)
	dst := c.stage.Row(y, x0, x1)
	first, last := -1, -1
	for i := range src {
		if src[i] != dst[i] {
			if first < 0 {
				first = i
			}
			last = i
			dst[i] = src[i]
		}
	}
	if first < 0 {
		return box
	}
	return box.Union(image.Rect(x0+first, y, x0+last+1, y+1))
}

// Snapshot returns a copy of the canvas.
func (c *Compositor) Snapshot() *pixfmt.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canvas.Clone()
}

// RawPix returns the canvas as packed 24 bit RGB.
func (c *Compositor) RawPix() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canvas.RGB24()
}

// StageSnapshot returns a copy of the stage.
func (c *Compositor) StageSnapshot() *pixfmt.Image {
	c.presentMu.Lock()
	defer c.presentMu.Unlock()
	return c.stage.Clone()
}
