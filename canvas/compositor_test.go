package canvas_test

import (
	"context"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/fbport/canvas"
	"github.com/srlehn/fbport/pixfmt"
	"github.com/srlehn/fbport/raster"
)

type recorder struct {
	rects []image.Rectangle
}

func (r *recorder) Present(rect image.Rectangle, _ *pixfmt.Image) error {
	r.rects = append(r.rects, rect)
	return nil
}

func countDiff(a, b *pixfmt.Image) int {
	var n int
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			n++
		}
	}
	return n
}

func TestPresentSinglePixel(t *testing.T) {
	c := canvas.New(image.Pt(40, 30), nil)
	rec := &recorder{}

	before := c.StageSnapshot()
	c.SetPixel(7, 9, pixfmt.RGB(1, 2, 3))
	r, err := c.PresentIfDirty(rec, image.Rectangle{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(7, 9, 8, 10), r)
	after := c.StageSnapshot()
	assert.Equal(t, 1, countDiff(before, after))
	assert.Equal(t, pixfmt.RGB(1, 2, 3), after.PixelAt(7, 9))

	r, err = c.PresentIfDirty(rec, image.Rectangle{})
	require.NoError(t, err)
	assert.True(t, r.Empty())
	assert.Len(t, rec.rects, 1)
	assert.Equal(t, 0, countDiff(after, c.StageSnapshot()))
}

func TestPresentBoundingBox(t *testing.T) {
	c := canvas.New(image.Pt(40, 30), nil)
	rec := &recorder{}
	c.Draw(func(p raster.Plotter) {
		p.Plot(2, 3, 1)
		p.Plot(20, 25, 1)
		p.Plot(100, 100, 1)
	})
	r, err := c.PresentIfDirty(rec, image.Rectangle{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(2, 3, 21, 26), r)

	// redrawing the same color marks the canvas dirty but presents nothing
	c.SetPixel(2, 3, 1)
	assert.True(t, c.Dirty())
	r, _ = c.PresentIfDirty(rec, image.Rectangle{})
	assert.True(t, r.Empty())
	assert.False(t, c.Dirty())
}

func TestInvalidateAndExtra(t *testing.T) {
	c := canvas.New(image.Pt(10, 10), nil)
	rec := &recorder{}
	c.Invalidate(image.Rect(5, 5, 20, 20))
	r, _ := c.PresentIfDirty(rec, image.Rectangle{})
	assert.Equal(t, image.Rect(5, 5, 10, 10), r)
	r, _ = c.PresentIfDirty(rec, image.Rect(0, 0, 2, 2))
	assert.Equal(t, image.Rect(0, 0, 2, 2), r)
}

func TestProtectedRegion(t *testing.T) {
	c := canvas.New(image.Pt(20, 20), nil)
	prot := image.Rect(5, 5, 10, 10)
	assert.True(t, c.SetProtectedRegion(prot))
	assert.False(t, c.SetProtectedRegion(image.Rect(15, 15, 25, 18)))
	assert.Equal(t, prot, c.ProtectedRegion())

	rec := &recorder{}
	c.SetPixel(6, 6, 9)
	r, _ := c.PresentIfDirty(rec, image.Rectangle{})
	assert.True(t, r.Empty())
	assert.Equal(t, pixfmt.Pixel(0), c.StageSnapshot().PixelAt(6, 6))

	done := make(chan struct{})
	go func() {
		c.ForceProtectedRedraw()
		close(done)
	}()
	require.Eventually(t, func() bool {
		r, _ := c.PresentIfDirty(rec, image.Rectangle{})
		return !r.Empty()
	}, time.Second, time.Millisecond)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal(`forced redraw was not released`)
	}
	assert.Equal(t, pixfmt.Pixel(9), c.StageSnapshot().PixelAt(6, 6))
	assert.Equal(t, prot, rec.rects[len(rec.rects)-1])

	assert.True(t, c.SetProtectedRegion(image.Rectangle{}))
	assert.True(t, c.ProtectedRegion().Empty())
}

func TestProtectedRegionReleased(t *testing.T) {
	for name, next := range map[string]image.Rectangle{
		`cleared`: {},
		`moved`:   image.Rect(12, 12, 16, 16),
	} {
		t.Run(name, func(t *testing.T) {
			c := canvas.New(image.Pt(20, 20), nil)
			require.True(t, c.SetProtectedRegion(image.Rect(5, 5, 10, 10)))
			rec := &recorder{}
			c.SetPixel(6, 6, 9)
			r, err := c.PresentIfDirty(rec, image.Rectangle{})
			require.NoError(t, err)
			require.True(t, r.Empty())

			require.True(t, c.SetProtectedRegion(next))
			r, err = c.PresentIfDirty(rec, image.Rectangle{})
			require.NoError(t, err)
			assert.Equal(t, image.Rect(6, 6, 7, 7), r)
			assert.Equal(t, pixfmt.Pixel(9), c.StageSnapshot().PixelAt(6, 6))
		})
	}
}

func TestPresentFailureRetried(t *testing.T) {
	c := canvas.New(image.Pt(10, 10), nil)
	c.SetPixel(3, 4, 7)
	fail := canvas.PresenterFunc(func(image.Rectangle, *pixfmt.Image) error { return assert.AnError })
	r, err := c.PresentIfDirty(fail, image.Rectangle{})
	assert.Error(t, err)
	assert.Equal(t, image.Rect(3, 4, 4, 5), r)

	rec := &recorder{}
	r, err = c.PresentIfDirty(rec, image.Rectangle{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(3, 4, 4, 5), r)
	r, err = c.PresentIfDirty(rec, image.Rectangle{})
	require.NoError(t, err)
	assert.True(t, r.Empty())
}

func TestForceRedrawContext(t *testing.T) {
	c := canvas.New(image.Pt(4, 4), nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.ForceProtectedRedrawContext(ctx))
}

func TestConcurrentDrawPresent(t *testing.T) {
	c := canvas.New(image.Pt(64, 64), nil)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 64; i++ {
			c.Draw(func(p raster.Plotter) { raster.HLine(p, 0, 63, i, pixfmt.Pixel(i+1)) })
		}
	}()
	p := canvas.PresenterFunc(func(image.Rectangle, *pixfmt.Image) error { return nil })
	for rangeIter := 0; rangeIter < 100; rangeIter++ {
		_, err := c.PresentIfDirty(p, image.Rectangle{})
		require.NoError(t, err)
	}
	wg.Wait()
	_, _ = c.PresentIfDirty(p, image.Rectangle{})
	assert.Equal(t, c.Snapshot().Pix, c.StageSnapshot().Pix)
	assert.Len(t, c.RawPix(), 64*64*3)
}
