package fbdev

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/fbport/backend"
	"github.com/srlehn/fbport/canvas"
	"github.com/srlehn/fbport/input"
	"github.com/srlehn/fbport/pixfmt"
)

type memSurface struct {
	img    *pixfmt.Image
	closed bool
}

func (s *memSurface) Size() image.Point            { return s.img.Rect.Size() }
func (s *memSurface) Format() pixfmt.DeviceFormat { return pixfmt.FormatXRGB8888 }
func (s *memSurface) WriteRow(x, y int, row []pixfmt.Pixel) {
	copy(s.img.Row(y, x, s.img.Rect.Max.X), row)
}
func (s *memSurface) Clear()       { s.img.Fill(0) }
func (s *memSurface) Close() error { s.closed = true; return nil }

func newTestBackend(t *testing.T, w, h int) (*Backend, *memSurface, *backend.Env) {
	t.Helper()
	surf := &memSurface{img: pixfmt.NewImage(image.Rect(0, 0, w, h))}
	surf.img.Fill(0xabcdef)
	b := &Backend{open: func(string) (surface, error) { return surf, nil }}
	env := &backend.Env{
		InputDir:    t.TempDir(),
		RefreshRate: 200,
		CursorIdle:  time.Hour,
		Mouse:       input.NewMouse(),
		Keys:        input.NewKeyQueue(8),
	}
	return b, surf, env
}

func TestInitCentersAndClears(t *testing.T) {
	b, surf, env := newTestBackend(t, 1000, 500)
	sc, err := b.Init(env)
	require.NoError(t, err)
	assert.Equal(t, 1, sc.Scale)
	assert.Equal(t, image.Pt(100, 10), sc.Offset)
	assert.Equal(t, pixfmt.Pixel(0), surf.img.PixelAt(0, 0))
	w, h := b.ScreenSize()
	assert.Equal(t, 1000, w)
	assert.Equal(t, 500, h)
	require.NoError(t, b.Close())
	assert.True(t, surf.closed)
}

func TestInitScaleTooLarge(t *testing.T) {
	b, _, env := newTestBackend(t, 1000, 500)
	env.Scale = 2
	_, err := b.Init(env)
	assert.Error(t, err)
}

func TestInitMissingInputDir(t *testing.T) {
	b, _, env := newTestBackend(t, 800, 480)
	env.InputDir = env.InputDir + `/missing`
	_, err := b.Init(env)
	assert.Error(t, err)
}

func TestPresentWithCursor(t *testing.T) {
	b, surf, env := newTestBackend(t, 820, 500)
	sc, err := b.Init(env)
	require.NoError(t, err)

	stage := pixfmt.NewImage(sc.NativeBounds())
	stage.Fill(pixfmt.RGB(0, 0, 0x80))
	require.NoError(t, b.Present(stage.Rect, stage))
	assert.Equal(t, pixfmt.RGB(0, 0, 0x80), surf.img.PixelAt(10, 10))
	assert.Equal(t, pixfmt.Pixel(0), surf.img.PixelAt(5, 5))

	env.Mouse.Move(100, 100)
	extra, err := b.updateCursor()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(100, 100, 100+arrow.w, 100+arrow.h), extra)
	require.NoError(t, b.Present(extra, stage))
	off := sc.Offset
	assert.Equal(t, cursorOutline, surf.img.PixelAt(off.X+100, off.Y+100))
	assert.Equal(t, cursorFill, surf.img.PixelAt(off.X+101, off.Y+102))

	// unchanged cursor needs no repaint
	extra, _ = b.updateCursor()
	assert.True(t, extra.Empty())

	env.Mouse.Leave()
	extra, _ = b.updateCursor()
	assert.Equal(t, image.Rect(100, 100, 100+arrow.w, 100+arrow.h), extra)
	require.NoError(t, b.Present(extra, stage))
	assert.Equal(t, pixfmt.RGB(0, 0, 0x80), surf.img.PixelAt(off.X+100, off.Y+100))
}

func TestRunPresents(t *testing.T) {
	b, surf, env := newTestBackend(t, 800, 480)
	ready := make(chan struct{})
	env.Ready = func() { close(ready) }
	sc, err := b.Init(env)
	require.NoError(t, err)
	comp := canvas.New(sc.Native, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx, comp) }()
	<-ready
	comp.SetPixel(3, 4, pixfmt.RGB(1, 1, 1))
	assert.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return surf.img.PixelAt(3, 4) == pixfmt.RGB(1, 1, 1)
	}, time.Second, 5*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}
