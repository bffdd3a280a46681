// Package fbdev presents the canvas on a memory mapped linux framebuffer
// device and reads pointer and keyboard input from evdev devices.
package fbdev

import (
	"context"
	"image"
	"os"
	"sync"
	"time"

	"github.com/srlehn/fbport/backend"
	"github.com/srlehn/fbport/canvas"
	"github.com/srlehn/fbport/input"
	"github.com/srlehn/fbport/internal/consts"
	"github.com/srlehn/fbport/internal/errors"
	"github.com/srlehn/fbport/internal/logx"
	"github.com/srlehn/fbport/pixfmt"
	"github.com/srlehn/fbport/scale"
)

func init() { backend.Register(&Backend{}) }

// surface is the mapped device memory.
type surface interface {
	Size() image.Point
	Format() pixfmt.DeviceFormat
	WriteRow(x, y int, row []pixfmt.Pixel)
	Clear()
	Close() error
}

type Backend struct {
	mu      sync.Mutex
	env     *backend.Env
	open    func(dev string) (surface, error)
	surf    surface
	scaler  *scale.Scaler
	overlay []pixfmt.Pixel
	cursor  cursor
	console *vtConsole
	disc    *input.Discoverer
}

var _ backend.Backend = (*Backend)(nil)

func (b *Backend) Name() string         { return consts.BackendFBDev }
func (b *Backend) New() backend.Backend { return &Backend{} }

// IsApplicable reports whether the framebuffer device exists and no
// graphical session is running.
func (b *Backend) IsApplicable(env *backend.Env) bool {
	if env == nil {
		return false
	}
	switch env.Var(`XDG_SESSION_TYPE`) {
	case `x11`, `wayland`:
		return false
	}
	if len(env.Var(`DISPLAY`)) > 0 || len(env.Var(`WAYLAND_DISPLAY`)) > 0 {
		return false
	}
	if _, err := os.Stat(device(env)); err != nil {
		return false
	}
	if name, ok := displayServerRunning(); ok {
		logx.Info(`display server running, framebuffer not applicable`, env.Logger, `process`, name)
		return false
	}
	return true
}

func device(env *backend.Env) string {
	if env != nil && len(env.Device) > 0 {
		return env.Device
	}
	return consts.DefaultFBDevice
}

func (b *Backend) Init(env *backend.Env) (*scale.Scaler, error) {
	if b == nil || env == nil {
		return nil, errors.NilParam()
	}
	if env.Mouse == nil || env.Keys == nil {
		return nil, errors.NilParam()
	}
	disc := &input.Discoverer{Dir: env.InputDir, Logger: env.Logger}
	if err := disc.Check(); err != nil {
		return nil, err
	}
	open := b.open
	if open == nil {
		open = openDevice
	}
	surf, err := open(device(env))
	if err != nil {
		return nil, err
	}
	size := surf.Size()
	var sc *scale.Scaler
	if env.Scale > 0 {
		sc, err = scale.ForScale(env.Scale)
		if err == nil && (sc.Native.X > size.X || sc.Native.Y > size.Y) {
			err = errors.WrapPrefix(consts.ErrInvalidScale, `canvas larger than framebuffer`, 0)
		}
	} else {
		sc, err = scale.ForDevice(size.X, size.Y)
	}
	if err != nil {
		_ = surf.Close()
		return nil, err
	}
	sc.Center(size.X, size.Y)
	surf.Clear()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.env = env
	b.surf = surf
	b.scaler = sc
	b.disc = disc
	b.overlay = make([]pixfmt.Pixel, sc.Native.X)
	b.cursor = cursor{glyph: arrow, scale: sc.Scale}
	if b.open == nil {
		b.console = setupConsole(os.Stdin, env.Logger)
	}
	logx.Info(`framebuffer opened`, env.Logger, `device`, device(env), `size`, size,
		`bpp`, surf.Format().BitsPerPixel, `scale`, sc.Scale, `offset`, sc.Offset)
	return sc, nil
}

// Run starts the evdev readers and the render loop.
func (b *Backend) Run(ctx context.Context, comp *canvas.Compositor) error {
	if b == nil || b.surf == nil {
		return errors.New(consts.ErrNotStarted)
	}
	env := b.env
	bounds := b.scaler.NativeBounds()
	pointer := &input.Pointer{Mouse: env.Mouse, Bounds: bounds}
	keyboard := &input.KeyboardSink{Queue: env.Keys}
	readers := []*input.Reader{
		{Discoverer: b.disc, Class: input.ClassPointer, Attach: pointer.Attach, Handle: pointer.Handle, Logger: env.Logger},
		{Discoverer: b.disc, Class: input.ClassKeyboard, Attach: keyboard.Attach, Handle: keyboard.Handle, Logger: env.Logger},
	}
	for _, r := range readers {
		r := r
		go func() { _ = r.Run(ctx) }()
	}
	return backend.Loop(ctx, env, comp, b, b.updateCursor)
}

func (b *Backend) cursorIdle() time.Duration {
	if b.env != nil && b.env.CursorIdle > 0 {
		return b.env.CursorIdle
	}
	return consts.DefaultCursorIdle
}

// updateCursor returns the area to repaint if the cursor moved or changed
// its visibility. It runs on the render goroutine, like Present.
func (b *Backend) updateCursor() (image.Rectangle, error) {
	m := b.env.Mouse
	x, y := m.Get()
	pos := image.Pt(x, y)
	visible := pos.In(b.scaler.NativeBounds()) && time.Since(m.LastActive()) < b.cursorIdle()
	if visible == b.cursor.visible && (!visible || pos == b.cursor.pos) {
		return image.Rectangle{}, nil
	}
	old := b.cursor.Rect()
	b.cursor.pos, b.cursor.visible = pos, visible
	return old.Union(b.cursor.Rect()), nil
}

// Present composes stage and cursor row by row and writes them to the
// device at the canvas offset.
func (b *Backend) Present(r image.Rectangle, stage *pixfmt.Image) error {
	if stage == nil {
		return errors.NilParam()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.surf == nil {
		return errors.New(consts.ErrNotStarted)
	}
	r = r.Intersect(stage.Rect)
	off := b.scaler.Offset
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := b.overlay[:r.Dx()]
		copy(row, stage.Row(y, r.Min.X, r.Max.X))
		b.cursor.overlay(row, r.Min.X, y)
		b.surf.WriteRow(off.X+r.Min.X, off.Y+y, row)
	}
	return nil
}

// ScreenSize is the resolution of the framebuffer device.
func (b *Backend) ScreenSize() (w, h int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.surf == nil {
		return 0, 0
	}
	s := b.surf.Size()
	return s.X, s.Y
}

// SetFullscreen is a no-op, the framebuffer always fills the screen.
func (b *Backend) SetFullscreen(bool) error { return nil }

func (b *Backend) Close() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var errs []error
	if b.surf != nil {
		b.surf.Clear()
		errs = append(errs, b.surf.Close())
		b.surf = nil
	}
	errs = append(errs, b.console.restore())
	if err := errors.Join(errs...); err != nil {
		return err
	}
	return nil
}
