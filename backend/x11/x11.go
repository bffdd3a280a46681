//go:build !windows && !android && !darwin && !js

// Package x11 presents the canvas in an X11 window and takes pointer and
// keyboard input from its events.
package x11

import (
	"context"
	"encoding/binary"
	"image"
	"log/slog"
	"strings"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/srlehn/xgbutil"
	"github.com/srlehn/xgbutil/ewmh"
	"github.com/srlehn/xgbutil/icccm"
	"github.com/srlehn/xgbutil/keybind"
	"github.com/srlehn/xgbutil/xgraphics"
	"github.com/srlehn/xgbutil/xprop"
	"github.com/srlehn/xgbutil/xwindow"

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

const (
	eventMask = xproto.EventMaskExposure | xproto.EventMaskStructureNotify |
		xproto.EventMaskKeyPress | xproto.EventMaskKeyRelease |
		xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease |
		xproto.EventMaskPointerMotion | xproto.EventMaskLeaveWindow

	selectionProp = `FBPORT_SELECTION`
)

type xEvent struct {
	ev  xgb.Event
	err xgb.Error
}

type fullscreenRequest struct {
	on   bool
	done chan error
}

type atoms struct {
	protocols, deleteWindow       xproto.Atom
	clipboard, primary, utf8, sel xproto.Atom
}

type Backend struct {
	mu   sync.Mutex // guards ximg and geom.Offset during Present
	env  *backend.Env
	xu   *xgbutil.XUtil
	win  *xwindow.Window
	ximg *xgraphics.Image
	geom scale.Scaler // own copy, the offset follows the window size
	atom atoms

	winSize   image.Point
	running   bool
	events    chan xEvent
	connDone  chan struct{}
	stopped   chan struct{}
	fsReq     chan fullscreenRequest
	held      *xproto.KeyReleaseEvent
	pressed   bool
	gate      *input.RepeatGate
	keysym    func(code xproto.Keycode, column byte) xproto.Keysym
	closeOnce sync.Once
}

var _ backend.Backend = (*Backend)(nil)

func (b *Backend) Name() string         { return consts.BackendX11 }
func (b *Backend) New() backend.Backend { return &Backend{} }

// IsApplicable reports whether an X display is set and no wayland-only
// session is running.
func (b *Backend) IsApplicable(env *backend.Env) bool {
	if env == nil {
		return false
	}
	if len(env.XDisplay) > 0 {
		return true
	}
	if st := env.Var(`XDG_SESSION_TYPE`); len(st) > 0 && st != `x11` && len(env.Var(`DISPLAY`)) == 0 {
		return false
	}
	display := env.Var(`DISPLAY`)
	if len(display) == 0 {
		return false
	}
	host := strings.Split(display, `:`)[0]
	return len(host) == 0 || host == `localhost` || strings.HasPrefix(host, `/`)
}

func (b *Backend) Init(env *backend.Env) (*scale.Scaler, error) {
	if b == nil || env == nil {
		return nil, errors.NilParam()
	}
	if env.Mouse == nil || env.Keys == nil {
		return nil, errors.NilParam()
	}
	xu, err := xgbutil.NewConnDisplay(env.XDisplay)
	if err != nil {
		return nil, errors.New(err)
	}
	scr := xu.Screen()
	sw, sh := int(scr.WidthInPixels), int(scr.HeightInPixels)
	var sc *scale.Scaler
	if env.Scale > 0 {
		sc, err = scale.ForScale(env.Scale)
	} else if sc, err = scale.ForDevice(sw, sh); err != nil {
		// smaller screens get a scrolled or cropped window
		sc, err = scale.ForScale(1)
	}
	if err != nil {
		xu.Conn().Close()
		return nil, err
	}
	if err := b.setup(xu, env, sc); err != nil {
		xu.Conn().Close()
		return nil, err
	}
	logx.Info(`x11 window created`, env.Logger, `display`, env.XDisplay, `screen`, image.Pt(sw, sh),
		`scale`, sc.Scale, `window`, b.win.Id)
	return sc, nil
}

func (b *Backend) setup(xu *xgbutil.XUtil, env *backend.Env, sc *scale.Scaler) error {
	keybind.Initialize(xu)
	win, err := xwindow.Generate(xu)
	if err != nil {
		return errors.New(err)
	}
	w, h := sc.Native.X, sc.Native.Y
	if err := win.CreateChecked(xu.RootWin(), 0, 0, w, h,
		xproto.CwBackPixel|xproto.CwEventMask, xu.Screen().BlackPixel, eventMask); err != nil {
		return errors.New(err)
	}
	var at atoms
	for name, dst := range map[string]*xproto.Atom{
		`WM_PROTOCOLS`:     &at.protocols,
		`WM_DELETE_WINDOW`: &at.deleteWindow,
		`CLIPBOARD`:        &at.clipboard,
		`PRIMARY`:          &at.primary,
		`UTF8_STRING`:      &at.utf8,
		selectionProp:      &at.sel,
	} {
		a, err := xprop.Atm(xu, name)
		if err != nil {
			return errors.New(err)
		}
		*dst = a
	}
	if err := icccm.WmNameSet(xu, win.Id, consts.LibraryName); err != nil {
		logx.IsErr(errors.New(err), env.Logger, slog.LevelDebug)
	}
	if err := icccm.WmProtocolsSet(xu, win.Id, []string{`WM_DELETE_WINDOW`}); err != nil {
		return errors.New(err)
	}
	hints := &icccm.NormalHints{
		Flags:     icccm.SizeHintPMinSize,
		MinWidth:  uint(w),
		MinHeight: uint(h),
	}
	if err := icccm.WmNormalHintsSet(xu, win.Id, hints); err != nil {
		logx.IsErr(errors.New(err), env.Logger, slog.LevelDebug)
	}
	ximg := xgraphics.New(xu, sc.NativeBounds())
	if err := ximg.CreatePixmap(); err != nil {
		win.Destroy()
		return errors.New(err)
	}
	win.Map()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.env = env
	b.xu = xu
	b.win = win
	b.ximg = ximg
	b.atom = at
	b.geom = *sc
	b.geom.Offset = image.Point{}
	b.winSize = sc.Native
	b.gate = input.NewRepeatGate(repeatDelay, repeatInterval)
	b.keysym = func(code xproto.Keycode, column byte) xproto.Keysym {
		return keybind.KeysymGet(xu, code, column)
	}
	if env.Fullscreen {
		if err := b.applyFullscreen(true); err != nil {
			logx.IsErr(err, env.Logger, slog.LevelWarn)
		}
	}
	return nil
}

// Run forwards X events to the render loop which handles them ahead of each
// present. A closed server connection ends Run with consts.ErrConnClosed.
func (b *Backend) Run(ctx context.Context, comp *canvas.Compositor) error {
	if b == nil || b.xu == nil {
		return errors.New(consts.ErrNotStarted)
	}
	if comp == nil {
		return errors.NilParam()
	}
	b.mu.Lock()
	b.events = make(chan xEvent, 256)
	b.connDone = make(chan struct{})
	b.stopped = make(chan struct{})
	b.fsReq = make(chan fullscreenRequest)
	b.running = true
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		b.running = false
		b.mu.Unlock()
		close(b.stopped)
	}()

	go b.forward(ctx)
	return backend.Loop(ctx, b.env, comp, b, func() (image.Rectangle, error) {
		return image.Rectangle{}, b.drain(comp)
	})
}

func (b *Backend) forward(ctx context.Context) {
	conn := b.xu.Conn()
	for {
		ev, err := conn.WaitForEvent()
		if ev == nil && err == nil {
			close(b.connDone)
			return
		}
		select {
		case b.events <- xEvent{ev: ev, err: err}:
		case <-ctx.Done():
			return
		}
	}
}

// Present converts the stage rectangle into the pixmap and copies it into
// the window at the canvas offset.
func (b *Backend) Present(r image.Rectangle, stage *pixfmt.Image) error {
	if stage == nil {
		return errors.NilParam()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ximg == nil {
		return errors.New(consts.ErrNotStarted)
	}
	r = r.Intersect(stage.Rect).Intersect(b.ximg.Rect)
	if r.Empty() {
		return nil
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := b.ximg.PixOffset(r.Min.X, y)
		for _, p := range stage.Row(y, r.Min.X, r.Max.X) {
			// BGRA byte order
			binary.LittleEndian.PutUint32(b.ximg.Pix[i:i+4], uint32(p)|0xff000000)
			i += 4
		}
	}
	sub, ok := b.ximg.SubImage(r).(*xgraphics.Image)
	if !ok || sub == nil {
		return nil
	}
	sub.XDraw()
	off := b.geom.Offset
	sub.XExpPaint(b.win.Id, off.X+r.Min.X, off.Y+r.Min.Y)
	return nil
}

// ScreenSize is the size of the X screen.
func (b *Backend) ScreenSize() (w, h int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.xu == nil {
		return 0, 0
	}
	scr := b.xu.Screen()
	return int(scr.WidthInPixels), int(scr.HeightInPixels)
}

// SetFullscreen asks the window manager for the fullscreen state. While the
// render loop runs the request is carried out there and the caller waits
// for the server round trip.
func (b *Backend) SetFullscreen(on bool) error {
	if b == nil {
		return errors.NilReceiver()
	}
	b.mu.Lock()
	if b.xu == nil {
		b.mu.Unlock()
		return errors.New(consts.ErrNotStarted)
	}
	if !b.running {
		defer b.mu.Unlock()
		return b.applyFullscreen(on)
	}
	req := fullscreenRequest{on: on, done: make(chan error, 1)}
	reqs, stopped := b.fsReq, b.stopped
	b.mu.Unlock()
	select {
	case reqs <- req:
		return <-req.done
	case <-stopped:
		return errors.New(consts.ErrConnClosed)
	}
}

func (b *Backend) applyFullscreen(on bool) error {
	action := ewmh.StateRemove
	if on {
		action = ewmh.StateAdd
	}
	if err := ewmh.WmStateReq(b.xu, b.win.Id, action, `_NET_WM_STATE_FULLSCREEN`); err != nil {
		return errors.New(err)
	}
	if _, err := xproto.GetInputFocus(b.xu.Conn()).Reply(); err != nil {
		return errors.New(err)
	}
	return nil
}

func (b *Backend) Close() error {
	if b == nil {
		return nil
	}
	b.closeOnce.Do(func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.xu == nil {
			return
		}
		if b.ximg != nil {
			b.ximg.Destroy()
		}
		if b.win != nil {
			b.win.Destroy()
		}
		b.xu.Conn().Close()
		b.ximg = nil
	})
	return nil
}
