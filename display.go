// Package fbport runs applications written for a fixed 800x480 display
// controller on a Linux framebuffer or in an X11 window.
//
// Drawing goes to a canvas in native resolution, the logical API scales
// every coordinate by the profile picked at Start. A render goroutine per
// backend presents the changed part of the canvas at the refresh rate.
// Input is polled: Touched and TouchRead for the pointer, GetChar for keys.
//
// Drawing and input calls never return errors. Invalid coordinates are
// logged and ignored.
package fbport

import (
	"context"
	"image"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/srlehn/fbport/backend"
	_ "github.com/srlehn/fbport/backend/bdefault"
	"github.com/srlehn/fbport/canvas"
	"github.com/srlehn/fbport/earthmap"
	"github.com/srlehn/fbport/input"
	"github.com/srlehn/fbport/internal/consts"
	"github.com/srlehn/fbport/internal/errors"
	"github.com/srlehn/fbport/internal/logx"
	"github.com/srlehn/fbport/pixfmt"
	"github.com/srlehn/fbport/scale"
)

// session is what Start sets up, nil before.
type session struct {
	backend backend.Backend
	comp    *canvas.Compositor
	sc      *scale.Scaler
	env     *backend.Env
	cancel  context.CancelFunc
	done    chan struct{}
}

type Display struct {
	cfg     config
	logger  *slog.Logger
	logFile *os.File
	getenv  func(string) string
	onClose func()

	mouse *input.Mouse
	keys  *input.KeyQueue

	startMu sync.Mutex
	sess    atomic.Pointer[session]
	ready   atomic.Bool
	runErr  atomic.Pointer[error]

	text  textState
	earth atomic.Pointer[earthmap.Map]
}

// New applies opts and the config file. Nothing is opened before Start.
func New(opts ...Option) (*Display, error) {
	d := &Display{
		cfg:    newConfig(),
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})),
		onClose: func() {
			os.Exit(0)
		},
	}
	if err := d.SetOptions(opts...); err != nil {
		return nil, err
	}
	if err := d.cfg.load(); err != nil {
		return nil, err
	}
	d.mouse = input.NewMouse()
	d.keys = input.NewKeyQueue(d.cfg.keyQueue)
	d.text.reset()
	return d, nil
}

// Logger implements logx.LoggerProvider.
func (d *Display) Logger() *slog.Logger {
	if d == nil {
		return nil
	}
	return d.logger
}

// Start selects and initializes the backend, allocates the canvas and
// starts the render goroutine. It returns once the backend is set up, the
// first frame follows asynchronously (see DisplayReady).
func (d *Display) Start(ctx context.Context) error {
	if d == nil {
		return errors.NilReceiver()
	}
	d.startMu.Lock()
	defer d.startMu.Unlock()
	if d.sess.Load() != nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	env := &backend.Env{
		Device:      d.cfg.device,
		InputDir:    d.cfg.inputDir,
		XDisplay:    d.cfg.xDisplay,
		Scale:       d.cfg.scale,
		RefreshRate: d.cfg.refresh,
		CursorIdle:  d.cfg.cursorIdle,
		Fullscreen:  d.cfg.fullscreen,
		Mouse:       d.mouse,
		Keys:        d.keys,
		Logger:      d,
		Getenv:      d.getenv,
		Ready:       func() { d.ready.Store(true) },
		Closed:      d.onClose,
	}
	b, err := backend.Select(env, d.cfg.backend)
	if err != nil {
		return err
	}
	var sc *scale.Scaler
	err = logx.TimeIt(func() error {
		var err error
		sc, err = b.Init(env)
		return err
	}, `backend init`, d, `backend`, b.Name())
	if err != nil {
		return err
	}
	comp := canvas.New(sc.Native, d)
	ctx, cancel := context.WithCancel(ctx)
	s := &session{backend: b, comp: comp, sc: sc, env: env, cancel: cancel, done: make(chan struct{})}
	d.sess.Store(s)
	logx.Info(`display started`, d, `backend`, b.Name(), `scale`, sc.Scale, `native`, sc.Native)

	go func() {
		defer close(s.done)
		if err := b.Run(ctx, comp); err != nil {
			d.runErr.Store(&err)
			logx.IsErr(err, d, slog.LevelError, `backend`, b.Name())
		}
	}()
	return nil
}

// Begin is Start for applications without error handling: failures are
// logged and end the process.
func (d *Display) Begin() {
	logx.Fatal(d.Start(context.Background()), d)
}

// DisplayReady reports whether the first frame was presented.
func (d *Display) DisplayReady() bool { return d != nil && d.ready.Load() }

// Err returns the error that ended the render goroutine, if any.
func (d *Display) Err() error {
	if d == nil {
		return nil
	}
	if p := d.runErr.Load(); p != nil {
		return *p
	}
	return nil
}

func (d *Display) session() *session {
	if d == nil {
		return nil
	}
	return d.sess.Load()
}

// canvasFor returns the session for a drawing call, logging calls made
// before Start.
func (d *Display) canvasFor(op string) *session {
	s := d.session()
	if s == nil {
		logx.Debug(`drawing before start`, d, `op`, op)
	}
	return s
}

// Backend is the name of the running backend.
func (d *Display) Backend() string {
	if s := d.session(); s != nil {
		return s.backend.Name()
	}
	return ``
}

// ScreenSize is the resolution of the physical screen.
func (d *Display) ScreenSize() (w, h int) {
	if s := d.session(); s != nil {
		return s.backend.ScreenSize()
	}
	return 0, 0
}

// Width is the logical width.
func (d *Display) Width() int { return scale.LogicalWidth }

// Height is the logical height.
func (d *Display) Height() int { return scale.LogicalHeight }

// Scale is the native pixels per logical pixel, 0 before Start.
func (d *Display) Scale() int {
	if s := d.session(); s != nil {
		return s.sc.Scale
	}
	return 0
}

// NativeSize is the canvas size in native pixels.
func (d *Display) NativeSize() image.Point {
	if s := d.session(); s != nil {
		return s.sc.Native
	}
	return image.Point{}
}

// PresentedFrame returns a copy of the last presented frame for backends
// that keep one in memory, nil otherwise.
func (d *Display) PresentedFrame() image.Image {
	s := d.session()
	if s == nil {
		return nil
	}
	if f, ok := s.backend.(interface{ LastFrame() *pixfmt.Image }); ok {
		if m := f.LastFrame(); m != nil {
			return m
		}
	}
	return nil
}

// SetFullscreen switches the window state and returns once it took effect.
func (d *Display) SetFullscreen(on bool) error {
	s := d.session()
	if s == nil {
		return errors.New(consts.ErrNotStarted)
	}
	return s.backend.SetFullscreen(on)
}

// Close stops the render goroutine and releases the backend.
func (d *Display) Close() error {
	if d == nil {
		return nil
	}
	d.startMu.Lock()
	defer d.startMu.Unlock()
	var errs []error
	if s := d.sess.Swap(nil); s != nil {
		s.cancel()
		<-s.done
		d.ready.Store(false)
		errs = append(errs, s.backend.Close())
	}
	if d.logFile != nil {
		errs = append(errs, d.logFile.Close())
		d.logFile = nil
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	return nil
}

func (d *Display) SetEarthMap(m *earthmap.Map) error {
	if d == nil {
		return errors.NilReceiver()
	}
	if err := m.Validate(); err != nil {
		return err
	}
	d.earth.Store(m)
	return nil
}

// DrawEarthPixel sets the native pixel nx, ny to the map color at lat, lng
// blended from night (fractDay 0) to day (fractDay 1).
func (d *Display) DrawEarthPixel(nx, ny int, lat, lng, fractDay float64) {
	s := d.canvasFor(`DrawEarthPixel`)
	if s == nil {
		return
	}
	m := d.earth.Load()
	if m == nil {
		logx.Debug(`no earth map set`, d)
		return
	}
	s.comp.SetPixel(nx, ny, m.Color(lat, lng, fractDay))
}

var _ logx.LoggerProvider = (*Display)(nil)
