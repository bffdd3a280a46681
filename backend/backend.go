// Package backend defines the display backends that present the compositor's
// stage and feed input into the shared mouse and key queue.
//
// Backends register themselves from an init function, blank import
// backend/bdefault to get all of them.
package backend

import (
	"context"
	"image"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/srlehn/fbport/canvas"
	"github.com/srlehn/fbport/input"
	"github.com/srlehn/fbport/internal/consts"
	"github.com/srlehn/fbport/internal/errors"
	"github.com/srlehn/fbport/internal/logx"
	"github.com/srlehn/fbport/scale"
)

// Backend is a display surface plus the input sources that come with it.
type Backend interface {
	Name() string
	// New returns a fresh instance, the registered value is a prototype.
	New() Backend
	IsApplicable(env *Env) bool
	// Init acquires the display resources and decides the native canvas size.
	Init(env *Env) (*scale.Scaler, error)
	// Run owns the render loop until ctx is done.
	Run(ctx context.Context, comp *canvas.Compositor) error
	canvas.Presenter
	ScreenSize() (w, h int)
	// SetFullscreen returns once the change took effect.
	SetFullscreen(on bool) error
	Close() error
}

// Env is shared by the application side and the backend.
type Env struct {
	Device      string
	InputDir    string
	XDisplay    string
	Scale       int // 0 picks the largest fitting profile
	RefreshRate int
	CursorIdle  time.Duration
	Fullscreen  bool

	Mouse  *input.Mouse
	Keys   *input.KeyQueue
	Logger logx.LoggerProvider
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
	// Ready is called by the render loop once the first frame is up.
	Ready func()
	// Closed is called when the user closes the window.
	Closed func()

	readyOnce sync.Once
}

// Var reads an environment variable.
func (e *Env) Var(key string) string {
	if e == nil {
		return ``
	}
	if e.Getenv != nil {
		return e.Getenv(key)
	}
	return os.Getenv(key)
}

// Interval is the render loop period.
func (e *Env) Interval() time.Duration {
	rate := consts.DefaultRefresh
	if e != nil && e.RefreshRate > 0 {
		rate = e.RefreshRate
	}
	return time.Second / time.Duration(rate)
}

// SignalReady calls Ready at most once per Env.
func (e *Env) SignalReady() {
	if e == nil || e.Ready == nil {
		return
	}
	e.readyOnce.Do(e.Ready)
}

var (
	registryMu sync.Mutex
	registered []Backend
)

// priority for automatic selection
var priority = []string{consts.BackendX11, consts.BackendFBDev, consts.BackendHeadless}

// Register makes a backend selectable by name.
func Register(b Backend) {
	if b == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registered = append(registered, b)
}

// Names lists the registered backends.
func Names() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	names := make([]string, 0, len(registered))
	for _, b := range registered {
		names = append(names, b.Name())
	}
	return names
}

// Get returns a new instance of the named backend.
func Get(name string) (Backend, error) {
	registryMu.Lock()
	defer registryMu.Unlock()
	for _, b := range registered {
		if b.Name() == name {
			return b.New(), nil
		}
	}
	return nil, errors.WrapPrefix(consts.ErrUnknownBackend, name, 0)
}

// Select returns the named backend, or the first applicable one in priority
// order if name is empty.
func Select(env *Env, name string) (Backend, error) {
	if len(name) > 0 {
		return Get(name)
	}
	for _, n := range priority {
		b, err := Get(n)
		if err != nil {
			continue
		}
		if b.IsApplicable(env) {
			return b, nil
		}
	}
	return nil, errors.New(consts.ErrNoBackend)
}

// Loop ticks at the env's refresh rate until ctx is done, presenting the
// compositor each tick. before runs ahead of every present and returns the
// extra rectangle to present; a returned error ends the loop.
func Loop(ctx context.Context, env *Env, comp *canvas.Compositor, p canvas.Presenter, before func() (image.Rectangle, error)) error {
	if comp == nil || p == nil {
		return errors.NilParam()
	}
	ticker := time.NewTicker(env.Interval())
	defer ticker.Stop()
	var first bool
	for {
		var extra image.Rectangle
		if before != nil {
			var err error
			extra, err = before()
			if err != nil {
				return err
			}
		}
		if _, err := comp.PresentIfDirty(p, extra); err != nil {
			logx.IsErr(err, env.Logger, slog.LevelWarn)
		}
		if !first {
			first = true
			env.SignalReady()
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
