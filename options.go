package fbport

import (
	"log/slog"
	"os"
	"time"

	"github.com/srlehn/fbport/internal/errors"
)

type Option interface {
	ApplyOption(d *Display) error
}

var _ Option = (OptFunc)(nil)

type OptFunc func(*Display) error

func (o OptFunc) ApplyOption(d *Display) error { return o(d) }

var _ Option = (Options)(nil)

type Options []Option

func (o Options) ApplyOption(d *Display) error { return d.SetOptions([]Option(o)...) }

// SetOptions applies opts in order. Options only take effect before Start.
func (d *Display) SetOptions(opts ...Option) error {
	if d == nil {
		return errors.NilReceiver()
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.ApplyOption(d); err != nil {
			return errors.New(err)
		}
	}
	return nil
}

// SetBackend selects a backend by name instead of the first applicable one.
func SetBackend(name string) Option {
	return OptFunc(func(d *Display) error { d.cfg.backend = name; d.cfg.set[keyBackend] = true; return nil })
}

// SetScale picks the native profile, 0 takes the largest that fits.
func SetScale(scale int) Option {
	return OptFunc(func(d *Display) error {
		if scale < 0 {
			return errors.Errorf(`negative scale %d`, scale)
		}
		d.cfg.scale = scale
		d.cfg.set[keyScale] = true
		return nil
	})
}
func SetDevice(dev string) Option {
	return OptFunc(func(d *Display) error { d.cfg.device = dev; d.cfg.set[keyDevice] = true; return nil })
}
func SetInputDir(dir string) Option {
	return OptFunc(func(d *Display) error { d.cfg.inputDir = dir; d.cfg.set[keyInputDir] = true; return nil })
}
func SetRefreshRate(hz int) Option {
	return OptFunc(func(d *Display) error {
		if hz <= 0 {
			return errors.Errorf(`invalid refresh rate %d`, hz)
		}
		d.cfg.refresh = hz
		d.cfg.set[keyRefresh] = true
		return nil
	})
}
func SetCursorIdle(dur time.Duration) Option {
	return OptFunc(func(d *Display) error { d.cfg.cursorIdle = dur; d.cfg.set[keyCursorIdle] = true; return nil })
}
func SetKeyQueueSize(n int) Option {
	return OptFunc(func(d *Display) error {
		if n <= 0 {
			return errors.Errorf(`invalid key queue size %d`, n)
		}
		d.cfg.keyQueue = n
		d.cfg.set[keyKeyQueue] = true
		return nil
	})
}
func SetFullscreen(on bool) Option {
	return OptFunc(func(d *Display) error { d.cfg.fullscreen = on; d.cfg.set[keyFullscreen] = true; return nil })
}

// SetXDisplay overrides $DISPLAY for the x11 backend.
func SetXDisplay(display string) Option {
	return OptFunc(func(d *Display) error { d.cfg.xDisplay = display; d.cfg.set[keyXDisplay] = true; return nil })
}

// SetConfigFile reads the [display] group of a key file. Values set by
// other options take precedence regardless of order.
func SetConfigFile(path string) Option {
	return OptFunc(func(d *Display) error { d.cfg.file = path; return nil })
}

// SetGetenv replaces os.Getenv for backend selection.
func SetGetenv(getenv func(string) string) Option {
	return OptFunc(func(d *Display) error { d.getenv = getenv; return nil })
}

// SetOnClose sets the function called when the user closes the window.
// The default exits the process. fn runs on the render goroutine and must
// not call Close, the render loop ends after it returns.
func SetOnClose(fn func()) Option {
	return OptFunc(func(d *Display) error { d.onClose = fn; return nil })
}

// SetLogFile appends debug level logs to the file at path. The file is
// closed with the Display.
func SetLogFile(path string, enable bool) Option {
	return OptFunc(func(d *Display) error {
		if !enable {
			return nil
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return errors.New(err)
		}
		if d.logFile != nil {
			_ = d.logFile.Close()
		}
		d.logFile = f
		d.logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{AddSource: true, Level: slog.LevelDebug}))
		return nil
	})
}

func SetSLogger(h slog.Handler, enable bool) Option {
	return OptFunc(func(d *Display) error {
		if enable {
			if h == nil {
				d.logger = slog.Default()
			} else {
				d.logger = slog.New(h)
			}
		} else {
			d.logger = nil
		}
		return nil
	})
}
