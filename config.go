package fbport

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/rkoesters/xdg/keyfile"

	"github.com/srlehn/fbport/internal/consts"
	"github.com/srlehn/fbport/internal/errors"
)

const configGroup = `display`

// config file keys
const (
	keyBackend    = `backend`
	keyScale      = `scale`
	keyDevice     = `device`
	keyInputDir   = `input-dir`
	keyRefresh    = `refresh-rate`
	keyCursorIdle = `cursor-idle`
	keyKeyQueue   = `key-queue`
	keyFullscreen = `fullscreen`
	keyXDisplay   = `x-display`
)

type config struct {
	backend    string
	scale      int
	device     string
	inputDir   string
	xDisplay   string
	refresh    int
	cursorIdle time.Duration
	keyQueue   int
	fullscreen bool
	file       string

	// keys set by options
	set map[string]bool
}

func newConfig() config {
	return config{
		device:     consts.DefaultFBDevice,
		inputDir:   consts.DefaultInputDir,
		refresh:    consts.DefaultRefresh,
		cursorIdle: consts.DefaultCursorIdle,
		keyQueue:   consts.DefaultKeyQueue,
		set:        make(map[string]bool),
	}
}

// DefaultConfigFile is $XDG_CONFIG_HOME/fbport/fbport.conf.
func DefaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ``
	}
	return filepath.Join(dir, consts.LibraryName, consts.LibraryName+`.conf`)
}

// load reads the config file if one is set. A missing default file is not
// an error.
func (c *config) load() error {
	path := c.file
	if len(path) == 0 {
		path = DefaultConfigFile()
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.New(err)
	}
	defer f.Close()
	return c.read(f)
}

func (c *config) read(r io.Reader) error {
	kf, err := keyfile.New(r)
	if err != nil {
		return errors.New(err)
	}
	if !kf.GroupExists(configGroup) {
		return nil
	}
	// refresh_rate and RefreshRate are accepted for refresh-rate
	names := make(map[string]string)
	for _, k := range kf.Keys(configGroup) {
		names[strcase.ToKebab(k)] = k
	}
	lookup := func(key string) (string, bool) {
		if c.set[key] {
			return ``, false
		}
		name, ok := names[key]
		return name, ok
	}
	str := func(key string, dst *string) error {
		name, ok := lookup(key)
		if !ok {
			return nil
		}
		v, err := kf.String(configGroup, name)
		if err != nil {
			return errors.WrapPrefix(err, key, 0)
		}
		*dst = v
		return nil
	}
	num := func(key string, dst *int) error {
		name, ok := lookup(key)
		if !ok {
			return nil
		}
		v, err := kf.Number(configGroup, name)
		if err != nil {
			return errors.WrapPrefix(err, key, 0)
		}
		if v < 0 || v != float64(int(v)) {
			return errors.Errorf(`%s: invalid value %v`, key, v)
		}
		*dst = int(v)
		return nil
	}
	var idle string
	errs := []error{
		str(keyBackend, &c.backend),
		num(keyScale, &c.scale),
		str(keyDevice, &c.device),
		str(keyInputDir, &c.inputDir),
		num(keyRefresh, &c.refresh),
		num(keyKeyQueue, &c.keyQueue),
		str(keyXDisplay, &c.xDisplay),
		str(keyCursorIdle, &idle),
	}
	if len(idle) > 0 {
		dur, err := parseDuration(idle)
		if err != nil {
			errs = append(errs, errors.WrapPrefix(err, keyCursorIdle, 0))
		} else {
			c.cursorIdle = dur
		}
	}
	if name, ok := lookup(keyFullscreen); ok {
		v, err := kf.Bool(configGroup, name)
		if err != nil {
			errs = append(errs, errors.WrapPrefix(err, keyFullscreen, 0))
		} else {
			c.fullscreen = v
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	if c.refresh <= 0 || c.keyQueue <= 0 {
		return errors.New(`refresh rate and key queue size must be positive`)
	}
	return nil
}

// parseDuration accepts Go durations and plain seconds.
func parseDuration(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.New(err)
	}
	return dur, nil
}
