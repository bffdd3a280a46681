package fbdev

import (
	"os"

	"github.com/containerd/console"
	"golang.org/x/term"

	"github.com/srlehn/fbport/internal/errors"
	"github.com/srlehn/fbport/internal/linux"
	"github.com/srlehn/fbport/internal/logx"
)

// vtConsole switches the controlling virtual terminal into graphics mode and
// stops it from echoing input, so that neither text nor cursor blink
// draws over the framebuffer.
type vtConsole struct {
	tty       *os.File
	kdMode    linux.KDMode
	kdChanged bool
	raw       console.Console
}

func setupConsole(tty *os.File, logger logx.LoggerProvider) *vtConsole {
	c := &vtConsole{tty: tty}
	if tty == nil {
		return c
	}
	fd := tty.Fd()
	if mode, isConsole, err := linux.KDGetMode(fd); err == nil && isConsole {
		if err := linux.KDSetMode(fd, linux.KDGraphics); err != nil {
			logx.Warn(`could not switch console to graphics mode`, logger, `error`, err)
		} else {
			c.kdMode, c.kdChanged = mode, true
		}
	}
	if term.IsTerminal(int(fd)) {
		raw, err := makeRaw(tty)
		if err != nil {
			logx.Warn(`could not set terminal to raw mode`, logger, `error`, err)
		} else {
			c.raw = raw
		}
	}
	return c
}

func makeRaw(tty *os.File) (_ console.Console, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(r)
		}
	}()
	c, err := console.ConsoleFromFile(tty)
	if err != nil {
		return nil, errors.New(err)
	}
	if err := c.SetRaw(); err != nil {
		return nil, errors.New(err)
	}
	return c, nil
}

func (c *vtConsole) restore() error {
	if c == nil || c.tty == nil {
		return nil
	}
	var errs []error
	if c.raw != nil {
		errs = append(errs, c.raw.Reset())
		c.raw = nil
	}
	if c.kdChanged {
		errs = append(errs, linux.KDSetMode(c.tty.Fd(), c.kdMode))
		c.kdChanged = false
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	return nil
}
