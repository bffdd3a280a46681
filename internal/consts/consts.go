package consts

import (
	"errors"
	"time"
)

var (
	ErrNotImplemented       = errors.New(`not implemented`)
	ErrNilReceiver          = errors.New(`nil receiver`)
	ErrNilParam             = errors.New(`nil parameter`)
	ErrPlatformNotSupported = errors.New(`platform not supported`)
	ErrUnknownBackend       = errors.New(`unknown display backend`)
	ErrNoBackend            = errors.New(`no applicable display backend`)
	ErrConnClosed           = errors.New(`display server connection closed`)
	ErrWindowClosed         = errors.New(`window closed`)
	ErrInvalidScale         = errors.New(`invalid display scale`)
	ErrOutOfBounds          = errors.New(`coordinates out of bounds`)
	ErrUnsupportedFormat    = errors.New(`unsupported pixel format`)
	ErrNotStarted           = errors.New(`display not started`)
	ErrMapSize              = errors.New(`earth map size mismatch`)
)

const (
	LibraryName = `fbport`

	BackendX11      = `x11`
	BackendFBDev    = `fbdev`
	BackendHeadless = `headless`

	DefaultFBDevice   = `/dev/fb0`
	DefaultInputDir   = `/dev/input`
	DefaultRefresh    = 30
	DefaultCursorIdle = 10 * time.Second
	DefaultKeyQueue   = 128
)
