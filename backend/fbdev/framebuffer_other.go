//go:build !linux

package fbdev

import (
	"github.com/srlehn/fbport/internal/consts"
	"github.com/srlehn/fbport/internal/errors"
)

func openDevice(string) (surface, error) {
	return nil, errors.New(consts.ErrPlatformNotSupported)
}
