//go:build !linux

package linux

import (
	"unsafe"

	"github.com/srlehn/fbport/internal/consts"
	"github.com/srlehn/fbport/internal/errors"
)

func KDGetMode(fd uintptr) (mode KDMode, isLinuxConsole bool, _ error) {
	return -1, false, errors.New(consts.ErrPlatformNotSupported)
}

func KDSetMode(fd uintptr, mode KDMode) error {
	return errors.New(consts.ErrPlatformNotSupported)
}

func DeviceName(fd uintptr) (string, error) {
	return ``, errors.New(consts.ErrPlatformNotSupported)
}

func EventBits(fd uintptr, ev uint16, size int) ([]byte, error) {
	return nil, errors.New(consts.ErrPlatformNotSupported)
}

func GetAbsInfo(fd uintptr, axis uint16) (AbsInfo, error) {
	return AbsInfo{}, errors.New(consts.ErrPlatformNotSupported)
}

// EventSize is the size of a struct input_event on 64 bit platforms.
const EventSize = 24

func Ioctl(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	return errors.New(consts.ErrPlatformNotSupported)
}
