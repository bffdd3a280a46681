//go:build linux

package linux

import (
	"bytes"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/srlehn/fbport/internal/errors"
)

// EventSize is the size of struct input_event on this platform.
const EventSize = int(unsafe.Sizeof(unix.Timeval{})) + 8

const (
	iocRead   = 2
	iocEvType = 'E'
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<30 | size<<16 | typ<<8 | nr
}

func evIOCGName(size int) uintptr { return ioc(iocRead, iocEvType, 0x06, uintptr(size)) }
func evIOCGBit(ev uint16, size int) uintptr {
	return ioc(iocRead, iocEvType, 0x20+uintptr(ev), uintptr(size))
}
func evIOCGAbs(axis uint16) uintptr {
	return ioc(iocRead, iocEvType, 0x40+uintptr(axis), unsafe.Sizeof(AbsInfo{}))
}

func ioctlPtr(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
	if errno != 0 {
		return errors.New(errno)
	}
	return nil
}

// DeviceName queries EVIOCGNAME.
func DeviceName(fd uintptr) (string, error) {
	buf := make([]byte, 256)
	if err := ioctlPtr(fd, evIOCGName(len(buf)), unsafe.Pointer(&buf[0])); err != nil {
		return ``, err
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), nil
}

// EventBits queries EVIOCGBIT for event type ev (0 for the supported event types).
// size is the number of codes the bitmap has to cover.
func EventBits(fd uintptr, ev uint16, size int) ([]byte, error) {
	buf := make([]byte, size/8+1)
	if err := ioctlPtr(fd, evIOCGBit(ev, len(buf)), unsafe.Pointer(&buf[0])); err != nil {
		return nil, err
	}
	return buf, nil
}

// GetAbsInfo queries EVIOCGABS for an absolute axis.
func GetAbsInfo(fd uintptr, axis uint16) (AbsInfo, error) {
	var ai AbsInfo
	if err := ioctlPtr(fd, evIOCGAbs(axis), unsafe.Pointer(&ai)); err != nil {
		return AbsInfo{}, err
	}
	return ai, nil
}

// Ioctl issues a request taking a pointer argument.
func Ioctl(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	return ioctlPtr(fd, req, arg)
}
