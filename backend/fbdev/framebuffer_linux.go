// Copyright 2013 Konstantin Kulikov. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package fbdev

import (
	"image"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/srlehn/fbport/internal/errors"
	"github.com/srlehn/fbport/internal/linux"
	"github.com/srlehn/fbport/pixfmt"
)

// framebuffer is a memory mapped linux framebuffer device.
type framebuffer struct {
	dev    *os.File
	finfo  fixedScreenInfo
	vinfo  variableScreenInfo
	data   []byte
	format pixfmt.DeviceFormat
}

var _ surface = (*framebuffer)(nil)

// openDevice opens the framebuffer device and maps its memory.
func openDevice(dev string) (surface, error) {
	var (
		fb  = new(framebuffer)
		err error
	)
	fb.dev, err = os.OpenFile(dev, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, errors.New(err)
	}
	fd := fb.dev.Fd()
	if err := linux.Ioctl(fd, getFixedScreenInfo, unsafe.Pointer(&fb.finfo)); err != nil {
		fb.dev.Close()
		return nil, err
	}
	if err := linux.Ioctl(fd, getVariableScreenInfo, unsafe.Pointer(&fb.vinfo)); err != nil {
		fb.dev.Close()
		return nil, err
	}
	fb.format = pixfmt.DeviceFormat{
		BitsPerPixel: int(fb.vinfo.BitsPerPixel),
		RedOffset:    int(fb.vinfo.Red.Offset),
		GreenOffset:  int(fb.vinfo.Green.Offset),
		BlueOffset:   int(fb.vinfo.Blue.Offset),
	}
	if err := fb.format.Validate(); err != nil {
		fb.dev.Close()
		return nil, err
	}
	size := int(fb.finfo.SmemLen + uint32(fb.finfo.SmemStart&uint64(unix.Getpagesize()-1)))
	fb.data, err = unix.Mmap(int(fd), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		fb.dev.Close()
		return nil, errors.New(err)
	}
	return fb, nil
}

func (fb *framebuffer) Close() error {
	if fb == nil {
		return nil
	}
	err := errors.Join(unix.Munmap(fb.data), fb.dev.Close())
	if err != nil {
		return errors.New(err)
	}
	return nil
}

func (fb *framebuffer) Size() image.Point {
	return image.Pt(int(fb.vinfo.XRes), int(fb.vinfo.YRes))
}

func (fb *framebuffer) Format() pixfmt.DeviceFormat { return fb.format }

func (fb *framebuffer) offset(x, y int) int {
	return (int(fb.vinfo.XOffset)+x)*fb.format.BytesPerPixel() +
		(int(fb.vinfo.YOffset)+y)*int(fb.finfo.LineLength)
}

// WriteRow encodes row into the device memory starting at (x, y).
func (fb *framebuffer) WriteRow(x, y int, row []pixfmt.Pixel) {
	size := fb.Size()
	if y < 0 || y >= size.Y || x < 0 || x >= size.X {
		return
	}
	row = row[:min(len(row), size.X-x)]
	off := fb.offset(x, y)
	pixfmt.EncodeRow(fb.data[off:], row, fb.format)
}

// Clear zeroes the visible device memory, including any border.
func (fb *framebuffer) Clear() {
	size := fb.Size()
	n := size.X * fb.format.BytesPerPixel()
	for y := 0; y < size.Y; y++ {
		off := fb.offset(0, y)
		clear(fb.data[off : off+n])
	}
}
