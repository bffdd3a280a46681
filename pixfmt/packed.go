package pixfmt

import (
	"encoding/binary"

	"github.com/srlehn/fbport/internal/consts"
	"github.com/srlehn/fbport/internal/errors"
)

// PackRGB writes src as packed 24 bit RGB into dst and returns the number of
// bytes written. dst is truncated to whole pixels.
func PackRGB(dst []byte, src []Pixel) int {
	n := min(len(dst)/3, len(src))
	for i, p := range src[:n] {
		dst[3*i], dst[3*i+1], dst[3*i+2] = p.RGB()
	}
	return 3 * n
}

// UnpackRGB is the inverse of PackRGB.
func UnpackRGB(dst []Pixel, src []byte) int {
	n := min(len(dst), len(src)/3)
	for i := range dst[:n] {
		dst[i] = RGB(src[3*i], src[3*i+1], src[3*i+2])
	}
	return n
}

// SplitPlanes separates pixels into one plane per channel.
func SplitPlanes(src []Pixel) (r, g, b []uint8) {
	r, g, b = make([]uint8, len(src)), make([]uint8, len(src)), make([]uint8, len(src))
	for i, p := range src {
		r[i], g[i], b[i] = p.RGB()
	}
	return r, g, b
}

// JoinPlanes interleaves channel planes. The shortest plane determines the length.
func JoinPlanes(r, g, b []uint8) []Pixel {
	n := min(len(r), len(g), len(b))
	dst := make([]Pixel, n)
	for i := range dst {
		dst[i] = RGB(r[i], g[i], b[i])
	}
	return dst
}

// DeviceFormat describes the pixel layout of a display surface.
type DeviceFormat struct {
	BitsPerPixel int
	// bit offsets of the channels, as reported by FBIOGET_VSCREENINFO
	RedOffset, GreenOffset, BlueOffset int
}

var (
	FormatRGB565LE = DeviceFormat{BitsPerPixel: 16, RedOffset: 11, GreenOffset: 5, BlueOffset: 0}
	FormatXRGB8888 = DeviceFormat{BitsPerPixel: 32, RedOffset: 16, GreenOffset: 8, BlueOffset: 0}
	FormatXBGR8888 = DeviceFormat{BitsPerPixel: 32, RedOffset: 0, GreenOffset: 8, BlueOffset: 16}
)

func (f DeviceFormat) BytesPerPixel() int { return (f.BitsPerPixel + 7) / 8 }

func (f DeviceFormat) Validate() error {
	switch f.BitsPerPixel {
	case 16, 32:
		return nil
	}
	return errors.WrapPrefix(consts.ErrUnsupportedFormat, `bits per pixel`, 0)
}

// EncodeRow writes src into dst in the device format (little endian).
func EncodeRow(dst []byte, src []Pixel, f DeviceFormat) int {
	bpp := f.BytesPerPixel()
	n := min(len(dst)/max(bpp, 1), len(src))
	switch f.BitsPerPixel {
	case 16:
		for i, p := range src[:n] {
			binary.LittleEndian.PutUint16(dst[2*i:], uint16(p.RGB565()))
		}
	case 32:
		if f == FormatXRGB8888 {
			for i, p := range src[:n] {
				binary.LittleEndian.PutUint32(dst[4*i:], uint32(p))
			}
			break
		}
		for i, p := range src[:n] {
			r, g, b := p.RGB()
			v := uint32(r)<<f.RedOffset | uint32(g)<<f.GreenOffset | uint32(b)<<f.BlueOffset
			binary.LittleEndian.PutUint32(dst[4*i:], v)
		}
	default:
		return 0
	}
	return n * bpp
}
