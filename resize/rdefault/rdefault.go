// Package rdefault picks a resizer by source image type and architecture.
package rdefault

import (
	"image"
	"runtime"

	"github.com/srlehn/fbport/resize"
	"github.com/srlehn/fbport/resize/rez"
	"github.com/srlehn/fbport/resize/xdraw"
)

type Resizer struct{}

var _ resize.Resizer = (*Resizer)(nil)

func (r *Resizer) Resize(img image.Image, size image.Point) (image.Image, error) {
	if same, err := resize.Check(img, size); err != nil || same {
		return img, err
	}
	if runtime.GOARCH == `amd64` {
		switch img.(type) {
		case *image.YCbCr, *image.RGBA, *image.NRGBA, *image.Gray:
			// SIMD assembly
			if m, err := (rez.Resizer{}).Resize(img, size); err == nil {
				return m, nil
			}
		}
	}
	return xdraw.ApproxBiLinear().Resize(img, size)
}
