package rez

import (
	"image"

	"github.com/bamiaux/rez"

	"github.com/srlehn/fbport/internal/errors"
	"github.com/srlehn/fbport/resize"
)

// Resizer uses "github.com/bamiaux/rez". It only accepts YCbCr, RGBA, NRGBA
// and Gray sources.
type Resizer struct{}

var _ resize.Resizer = (*Resizer)(nil)

func (r Resizer) Resize(img image.Image, size image.Point) (image.Image, error) {
	if same, err := resize.Check(img, size); err != nil || same {
		return img, err
	}
	rect := image.Rectangle{Max: size}
	var dst image.Image
	switch m := img.(type) {
	case *image.RGBA:
		dst = image.NewRGBA(rect)
	case *image.Gray:
		dst = image.NewGray(rect)
	case *image.YCbCr:
		dst = image.NewYCbCr(rect, m.SubsampleRatio)
	default:
		dst = image.NewNRGBA(rect)
	}
	if err := rez.Convert(dst, img, rez.NewBilinearFilter()); err != nil {
		return nil, errors.New(err)
	}
	return dst, nil
}
