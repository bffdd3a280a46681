// Package resize holds the image scaling interface used to fit map images
// to the size the application expects. Implementations live in the
// subpackages, each backed by a different imaging library.
package resize

import (
	"image"

	"github.com/srlehn/fbport/internal/errors"
)

type Resizer interface {
	Resize(img image.Image, size image.Point) (image.Image, error)
}

// Check validates the arguments of a Resize call. It returns true if img
// already has the requested size.
func Check(img image.Image, size image.Point) (same bool, err error) {
	if img == nil {
		return false, errors.NilParam()
	}
	if size.X <= 0 || size.Y <= 0 {
		return false, errors.Errorf(`invalid target size %v`, size)
	}
	return img.Bounds().Size() == size, nil
}
