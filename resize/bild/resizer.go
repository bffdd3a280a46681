package bild

import (
	"image"

	"github.com/anthonynsimon/bild/transform"

	"github.com/srlehn/fbport/resize"
)

// Resizer uses "github.com/anthonynsimon/bild/transform" with a Lanczos filter.
type Resizer struct{}

var _ resize.Resizer = (*Resizer)(nil)

func (r *Resizer) Resize(img image.Image, size image.Point) (image.Image, error) {
	if same, err := resize.Check(img, size); err != nil || same {
		return img, err
	}
	return transform.Resize(img, size.X, size.Y, transform.Lanczos), nil
}
