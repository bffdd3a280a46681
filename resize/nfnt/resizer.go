package nfnt

import (
	"image"

	"github.com/nfnt/resize"

	rsz "github.com/srlehn/fbport/resize"
)

// Resizer uses "github.com/nfnt/resize".
// The zero value interpolates with NearestNeighbor, which keeps the hard
// coast lines of small maps.
type Resizer struct {
	Interp resize.InterpolationFunction
}

var _ rsz.Resizer = (*Resizer)(nil)

func (r *Resizer) Resize(img image.Image, size image.Point) (image.Image, error) {
	if same, err := rsz.Check(img, size); err != nil || same {
		return img, err
	}
	return resize.Resize(uint(size.X), uint(size.Y), img, r.Interp), nil
}
