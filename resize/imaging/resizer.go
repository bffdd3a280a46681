package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/srlehn/fbport/resize"
)

// Resizer uses "github.com/disintegration/imaging".
// The zero value resamples with Lanczos.
type Resizer struct {
	Filter *imaging.ResampleFilter
}

var _ resize.Resizer = (*Resizer)(nil)

func (r *Resizer) Resize(img image.Image, size image.Point) (image.Image, error) {
	if same, err := resize.Check(img, size); err != nil || same {
		return img, err
	}
	filter := imaging.Lanczos
	if r.Filter != nil {
		filter = *r.Filter
	}
	return imaging.Resize(img, size.X, size.Y, filter), nil
}
