package gift

import (
	"image"

	"github.com/disintegration/gift"

	"github.com/srlehn/fbport/resize"
)

// Resizer uses "github.com/disintegration/gift".
// The zero value resamples with Lanczos.
type Resizer struct {
	Filter gift.Resampling
}

var _ resize.Resizer = (*Resizer)(nil)

func (r *Resizer) Resize(img image.Image, size image.Point) (image.Image, error) {
	if same, err := resize.Check(img, size); err != nil || same {
		return img, err
	}
	filter := r.Filter
	if filter == nil {
		filter = gift.LanczosResampling
	}
	g := gift.New(gift.Resize(size.X, size.Y, filter))
	g.SetParallelization(true)
	m := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(m, img)
	return m, nil
}
