// Package xdraw provides resizers using golang.org/x/image/draw.
package xdraw

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/srlehn/fbport/resize"
)

type resizer struct {
	scaler draw.Scaler
}

var _ resize.Resizer = (*resizer)(nil)

// ApproxBiLinear balances speed and quality.
func ApproxBiLinear() resize.Resizer { return &resizer{scaler: draw.ApproxBiLinear} }

func BiLinear() resize.Resizer { return &resizer{scaler: draw.BiLinear} }

// CatmullRom is the slowest with the best quality.
func CatmullRom() resize.Resizer { return &resizer{scaler: draw.CatmullRom} }

// NearestNeighbor keeps pixel art sharp.
func NearestNeighbor() resize.Resizer { return &resizer{scaler: draw.NearestNeighbor} }

func (r *resizer) Resize(img image.Image, size image.Point) (image.Image, error) {
	if same, err := resize.Check(img, size); err != nil || same {
		return img, err
	}
	dst := image.NewRGBA(image.Rectangle{Max: size})
	r.scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}
