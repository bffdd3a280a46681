package fbport

import (
	"context"
	"image"
	"io"

	"golang.org/x/image/bmp"

	"github.com/srlehn/fbport/internal/consts"
	"github.com/srlehn/fbport/internal/errors"
	"github.com/srlehn/fbport/internal/logx"
)

// SetProtectedRegion excludes the native rectangle from presentation until
// ForceProtectedRedraw. Rectangles not fully on the canvas are ignored.
func (d *Display) SetProtectedRegion(nx, ny, w, h int) {
	s := d.canvasFor(`SetProtectedRegion`)
	if s == nil {
		return
	}
	if w <= 0 || h <= 0 {
		logx.Warn(`empty protected region ignored`, d, `w`, w, `h`, h)
		return
	}
	s.comp.SetProtectedRegion(image.Rect(nx, ny, nx+w, ny+h))
}

func (d *Display) ClearProtectedRegion() {
	if s := d.canvasFor(`ClearProtectedRegion`); s != nil {
		s.comp.SetProtectedRegion(image.Rectangle{})
	}
}

// ForceProtectedRedraw presents the protected region with the next frame
// and blocks until that frame is out.
func (d *Display) ForceProtectedRedraw() {
	if s := d.canvasFor(`ForceProtectedRedraw`); s != nil {
		_ = s.comp.ForceProtectedRedrawContext(context.Background())
	}
}

// ForceProtectedRedrawContext is ForceProtectedRedraw with cancellation.
func (d *Display) ForceProtectedRedrawContext(ctx context.Context) error {
	s := d.session()
	if s == nil {
		return errors.New(consts.ErrNotStarted)
	}
	return s.comp.ForceProtectedRedrawContext(ctx)
}

// GetRawPix returns a copy of the canvas as packed 8 bit RGB.
func (d *Display) GetRawPix() []byte {
	if s := d.canvasFor(`GetRawPix`); s != nil {
		return s.comp.RawPix()
	}
	return nil
}

// Snapshot returns a copy of the canvas.
func (d *Display) Snapshot() image.Image {
	if s := d.canvasFor(`Snapshot`); s != nil {
		return s.comp.Snapshot()
	}
	return nil
}

// WriteBMP encodes a snapshot of the canvas.
func (d *Display) WriteBMP(w io.Writer) error {
	if w == nil {
		return errors.NilParam()
	}
	img := d.Snapshot()
	if img == nil {
		return errors.New(consts.ErrNotStarted)
	}
	if err := bmp.Encode(w, img); err != nil {
		return errors.New(err)
	}
	return nil
}
