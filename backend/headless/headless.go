// Package headless is a display backend without display: presented
// rectangles are copied into an in memory frame.
package headless

import (
	"context"
	"image"
	"sync"

	"github.com/srlehn/fbport/backend"
	"github.com/srlehn/fbport/canvas"
	"github.com/srlehn/fbport/internal/consts"
	"github.com/srlehn/fbport/internal/errors"
	"github.com/srlehn/fbport/pixfmt"
	"github.com/srlehn/fbport/scale"
)

func init() { backend.Register(&Backend{}) }

type Backend struct {
	mu         sync.Mutex
	env        *backend.Env
	scaler     *scale.Scaler
	frame      *pixfmt.Image
	presents   []image.Rectangle
	fullscreen bool
}

var _ backend.Backend = (*Backend)(nil)

func (b *Backend) Name() string                        { return consts.BackendHeadless }
func (b *Backend) New() backend.Backend                { return &Backend{} }
func (b *Backend) IsApplicable(env *backend.Env) bool { return true }

func (b *Backend) Init(env *backend.Env) (*scale.Scaler, error) {
	if b == nil {
		return nil, errors.NilReceiver()
	}
	s := 1
	if env != nil && env.Scale > 0 {
		s = env.Scale
	}
	sc, err := scale.ForScale(s)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.env = env
	b.scaler = sc
	b.frame = pixfmt.NewImage(sc.NativeBounds())
	b.fullscreen = env != nil && env.Fullscreen
	return sc, nil
}

func (b *Backend) Run(ctx context.Context, comp *canvas.Compositor) error {
	if b == nil || b.frame == nil {
		return errors.New(consts.ErrNotStarted)
	}
	return backend.Loop(ctx, b.env, comp, b, nil)
}

func (b *Backend) Present(r image.Rectangle, stage *pixfmt.Image) error {
	if b == nil || stage == nil {
		return errors.NilParam()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frame == nil {
		return errors.New(consts.ErrNotStarted)
	}
	r = r.Intersect(b.frame.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		copy(b.frame.Row(y, r.Min.X, r.Max.X), stage.Row(y, r.Min.X, r.Max.X))
	}
	b.presents = append(b.presents, r)
	return nil
}

func (b *Backend) ScreenSize() (w, h int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.scaler == nil {
		return 0, 0
	}
	return b.scaler.Native.X, b.scaler.Native.Y
}

func (b *Backend) SetFullscreen(on bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fullscreen = on
	return nil
}

func (b *Backend) Fullscreen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fullscreen
}

func (b *Backend) Close() error { return nil }

// LastFrame returns a copy of the presented image.
func (b *Backend) LastFrame() *pixfmt.Image {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frame == nil {
		return nil
	}
	return b.frame.Clone()
}

// Presents returns the rectangles presented so far.
func (b *Backend) Presents() []image.Rectangle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]image.Rectangle(nil), b.presents...)
}
