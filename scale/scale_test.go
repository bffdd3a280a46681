package scale_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/fbport/scale"
)

func TestForDevice(t *testing.T) {
	tests := map[string]struct {
		w, h   int
		scale  int
		offset image.Point
		err    bool
	}{
		`exact`:     {800, 480, 1, image.Pt(0, 0), false},
		`hd`:        {1920, 1080, 2, image.Pt(160, 60), false},
		`4k`:        {3840, 2160, 4, image.Pt(320, 120), false},
		`too small`: {640, 480, 0, image.Point{}, true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := scale.ForDevice(tc.w, tc.h)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.scale, s.Scale)
			assert.Equal(t, tc.offset, s.Offset)
		})
	}
}

func TestConversions(t *testing.T) {
	s, err := scale.ForScale(2)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(1600, 960), s.Native)
	nx, ny := s.ToNative(10, 20)
	assert.Equal(t, 20, nx)
	assert.Equal(t, 40, ny)
	x, y := s.ToLogical(21, 41)
	assert.Equal(t, 10, x)
	assert.Equal(t, 20, y)
	x, _ = s.ToLogical(-1, 0)
	assert.Equal(t, -1, x)
	assert.Equal(t, image.Rect(20, 40, 22, 42), s.Block(10, 20))

	s.Center(1700, 1000)
	_, _, ok := s.DeviceToNative(10, 10)
	assert.False(t, ok)
	nx, ny, ok = s.DeviceToNative(60, 30)
	assert.True(t, ok)
	assert.Equal(t, 10, nx)
	assert.Equal(t, 10, ny)

	_, err = scale.ForScale(5)
	assert.Error(t, err)
	assert.Len(t, scale.Profiles(), scale.MaxScale)
}
