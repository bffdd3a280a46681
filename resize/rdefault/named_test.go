package rdefault_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/fbport/resize/gift"
	"github.com/srlehn/fbport/resize/nfnt"
	"github.com/srlehn/fbport/resize/rdefault"
)

func TestByName(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for _, name := range rdefault.Names() {
		t.Run(name, func(t *testing.T) {
			rsz, err := rdefault.ByName(name)
			require.NoError(t, err)
			m, err := rsz.Resize(src, image.Pt(4, 2))
			require.NoError(t, err)
			assert.Equal(t, image.Pt(4, 2), m.Bounds().Size())
		})
	}

	rsz, err := rdefault.ByName(``)
	require.NoError(t, err)
	assert.IsType(t, &rdefault.Resizer{}, rsz)
	rsz, err = rdefault.ByName(`gift`)
	require.NoError(t, err)
	assert.IsType(t, &gift.Resizer{}, rsz)
	rsz, err = rdefault.ByName(`nfnt`)
	require.NoError(t, err)
	assert.IsType(t, &nfnt.Resizer{}, rsz)

	_, err = rdefault.ByName(`caire`)
	assert.Error(t, err)
}
