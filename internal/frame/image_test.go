package frame

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToRGBA(t *testing.T) {
	t.Parallel()

	// Padded rows to prove the stride is honored during conversion.
	stride := 3*Channels + 5
	b := Wrap(make([]byte, 2*stride), 3, 2, stride, Channels)
	b.SetRGB(2, 1, 9, 8, 7)

	img := b.ToRGBA()
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	assert.Equal(t, color.RGBA{R: 9, G: 8, B: 7, A: 255}, img.RGBAAt(2, 1))
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(0, 0))
}
