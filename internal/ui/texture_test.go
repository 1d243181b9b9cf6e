package ui

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestBlurSourceKeepsAspect(t *testing.T) {
	out := blurSource(solid(800, 1000, color.White), 24, blurSaturation)
	assert.Equal(t, image.Rect(0, 0, 24, 30), out.Bounds())

	tiny := blurSource(solid(10, 5, color.White), 24, blurSaturation)
	assert.Equal(t, image.Rect(0, 0, 10, 5), tiny.Bounds(), "never upscales")

	empty := blurSource(image.NewRGBA(image.Rectangle{}), 24, 1)
	assert.Equal(t, 1, empty.Bounds().Dx())
}

func TestBlurSourceSaturates(t *testing.T) {
	muted := color.RGBA{R: 160, G: 120, B: 120, A: 255}
	px := blurSource(solid(48, 48, muted), 24, blurSaturation).NRGBAAt(5, 5)

	assert.Equal(t, uint8(255), px.A)
	assert.Greater(t, int(px.R)-int(px.G), 40-1)
	assert.InDelta(t, 160, float64(px.R), 2, "value is preserved")
	assert.Equal(t, px.G, px.B)
}

func TestBlurSourceNeutralSaturation(t *testing.T) {
	muted := color.RGBA{R: 160, G: 120, B: 120, A: 255}
	px := blurSource(solid(48, 48, muted), 24, 1).NRGBAAt(5, 5)
	assert.InDelta(t, 160, float64(px.R), 1)
	assert.InDelta(t, 120, float64(px.G), 1)
	assert.InDelta(t, 120, float64(px.B), 1)
}
