package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
)

const (
	textureCacheSize = 64
	// blurWidth is the width decoded images are reduced to before the GPU
	// scales them back up; the linear upscale does the blurring.
	blurWidth = 24
	// blurSaturation boosts the blur layer the way a frosted pane does.
	blurSaturation = 1.8
	// softWidth gives the light blur of the optional softened hero.
	softWidth = 160
	gradientRows   = 256
)

type textureKind int

const (
	kindPlain textureKind = iota
	kindBlurred
	kindSoft
	kindGradient
)

type textureKey struct {
	src  image.Image
	kind textureKind
	name string
}

// TextureCache uploads decoded images to the GPU once and releases the
// least recently used textures.
type TextureCache struct {
	lru *lru.Cache[textureKey, *ebiten.Image]
}

func NewTextureCache(size int) *TextureCache {
	if size <= 0 {
		size = textureCacheSize
	}
	c, err := lru.NewWithEvict(size, func(_ textureKey, img *ebiten.Image) {
		img.Deallocate()
	})
	if err != nil {
		// only fails for a non-positive size
		logrus.WithError(err).Fatal("texture cache")
	}
	return &TextureCache{lru: c}
}

// Texture returns img as a GPU image.
func (tc *TextureCache) Texture(img image.Image) *ebiten.Image {
	if img == nil {
		return nil
	}
	if eimg, ok := img.(*ebiten.Image); ok {
		return eimg
	}
	return tc.get(textureKey{src: img, kind: kindPlain}, func() image.Image { return img })
}

// Blurred returns a softened, saturated copy of img for the blur band. Draw
// it with ebiten.FilterLinear.
func (tc *TextureCache) Blurred(img image.Image) *ebiten.Image {
	if img == nil {
		return nil
	}
	return tc.get(textureKey{src: img, kind: kindBlurred}, func() image.Image {
		return blurSource(img, blurWidth, blurSaturation)
	})
}

// Softened returns a lightly blurred copy of img.
func (tc *TextureCache) Softened(img image.Image) *ebiten.Image {
	if img == nil {
		return nil
	}
	return tc.get(textureKey{src: img, kind: kindSoft}, func() image.Image {
		return blurSource(img, softWidth, 1)
	})
}

// Gradient returns a 1-pixel wide vertical strip for stops. name must be
// unique per distinct set of stops.
func (tc *TextureCache) Gradient(name string, stops []gradientStop) *ebiten.Image {
	return tc.get(textureKey{kind: kindGradient, name: name}, func() image.Image {
		return gradientStrip(stops, gradientRows)
	})
}

// Len reports how many textures are resident.
func (tc *TextureCache) Len() int {
	return tc.lru.Len()
}

func (tc *TextureCache) get(key textureKey, build func() image.Image) *ebiten.Image {
	if t, ok := tc.lru.Get(key); ok {
		return t
	}
	t := ebiten.NewImageFromImage(build())
	tc.lru.Add(key, t)
	return t
}

// blurSource shrinks img to width pixels wide, keeping its aspect ratio, and
// multiplies saturation by sat.
func blurSource(img image.Image, width int, sat float64) *image.NRGBA {
	b := img.Bounds()
	if b.Empty() {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}
	width = max(1, min(width, b.Dx()))
	height := max(1, b.Dy()*width/b.Dx())

	small := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(small, small.Bounds(), img, b, draw.Src, nil)
	if sat == 1 {
		return small
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := small.NRGBAAt(x, y)
			c, _ := colorful.MakeColor(color.NRGBA{R: px.R, G: px.G, B: px.B, A: 255})
			h, s, v := c.Hsv()
			r, g, bl := colorful.Hsv(h, min(s*sat, 1), v).Clamped().RGB255()
			small.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: bl, A: px.A})
		}
	}
	return small
}
