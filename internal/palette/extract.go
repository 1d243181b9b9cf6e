// Package palette extracts a representative background color from artwork.
//
// The sampled region is the bottom third of the image, which is the part a
// bottom-anchored gradient overlay blends into.
package palette

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

const (
	// SampleSize is the edge length of the square sample surface.
	SampleSize = 50

	// SampleRegion is the fraction of the image height, measured from the
	// bottom, that is rendered into the sample surface.
	SampleRegion = 0.34

	// SampleStride samples every 4th pixel of the surface.
	SampleStride = 4

	minBrightness = 20
	maxBrightness = 235
)

var (
	// ErrExtractionUnavailable means the sample surface could not be created.
	ErrExtractionUnavailable = errors.New("color extraction unavailable")
	// ErrImageLoadFailed means the source image could not be loaded or decoded.
	ErrImageLoadFailed = errors.New("image load failed")
)

// CachedColor is the extracted color of an image. It is immutable once
// computed.
type CachedColor struct {
	R, G, B uint8
	IsDark  bool
}

// Color returns the CSS-style rgb() encoding, e.g. "rgb(12, 34, 56)".
func (c CachedColor) Color() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func (c CachedColor) String() string { return c.Color() }

// RGBA returns the color as an opaque color.RGBA.
func (c CachedColor) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// Luminance returns the relative luminance of an RGB triple in [0,1].
func Luminance(r, g, b uint8) float64 {
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
}

// IsDark reports whether an RGB triple reads as dark.
func IsDark(r, g, b uint8) bool {
	return Luminance(r, g, b) < 0.5
}

// Extract samples img and returns its representative color. The same pixel
// content always yields the same result.
func Extract(img image.Image) (CachedColor, error) {
	surface, err := sampleSurface(img)
	if err != nil {
		return CachedColor{}, err
	}

	r, g, b, ok := average(surface.Pix, true)
	if !ok {
		// Near-black or near-white everywhere; use every sampled pixel.
		r, g, b, _ = average(surface.Pix, false)
	}

	return CachedColor{R: r, G: g, B: b, IsDark: IsDark(r, g, b)}, nil
}

// sampleSurface renders the bottom SampleRegion of img into a
// SampleSize×SampleSize NRGBA surface.
func sampleSurface(img image.Image) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrExtractionUnavailable)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty image %v", ErrExtractionUnavailable, bounds)
	}

	top := bounds.Min.Y + int(math.Floor(float64(bounds.Dy())*(1-SampleRegion)))
	src := image.Rect(bounds.Min.X, top, bounds.Max.X, bounds.Max.Y)
	if src.Empty() {
		return nil, fmt.Errorf("%w: empty sample region %v", ErrExtractionUnavailable, src)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, SampleSize, SampleSize))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst, nil
}

// average returns the rounded channel-wise mean of every SampleStride-th
// pixel in pix. When filtered is set, near-black and near-white pixels are
// skipped; ok is false if nothing was accumulated.
func average(pix []uint8, filtered bool) (r, g, b uint8, ok bool) {
	var sumR, sumG, sumB, count int
	for i := 0; i+2 < len(pix); i += 4 * SampleStride {
		pr, pg, pb := int(pix[i]), int(pix[i+1]), int(pix[i+2])
		if filtered {
			brightness := float64(pr+pg+pb) / 3
			if brightness <= minBrightness || brightness >= maxBrightness {
				continue
			}
		}
		sumR += pr
		sumG += pg
		sumB += pb
		count++
	}
	if count == 0 {
		return 0, 0, 0, false
	}
	return roundMean(sumR, count), roundMean(sumG, count), roundMean(sumB, count), true
}

func roundMean(sum, count int) uint8 {
	return uint8(math.Round(float64(sum) / float64(count)))
}
