package ui

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"
)

// gradientStop is one stop of a vertical gradient. Pos runs from 0 at the
// top to 1 at the bottom.
type gradientStop struct {
	Pos   float64
	Color colorful.Color
	Alpha float64
}

var black = colorful.Color{}

// Stops for the hero layers, top to bottom.
var (
	// bottomShadeStops darkens the bottom of the hero when no color was
	// extracted.
	bottomShadeStops = []gradientStop{
		{Pos: 0.4, Color: black, Alpha: 0},
		{Pos: 0.7, Color: black, Alpha: 0.3},
		{Pos: 1, Color: black, Alpha: 0.7},
	}

	// blurMaskStops keeps the top of the blur band sharp.
	blurMaskStops = []gradientStop{
		{Pos: 0.25, Color: black, Alpha: 0},
		{Pos: 0.6, Color: black, Alpha: 1},
		{Pos: 1, Color: black, Alpha: 1},
	}

	// headerFadeStops soften the bottom edge of the sticky header.
	headerFadeStops = []gradientStop{
		{Pos: 0, Color: black, Alpha: 0.35},
		{Pos: 1, Color: black, Alpha: 0},
	}
)

// colorBandStops blends the blur band into the extracted color.
func colorBandStops(c colorful.Color) []gradientStop {
	return []gradientStop{
		{Pos: 0.1, Color: c, Alpha: 0},
		{Pos: 0.5, Color: c, Alpha: 1},
	}
}

// contentShadeStops is the dark overlay under the extended content. Its
// stops sit at fixed pixel depths, so it depends on the block height.
func contentShadeStops(height float64) []gradientStop {
	if height <= 0 {
		return nil
	}
	return []gradientStop{
		{Pos: 0, Color: black, Alpha: 0},
		{Pos: lo.Clamp(100/height, 0, 1), Color: black, Alpha: 0.2},
		{Pos: lo.Clamp(200/height, 0, 1), Color: black, Alpha: 0.4},
		{Pos: 1, Color: black, Alpha: 0.6},
	}
}

// cardShadeStops makes card titles readable over any artwork.
var cardShadeStops = []gradientStop{
	{Pos: 0, Color: black, Alpha: 0},
	{Pos: 0.5, Color: black, Alpha: 0.2},
	{Pos: 1, Color: black, Alpha: 0.8},
}

// gradientAt evaluates the gradient at t. Before the first stop and after
// the last one the nearest stop's value holds.
func gradientAt(stops []gradientStop, t float64) (colorful.Color, float64) {
	if len(stops) == 0 {
		return black, 0
	}
	if t <= stops[0].Pos {
		return stops[0].Color, stops[0].Alpha
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Pos {
			continue
		}
		span := b.Pos - a.Pos
		if span <= 0 {
			return b.Color, b.Alpha
		}
		f := (t - a.Pos) / span
		return blendStops(a, b, f), a.Alpha + (b.Alpha-a.Alpha)*f
	}
	last := stops[len(stops)-1]
	return last.Color, last.Alpha
}

// blendStops mixes two stop colors. A fully transparent stop takes the color
// of its neighbour so fades never pass through grey.
func blendStops(a, b gradientStop, f float64) colorful.Color {
	switch {
	case a.Alpha == 0:
		return b.Color
	case b.Alpha == 0:
		return a.Color
	}
	return a.Color.BlendLab(b.Color, f).Clamped()
}

// gradientStrip renders the gradient into a 1×n image, one sample per row.
func gradientStrip(stops []gradientStop, n int) *image.NRGBA {
	n = max(n, 1)
	img := image.NewNRGBA(image.Rect(0, 0, 1, n))
	for y := 0; y < n; y++ {
		c, a := gradientAt(stops, (float64(y)+0.5)/float64(n))
		r, g, b := c.Clamped().RGB255()
		img.SetNRGBA(0, y, color.NRGBA{R: r, G: g, B: b, A: uint8(lo.Clamp(a, 0, 1)*255 + 0.5)})
	}
	return img
}
