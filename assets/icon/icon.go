// Package icon draws the window icon: a TV showing a hero image.
package icon

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	frameCol   = color.RGBA{R: 0x1C, G: 0x1C, B: 0x22, A: 0xFF}
	standCol   = color.RGBA{R: 0x3A, G: 0x3A, B: 0x44, A: 0xFF}
	ridgeCol   = color.RGBA{R: 0x14, G: 0x22, B: 0x3A, A: 0xFF}
	playCol    = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xE0}
	skyTop     = colorful.Color{R: 0.98, G: 0.62, B: 0.33}
	skyBottom  = colorful.Color{R: 0.20, G: 0.26, B: 0.52}
	shadeColor = color.RGBA{A: 0x70}
)

// Generate returns 64x64 and 32x32 icon images for use with ebiten.SetWindowIcon.
func Generate() []image.Image {
	return []image.Image{
		generate(64),
		generate(32),
	}
}

func generate(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)

	// Stand first so the frame covers its top.
	fillRoundedRect(img, s*0.44, s*0.72, s*0.12, s*0.12, s*0.02, standCol)
	fillRoundedRect(img, s*0.28, s*0.82, s*0.44, s*0.07, s*0.03, standCol)

	fillRoundedRect(img, s*0.06, s*0.14, s*0.88, s*0.62, s*0.08, frameCol)
	drawScreen(img, s*0.11, s*0.19, s*0.78, s*0.52)
	return img
}

// drawScreen paints the hero: a sky gradient, a ridge line, a bottom shade
// and a play button.
func drawScreen(img *image.RGBA, x, y, w, h float64) {
	x0, y0 := int(x), int(y)
	x1, y1 := int(x+w), int(y+h)
	for py := y0; py < y1; py++ {
		t := float64(py-y0) / float64(max(y1-y0-1, 1))
		sky := skyTop.BlendLab(skyBottom, t).Clamped()
		r, g, b := sky.RGB255()
		c := color.RGBA{R: r, G: g, B: b, A: 0xFF}
		for px := x0; px < x1; px++ {
			blendPixel(img, px, py, c)
		}
	}

	// Ridge: two peaks across the lower half.
	for px := x0; px < x1; px++ {
		u := float64(px-x0) / w
		peak := 1 - 2*abs(u-0.35)
		if p2 := 0.8 - 2.2*abs(u-0.75); p2 > peak {
			peak = p2
		}
		top := y + h*(0.85-0.4*max(peak, 0))
		for py := int(top); py < y1; py++ {
			blendPixel(img, px, py, ridgeCol)
		}
	}

	fillRect(img, x0, y0+int(h*0.7), x1-x0, y1-y0-int(h*0.7), shadeColor)

	cx, cy := x+w*0.5, y+h*0.45
	r := h * 0.2
	fillTriangle(img, cx-r*0.6, cy-r, cx-r*0.6, cy+r, cx+r, cy, playCol)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func fillRect(img *image.RGBA, x0, y0, w, h int, c color.Color) {
	bounds := img.Bounds()
	for y := max(y0, bounds.Min.Y); y < y0+h && y < bounds.Max.Y; y++ {
		for x := max(x0, bounds.Min.X); x < x0+w && x < bounds.Max.X; x++ {
			blendPixel(img, x, y, c)
		}
	}
}

func fillRoundedRect(img *image.RGBA, xf, yf, wf, hf, r float64, c color.Color) {
	bounds := img.Bounds()
	for y := max(int(yf), 0); y < int(yf+hf) && y < bounds.Max.Y; y++ {
		for x := max(int(xf), 0); x < int(xf+wf) && x < bounds.Max.X; x++ {
			// Distance from the nearest corner center, zero on the straight edges.
			fx, fy := float64(x)+0.5, float64(y)+0.5
			dx := max(xf+r-fx, fx-(xf+wf-r), 0)
			dy := max(yf+r-fy, fy-(yf+hf-r), 0)
			if dx*dx+dy*dy <= r*r {
				blendPixel(img, x, y, c)
			}
		}
	}
}

// fillTriangle fills the triangle (ax,ay) (bx,by) (cx,cy) by edge tests.
func fillTriangle(img *image.RGBA, ax, ay, bx, by, cx, cy float64, c color.Color) {
	bounds := img.Bounds()
	edge := func(x0, y0, x1, y1, px, py float64) float64 {
		return (x1-x0)*(py-y0) - (y1-y0)*(px-x0)
	}
	minX, maxX := int(min(ax, bx, cx)), int(max(ax, bx, cx))+1
	minY, maxY := int(min(ay, by, cy)), int(max(ay, by, cy))+1
	for y := max(minY, 0); y <= maxY && y < bounds.Max.Y; y++ {
		for x := max(minX, 0); x <= maxX && x < bounds.Max.X; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			e0 := edge(ax, ay, bx, by, px, py)
			e1 := edge(bx, by, cx, cy, px, py)
			e2 := edge(cx, cy, ax, ay, px, py)
			if (e0 >= 0 && e1 >= 0 && e2 >= 0) || (e0 <= 0 && e1 <= 0 && e2 <= 0) {
				blendPixel(img, x, y, c)
			}
		}
	}
}

// blendPixel composites c over the existing pixel at (x, y). The result is
// always opaque.
func blendPixel(img *image.RGBA, x, y int, c color.Color) {
	r0, g0, b0, a0 := c.RGBA()
	if a0 == 0 {
		return
	}
	if a0 == 0xFFFF {
		img.Set(x, y, c)
		return
	}

	// c.RGBA() is premultiplied, so only the destination is scaled.
	existing := img.RGBAAt(x, y)
	inv := 0xFFFF - a0
	nr := r0 + uint32(existing.R)*257*inv/0xFFFF
	ng := g0 + uint32(existing.G)*257*inv/0xFFFF
	nb := b0 + uint32(existing.B)*257*inv/0xFFFF

	img.SetRGBA(x, y, color.RGBA{
		R: uint8(nr >> 8),
		G: uint8(ng >> 8),
		B: uint8(nb >> 8),
		A: 0xFF,
	})
}
