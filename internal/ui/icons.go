package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var whitePixel *ebiten.Image

// solidSource returns a 1×1 white image for DrawTriangles.
func solidSource() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixel
}

// fillTriangle draws a solid triangle.
func fillTriangle(dst *ebiten.Image, x0, y0, x1, y1, x2, y2 float32, clr color.Color) {
	r, g, b, a := clr.RGBA()
	cr, cg, cb, ca := float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff, float32(a)/0xffff
	vertex := func(x, y float32) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: x, DstY: y,
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}
	vs := []ebiten.Vertex{vertex(x0, y0), vertex(x1, y1), vertex(x2, y2)}
	dst.DrawTriangles(vs, []uint16{0, 1, 2}, solidSource(), &ebiten.DrawTrianglesOptions{})
}

// drawPlayIcon draws a right-pointing play triangle centered at (cx, cy).
func drawPlayIcon(dst *ebiten.Image, cx, cy, r float32, clr color.Color) {
	fillTriangle(dst, cx-r*0.7, cy-r, cx-r*0.7, cy+r, cx+r, cy, clr)
}

// drawCloseIcon draws an X centered at (cx, cy).
func drawCloseIcon(dst *ebiten.Image, cx, cy, r float32, clr color.Color) {
	vector.StrokeLine(dst, cx-r, cy-r, cx+r, cy+r, 2, clr, true)
	vector.StrokeLine(dst, cx+r, cy-r, cx-r, cy+r, 2, clr, true)
}

// drawBackIcon draws a left arrow centered at (cx, cy).
func drawBackIcon(dst *ebiten.Image, cx, cy, r float32, clr color.Color) {
	vector.StrokeLine(dst, cx-r, cy, cx+r, cy, 2, clr, true)
	vector.StrokeLine(dst, cx-r, cy, cx-r*0.2, cy-r*0.8, 2, clr, true)
	vector.StrokeLine(dst, cx-r, cy, cx-r*0.2, cy+r*0.8, 2, clr, true)
}

// drawControlButton draws a round translucent button with an icon and
// returns its hit area.
func drawControlButton(dst *ebiten.Image, x, y float64, bg color.RGBA, focused bool, alpha float64,
	icon func(*ebiten.Image, float32, float32, float32, color.Color)) ButtonRect {
	if alpha <= 0 {
		return ButtonRect{}
	}
	r := float32(ControlSize / 2)
	cx, cy := float32(x)+r, float32(y)+r
	vector.DrawFilledCircle(dst, cx, cy, r, withAlpha(bg, alpha), true)
	if focused {
		vector.StrokeCircle(dst, cx, cy, r+2, 2, withAlpha(ColorFocusBorder, alpha), true)
	}
	icon(dst, cx, cy, 7, withAlpha(ColorText, alpha))
	return ButtonRect{X: x, Y: y, W: ControlSize, H: ControlSize}
}
