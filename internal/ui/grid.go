package ui

import (
	"image"
	"image/color"
	"math"
	"net/url"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// CardItem is a single card in the sample grid.
type CardItem struct {
	ID       string
	Title    string
	Subtitle string
	Image    image.Image
}

// imageQuality is the q parameter sent with every sized rendition.
const imageQuality = 75

// renditionParams pin a rendition to a fixed box. They are dropped so every
// width scales the same uncropped artwork.
var renditionParams = []string{"h", "fit"}

// sizedURL asks the image origin for a rendition width pixels wide. The
// color cache strips w and q, so every rendition shares one color and one
// natural aspect ratio.
func sizedURL(raw string, width int) string {
	u, err := url.Parse(raw)
	if err != nil || raw == "" {
		return raw
	}
	q := u.Query()
	for _, p := range renditionParams {
		q.Del(p)
	}
	q.Set("w", strconv.Itoa(width))
	q.Set("q", strconv.Itoa(imageQuality))
	u.RawQuery = q.Encode()
	return u.String()
}

// CoverOptions controls DrawImageCover.
type CoverOptions struct {
	// AlignTop anchors the top edge instead of centering vertically.
	AlignTop bool
	// Scale zooms around the center of the target rect; 0 means 1.
	Scale float64
	// OffsetY shifts the image down inside the clip.
	OffsetY float64
	Alpha   float32
	Filter  ebiten.Filter
}

// coverFit returns the scale and offset that make a sw×sh image cover a w×h
// box, relative to the box origin.
func coverFit(sw, sh int, w, h float64, alignTop bool) (scale, ox, oy float64) {
	if sw <= 0 || sh <= 0 {
		return 1, 0, 0
	}
	scale = math.Max(w/float64(sw), h/float64(sh))
	ox = (w - float64(sw)*scale) / 2
	if !alignTop {
		oy = (h - float64(sh)*scale) / 2
	}
	return scale, ox, oy
}

// DrawImageCover draws img to fill the rect, cropping whatever overflows.
func DrawImageCover(dst *ebiten.Image, img *ebiten.Image, x, y, w, h float64, o CoverOptions) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	clip := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	clip = clip.Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	sub := dst.SubImage(clip).(*ebiten.Image)

	b := img.Bounds()
	scale, ox, oy := coverFit(b.Dx(), b.Dy(), w, h, o.AlignTop)

	op := &ebiten.DrawImageOptions{}
	op.Filter = o.Filter
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(ox, oy+o.OffsetY)
	if o.Scale > 0 && o.Scale != 1 {
		op.GeoM.Translate(-w/2, -h/2)
		op.GeoM.Scale(o.Scale, o.Scale)
		op.GeoM.Translate(w/2, h/2)
	}
	op.GeoM.Translate(x, y)
	if o.Alpha > 0 && o.Alpha < 1 {
		op.ColorScale.ScaleAlpha(o.Alpha)
	}
	sub.DrawImage(img, op)
}

// DrawStrip stretches a 1-pixel wide gradient strip over the rect.
func DrawStrip(dst, strip *ebiten.Image, x, y, w, h float64, alpha float32) {
	if strip == nil || w <= 0 || h <= 0 || alpha <= 0 {
		return
	}
	b := strip.Bounds()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(alpha)
	dst.DrawImage(strip, op)
}

// cornerInsets returns, for each of the first r rows of a rounded rect, how
// far the edge is pulled in from the side.
func cornerInsets(radius float64) []float64 {
	n := int(math.Ceil(radius))
	insets := make([]float64, n)
	for i := range insets {
		dy := radius - (float64(i) + 0.5)
		insets[i] = radius - math.Sqrt(math.Max(radius*radius-dy*dy, 0))
	}
	return insets
}

// DrawFilledRoundRect draws a filled rectangle with rounded corners. Rows
// never overlap, so translucent colors blend evenly.
func DrawFilledRoundRect(dst *ebiten.Image, x, y, w, h, radius float32, clr color.Color) {
	r := min(radius, w/2, h/2)
	if r < 1 {
		vector.DrawFilledRect(dst, x, y, w, h, clr, false)
		return
	}
	insets := cornerInsets(float64(r))
	n := float32(len(insets))
	for i, in := range insets {
		inset := float32(in)
		fi := float32(i)
		vector.DrawFilledRect(dst, x+inset, y+fi, w-2*inset, 1, clr, true)
		vector.DrawFilledRect(dst, x+inset, y+h-fi-1, w-2*inset, 1, clr, true)
	}
	vector.DrawFilledRect(dst, x, y+n, w, h-2*n, clr, false)
}

// maskCorners paints the outside of a rounded rect's corners with bg, which
// rounds anything already drawn on a solid background.
func maskCorners(dst *ebiten.Image, x, y, w, h, radius float32, bg color.Color) {
	r := min(radius, w/2, h/2)
	if r < 1 {
		return
	}
	for i, in := range cornerInsets(float64(r)) {
		inset := float32(in)
		if inset <= 0 {
			continue
		}
		fi := float32(i)
		for _, row := range []float32{y + fi, y + h - fi - 1} {
			vector.DrawFilledRect(dst, x, row, inset, 1, bg, false)
			vector.DrawFilledRect(dst, x+w-inset, row, inset, 1, bg, false)
		}
	}
}

// drawCard draws one sample card: artwork, shade and caption.
func drawCard(dst *ebiten.Image, textures *TextureCache, item CardItem, x, y, w, h float64, focused bool) {
	fx, fy, fw, fh := float32(x), float32(y), float32(w), float32(h)
	if focused {
		DrawFilledRoundRect(dst, fx-CardFocusPad, fy-CardFocusPad,
			fw+CardFocusPad*2, fh+CardFocusPad*2, CardRadius+CardFocusPad, ColorFocusBorder)
	}

	DrawFilledRoundRect(dst, fx, fy, fw, fh, CardRadius, ColorSurface)
	if item.Image != nil {
		DrawImageCover(dst, textures.Texture(item.Image), x, y, w, h, CoverOptions{Filter: ebiten.FilterLinear})
	}
	DrawStrip(dst, textures.Gradient("card-shade", cardShadeStops), x, y, w, h, 1)

	bg := ColorBackground
	if focused {
		bg = ColorFocusBorder
	}
	maskCorners(dst, fx, fy, fw, fh, CardRadius, bg)

	const pad = 16.0
	title := truncateText(item.Title, w-pad*2, FontSizeHeading)
	sub := truncateText(item.Subtitle, w-pad*2, FontSizeSmall)
	DrawBoldText(dst, title, x+pad, y+h-pad-LineHeight(FontSizeSmall)-LineHeight(FontSizeHeading), FontSizeHeading, ColorText)
	DrawText(dst, sub, x+pad, y+h-pad-LineHeight(FontSizeSmall), FontSizeSmall, ColorTextSecondary)
}

func truncateText(s string, maxWidth float64, fontSize float64) string {
	w, _ := MeasureText(s, fontSize)
	if w <= maxWidth {
		return s
	}
	runes := []rune(s)
	for i := len(runes) - 1; i > 0; i-- {
		candidate := string(runes[:i]) + "…"
		w, _ = MeasureText(candidate, fontSize)
		if w <= maxWidth {
			return candidate
		}
	}
	return "…"
}
