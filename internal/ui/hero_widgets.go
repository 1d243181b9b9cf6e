package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/samber/lo"
)

// Hero content sizes.
const (
	heroTitleSize   = 24
	heroTitleLines  = 2
	heroDescSize    = FontSizeSmall
	heroDescMaxW    = 320
	heroButtonH     = 48
	heroButtonR     = 8
	heroContentGap  = 16
	progressBarH    = 4
	progressGap     = 4
	heroTitleRaise  = 32 // title rides up onto the blur edge
	contentMaxWidth = 768
)

type ButtonVariant int

const (
	ButtonPrimary ButtonVariant = iota
	ButtonSecondary
)

// ActionButton is the full-width call to action under the hero title.
type ActionButton struct {
	Label    string
	Variant  ButtonVariant
	Loading  bool
	Disabled bool

	rect ButtonRect
}

// Enabled reports whether the button accepts presses.
func (b *ActionButton) Enabled() bool {
	return !b.Loading && !b.Disabled
}

// HandleClick reports whether an enabled button was hit.
func (b *ActionButton) HandleClick(mx, my int) bool {
	return b.Enabled() && b.rect.Contains(mx, my)
}

// Draw renders the button across w and records its hit area. alpha is the
// reveal opacity.
func (b *ActionButton) Draw(dst *ebiten.Image, x, y, w float64, focused bool, alpha float64) {
	if alpha <= 0 {
		b.rect = ButtonRect{}
		return
	}
	b.rect = ButtonRect{X: x, Y: y, W: w, H: heroButtonH}
	if !b.Enabled() {
		alpha *= 0.5
	}

	fx, fy, fw := float32(x), float32(y), float32(w)
	var label color.RGBA
	switch b.Variant {
	case ButtonSecondary:
		if focused {
			DrawFilledRoundRect(dst, fx, fy, fw, heroButtonH, heroButtonR, withAlpha(color.RGBA{R: 0x1A, G: 0x1A, B: 0x1A, A: 0x1A}, alpha))
		}
		vector.StrokeRect(dst, fx, fy, fw, heroButtonH, 1, withAlpha(color.RGBA{R: 0x4D, G: 0x4D, B: 0x4D, A: 0x4D}, alpha), true)
		label = ColorText
	default:
		fill := ColorPrimary
		if focused {
			fill = color.RGBA{R: 0xE6, G: 0xE6, B: 0xE6, A: 0xFF}
		}
		DrawFilledRoundRect(dst, fx, fy, fw, heroButtonH, heroButtonR, withAlpha(fill, alpha))
		label = color.RGBA{A: 0xFF}
	}

	caption := b.Label
	if b.Loading {
		caption = "Loading..."
	}
	tw, _ := MeasureBoldText(caption, FontSizeBody)
	cx := x + w/2
	if !b.Loading {
		// play glyph before the label
		drawPlayIcon(dst, float32(cx-tw/2-10), float32(y+heroButtonH/2), 6, withAlpha(label, alpha))
		cx += 10
	}
	tx := cx - tw/2
	DrawBoldText(dst, caption, tx, y+heroButtonH/2-LineHeight(FontSizeBody)/2+2, FontSizeBody, withAlpha(label, alpha))
}

// segment is one cell of the segmented progress bar.
type segment struct {
	X, W float64
	Done bool
}

// progressSegments lays out total equal segments across width, the first
// completed of them filled.
func progressSegments(total, completed int, width float64) []segment {
	if total <= 0 || width <= 0 {
		return nil
	}
	completed = lo.Clamp(completed, 0, total)
	w := (width - float64(total-1)*progressGap) / float64(total)
	segs := make([]segment, total)
	for i := range segs {
		segs[i] = segment{
			X:    float64(i) * (w + progressGap),
			W:    w,
			Done: i < completed,
		}
	}
	return segs
}

// DrawProgressBar draws a segmented progress bar. Nothing is drawn when
// total is not positive.
func DrawProgressBar(dst *ebiten.Image, x, y, width float64, total, completed int, alpha float64) {
	for _, s := range progressSegments(total, completed, width) {
		clr := withAlpha(ColorPrimary, alpha)
		if !s.Done {
			clr = withAlpha(ColorPrimary, alpha*0.3)
		}
		DrawFilledRoundRect(dst, float32(x+s.X), float32(y), float32(s.W), progressBarH, progressBarH/2, clr)
	}
}

// clampLines keeps at most n lines, ellipsizing the last one kept.
func clampLines(lines []string, n int, maxWidth, size float64) []string {
	if len(lines) <= n {
		return lines
	}
	out := append([]string(nil), lines[:n]...)
	out[n-1] = truncateText(out[n-1]+" "+lines[n], maxWidth, size)
	return out
}

// drawHeroTitle draws the centered, bold, two-line-clamped title and returns
// the height used.
func drawHeroTitle(dst *ebiten.Image, title string, cx, y, maxWidth float64, layer layerStyle) float64 {
	face := GetBoldFace(heroTitleSize)
	lines := clampLines(WrapLines(title, face, maxWidth), heroTitleLines, maxWidth, heroTitleSize)
	lh := LineHeight(heroTitleSize)
	if layer.alpha > 0 {
		clr := withAlpha(ColorText, layer.alpha)
		for i, line := range lines {
			w, _ := text.Measure(line, face, 0)
			drawWithFace(dst, line, face, cx-w/2, y+layer.offsetY+float64(i)*lh, clr)
		}
	}
	return float64(len(lines)) * lh
}

// drawHeroDescription draws the muted description and returns the height used.
func drawHeroDescription(dst *ebiten.Image, desc string, cx, y, maxWidth float64, layer layerStyle) float64 {
	if desc == "" {
		return 0
	}
	maxWidth = min(maxWidth, heroDescMaxW)
	face := GetFace(heroDescSize)
	if layer.alpha <= 0 {
		return float64(len(WrapLines(desc, face, maxWidth))) * LineHeight(heroDescSize)
	}
	return DrawTextWrappedCentered(dst, desc, cx, y+layer.offsetY, maxWidth, face, withAlpha(ColorTextMuted, layer.alpha))
}

// layerStyle is the reveal state of one element: opacity and slide.
type layerStyle struct {
	alpha   float64
	offsetY float64
}
