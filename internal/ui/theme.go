package ui

import (
	"image/color"
	"time"
)

// Colors: near-black theme so the extracted artwork color carries the hero
var (
	ColorBackground    = color.RGBA{R: 0x0A, G: 0x0A, B: 0x0C, A: 0xFF}
	ColorSurface       = color.RGBA{R: 0x17, G: 0x17, B: 0x1A, A: 0xFF} // neutral-900
	ColorSurfaceHover  = color.RGBA{R: 0x26, G: 0x26, B: 0x2B, A: 0xFF}
	ColorPrimary       = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	ColorText          = color.RGBA{R: 0xF5, G: 0xF5, B: 0xF5, A: 0xFF}
	ColorTextSecondary = color.RGBA{R: 0xB3, G: 0xB3, B: 0xB3, A: 0xFF} // white/70
	ColorTextMuted     = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xFF} // white/60
	ColorFocusBorder   = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	ColorOverlay       = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xC0}
	ColorError         = color.RGBA{R: 0xE0, G: 0x40, B: 0x40, A: 0xFF}
	ColorHeader        = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xF2} // black/95
	ColorHeaderBorder  = color.RGBA{R: 0x1F, G: 0x29, B: 0x37, A: 0xFF} // gray-800
)

// ScreenWidth and ScreenHeight track the logical window size; Layout keeps
// them current.
var (
	ScreenWidth  = 1280
	ScreenHeight = 800
)

// SetScreenSize records the logical window size.
func SetScreenSize(w, h int) {
	if w > 0 && h > 0 {
		ScreenWidth, ScreenHeight = w, h
	}
}

// Layout constants
const (
	CardWidth    = 240
	CardHeight   = 300 // 4:5
	CardGap      = 24
	CardFocusPad = 6
	CardRadius   = 16

	SectionPadding = 40
	SectionTitleH  = 36
	GridTop        = 110

	HeaderHeight  = 56
	ControlSize   = 40
	ControlMargin = 16

	ContentPadX = 20
	ContentPadY = 24

	// BlurBand is the height of the blur and color band that straddles the
	// bottom edge of the hero.
	BlurBand = 400

	FontSizeTitle   = 28
	FontSizeHeading = 22
	FontSizeBody    = 16
	FontSizeSmall   = 13
	FontSizeCaption = 11

	FocusAnimSpeed = 0.15

	// GridRowHeight is the height of a single row in the card grid.
	GridRowHeight = CardHeight + CardGap

	// ScrollWheelSpeed is pixels per mouse wheel scroll unit.
	ScrollWheelSpeed = 60
	// ScrollKeyStep is pixels per arrow key press.
	ScrollKeyStep = 80
	// OverscrollLimit is how far past the top a pull can stretch.
	OverscrollLimit = 100

	// ThumbnailWidth and HeroImageWidth are the requested image renditions.
	ThumbnailWidth = 400
	HeroImageWidth = 1200
)

// DrawerDuration matches the open and close slide of the modal drawer.
const DrawerDuration = 300 * time.Millisecond

// withAlpha scales a color by a, keeping it premultiplied.
func withAlpha(c color.RGBA, a float64) color.RGBA {
	if a >= 1 {
		return c
	}
	if a <= 0 {
		return color.RGBA{}
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
