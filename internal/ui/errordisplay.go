package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ErrorDisplay draws an error message with a "Retry" button.
// Store one per screen that shows errors, call Draw each frame and HandleClick in Update.
type ErrorDisplay struct {
	retryRect ButtonRect
}

// Draw renders the error text centered on cx with a Retry button beneath it.
// Returns the total height used.
func (ed *ErrorDisplay) Draw(dst *ebiten.Image, errText string, cx, y, fontSize float64) float64 {
	if errText == "" {
		ed.retryRect = ButtonRect{}
		return 0
	}

	DrawTextCentered(dst, errText, cx, y, fontSize, ColorError)

	btnW := 90.0
	btnH := fontSize + 14
	btnX := cx - btnW/2
	btnY := y + fontSize + 12

	ed.retryRect = ButtonRect{X: btnX, Y: btnY, W: btnW, H: btnH}

	DrawFilledRoundRect(dst, float32(btnX), float32(btnY), float32(btnW), float32(btnH), 6, ColorSurface)
	vector.StrokeRect(dst, float32(btnX), float32(btnY), float32(btnW), float32(btnH), 1, ColorTextMuted, false)
	DrawTextCentered(dst, "Retry", btnX+btnW/2, btnY+btnH/2, FontSizeSmall, ColorTextSecondary)

	return btnY + btnH - y
}

// HandleClick checks if the retry button was clicked. Call from Update with mouse coords.
// Returns true if the click was consumed.
func (ed *ErrorDisplay) HandleClick(mx, my int, errText string) bool {
	if errText == "" {
		return false
	}
	return ed.retryRect.Contains(mx, my)
}
