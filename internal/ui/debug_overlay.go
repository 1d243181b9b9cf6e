package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var debugOverlayVisible bool

// ToggleDebugOverlay flips the debug overlay.
func ToggleDebugOverlay() {
	debugOverlayVisible = !debugOverlayVisible
}

func DebugOverlayVisible() bool {
	return debugOverlayVisible
}

// DebugStats are the app-wide numbers shown in the overlay.
type DebugStats struct {
	ColorEntries int
	Textures     int
}

// debugLines collects what the overlay shows for the current stack.
func debugLines(sm *ScreenManager, stats DebugStats) []string {
	lines := []string{
		fmt.Sprintf("Debug  %.0f fps", ebiten.ActualFPS()),
		fmt.Sprintf("stack %d  colors cached %d  textures %d", sm.StackSize(), stats.ColorEntries, stats.Textures),
	}
	cur := sm.Current()
	if cur == nil {
		return lines
	}
	lines = append(lines, "--- "+cur.Name()+" ---")
	if d, ok := cur.(Debuggable); ok {
		lines = append(lines, d.DebugLines()...)
	}
	return lines
}

// DrawDebugOverlay draws the debug overlay if visible.
func DrawDebugOverlay(screen *ebiten.Image, sm *ScreenManager, stats DebugStats) {
	if !debugOverlayVisible {
		return
	}

	const (
		padX    = 16.0
		padY    = 12.0
		lineH   = 18.0
		marginR = 20.0
		marginT = 20.0
	)

	lines := debugLines(sm, stats)
	panelH := float64(len(lines))*lineH + padY*2
	panelW := 0.0
	for _, l := range lines {
		w, _ := MeasureText(l, FontSizeSmall)
		panelW = max(panelW, w)
	}
	panelW += padX * 2
	px := float64(ScreenWidth) - panelW - marginR
	py := marginT

	vector.DrawFilledRect(screen, float32(px), float32(py), float32(panelW), float32(panelH), ColorOverlay, false)

	x := px + padX
	y := py + padY
	for i, l := range lines {
		clr := ColorText
		if i == 0 {
			clr = ColorPrimary
		}
		DrawText(screen, l, x, y, FontSizeSmall, clr)
		y += lineH
	}
}
