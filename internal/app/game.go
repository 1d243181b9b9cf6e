package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/depeter/tvhero/internal/cache"
	"github.com/depeter/tvhero/internal/colorcache"
	"github.com/depeter/tvhero/internal/config"
	"github.com/depeter/tvhero/internal/ui"
)

// Game implements ebiten.Game and manages the overall application.
type Game struct {
	Config   *config.Config
	Cache    *cache.ImageCache
	Colors   *colorcache.Cache
	Textures *ui.TextureCache
	Screens  *ui.ScreenManager

	Width, Height int
}

// NewGame creates the Game with all dependencies.
func NewGame(cfg *config.Config, imgCache *cache.ImageCache, colors *colorcache.Cache, textures *ui.TextureCache) *Game {
	if k, ok := parseKey(cfg.Keybinds.Close); ok {
		ui.CloseKey = k
	}
	return &Game{
		Config:   cfg,
		Cache:    imgCache,
		Colors:   colors,
		Textures: textures,
		Screens:  ui.NewScreenManager(),
		Width:    cfg.UI.Width,
		Height:   cfg.UI.Height,
	}
}

func (g *Game) Update() error {
	kb := &g.Config.Keybinds

	// Alt+Enter toggles fullscreen as well as the configured key
	altEnter := inpututil.IsKeyJustPressed(ebiten.KeyEnter) && ebiten.IsKeyPressed(ebiten.KeyAlt)
	if altEnter || keyJustPressed(kb.Fullscreen) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	if keyJustPressed(kb.Debug) {
		ui.ToggleDebugOverlay()
	}

	if err := g.Screens.Update(); err != nil {
		return err
	}

	ui.UpdateInputState()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ui.ColorBackground)
	g.Screens.Draw(screen)
	ui.DrawDebugOverlay(screen, g.Screens, g.debugStats())
}

func (g *Game) debugStats() ui.DebugStats {
	var stats ui.DebugStats
	if g.Colors != nil {
		stats.ColorEntries = g.Colors.Len()
	}
	if g.Textures != nil {
		stats.Textures = g.Textures.Len()
	}
	return stats
}

// Layout tracks the window size so screens lay out against the real surface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.Width, g.Height = outsideWidth, outsideHeight
	}
	ui.SetScreenSize(g.Width, g.Height)
	return g.Width, g.Height
}
