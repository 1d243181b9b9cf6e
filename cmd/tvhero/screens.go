package main

import (
	"github.com/depeter/tvhero/internal/app"
	"github.com/depeter/tvhero/internal/config"
	"github.com/depeter/tvhero/internal/sample"
	"github.com/depeter/tvhero/internal/ui"
)

// screenFactory captures the shared dependencies for creating and wiring screens.
type screenFactory struct {
	game *app.Game
	cfg  *config.Config
}

func (sf *screenFactory) newGrid() *ui.GridScreen {
	g := sf.game
	grid := ui.NewGridScreen(g.Cache, g.Colors, g.Textures, sample.All())
	grid.OnItemSelected = func(item sample.Item) {
		sf.openModal(grid, item)
	}
	return grid
}

func (sf *screenFactory) pushGrid() {
	sf.game.Screens.Replace(sf.newGrid())
}

func (sf *screenFactory) heroOptions(p ui.Presentation) ui.HeroOptions {
	return ui.HeroOptions{
		Presentation:    p,
		ColorExtraction: sf.cfg.Hero.ColorExtraction,
		ShowGradient:    sf.cfg.Hero.ShowGradient,
		Blur:            sf.cfg.Hero.Blur,
		ReducedMotion:   sf.cfg.UI.ReducedMotion,
		FixedHeight:     sf.cfg.Hero.Height,
		Aspect:          sf.cfg.AspectRatio(),
	}
}

// openModal shows item's hero in a drawer over the grid, freezing the grid's scroll.
func (sf *screenFactory) openModal(grid *ui.GridScreen, item sample.Item) {
	g := sf.game
	opts := sf.heroOptions(ui.PresentModal)
	opts.LockTarget = grid.Scroll()
	g.Screens.Push(ui.NewHeroScreen(g.Cache, g.Colors, g.Textures, item, opts))
}

// openPage shows item's hero as the whole window. Going back lands on the grid.
func (sf *screenFactory) openPage(item sample.Item) {
	g := sf.game
	opts := sf.heroOptions(ui.PresentPage)
	opts.Fallback = func() ui.Screen { return sf.newGrid() }
	g.Screens.Replace(ui.NewHeroScreen(g.Cache, g.Colors, g.Textures, item, opts))
}
