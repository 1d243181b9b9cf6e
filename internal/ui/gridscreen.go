package ui

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/depeter/tvhero/internal/cache"
	"github.com/depeter/tvhero/internal/colorcache"
	"github.com/depeter/tvhero/internal/sample"
)

const (
	gridMaxCols  = 3
	gridMaxWidth = 1152
	infoPad      = 32
)

var howItWorks = [][2]string{
	{"1. Color Extraction", "When a card image loads, the dominant color is extracted and cached"},
	{"2. Instant Transition", "On select, the cached color displays immediately as a solid background"},
	{"3. Blur Phase", "A blurred version of the image fades in with a gradient mask"},
	{"4. Ken Burns", "The full image reveals with a subtle zoom animation (1.25x to 1x)"},
	{"5. Content Reveal", "Title and content slide up with staggered timing"},
}

// GridScreen shows the sample items as a grid of cards. Loading a card's
// thumbnail also pre-warms its color so opening it starts on the right
// background.
type GridScreen struct {
	imgCache *cache.ImageCache
	colors   *colorcache.Cache
	textures *TextureCache

	items     []sample.Item
	cards     []CardItem
	grid      *FocusGrid
	cardRects []ButtonRect
	scroll    ScrollState
	started   bool

	OnItemSelected func(item sample.Item)

	mu sync.Mutex
}

func NewGridScreen(imgCache *cache.ImageCache, colors *colorcache.Cache, textures *TextureCache, items []sample.Item) *GridScreen {
	gs := &GridScreen{
		imgCache: imgCache,
		colors:   colors,
		textures: textures,
		items:    items,
		grid:     NewFocusGrid(gridColumns(ScreenWidth), len(items)),
	}
	gs.cards = lo.Map(items, func(it sample.Item, _ int) CardItem {
		return CardItem{ID: it.ID, Title: it.Title, Subtitle: it.Subtitle}
	})
	return gs
}

func (gs *GridScreen) Name() string { return "Grid" }

// Scroll exposes the grid's scroll container so an overlay can lock it.
func (gs *GridScreen) Scroll() *ScrollState { return &gs.scroll }

func (gs *GridScreen) OnEnter() {
	gs.mu.Lock()
	if gs.started {
		gs.mu.Unlock()
		return
	}
	gs.started = true
	gs.mu.Unlock()

	for i, item := range gs.items {
		gs.loadThumbnail(i, item)
	}
}

func (gs *GridScreen) OnExit() {}

func (gs *GridScreen) loadThumbnail(i int, item sample.Item) {
	url := sizedURL(item.Image, ThumbnailWidth)
	gs.imgCache.LoadAsync(url, func(img image.Image, err error) {
		if err != nil {
			return
		}
		gs.mu.Lock()
		gs.cards[i].Image = img
		gs.mu.Unlock()
		if gs.colors != nil {
			gs.colors.Prewarm(url)
		}
		logrus.WithField("item", item.ID).Debug("thumbnail ready")
	})
}

// gridColumns fits as many cards as the width allows, up to three.
func gridColumns(width int) int {
	usable := min(width, gridMaxWidth) - SectionPadding*2 + CardGap
	return lo.Clamp(usable/(CardWidth+CardGap), 1, gridMaxCols)
}

func (gs *GridScreen) gridOrigin() float64 {
	cols := gs.grid.Cols
	w := float64(cols*CardWidth + (cols-1)*CardGap)
	return (float64(ScreenWidth) - w) / 2
}

func (gs *GridScreen) Update() (*ScreenTransition, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.grid.SetCols(gridColumns(ScreenWidth))
	gs.scroll.SetMaxScroll(gs.contentHeight() - float64(ScreenHeight))
	gs.scroll.HandleMouseWheel()
	gs.scroll.Animate()

	dir, enter, _ := InputState()

	if mx, my, clicked := MouseJustClicked(); clicked {
		for i, r := range gs.cardRects {
			if r.Contains(mx, my) {
				gs.grid.Focused = i
				gs.selectFocused()
				return nil, nil
			}
		}
	}

	if dir != DirNone {
		gs.grid.Update(dir)
		gs.scroll.EnsureRowVisible(gs.grid.FocusedRow(), GridTop, float64(ScreenHeight))
	}
	if enter {
		gs.selectFocused()
	}
	return nil, nil
}

func (gs *GridScreen) selectFocused() {
	idx := gs.grid.Focused
	if idx < len(gs.items) && gs.OnItemSelected != nil {
		gs.OnItemSelected(gs.items[idx])
	}
}

func (gs *GridScreen) contentHeight() float64 {
	rows := float64(gs.grid.Rows())
	return GridTop + rows*GridRowHeight + 40 + infoPad*2 + SectionTitleH + float64(len(howItWorks))*LineHeight(FontSizeBody)*2 + 80
}

func (gs *GridScreen) Draw(dst *ebiten.Image) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	sw, sh := float64(ScreenWidth), float64(ScreenHeight)
	scrollY := gs.scroll.ScrollY
	originX := gs.gridOrigin()

	if len(gs.cardRects) != len(gs.cards) {
		gs.cardRects = make([]ButtonRect, len(gs.cards))
	}
	for i, card := range gs.cards {
		col := i % gs.grid.Cols
		row := i / gs.grid.Cols
		x := originX + float64(col)*(CardWidth+CardGap)
		y := GridTop + float64(row)*GridRowHeight - scrollY
		gs.cardRects[i] = ButtonRect{X: x, Y: y, W: CardWidth, H: CardHeight}

		if y+CardHeight < 0 || y > sh {
			continue
		}
		drawCard(dst, gs.textures, card, x, y, CardWidth, CardHeight, i == gs.grid.Focused)
	}

	// How it works
	y := GridTop + float64(gs.grid.Rows())*GridRowHeight + 40 - scrollY
	w := float64(gs.grid.Cols*CardWidth + (gs.grid.Cols-1)*CardGap)
	h := infoPad*2 + SectionTitleH + float64(len(howItWorks))*LineHeight(FontSizeBody)*2
	DrawFilledRoundRect(dst, float32(originX), float32(y), float32(w), float32(h), CardRadius, ColorSurface)
	ty := y + infoPad
	DrawBoldText(dst, "How it works", originX+infoPad, ty, FontSizeHeading, ColorText)
	ty += SectionTitleH
	for _, step := range howItWorks {
		DrawBoldText(dst, step[0], originX+infoPad, ty, FontSizeBody, ColorText)
		ty += LineHeight(FontSizeBody)
		DrawText(dst, truncateText(step[1], w-infoPad*2, FontSizeSmall), originX+infoPad, ty, FontSizeSmall, ColorTextSecondary)
		ty += LineHeight(FontSizeBody)
	}

	// Header stays on top of the scrolled cards
	vector.DrawFilledRect(dst, 0, 0, float32(sw), GridTop-30, ColorBackground, false)
	vector.DrawFilledRect(dst, 0, GridTop-31, float32(sw), 1, ColorHeaderBorder, false)
	DrawBoldText(dst, "Apple TV Hero Demo", originX, 18, FontSizeTitle, ColorText)
	DrawText(dst, "Select any card to see the parallax effect", originX, 18+LineHeight(FontSizeTitle), FontSizeSmall, ColorTextMuted)
}
