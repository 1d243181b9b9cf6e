package ui

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"

	"github.com/depeter/tvhero/internal/cache"
	"github.com/depeter/tvhero/internal/colorcache"
	"github.com/depeter/tvhero/internal/motion"
	"github.com/depeter/tvhero/internal/parallax"
	"github.com/depeter/tvhero/internal/sample"
	"github.com/depeter/tvhero/internal/scrolllock"
)

const (
	// blurStrips is how many horizontal slices approximate the blur mask.
	blurStrips = 24
	// getStartedDelay is how long the action button shows its loading state.
	getStartedDelay = 600 * time.Millisecond
	spacerHeight    = 192
)

var aboutSections = []struct {
	Title string
	Lines []string
}{
	{"About this experience", []string{
		"This is the full page view of the Apple TV style parallax hero effect. " +
			"Open it directly with tvhero --item and an item id.",
	}},
	{"Animation phases", []string{
		"• Instant color background from extraction",
		"• Blur overlay fades in (200ms)",
		"• Full image with Ken Burns (1000ms)",
		"• Content slides up (staggered)",
	}},
	{"Try it yourself", []string{
		"Scroll down to see the parallax effect as the hero image responds to scroll position. " +
			"The gradient mask creates a seamless transition to the content area.",
	}},
}

// HeroOptions configure one hero view.
type HeroOptions struct {
	Presentation    Presentation
	ColorExtraction bool
	ShowGradient    bool
	Blur            bool
	ReducedMotion   bool
	FixedHeight     int
	Aspect          parallax.AspectRatio
	Clock           motion.Clock

	// LockTarget is the scroll container under a modal hero. It is frozen
	// while the hero is open.
	LockTarget scrolllock.Scrollable
	// Fallback builds the screen a page hero goes back to when nothing is
	// below it on the stack.
	Fallback func() Screen
}

// HeroScreen is the parallax hero detail view of one sample item.
type HeroScreen struct {
	id       uuid.UUID
	log      *logrus.Entry
	item     sample.Item
	opts     HeroOptions
	clock    motion.Clock
	imgCache *cache.ImageCache
	colors   *colorcache.Cache
	textures *TextureCache

	seq     *motion.Sequencer
	tracker *colorcache.Tracker
	ctrl    *parallax.Controller
	scroll  ScrollState
	drawer  *Drawer
	lock    *scrolllock.Handle
	entered bool

	// colorSettled is set once the tracker's outcome for the current
	// generation has been handed to the sequencer.
	colorSettled bool

	button     ActionButton
	progress   int
	pressedAt  time.Time
	controlR   ButtonRect
	headerR    ButtonRect
	errDisplay ErrorDisplay
	contentH   float64

	mu       sync.Mutex
	image    image.Image
	imageErr error
}

func NewHeroScreen(imgCache *cache.ImageCache, colors *colorcache.Cache, textures *TextureCache, item sample.Item, opts HeroOptions) *HeroScreen {
	if opts.Clock == nil {
		opts.Clock = motion.SystemClock{}
	}
	id := uuid.New()
	hs := &HeroScreen{
		id:       id,
		log:      logrus.WithFields(logrus.Fields{"hero": id.String()[:8], "item": item.ID}),
		item:     item,
		opts:     opts,
		clock:    opts.Clock,
		imgCache: imgCache,
		colors:   colors,
		textures: textures,
		seq:      motion.NewSequencer(opts.Clock, motion.TimingsFor(opts.ReducedMotion), opts.ColorExtraction),
		button:   ActionButton{Label: "Get Started"},
	}
	if item.Stats != nil {
		hs.progress = item.Stats.Progress
	}
	hs.scroll.Overscroll = !opts.ReducedMotion
	hs.ctrl = parallax.NewController(parallax.NewSizer(opts.FixedHeight, opts.Aspect), nil, opts.ReducedMotion)
	hs.ctrl.Observe(&hs.scroll)
	hs.ctrl.Resize(hs.columnWidth())
	hs.updateButton()
	return hs
}

func (hs *HeroScreen) Name() string { return "Hero: " + hs.item.Title }

// IsOverlay makes the modal drawer draw over the screen below it.
func (hs *HeroScreen) IsOverlay() bool { return hs.opts.Presentation == PresentModal }

func (hs *HeroScreen) OnEnter() {
	if hs.entered {
		return
	}
	hs.entered = true
	now := hs.clock.Now()

	drawerDur := DrawerDuration
	if hs.opts.ReducedMotion || hs.opts.Presentation == PresentPage {
		drawerDur = 0
	}
	hs.drawer = NewDrawer(now, drawerDur)
	if hs.opts.Presentation == PresentModal {
		hs.lock = scrolllock.Acquire(hs.opts.LockTarget)
	}

	if hs.opts.ColorExtraction && hs.colors != nil {
		hs.tracker = hs.colors.Track(hs.heroURL())
	}
	hs.log.WithField("presentation", hs.opts.Presentation).Debug("hero opened")
	hs.loadImage(hs.seq.Generation())
}

func (hs *HeroScreen) OnExit() {
	if hs.tracker != nil {
		hs.tracker.Close()
	}
	hs.lock.Release()
	hs.log.Debug("hero closed")
}

func (hs *HeroScreen) heroURL() string {
	return sizedURL(hs.item.Image, HeroImageWidth)
}

// loadImage fetches the full-size hero image for generation gen. It must be
// called without hs.mu held; the cache may call back synchronously.
func (hs *HeroScreen) loadImage(gen uint64) {
	hs.imgCache.LoadAsync(hs.heroURL(), func(img image.Image, err error) {
		hs.mu.Lock()
		if gen != hs.seq.Generation() {
			hs.mu.Unlock()
			return
		}
		if err != nil {
			hs.imageErr = err
			hs.mu.Unlock()
			return
		}
		hs.image = img
		b := img.Bounds()
		hs.ctrl.ImageLoaded(b.Dx(), b.Dy())
		hs.mu.Unlock()
		hs.seq.ImageLoaded(gen)
	})
}

// retry replays the whole reveal with a fresh generation.
func (hs *HeroScreen) retry() {
	gen := hs.seq.Reset()
	hs.image, hs.imageErr = nil, nil
	hs.colorSettled = false
	if hs.tracker != nil {
		hs.tracker.SetURL(hs.heroURL())
	}
	hs.log.Info("retrying hero image")
	go hs.loadImage(gen)
}

// syncColor hands the tracker's outcome to the sequencer.
func (hs *HeroScreen) syncColor() colorcache.Result {
	if hs.tracker == nil {
		return colorcache.Result{IsDark: true}
	}
	st := hs.tracker.State()
	if hs.colorSettled {
		return st
	}
	gen := hs.seq.Generation()
	switch {
	case st.HasColor():
		hs.seq.ColorResolved(gen)
		hs.colorSettled = true
	case st.Err != nil:
		hs.log.WithError(st.Err).Warn("no hero color, revealing on image load")
		hs.seq.ColorFailed(gen)
		hs.colorSettled = true
	}
	return st
}

func (hs *HeroScreen) columnWidth() int {
	return min(ScreenWidth, contentMaxWidth)
}

func (hs *HeroScreen) columnX() float64 {
	return float64(ScreenWidth-hs.columnWidth()) / 2
}

func (hs *HeroScreen) updateButton() {
	hs.button.Disabled = hs.item.Stats != nil && hs.progress >= hs.item.Stats.Total
}

func (hs *HeroScreen) pressButton(now time.Time) {
	if !hs.button.Enabled() {
		return
	}
	hs.button.Loading = true
	hs.pressedAt = now
}

// advanceButton finishes a press once its loading state has run.
func (hs *HeroScreen) advanceButton(now time.Time) {
	if !hs.button.Loading || now.Sub(hs.pressedAt) < getStartedDelay {
		return
	}
	hs.button.Loading = false
	if hs.item.Stats != nil {
		hs.progress = min(hs.progress+1, hs.item.Stats.Total)
	}
	hs.updateButton()
	hs.log.WithField("progress", hs.progress).Info("get started")
}

// requestClose starts leaving the hero. It returns the transition to apply
// right away, if any.
func (hs *HeroScreen) requestClose(now time.Time) *ScreenTransition {
	if hs.opts.Presentation == PresentModal {
		hs.drawer.RequestClose(now)
		return nil
	}
	if hs.opts.Fallback != nil {
		return &ScreenTransition{Type: TransitionReplace, Screen: hs.opts.Fallback()}
	}
	return &ScreenTransition{Type: TransitionPop}
}

func (hs *HeroScreen) Update() (*ScreenTransition, error) {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	now := hs.clock.Now()
	hs.syncColor()

	if hs.drawer.Closing() {
		if hs.drawer.Done(now) {
			return &ScreenTransition{Type: TransitionPop}, nil
		}
		return nil, nil
	}

	hs.advanceButton(now)
	hs.ctrl.Resize(hs.columnWidth())
	hs.scroll.SetMaxScroll(hs.contentH - float64(ScreenHeight))
	hs.scroll.HandleMouseWheel()
	hs.scroll.Animate()
	p := hs.ctrl.Update()

	dir, enter, back := InputState()
	if back {
		return hs.requestClose(now), nil
	}

	if mx, my, clicked := MouseJustClicked(); clicked {
		switch {
		case p.ControlsInteractive && hs.controlR.Contains(mx, my):
			return hs.requestClose(now), nil
		case p.HeaderInteractive && hs.headerR.Contains(mx, my):
			return hs.requestClose(now), nil
		case hs.errDisplay.HandleClick(mx, my, hs.errorText()):
			hs.retry()
			return nil, nil
		case hs.button.HandleClick(mx, my):
			hs.pressButton(now)
			return nil, nil
		}
	}

	switch dir {
	case DirUp:
		hs.scroll.ScrollBy(-ScrollKeyStep)
	case DirDown:
		hs.scroll.ScrollBy(ScrollKeyStep)
	}
	if enter {
		hs.pressButton(now)
	}
	return nil, nil
}

func (hs *HeroScreen) errorText() string {
	if hs.imageErr == nil {
		return ""
	}
	return "Couldn't load the image"
}

func (hs *HeroScreen) Draw(dst *ebiten.Image) {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	now := hs.clock.Now()
	sw, sh := float64(ScreenWidth), float64(ScreenHeight)
	colX, colW := hs.columnX(), float64(hs.columnWidth())
	offset := hs.drawer.Offset(now)
	top := offset * sh

	// Backdrop
	if hs.opts.Presentation == PresentModal {
		vector.DrawFilledRect(dst, 0, 0, float32(sw), float32(sh), withAlpha(ColorOverlay, 1-offset), false)
	} else {
		dst.Fill(ColorBackground)
	}
	if top >= sh {
		return
	}
	view := dst.SubImage(image.Rect(int(colX), int(top), int(colX+colW), int(sh))).(*ebiten.Image)
	vector.DrawFilledRect(view, float32(colX), float32(top), float32(colW), float32(sh-top), ColorBackground, false)

	st := hs.syncColor()
	f := hs.seq.Frame()
	p := hs.ctrl.Params()
	h := p.Height
	y0 := top - hs.scroll.ScrollY

	hs.drawHero(view, st, f, p, colX, y0, colW, h)

	y := y0 + h
	y += hs.drawExtended(view, st, f, colX, y, colW)
	y += hs.drawChildren(view, colX, y, colW)
	hs.contentH = y + spacerHeight - y0

	hs.drawControls(view, p, colX, top, colW)
}

func (hs *HeroScreen) imageAlpha(f motion.Frame, p parallax.Params) float64 {
	if !f.Image.Visible || hs.image == nil {
		return 0
	}
	return f.Image.Opacity * p.HeroOpacity
}

func (hs *HeroScreen) heroCover(f motion.Frame, p parallax.Params, alpha float64) CoverOptions {
	scale := f.Image.Scale * p.HeroScale
	if hs.opts.Blur {
		scale *= 1.1
	}
	return CoverOptions{
		AlignTop: true,
		Scale:    scale,
		OffsetY:  p.HeroTranslateY,
		Alpha:    float32(alpha),
		Filter:   ebiten.FilterLinear,
	}
}

// drawHero draws the color fill, the image and the blur band.
func (hs *HeroScreen) drawHero(dst *ebiten.Image, st colorcache.Result, f motion.Frame, p parallax.Params, x, y, w, h float64) {
	if st.HasColor() {
		vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), st.RGB, false)
	}

	alpha := hs.imageAlpha(f, p)
	if alpha > 0 {
		tex := hs.textures.Texture(hs.image)
		if hs.opts.Blur {
			tex = hs.textures.Softened(hs.image)
		}
		DrawImageCover(dst, tex, x, y, w, h, hs.heroCover(f, p, alpha))
		if hs.opts.ShowGradient && !hs.opts.ColorExtraction {
			DrawStrip(dst, hs.textures.Gradient("bottom-shade", bottomShadeStops), x, y, w, h, float32(alpha))
		}
	}

	if err := hs.errorText(); err != "" {
		hs.errDisplay.Draw(dst, err, x+w/2, y+h/2-FontSizeBody, FontSizeBody)
	}

	if !hs.opts.ColorExtraction || !f.BlurReady {
		return
	}

	// The band straddles the hero's bottom edge. Only its upper half has
	// image behind it; the extended content covers the rest.
	bandTop := y + h - BlurBand/2
	blurAlpha := f.Blur.Opacity
	if alpha > 0 {
		blurred := hs.textures.Blurred(hs.image)
		stripH := float64(BlurBand) / blurStrips
		for i := 0; i < blurStrips/2; i++ {
			sy := bandTop + float64(i)*stripH
			_, mask := gradientAt(blurMaskStops, (float64(i)+0.5)/blurStrips)
			if mask <= 0 {
				continue
			}
			clip := image.Rect(int(x), int(sy), int(x+w), int(sy+stripH+1)).Intersect(dst.Bounds())
			if clip.Empty() {
				continue
			}
			strip := dst.SubImage(clip).(*ebiten.Image)
			DrawImageCover(strip, blurred, x, y, w, h, hs.heroCover(f, p, alpha*mask*blurAlpha))
		}
	}
	if st.HasColor() {
		band := hs.textures.Gradient("band-"+st.Color, colorBandStops(toColorful(st.RGB)))
		DrawStrip(dst, band, x, bandTop, w, BlurBand, float32(blurAlpha))
	}
}

func toColorful(c color.RGBA) colorful.Color {
	cc, _ := colorful.MakeColor(c)
	return cc
}

func reveal(l motion.Layer, within motion.Layer) layerStyle {
	if !l.Visible {
		return layerStyle{offsetY: l.OffsetY}
	}
	a := l.Opacity
	if within.Visible {
		a *= within.Opacity
	} else {
		a = 0
	}
	return layerStyle{alpha: a, offsetY: l.OffsetY + within.OffsetY}
}

// drawExtended draws the colored block under the hero with the title, the
// action button and the description. It returns the block height.
func (hs *HeroScreen) drawExtended(dst *ebiten.Image, st colorcache.Result, f motion.Frame, x, y, w float64) float64 {
	innerW := w - ContentPadX*2
	cx := x + w/2

	titleFace := GetBoldFace(heroTitleSize)
	titleLines := min(len(WrapLines(hs.item.Title, titleFace, innerW)), heroTitleLines)
	titleH := float64(titleLines) * LineHeight(heroTitleSize)
	descH := float64(len(WrapLines(hs.item.Subtitle, GetFace(heroDescSize), min(innerW, heroDescMaxW)))) * LineHeight(heroDescSize)
	height := titleH - heroTitleRaise + heroContentGap + heroButtonH + heroContentGap + descH + ContentPadY
	height = max(height, ContentPadY*2)

	bg := ColorBackground
	if st.HasColor() {
		bg = st.RGB
	}
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(height), bg, false)
	DrawStrip(dst, hs.textures.Gradient(fmt.Sprintf("content-shade-%d", int(height)), contentShadeStops(height)), x, y, w, height, 1)

	cy := y - heroTitleRaise
	drawHeroTitle(dst, hs.item.Title, cx, cy, innerW, reveal(f.Title, f.Content))
	cy += titleH + heroContentGap

	btn := reveal(f.Button, f.Content)
	hs.button.Draw(dst, x+ContentPadX, cy+btn.offsetY, innerW, true, btn.alpha)
	cy += heroButtonH + heroContentGap

	drawHeroDescription(dst, hs.item.Subtitle, cx, cy, innerW, reveal(f.Description, f.Content))
	return height
}

// drawChildren draws the regular page content below the extended block and
// returns its height.
func (hs *HeroScreen) drawChildren(dst *ebiten.Image, x, y, w float64) float64 {
	start := y
	innerW := w - ContentPadX*2
	lx := x + ContentPadX
	y += ContentPadY

	DrawBoldText(dst, hs.item.Subtitle, lx, y, 18, ColorText)
	y += LineHeight(18) + 12
	y += DrawTextWrapped(dst, hs.item.Description, lx, y, innerW, FontSizeBody, withAlpha(ColorText, 0.7))

	if s := hs.item.Stats; s != nil {
		y += 24
		const boxPad = 16.0
		boxH := boxPad*2 + LineHeight(FontSizeBody) + 12 + progressBarH
		DrawFilledRoundRect(dst, float32(lx), float32(y), float32(innerW), float32(boxH), 12, color.RGBA{R: 0x0D, G: 0x0D, B: 0x0D, A: 0x0D})
		DrawText(dst, "Progress", lx+boxPad, y+boxPad, FontSizeSmall, ColorTextMuted)
		count := fmt.Sprintf("%d / %d", hs.progress, s.Total)
		cw, _ := MeasureBoldText(count, FontSizeBody)
		DrawBoldText(dst, count, lx+innerW-boxPad-cw, y+boxPad, FontSizeBody, ColorText)
		DrawProgressBar(dst, lx+boxPad, y+boxPad+LineHeight(FontSizeBody)+12, innerW-boxPad*2, s.Total, hs.progress, 1)
		y += boxH
	}

	y += 32
	for _, sec := range aboutSections {
		DrawBoldText(dst, sec.Title, lx, y, FontSizeBody, ColorText)
		y += LineHeight(FontSizeBody) + 8
		for _, line := range sec.Lines {
			y += DrawTextWrapped(dst, line, lx, y, innerW, FontSizeSmall, ColorTextMuted)
		}
		y += 24
	}
	return y - start
}

// drawControls draws the fixed close or back button and the sticky header.
func (hs *HeroScreen) drawControls(dst *ebiten.Image, p parallax.Params, x, top, w float64) {
	icon := drawCloseIcon
	bg := color.RGBA{A: 0x4D}
	if hs.opts.Presentation == PresentPage {
		icon = drawBackIcon
		bg = color.RGBA{A: 0x80}
	}

	hs.controlR = drawControlButton(dst, x+ControlMargin, top+12, bg, false, p.ControlsOpacity, icon)
	if !p.ControlsInteractive {
		hs.controlR = ButtonRect{}
	}

	hs.headerR = ButtonRect{}
	if p.HeaderOpacity <= 0 {
		return
	}
	a := p.HeaderOpacity
	vector.DrawFilledRect(dst, float32(x), float32(top), float32(w), HeaderHeight, withAlpha(ColorHeader, a), false)
	vector.DrawFilledRect(dst, float32(x), float32(top+HeaderHeight-1), float32(w), 1, withAlpha(ColorHeaderBorder, a), false)
	DrawStrip(dst, hs.textures.Gradient("header-fade", headerFadeStops), x, top+HeaderHeight, w, 12, float32(a))

	r := drawControlButton(dst, x+ControlMargin, top+(HeaderHeight-ControlSize)/2, color.RGBA{}, false, a, icon)
	if p.HeaderInteractive {
		hs.headerR = r
	}

	maxW := w - (ControlMargin+ControlSize)*2
	title := truncateText(hs.item.Title, maxW, FontSizeSmall)
	tw, _ := MeasureBoldText(title, FontSizeSmall)
	DrawBoldText(dst, title, x+w/2-tw/2, top+10, FontSizeSmall, withAlpha(ColorText, a))
	if hs.item.Subtitle != "" {
		sub := truncateText(hs.item.Subtitle, maxW, FontSizeCaption)
		sw, _ := MeasureText(sub, FontSizeCaption)
		DrawText(dst, sub, x+w/2-sw/2, top+12+LineHeight(FontSizeSmall), FontSizeCaption, withAlpha(ColorTextMuted, a))
	}
}

func aspectLabel(a parallax.AspectRatio) string {
	if a == parallax.AspectFixed {
		return "fixed"
	}
	return string(a)
}

// DebugLines reports the reveal schedule and scroll state.
func (hs *HeroScreen) DebugLines() []string {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	f := hs.seq.Frame()
	p := hs.ctrl.Params()
	lines := []string{
		fmt.Sprintf("hero %s  %s  gen %d", hs.id.String()[:8], hs.opts.Presentation, hs.seq.Generation()),
		fmt.Sprintf("color %v  blur %v  image %v  extraction %v  reduced %v",
			f.HasColor, f.BlurReady, f.ImageReady, hs.seq.ExtractionEnabled(), hs.seq.Timings().ReducedMotion),
	}
	for _, ph := range hs.seq.Phases() {
		state := "pending"
		switch {
		case ph.Completed:
			state = "done"
		case ph.Scheduled:
			state = "scheduled"
		}
		lines = append(lines, fmt.Sprintf("  %-12s %6dms  +%5dms  %s",
			ph.Name, ph.Start.Milliseconds(), ph.Duration.Milliseconds(), state))
	}
	lines = append(lines,
		fmt.Sprintf("scroll %.0f  H %.0f (%s)  ty %.1f  scale %.3f  opacity %.2f",
			p.Offset, p.Height, aspectLabel(hs.ctrl.Aspect()), p.HeroTranslateY, p.HeroScale, p.HeroOpacity),
		fmt.Sprintf("controls %.2f  header %.2f  header interactive %v",
			p.ControlsOpacity, p.HeaderOpacity, p.HeaderInteractive),
	)
	if hs.tracker != nil {
		st := hs.tracker.State()
		lines = append(lines, fmt.Sprintf("color %q dark %v loading %v", st.Color, st.IsDark, st.IsLoading))
	}
	return lines
}
