package ui

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depeter/tvhero/internal/cache"
	"github.com/depeter/tvhero/internal/colorcache"
	"github.com/depeter/tvhero/internal/motion"
	"github.com/depeter/tvhero/internal/palette"
	"github.com/depeter/tvhero/internal/sample"
)

type heroFixture struct {
	clock  *motion.ManualClock
	images *cache.ImageCache
	colors *colorcache.Cache
	item   sample.Item
}

func newHeroFixture(t *testing.T, colorOpts ...colorcache.Option) *heroFixture {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(40, 50, color.RGBA{R: 180, G: 40, B: 40, A: 255})))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)

	images, err := cache.NewImageCache("/cache", cache.WithFs(afero.NewMemMapFs()))
	require.NoError(t, err)
	colors, err := colorcache.New(images, 100, colorOpts...)
	require.NoError(t, err)
	t.Cleanup(colors.Close)

	return &heroFixture{
		clock:  motion.NewManualClock(time.Unix(5000, 0)),
		images: images,
		colors: colors,
		item: sample.Item{
			ID:       "test",
			Title:    "Test Item",
			Subtitle: "Subtitle",
			Image:    srv.URL + "/hero.png",
			Stats:    &sample.Stats{Progress: 1, Total: 3},
		},
	}
}

func (fx *heroFixture) hero(opts HeroOptions) *HeroScreen {
	opts.Clock = fx.clock
	return NewHeroScreen(fx.images, fx.colors, nil, fx.item, opts)
}

func TestHeroScreen_CachedColorRevealSchedule(t *testing.T) {
	fx := newHeroFixture(t)
	_, err := fx.colors.Resolve(context.Background(), sizedURL(fx.item.Image, ThumbnailWidth))
	require.NoError(t, err)

	grid := &ScrollState{MaxScroll: 1000}
	grid.SetScrollPosition(240)

	start := fx.clock.Now()
	hs := fx.hero(HeroOptions{Presentation: PresentModal, ColorExtraction: true, LockTarget: grid})
	hs.OnEnter()
	assert.True(t, grid.Locked)

	st := hs.syncColor()
	assert.True(t, st.HasColor(), "a pre-warmed color is there on the first frame")
	assert.True(t, hs.seq.HasColor())

	require.Eventually(t, hs.seq.IsImageReady, 2*time.Second, 5*time.Millisecond)
	reveal, ok := hs.seq.RevealAt()
	require.True(t, ok)
	assert.Equal(t, 1200*time.Millisecond, reveal.Sub(start))

	grid.SetScrollPosition(0)
	hs.OnExit()
	assert.False(t, grid.Locked)
	assert.Equal(t, 240.0, grid.ScrollPosition())
	hs.OnExit()
}

func TestHeroScreen_ColorFailureStillReveals(t *testing.T) {
	fx := newHeroFixture(t, colorcache.WithExtractor(func(image.Image) (palette.CachedColor, error) {
		return palette.CachedColor{}, palette.ErrExtractionUnavailable
	}))

	hs := fx.hero(HeroOptions{Presentation: PresentPage, ColorExtraction: true})
	hs.OnEnter()
	defer hs.OnExit()

	require.Eventually(t, func() bool {
		hs.syncColor()
		return hs.colorSettled && hs.seq.IsImageReady()
	}, 2*time.Second, 5*time.Millisecond)

	assert.False(t, hs.seq.HasColor())
	_, ok := hs.seq.RevealAt()
	assert.True(t, ok, "the image is not held back by a missing color")
}

func TestHeroScreen_ExtractionDisabled(t *testing.T) {
	fx := newHeroFixture(t)
	hs := fx.hero(HeroOptions{Presentation: PresentPage})
	hs.OnEnter()
	defer hs.OnExit()

	assert.Nil(t, hs.tracker)
	st := hs.syncColor()
	assert.False(t, st.HasColor())
	assert.True(t, st.IsDark)
	assert.True(t, hs.seq.Frame().Content.Visible)
}

func TestHeroScreen_RequestClose(t *testing.T) {
	fx := newHeroFixture(t)

	page := fx.hero(HeroOptions{Presentation: PresentPage})
	tr := page.requestClose(fx.clock.Now())
	require.NotNil(t, tr)
	assert.Equal(t, TransitionPop, tr.Type)

	fallback := &fakeScreen{name: "grid"}
	direct := fx.hero(HeroOptions{Presentation: PresentPage, Fallback: func() Screen { return fallback }})
	tr = direct.requestClose(fx.clock.Now())
	require.NotNil(t, tr)
	assert.Equal(t, TransitionReplace, tr.Type)
	assert.Same(t, fallback, tr.Screen)

	modal := fx.hero(HeroOptions{Presentation: PresentModal})
	modal.OnEnter()
	defer modal.OnExit()
	assert.Nil(t, modal.requestClose(fx.clock.Now()), "a modal waits for its drawer")
	assert.True(t, modal.drawer.Closing())
	assert.True(t, modal.IsOverlay())
	assert.False(t, page.IsOverlay())
}

func TestHeroScreen_GetStarted(t *testing.T) {
	fx := newHeroFixture(t)
	hs := fx.hero(HeroOptions{Presentation: PresentPage})

	for want := 2; want <= 3; want++ {
		hs.pressButton(fx.clock.Now())
		assert.True(t, hs.button.Loading)
		hs.pressButton(fx.clock.Now())

		fx.clock.Advance(getStartedDelay / 2)
		hs.advanceButton(fx.clock.Now())
		assert.True(t, hs.button.Loading)

		fx.clock.Advance(getStartedDelay / 2)
		hs.advanceButton(fx.clock.Now())
		assert.False(t, hs.button.Loading)
		assert.Equal(t, want, hs.progress)
	}

	assert.True(t, hs.button.Disabled, "complete items cannot be started again")
	hs.pressButton(fx.clock.Now())
	assert.False(t, hs.button.Loading)
}

func TestHeroScreen_LoadErrorAndRetry(t *testing.T) {
	fx := newHeroFixture(t)
	fx.item.Image = "http://127.0.0.1:0/missing.png"
	hs := fx.hero(HeroOptions{Presentation: PresentPage})
	hs.OnEnter()
	defer hs.OnExit()

	require.Eventually(t, func() bool {
		hs.mu.Lock()
		defer hs.mu.Unlock()
		return hs.imageErr != nil
	}, 5*time.Second, 5*time.Millisecond)
	assert.NotEmpty(t, hs.errorText())

	gen := hs.seq.Generation()
	hs.mu.Lock()
	hs.retry()
	assert.Nil(t, hs.imageErr)
	hs.mu.Unlock()
	assert.Equal(t, gen+1, hs.seq.Generation())
}

func TestHeroScreen_ScrollLockReleasedOnEveryExit(t *testing.T) {
	tests := []struct {
		name string
		exit func(sm *ScreenManager, events *[]string)
	}{
		{"pop", func(sm *ScreenManager, _ *[]string) { sm.Pop() }},
		{"replace", func(sm *ScreenManager, events *[]string) {
			sm.Replace(&fakeScreen{name: "other", events: events})
		}},
		{"clear stack", func(sm *ScreenManager, _ *[]string) { sm.ClearStack() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newHeroFixture(t)
			var events []string

			grid := &ScrollState{MaxScroll: 1000}
			grid.SetScrollPosition(240)

			sm := NewScreenManager()
			sm.Push(&fakeScreen{name: "grid", events: &events})
			sm.Push(fx.hero(HeroOptions{Presentation: PresentModal, LockTarget: grid}))
			require.True(t, grid.Locked)

			grid.SetScrollPosition(0)
			tt.exit(sm, &events)

			assert.False(t, grid.Locked)
			assert.Equal(t, 240.0, grid.ScrollPosition())
		})
	}
}

func TestHeroScreen_DebugLinesShowAspect(t *testing.T) {
	fx := newHeroFixture(t)
	hs := fx.hero(HeroOptions{Presentation: PresentPage})

	assert.Contains(t, strings.Join(hs.DebugLines(), "\n"), "(fixed)")
}
