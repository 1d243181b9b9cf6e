package colorcache

import (
	"context"
	"image/color"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/depeter/tvhero/internal/palette"
)

// Result is the color state of one hero view.
type Result struct {
	Color     string // empty until a color is known
	RGB       color.RGBA
	IsDark    bool
	IsLoading bool
	Err       error
}

// HasColor reports whether a color has been resolved.
func (r Result) HasColor() bool { return r.Color != "" }

func resultFor(c palette.CachedColor) Result {
	return Result{Color: c.Color(), RGB: c.RGBA(), IsDark: c.IsDark}
}

// Tracker resolves the color of a single image URL for a foreground view.
// Results from a previous URL or from a closed tracker are dropped.
type Tracker struct {
	cache *Cache

	mu     sync.Mutex
	url    string
	gen    uint64
	cancel context.CancelFunc
	state  Result
}

// Track starts resolving imageURL. When the color is already cached the
// returned tracker holds it immediately.
func (c *Cache) Track(imageURL string) *Tracker {
	t := &Tracker{cache: c, state: Result{IsDark: true}}
	t.SetURL(imageURL)
	return t
}

// SetURL switches the tracker to a new image, restarting resolution.
func (t *Tracker) SetURL(imageURL string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.gen++
	t.url = imageURL

	if imageURL == "" {
		t.state = Result{IsDark: t.state.IsDark}
		return
	}

	if cached, ok := t.cache.Lookup(imageURL); ok {
		t.state = resultFor(cached)
		return
	}

	t.state = Result{IsDark: t.state.IsDark, IsLoading: true}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	go t.resolve(ctx, t.gen, imageURL)
}

func (t *Tracker) resolve(ctx context.Context, gen uint64, imageURL string) {
	extracted, err := t.cache.Resolve(ctx, imageURL)

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		return
	}
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logrus.WithError(err).WithField("url", imageURL).Warn("color extraction failed")
		t.state = Result{IsDark: t.state.IsDark, Err: err}
		return
	}
	t.state = resultFor(extracted)
}

// State returns the current color state.
func (t *Tracker) State() Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// URL returns the image URL being tracked.
func (t *Tracker) URL() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.url
}

// Close stops tracking; pending results are discarded.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
