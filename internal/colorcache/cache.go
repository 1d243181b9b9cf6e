// Package colorcache memoizes extracted artwork colors so a color computed
// for a grid thumbnail is available on the first frame of the hero view.
package colorcache

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/url"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/depeter/tvhero/internal/constants"
	"github.com/depeter/tvhero/internal/palette"
)

// Loader fetches and decodes an image by URL.
type Loader interface {
	LoadDecodedImage(ctx context.Context, url string) (image.Image, error)
}

// Cache maps normalized image keys to extracted colors. Entries are never
// overwritten; the least recently used entry is evicted past the size bound.
type Cache struct {
	loader  Loader
	origin  *url.URL
	timeout time.Duration
	extract func(image.Image) (palette.CachedColor, error)

	entries *lru.Cache[string, palette.CachedColor]
	flights singleflight.Group

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Cache.
type Option func(*Cache)

// WithOrigin sets the base URL relative image paths are resolved against.
func WithOrigin(origin *url.URL) Option {
	return func(c *Cache) { c.origin = origin }
}

// WithLoadTimeout bounds a single load-and-extract.
func WithLoadTimeout(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithExtractor replaces the extraction function.
func WithExtractor(fn func(image.Image) (palette.CachedColor, error)) Option {
	return func(c *Cache) { c.extract = fn }
}

// New creates a cache holding at most maxEntries colors.
func New(loader Loader, maxEntries int, opts ...Option) (*Cache, error) {
	if maxEntries <= 0 {
		maxEntries = constants.ColorCacheSize
	}
	entries, err := lru.New[string, palette.CachedColor](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("create color cache: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Cache{
		loader:  loader,
		timeout: constants.ImageLoadTimeout,
		extract: palette.Extract,
		entries: entries,
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Key returns the normalized cache key for an image URL.
func (c *Cache) Key(imageURL string) string {
	return NormalizeKey(c.origin, imageURL)
}

// Get returns the color stored under key.
func (c *Cache) Get(key string) (palette.CachedColor, bool) {
	return c.entries.Get(key)
}

// Lookup returns the color for an image URL, normalizing it first.
func (c *Cache) Lookup(imageURL string) (palette.CachedColor, bool) {
	if imageURL == "" {
		return palette.CachedColor{}, false
	}
	return c.Get(c.Key(imageURL))
}

// Set stores value under key unless an entry already exists. It returns the
// entry that is stored after the call and whether value was inserted.
func (c *Cache) Set(key string, value palette.CachedColor) (palette.CachedColor, bool) {
	previous, found, _ := c.entries.PeekOrAdd(key, value)
	if found {
		return previous, false
	}
	return value, true
}

// Len returns the number of cached colors.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Prewarm extracts the color for imageURL in the background if it is not
// cached yet. Failures are discarded.
func (c *Cache) Prewarm(imageURL string) {
	if imageURL == "" {
		return
	}
	key := c.Key(imageURL)
	if _, ok := c.entries.Peek(key); ok {
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if _, err := c.fill(key, imageURL); err != nil {
			logrus.WithError(err).WithField("url", imageURL).Debug("color prewarm failed")
		}
	}()
}

// Resolve returns the color for imageURL, loading and extracting it when it
// is not cached. Concurrent calls for the same key share one extraction.
func (c *Cache) Resolve(ctx context.Context, imageURL string) (palette.CachedColor, error) {
	key := c.Key(imageURL)
	if cached, ok := c.entries.Get(key); ok {
		return cached, nil
	}

	ch := c.flights.DoChan(key, func() (any, error) {
		return c.load(key, imageURL)
	})
	select {
	case <-ctx.Done():
		return palette.CachedColor{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return palette.CachedColor{}, res.Err
		}
		return res.Val.(palette.CachedColor), nil
	}
}

// fill runs load for key, sharing the work with concurrent callers.
func (c *Cache) fill(key, imageURL string) (palette.CachedColor, error) {
	v, err, _ := c.flights.Do(key, func() (any, error) {
		return c.load(key, imageURL)
	})
	if err != nil {
		return palette.CachedColor{}, err
	}
	return v.(palette.CachedColor), nil
}

// load fetches and extracts one image and stores the result if absent.
func (c *Cache) load(key, imageURL string) (palette.CachedColor, error) {
	if cached, ok := c.entries.Peek(key); ok {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()

	// The loader gets the same absolute URL the key was derived from.
	img, err := c.loader.LoadDecodedImage(ctx, ResolveURL(c.origin, imageURL))
	if err != nil {
		if errors.Is(err, palette.ErrImageLoadFailed) {
			return palette.CachedColor{}, err
		}
		return palette.CachedColor{}, fmt.Errorf("%w: %v", palette.ErrImageLoadFailed, err)
	}

	// Another caller may have stored the color while the image loaded.
	if cached, ok := c.entries.Peek(key); ok {
		return cached, nil
	}

	extracted, err := c.extract(img)
	if err != nil {
		return palette.CachedColor{}, err
	}
	stored, _ := c.Set(key, extracted)
	return stored, nil
}

// Wait blocks until in-flight prewarms have finished.
func (c *Cache) Wait() {
	c.wg.Wait()
}

// Close cancels in-flight loads and waits for prewarms to stop.
func (c *Cache) Close() {
	c.cancel()
	c.wg.Wait()
}
