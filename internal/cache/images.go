package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/depeter/tvhero/internal/constants"
)

// ImageCache provides disk + memory caching for decoded images.
type ImageCache struct {
	fs       afero.Fs
	cacheDir string
	client   *http.Client
	origin   *url.URL
	timeout  time.Duration

	memory  sync.Map // url -> image.Image
	flights singleflight.Group
	sem     *semaphore.Weighted
}

type Option func(*ImageCache)

// WithFs replaces the filesystem the disk cache lives on.
func WithFs(fs afero.Fs) Option {
	return func(ic *ImageCache) { ic.fs = fs }
}

func WithHTTPClient(c *http.Client) Option {
	return func(ic *ImageCache) { ic.client = c }
}

// WithOrigin resolves relative image paths against origin.
func WithOrigin(origin *url.URL) Option {
	return func(ic *ImageCache) { ic.origin = origin }
}

func WithMaxDownloads(n int) Option {
	return func(ic *ImageCache) {
		if n > 0 {
			ic.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(ic *ImageCache) {
		if d > 0 {
			ic.timeout = d
		}
	}
}

// NewImageCache creates a new image cache with the given disk directory.
func NewImageCache(cacheDir string, opts ...Option) (*ImageCache, error) {
	ic := &ImageCache{
		fs:       afero.NewOsFs(),
		cacheDir: cacheDir,
		client:   http.DefaultClient,
		timeout:  constants.ImageLoadTimeout,
		sem:      semaphore.NewWeighted(constants.MaxConcurrentDownloads),
	}
	for _, o := range opts {
		o(ic)
	}
	if err := ic.fs.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, err
	}
	return ic, nil
}

// Get returns a cached image if available, or nil.
func (ic *ImageCache) Get(rawURL string) image.Image {
	if v, ok := ic.memory.Load(ic.resolve(rawURL)); ok {
		return v.(image.Image)
	}
	return nil
}

// LoadAsync starts loading an image in the background. The callback runs
// exactly once, from a goroutine unless the image is already in memory.
func (ic *ImageCache) LoadAsync(rawURL string, callback func(image.Image, error)) {
	if img := ic.Get(rawURL); img != nil {
		callback(img, nil)
		return
	}

	go func() {
		img, err := ic.LoadDecodedImage(context.Background(), rawURL)
		if err != nil {
			logrus.WithError(err).WithField("url", rawURL).Warn("image load failed")
		}
		callback(img, err)
	}()
}

// LoadDecodedImage returns the decoded image for rawURL from memory, disk,
// or the network. Concurrent loads of one URL share a single download, which
// runs under its own timeout so one caller giving up does not fail the rest.
func (ic *ImageCache) LoadDecodedImage(ctx context.Context, rawURL string) (image.Image, error) {
	u := ic.resolve(rawURL)
	if v, ok := ic.memory.Load(u); ok {
		return v.(image.Image), nil
	}

	ch := ic.flights.DoChan(u, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.Background(), ic.timeout)
		defer cancel()

		img, err := ic.loadImage(loadCtx, u)
		if err != nil {
			return nil, err
		}
		ic.memory.Store(u, img)
		return img, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(image.Image), nil
	}
}

func (ic *ImageCache) loadImage(ctx context.Context, u string) (image.Image, error) {
	diskPath := ic.diskPath(u)

	// Try disk cache first
	if f, err := ic.fs.Open(diskPath); err == nil {
		img, _, err := image.Decode(f)
		f.Close()
		if err == nil {
			return img, nil
		}
		// Corrupt cache file, remove and re-download
		logrus.WithField("path", diskPath).Debug("discarding corrupt cached image")
		ic.fs.Remove(diskPath)
	}

	if err := ic.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer ic.sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := ic.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download failed: %s", resp.Status)
	}

	// Save to disk
	if err := ic.fs.MkdirAll(filepath.Dir(diskPath), 0o755); err != nil {
		return nil, err
	}
	f, err := ic.fs.Create(diskPath)
	if err != nil {
		return nil, err
	}

	// Tee to disk while decoding
	tee := io.TeeReader(resp.Body, f)
	img, _, err := image.Decode(tee)
	if err == nil {
		// Drain the rest so the disk copy is complete.
		_, err = io.Copy(io.Discard, tee)
	}
	f.Close()
	if err != nil {
		ic.fs.Remove(diskPath)
		return nil, fmt.Errorf("decode %s: %w", u, err)
	}

	return img, nil
}

// resolve makes relative paths absolute against the configured origin.
func (ic *ImageCache) resolve(rawURL string) string {
	if ic.origin == nil {
		return rawURL
	}
	ref, err := url.Parse(rawURL)
	if err != nil || ref.IsAbs() {
		return rawURL
	}
	return ic.origin.ResolveReference(ref).String()
}

func (ic *ImageCache) diskPath(u string) string {
	h := sha256.Sum256([]byte(u))
	name := fmt.Sprintf("%x", h[:16])
	return filepath.Join(ic.cacheDir, name[:2], name)
}

// CacheDir returns the disk cache directory path.
func (ic *ImageCache) CacheDir() string {
	return ic.cacheDir
}

// Clear removes all cached images from memory.
func (ic *ImageCache) Clear() {
	ic.memory.Range(func(k, _ any) bool {
		ic.memory.Delete(k)
		return true
	})
}

// ClearDisk removes all cached images from disk.
func (ic *ImageCache) ClearDisk() error {
	return ic.fs.RemoveAll(ic.cacheDir)
}
