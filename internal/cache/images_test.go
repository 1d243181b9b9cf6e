package cache

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type imageServer struct {
	*httptest.Server
	hits  atomic.Int32
	delay time.Duration
}

func newImageServer(t *testing.T, body []byte) *imageServer {
	t.Helper()
	s := &imageServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		if s.delay > 0 {
			time.Sleep(s.delay)
		}
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	t.Cleanup(s.Close)
	return s
}

func newTestCache(t *testing.T, fs afero.Fs, opts ...Option) *ImageCache {
	t.Helper()
	ic, err := NewImageCache("/cache/images", append([]Option{WithFs(fs)}, opts...)...)
	require.NoError(t, err)
	return ic
}

func TestLoadDecodedImage_DownloadsAndCaches(t *testing.T) {
	srv := newImageServer(t, pngBytes(t, color.RGBA{R: 200, A: 255}))
	fs := afero.NewMemMapFs()
	ic := newTestCache(t, fs)

	img, err := ic.LoadDecodedImage(context.Background(), srv.URL+"/a.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())
	assert.Same(t, img, ic.Get(srv.URL+"/a.png"))

	exists, err := afero.Exists(fs, ic.diskPath(srv.URL+"/a.png"))
	require.NoError(t, err)
	assert.True(t, exists)

	// Memory is cleared; the disk copy serves the next load.
	ic.Clear()
	assert.Nil(t, ic.Get(srv.URL+"/a.png"))
	_, err = ic.LoadDecodedImage(context.Background(), srv.URL+"/a.png")
	require.NoError(t, err)
	assert.EqualValues(t, 1, srv.hits.Load())
}

func TestLoadDecodedImage_DedupesConcurrentLoads(t *testing.T) {
	srv := newImageServer(t, pngBytes(t, color.White))
	srv.delay = 30 * time.Millisecond
	ic := newTestCache(t, afero.NewMemMapFs())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ic.LoadDecodedImage(context.Background(), srv.URL+"/shared.png")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, srv.hits.Load())
}

func TestLoadDecodedImage_HTTPError(t *testing.T) {
	srv := newImageServer(t, nil)
	fs := afero.NewMemMapFs()
	ic := newTestCache(t, fs)

	_, err := ic.LoadDecodedImage(context.Background(), srv.URL+"/missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Nil(t, ic.Get(srv.URL+"/missing.png"))
}

func TestLoadDecodedImage_UndecodableBodyNotCached(t *testing.T) {
	srv := newImageServer(t, []byte("definitely not an image"))
	fs := afero.NewMemMapFs()
	ic := newTestCache(t, fs)

	_, err := ic.LoadDecodedImage(context.Background(), srv.URL+"/junk.png")
	require.Error(t, err)

	exists, _ := afero.Exists(fs, ic.diskPath(srv.URL+"/junk.png"))
	assert.False(t, exists)
}

func TestLoadDecodedImage_CorruptDiskEntryRefetched(t *testing.T) {
	srv := newImageServer(t, pngBytes(t, color.Black))
	fs := afero.NewMemMapFs()
	ic := newTestCache(t, fs)

	u := srv.URL + "/b.png"
	path := ic.diskPath(u)
	require.NoError(t, afero.WriteFile(fs, path, []byte("garbage"), 0o644))

	_, err := ic.LoadDecodedImage(context.Background(), u)
	require.NoError(t, err)
	assert.EqualValues(t, 1, srv.hits.Load())
}

func TestLoadDecodedImage_ResolvesRelativeURLs(t *testing.T) {
	srv := newImageServer(t, pngBytes(t, color.White))
	origin, err := url.Parse(srv.URL)
	require.NoError(t, err)
	ic := newTestCache(t, afero.NewMemMapFs(), WithOrigin(origin))

	_, err = ic.LoadDecodedImage(context.Background(), "/rel.png")
	require.NoError(t, err)
	assert.NotNil(t, ic.Get(srv.URL+"/rel.png"))
}

func TestLoadDecodedImage_CallerCancel(t *testing.T) {
	srv := newImageServer(t, pngBytes(t, color.White))
	srv.delay = 200 * time.Millisecond
	ic := newTestCache(t, afero.NewMemMapFs())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := ic.LoadDecodedImage(ctx, srv.URL+"/slow.png")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoadAsync(t *testing.T) {
	srv := newImageServer(t, pngBytes(t, color.White))
	ic := newTestCache(t, afero.NewMemMapFs())

	done := make(chan image.Image, 1)
	ic.LoadAsync(srv.URL+"/async.png", func(img image.Image, err error) {
		assert.NoError(t, err)
		done <- img
	})

	select {
	case img := <-done:
		assert.NotNil(t, img)
	case <-time.After(2 * time.Second):
		t.Fatal("callback not called")
	}

	// Cached images call back synchronously.
	called := false
	ic.LoadAsync(srv.URL+"/async.png", func(img image.Image, err error) { called = true })
	assert.True(t, called)
}

func TestClearDisk(t *testing.T) {
	srv := newImageServer(t, pngBytes(t, color.White))
	fs := afero.NewMemMapFs()
	ic := newTestCache(t, fs)

	_, err := ic.LoadDecodedImage(context.Background(), srv.URL+"/c.png")
	require.NoError(t, err)
	require.NoError(t, ic.ClearDisk())

	exists, _ := afero.DirExists(fs, ic.CacheDir())
	assert.False(t, exists)
}

type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return http.DefaultTransport.RoundTrip(req)
}

func TestLoadDecodedImage_UsesConfiguredClient(t *testing.T) {
	srv := newImageServer(t, pngBytes(t, color.White))
	transport := &countingTransport{}
	ic := newTestCache(t, afero.NewMemMapFs(), WithHTTPClient(&http.Client{Transport: transport}))

	_, err := ic.LoadDecodedImage(context.Background(), srv.URL+"/client.png")
	require.NoError(t, err)
	assert.EqualValues(t, 1, transport.calls.Load())
}
