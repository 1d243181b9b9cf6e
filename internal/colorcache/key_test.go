package colorcache

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	origin, err := url.Parse("https://tvhero.local")
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "strips width",
			raw:  "https://cdn.example.com/img.jpg?w=400",
			want: "https://cdn.example.com/img.jpg",
		},
		{
			name: "strips width and quality, keeps crop hints",
			raw:  "https://images.unsplash.com/photo-1?w=800&h=1000&fit=crop&q=75",
			want: "https://images.unsplash.com/photo-1?fit=crop&h=1000",
		},
		{
			name: "relative path resolved against origin",
			raw:  "/images/img.jpg?w=1200",
			want: "https://tvhero.local/images/img.jpg",
		},
		{
			name: "malformed url returned unchanged",
			raw:  "http://[::1]:namedport/img.jpg?w=1",
			want: "http://[::1]:namedport/img.jpg?w=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKey(origin, tt.raw))
		})
	}
}

func TestNormalizeKey_SizesShareKey(t *testing.T) {
	origin, _ := url.Parse("https://tvhero.local/")

	assert.Equal(t,
		NormalizeKey(origin, "img.jpg?w=400"),
		NormalizeKey(origin, "img.jpg?w=800"),
	)
	assert.NotEqual(t,
		NormalizeKey(origin, "img.jpg?w=400"),
		NormalizeKey(origin, "other.jpg?w=400"),
	)
}

func TestNormalizeKey_NilOrigin(t *testing.T) {
	assert.Equal(t, "img.jpg", NormalizeKey(nil, "img.jpg?q=80"))
}

func TestResolveURL(t *testing.T) {
	origin, err := url.Parse("https://tvhero.local/base/")
	require.NoError(t, err)

	assert.Equal(t, "https://tvhero.local/img.jpg?w=400", ResolveURL(origin, "/img.jpg?w=400"))
	assert.Equal(t, "https://tvhero.local/base/img.jpg", ResolveURL(origin, "img.jpg"))
	assert.Equal(t, "https://cdn.example.com/a.jpg", ResolveURL(origin, "https://cdn.example.com/a.jpg"))
	assert.Equal(t, "/img.jpg", ResolveURL(nil, "/img.jpg"))
}

func TestNormalizeKey_SortsRemainingParams(t *testing.T) {
	assert.Equal(t,
		"https://tvhero.local/img.jpg?a=1&z=2",
		NormalizeKey(nil, "https://tvhero.local/img.jpg?z=2&w=400&a=1"),
	)
}
