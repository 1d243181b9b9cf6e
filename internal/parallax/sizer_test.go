package parallax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAspectRatio(t *testing.T) {
	for _, s := range []string{"", "auto", "1/1", "4/3", "16/9", "3/4"} {
		a, err := ParseAspectRatio(s)
		require.NoError(t, err, s)
		assert.Equal(t, AspectRatio(s), a)
	}

	_, err := ParseAspectRatio("21/9")
	assert.ErrorIs(t, err, ErrUnknownAspectRatio)
}

func TestSizer_Fixed(t *testing.T) {
	s := NewSizer(320, AspectFixed)
	assert.Equal(t, 320, s.Height())
	assert.Equal(t, 320, s.Resize(768))
	assert.Equal(t, 320, s.SetNaturalSize(1000, 2000))
}

func TestSizer_NamedRatio(t *testing.T) {
	s := NewSizer(320, Aspect16x9)
	assert.Equal(t, 320, s.Height())
	assert.Equal(t, 432, s.Resize(768))
	assert.Equal(t, 225, s.Resize(400))

	s = NewSizer(320, Aspect3x4)
	assert.Equal(t, 1024, s.Resize(768))
}

func TestSizer_AutoFollowsImage(t *testing.T) {
	s := NewSizer(320, AspectAuto)
	assert.Equal(t, 320, s.Resize(600), "fixed height until the image size is known")

	assert.Equal(t, 400, s.SetNaturalSize(1200, 800))
	assert.Equal(t, 200, s.Resize(300))

	s.ClearNaturalSize()
	assert.Equal(t, 320, s.Height())
}

func TestSizer_ZeroWidthKeepsPreviousHeight(t *testing.T) {
	s := NewSizer(320, Aspect1x1)
	require.Equal(t, 500, s.Resize(500))

	assert.Equal(t, 500, s.Resize(0))
	assert.Equal(t, 500, s.Height())

	auto := NewSizer(320, AspectAuto)
	assert.Equal(t, 320, auto.SetNaturalSize(100, 300), "no width yet")
	assert.Equal(t, 300, auto.Resize(100))
}
