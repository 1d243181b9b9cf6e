package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressSegments(t *testing.T) {
	segs := progressSegments(5, 2, 100)
	require.Len(t, segs, 5)

	assert.InDelta(t, 16.8, segs[0].W, 1e-9)
	assert.Equal(t, 0.0, segs[0].X)
	last := segs[4]
	assert.InDelta(t, 100, last.X+last.W, 1e-9, "segments span the full width")

	done := 0
	for _, s := range segs {
		if s.Done {
			done++
		}
	}
	assert.Equal(t, 2, done)
	assert.True(t, segs[1].Done)
	assert.False(t, segs[2].Done)
}

func TestProgressSegmentsEdgeCases(t *testing.T) {
	assert.Nil(t, progressSegments(0, 0, 100), "no total draws nothing")
	assert.Nil(t, progressSegments(-3, 1, 100))
	assert.Nil(t, progressSegments(3, 1, 0))

	over := progressSegments(3, 10, 90)
	for _, s := range over {
		assert.True(t, s.Done)
	}
	under := progressSegments(3, -1, 90)
	for _, s := range under {
		assert.False(t, s.Done)
	}
}

func TestActionButtonStates(t *testing.T) {
	b := &ActionButton{Label: "Get Started"}
	b.rect = ButtonRect{X: 10, Y: 10, W: 100, H: heroButtonH}
	assert.True(t, b.HandleClick(50, 20))
	assert.False(t, b.HandleClick(5, 20))

	b.Loading = true
	assert.False(t, b.Enabled())
	assert.False(t, b.HandleClick(50, 20))

	b.Loading, b.Disabled = false, true
	assert.False(t, b.HandleClick(50, 20))
}

func TestButtonRectContains(t *testing.T) {
	assert.False(t, ButtonRect{}.Contains(0, 0), "empty rect never matches")
	r := ButtonRect{X: 0, Y: 0, W: 10, H: 10}
	assert.True(t, r.Contains(10, 10))
	assert.False(t, r.Contains(11, 5))
}
