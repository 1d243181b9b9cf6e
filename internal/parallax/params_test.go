package parallax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		in   []float64
		out  []float64
		want float64
	}{
		{"below range clamps", -5, []float64{0, 10}, []float64{1, 2}, 1},
		{"above range clamps", 50, []float64{0, 10}, []float64{1, 2}, 2},
		{"midpoint", 5, []float64{0, 10}, []float64{0, 1}, 0.5},
		{"second segment", -50, []float64{-100, 0, 320}, []float64{1.15, 1, 1}, 1.075},
		{"descending output", 8, []float64{0, 16}, []float64{1, 0.3}, 0.65},
		{"single stop", 3, []float64{0}, []float64{7}, 7},
		{"empty", 3, nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Interpolate(tt.x, tt.in, tt.out), 1e-9)
		})
	}
}

func TestMapBoundaries(t *testing.T) {
	const h = 320

	p := Map(0, h, false)
	assert.Equal(t, 1.0, p.HeroScale)
	assert.Equal(t, 1.0, p.HeroOpacity)
	assert.Equal(t, 1.0, p.ControlsOpacity)
	assert.Equal(t, 0.0, p.HeaderOpacity)
	assert.Equal(t, 0.0, p.HeroTranslateY)
	assert.False(t, p.HeaderInteractive)
	assert.True(t, p.ControlsInteractive)

	p = Map(256, h, false)
	assert.InDelta(t, 0.3, p.HeroOpacity, 1e-9)
	assert.InDelta(t, 0.0, p.ControlsOpacity, 1e-9)
	assert.InDelta(t, 1.0, p.HeaderOpacity, 1e-9)
	assert.True(t, p.HeaderInteractive)

	p = Map(-100, h, false)
	assert.InDelta(t, 1.15, p.HeroScale, 1e-9)

	p = Map(-400, h, false)
	assert.InDelta(t, 1.15, p.HeroScale, 1e-9)

	p = Map(h, h, false)
	assert.InDelta(t, 160, p.HeroTranslateY, 1e-9)
	p = Map(2*h, h, false)
	assert.InDelta(t, 160, p.HeroTranslateY, 1e-9)
	assert.InDelta(t, 0.3, p.HeroOpacity, 1e-9)
}

func TestMapHeaderThreshold(t *testing.T) {
	const h = 320
	assert.False(t, Map(224, h, false).HeaderInteractive)
	assert.True(t, Map(224.5, h, false).HeaderInteractive)
	assert.InDelta(t, 0.5, Map(224, h, false).HeaderOpacity, 1e-9)
}

func TestMapReducedMotion(t *testing.T) {
	p := Map(-100, 320, true)
	assert.Equal(t, 1.0, p.HeroScale)

	p = Map(200, 320, true)
	assert.Zero(t, p.HeroTranslateY)
	assert.Less(t, p.HeroOpacity, 1.0)
	assert.Less(t, p.ControlsOpacity, 1.0)
}
