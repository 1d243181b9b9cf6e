package parallax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixedScroll float64

func (f fixedScroll) ScrollOffset() float64 { return float64(f) }

func TestController_FallsBackToWindow(t *testing.T) {
	c := NewController(NewSizer(320, AspectFixed), fixedScroll(256), false)

	p := c.Update()
	assert.InDelta(t, 0.3, p.HeroOpacity, 1e-9)
	assert.Equal(t, p, c.Params())

	c.Observe(fixedScroll(-100))
	assert.InDelta(t, 1.15, c.Update().HeroScale, 1e-9)

	c.Observe(nil)
	assert.InDelta(t, 256, c.Update().Offset, 1e-9)
}

func TestController_HeightFollowsResize(t *testing.T) {
	c := NewController(NewSizer(320, AspectAuto), nil, false)
	c.Resize(800)
	c.ImageLoaded(1600, 900)
	assert.Equal(t, 450, c.Height())

	p := c.Update()
	assert.Equal(t, 450.0, p.Height)
	assert.Zero(t, p.Offset)

	c.Resize(0)
	assert.Equal(t, 450, c.Height())
}

type pointerScroll struct{ y float64 }

func (p *pointerScroll) ScrollOffset() float64 { return p.y }

func TestController_NilPointerContainerUsesWindow(t *testing.T) {
	c := NewController(NewSizer(320, AspectFixed), fixedScroll(100), false)

	var container *pointerScroll
	c.Observe(container)
	assert.NotPanics(t, func() { c.Update() })
	assert.InDelta(t, 100, c.Params().Offset, 1e-9)

	c.Observe(&pointerScroll{y: 40})
	assert.InDelta(t, 40, c.Update().Offset, 1e-9)
}

func TestController_Aspect(t *testing.T) {
	assert.Equal(t, Aspect16x9, NewController(NewSizer(320, Aspect16x9), nil, false).Aspect())
	assert.Equal(t, AspectAuto, NewController(NewSizer(320, AspectAuto), nil, false).Aspect())
}
