// Package parallax derives the scroll-linked hero effects from a scroll
// offset and the computed hero height.
package parallax

// Params are the derived visual values for one scroll offset.
type Params struct {
	Offset float64
	Height float64

	HeroTranslateY float64
	HeroScale      float64
	HeroOpacity    float64

	ControlsOpacity float64
	HeaderOpacity   float64

	// HeaderInteractive is set once the offset passes 70% of the hero.
	HeaderInteractive   bool
	ControlsInteractive bool
}

// Map computes Params for offset against hero height h. With reduced motion
// the hero neither translates nor zooms; opacity mappings are kept.
func Map(offset, h float64, reducedMotion bool) Params {
	p := Params{
		Offset: offset,
		Height: h,

		HeroTranslateY: Interpolate(offset, []float64{0, h}, []float64{0, h * 0.5}),
		HeroScale:      Interpolate(offset, []float64{-100, 0, h}, []float64{1.15, 1, 1}),
		HeroOpacity:    Interpolate(offset, []float64{0, h * 0.8}, []float64{1, 0.3}),

		ControlsOpacity: Interpolate(offset, []float64{h * 0.5, h * 0.8}, []float64{1, 0}),
		HeaderOpacity:   Interpolate(offset, []float64{h * 0.6, h * 0.8}, []float64{0, 1}),

		HeaderInteractive: offset > h*0.7,
	}
	p.ControlsInteractive = !p.HeaderInteractive

	if reducedMotion {
		p.HeroTranslateY = 0
		p.HeroScale = 1
	}
	return p
}
