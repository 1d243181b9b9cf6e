package motion

import "math"

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

// CubicBezier returns the CSS cubic-bezier(x1, y1, x2, y2) timing function.
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	return func(t float64) float64 {
		t = clamp01(t)
		if t == 0 || t == 1 {
			return t
		}

		// Newton-Raphson, falling back to bisection on a flat slope.
		s := t
		for i := 0; i < 8; i++ {
			dx := sampleX(s) - t
			if math.Abs(dx) < 1e-6 {
				return sampleY(s)
			}
			d := slopeX(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= dx / d
		}

		lo, hi := 0.0, 1.0
		s = t
		for i := 0; i < 32; i++ {
			x := sampleX(s)
			if math.Abs(x-t) < 1e-6 {
				break
			}
			if x < t {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return sampleY(s)
	}
}

var (
	// Linear is the identity easing.
	Linear Easing = func(t float64) float64 { return clamp01(t) }
	// Ease is the CSS "ease" curve.
	Ease = CubicBezier(0.25, 0.1, 0.25, 1)
	// EaseOut is the CSS "ease-out" curve.
	EaseOut = CubicBezier(0, 0, 0.58, 1)
	// AppleEaseOut is the long-tail curve used for the hero image fade.
	AppleEaseOut = CubicBezier(0.22, 1, 0.36, 1)
)

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
