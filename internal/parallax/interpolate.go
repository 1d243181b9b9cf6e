package parallax

import "github.com/samber/lo"

// Interpolate maps x through the piecewise-linear curve defined by the
// ascending input stops in and their outputs out. Values outside the input
// range clamp to the first or last output.
func Interpolate(x float64, in, out []float64) float64 {
	n := min(len(in), len(out))
	if n == 0 {
		return 0
	}
	if n == 1 || x <= in[0] {
		return out[0]
	}
	if x >= in[n-1] {
		return out[n-1]
	}

	for i := 1; i < n; i++ {
		if x > in[i] {
			continue
		}
		span := in[i] - in[i-1]
		if span <= 0 {
			return out[i]
		}
		t := lo.Clamp((x-in[i-1])/span, 0, 1)
		return out[i-1] + (out[i]-out[i-1])*t
	}
	return out[n-1]
}
