package hydraulics

import "math"

const ternaryIterations = 200

// TernarySearchMin returns the x in [lo, hi] minimising a unimodal f.
// Iteration stops once the bracket is narrower than tol, or after a fixed
// number of rounds.
func TernarySearchMin(f func(x float64) float64, lo, hi, tol float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := 0; i < ternaryIterations && hi-lo > tol; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if f(m1) > f(m2) {
			lo = m1
		} else {
			hi = m2
		}
	}

	return (lo + hi) / 2
}

// Bracket returns a symmetric search interval around zero wide enough for
// adjustments of the given scale; never narrower than minWidth.
func Bracket(scale, minWidth float64) (float64, float64) {
	w := math.Max(math.Abs(scale)*2, minWidth)

	return -w, w
}
