package power

import (
	"math"

	"gopower/domain/core"
)

// maxBisectIterations caps every root-finding loop so a degenerate objective
// reports non-convergence instead of spinning.
const maxBisectIterations = 200

// bisect finds a root of f on [lo, hi] by bounded bisection. f must be
// monotone on the interval; either orientation is accepted. Returns
// ErrNonConvergence when the bracket holds no sign change, when f produces
// NaN, or when the iteration cap is exhausted before the interval shrinks
// below tol.
func bisect(f func(float64) float64, lo, hi, tol float64, quantity string) (float64, error) {
	flo := f(lo)
	fhi := f(hi)
	if math.IsNaN(flo) || math.IsNaN(fhi) {
		return 0, core.NewNonFiniteError(quantity + " objective")
	}
	if flo == 0 {
		return lo, nil
	}
	if fhi == 0 {
		return hi, nil
	}
	if (flo > 0) == (fhi > 0) {
		return 0, core.NewNonConvergenceError(quantity, 0)
	}

	for i := 0; i < maxBisectIterations; i++ {
		mid := lo + (hi-lo)/2
		if hi-lo < tol {
			return mid, nil
		}
		fmid := f(mid)
		if math.IsNaN(fmid) {
			return 0, core.NewNonFiniteError(quantity + " objective")
		}
		if fmid == 0 {
			return mid, nil
		}
		if (fmid > 0) == (flo > 0) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	return 0, core.NewNonConvergenceError(quantity, maxBisectIterations)
}
