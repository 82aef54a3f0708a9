// Package power computes minimum detectable effect sizes, statistical power,
// and minimum required sample sizes for the designs catalogued in
// domain/design. The engine is stateless and side-effect-free; every call
// builds its answer from the immutable design records and the caller's
// parameter set.
package power

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Multiplier is the critical-value pair and their combination M, tagged with
// the degrees of freedom used to derive it. Derived fresh per calculation.
type Multiplier struct {
	M  float64 `json:"m"`
	T1 float64 `json:"t1"`
	T2 float64 `json:"t2"`
	DF int     `json:"df"`
}

// IsFinite reports whether all components are usable numbers.
func (m Multiplier) IsFinite() bool {
	return !math.IsNaN(m.M) && !math.IsInf(m.M, 0)
}

// multiplierAt computes (M, T1, T2) from the central Student-t quantile
// function. T1 is the critical value for significance (alpha halved for
// two-tailed tests), T2 the sign-normalized critical value for the power
// target. M = T1 + T2 at power >= 0.5 and T1 - T2 below it, because the
// non-centrality and critical regions move in opposite directions under the
// midpoint.
//
// df is continuous to keep the sample-size solver's objective smooth; the
// caller clamps it at 1.
func multiplierAt(alpha, pw, df float64, tails int) (m, t1, t2 float64) {
	if tails == 2 {
		alpha /= 2
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: math.Max(df, 1)}
	t1 = dist.Quantile(1 - alpha)
	t2 = math.Abs(dist.Quantile(1 - pw))
	if pw >= 0.5 {
		m = t1 + t2
	} else {
		m = t1 - t2
	}
	return m, t1, t2
}
