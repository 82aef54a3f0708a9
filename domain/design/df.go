package design

import "math"

// Fallback counts used when a partial Params omits a sample-size parameter.
// The resolver never fails; degenerate inputs clamp to df = 1.
const (
	fallbackN = 30
	fallbackJ = 10
	fallbackK = 10
	fallbackL = 10
	fallbackT = 5
	fallbackG = 0
)

// DF resolves the degrees of freedom for a design, floored at 1.
func (s *Spec) DF(p Params) int {
	return int(math.Max(1, math.Floor(s.DFContinuous(p))))
}

// DFContinuous is the continuous relaxation of the df formula, clamped at 1.
// The sample-size solver relies on it being continuous and non-decreasing in
// every count parameter.
func (s *Spec) DFContinuous(p Params) float64 {
	n := p.GetOr("n", fallbackN)
	j := p.GetOr("J", fallbackJ)
	k := p.GetOr("K", fallbackK)
	l := p.GetOr("L", fallbackL)
	t := p.GetOr("T", fallbackT)
	g := p.GetOr("g", fallbackG)

	var df float64
	switch s.ID {
	case IRA:
		df = n - g - 2
	case BIRA21C:
		df = j*(n-1) - g - 1
	case BIRA21F:
		df = j*(n-2) - g
	case BIRA21R:
		df = j - g - 1
	case BIRA31R:
		df = k - g - 1
	case BIRA41R:
		df = l - g - 1
	case CRA22R:
		df = j - g - 2
	case CRA33R:
		df = k - g - 2
	case CRA44R:
		df = l - g - 2
	case BCRA32F:
		df = k*(j-2) - g
	case BCRA32R:
		df = k - g - 1
	case BCRA42R:
		df = l - g - 1
	case BCRA43F:
		df = l*(k-2) - g
	case BCRA43R:
		df = l - g - 1
	case RD21F:
		df = j*(n-2) - g
	case RD21R:
		df = j - g - 1
	case RDC2R:
		df = j - g - 2
	case RDC3R:
		df = k - g - 2
	case RD32F:
		df = k*(j-1) - g
	case ITSNoC, ITSWC:
		df = k*t - g - 1
	default:
		df = 10
	}
	return math.Max(1, df)
}
