package design

import "math"

// MDES evaluates the design's minimum-detectable-effect-size formula for a
// given multiplier m. Each formula scales m by the square root of the
// treatment-contrast variance implied by the nesting structure: per level,
// either unexplained within-cluster variance (1-ρ)(1-R²₁), between-cluster
// outcome variance ρ(1-R²), or treatment-effect heterogeneity ρω(1-R²T),
// divided by the unit counts at and above the randomization level.
//
// The formulas reproduce the reference workbook cell formulas design by
// design; they are the authoritative definition of correctness here.
func (s *Spec) MDES(m float64, p Params) float64 {
	pt := p.Get("p")
	pp := pt * (1 - pt) // P(1-P), the treatment allocation variance

	n := p.Get("n")
	j := p.Get("J")
	k := p.Get("K")
	l := p.Get("L")

	r21 := p.Get("r21")
	r22 := p.Get("r22")
	r23 := p.Get("r23")
	r24 := p.Get("r24")
	rho2 := p.GetOr("rho2", 0)
	rho3 := p.GetOr("rho3", 0)
	rho4 := p.GetOr("rho4", 0)
	om2 := p.GetOr("omega2", 0)
	om3 := p.GetOr("omega3", 0)
	om4 := p.GetOr("omega4", 0)
	r2t2 := p.Get("r2t2")
	r2t3 := p.Get("r2t3")
	r2t4 := p.Get("r2t4")
	de := p.GetOr("design_effect", 1)

	var v float64
	switch s.ID {
	case IRA:
		v = (1 - r21) / (pp * n)

	case BIRA21C, BIRA21F:
		v = (1 - r21) / (pp * j * n)

	case BIRA21R:
		v = rho2*om2*(1-r2t2)/j +
			(1-rho2)*(1-r21)/(pp*j*n)

	case BIRA31R:
		v = rho3*om3*(1-r2t3)/k +
			rho2*om2*(1-r2t2)/(j*k) +
			(1-rho3-rho2)*(1-r21)/(pp*j*k*n)

	case BIRA41R:
		v = rho4*om4*(1-r2t4)/l +
			rho3*om3*(1-r2t3)/(k*l) +
			rho2*om2*(1-r2t2)/(j*k*l) +
			(1-rho4-rho3-rho2)*(1-r21)/(pp*j*k*l*n)

	case CRA22R:
		v = rho2*(1-r22)/(pp*j) +
			(1-rho2)*(1-r21)/(pp*j*n)

	case CRA33R:
		v = rho3*(1-r23)/(pp*k) +
			rho2*(1-r22)/(pp*k*j) +
			(1-rho3-rho2)*(1-r21)/(pp*k*j*n)

	case CRA44R:
		v = rho4*(1-r24)/(pp*l) +
			rho3*(1-r23)/(pp*l*k) +
			rho2*(1-r22)/(pp*l*k*j) +
			(1-rho4-rho3-rho2)*(1-r21)/(pp*l*k*j*n)

	case BCRA32F:
		v = rho2*(1-r22)/(pp*j*k) +
			(1-rho2)*(1-r21)/(pp*j*k*n)

	case BCRA32R:
		v = rho3*om3*(1-r2t3)/k +
			rho2*(1-r22)/(pp*j*k) +
			(1-rho3-rho2)*(1-r21)/(pp*j*k*n)

	case BCRA42R:
		v = rho4*om4*(1-r2t4)/l +
			rho3*om3*(1-r2t3)/(k*l) +
			rho2*(1-r22)/(pp*j*k*l) +
			(1-rho4-rho3-rho2)*(1-r21)/(pp*j*k*l*n)

	case BCRA43F:
		v = rho3*(1-r23)/(pp*k*l) +
			rho2*(1-r22)/(pp*j*k*l) +
			(1-rho3-rho2)*(1-r21)/(pp*j*k*l*n)

	case BCRA43R:
		v = rho4*om4*(1-r2t4)/l +
			rho3*(1-r23)/(pp*k*l) +
			rho2*(1-r22)/(pp*j*k*l) +
			(1-rho4-rho3-rho2)*(1-r21)/(pp*j*k*l*n)

	case RD21F:
		v = de * (1 - r21) / (pp * j * n)

	case RD21R:
		// The design effect inflates only the individual-level term; block
		// level heterogeneity is unaffected by the assignment-score cutoff.
		v = rho2*om2*(1-r2t2)/j +
			de*(1-rho2)*(1-r21)/(pp*j*n)

	case RDC2R:
		v = de * (rho2*(1-r22)/(pp*j) +
			(1-rho2)*(1-r21)/(pp*j*n))

	case RDC3R:
		v = de * (rho3*(1-r23)/(pp*k) +
			rho2*(1-r22)/(pp*k*j) +
			(1-rho3-rho2)*(1-r21)/(pp*k*j*n))

	case RD32F:
		v = de * (rho2*(1-r22)/(pp*j*k) +
			(1-rho2)*(1-r21)/(pp*j*k*n))

	case ITSNoC, ITSWC:
		f := itsProjection(p.Get("T"), p.Get("tf"))
		if s.ITS == ITSWithComparison {
			f *= 1 + 1/p.Get("q")
		}
		v = f * (rho2*(1-r22) + (1-rho2)/n) / k

	default:
		return math.NaN()
	}

	return m * math.Sqrt(v)
}

// itsProjection is the variance-inflation factor for extrapolating the
// baseline trend of T pre-intervention years out to follow-up year tf
// (tf = 0 is the treatment year). It grows quadratically with the distance
// between the follow-up year and the baseline midpoint.
func itsProjection(t, tf float64) float64 {
	dev := tf + 1 + t/2
	ss := t * (t*t + 2) / 12
	return 1 + 1/t + dev*dev/ss
}
