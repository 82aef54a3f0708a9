package design

import "math"

// EstimateDesignEffect estimates the regression-discontinuity design effect
// from the correlation between the treatment indicator and the assignment
// score: 1 / (1 - ρ_TS²). Returns +Inf at |ρ_TS| >= 1; that is a legitimate
// limiting value used as a display aid and is never fed back into the
// formula table automatically.
func EstimateDesignEffect(rhoTS float64) float64 {
	if rhoTS*rhoTS >= 1 {
		return math.Inf(1)
	}
	return 1 / (1 - rhoTS*rhoTS)
}
