package power

import (
	"math"

	"gopower/domain/core"
	"gopower/domain/design"
)

// Engine is the mode dispatcher. It owns no state; concurrent use from any
// number of goroutines needs no coordination.
type Engine struct{}

// NewEngine creates a calculation engine.
func NewEngine() *Engine {
	return &Engine{}
}

// EffectSize evaluates the design's MDES formula directly.
func (e *Engine) EffectSize(id string, p design.Params) (float64, error) {
	spec, err := design.Lookup(id)
	if err != nil {
		return 0, err
	}
	p = spec.ApplyDefaults(p)
	if err := spec.CheckRequired(p); err != nil {
		return 0, err
	}
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return e.mdes(spec, p)
}

// Power solves for the power value at which the design's MDES equals the
// target effect size. The MDES is strictly increasing in power over
// (alpha, 1): the multiplier runs from -Inf (T2 dominates) up to +Inf, so a
// sign change is guaranteed whenever the target is attainable at all.
func (e *Engine) Power(id string, p design.Params) (float64, error) {
	spec, err := design.Lookup(id)
	if err != nil {
		return 0, err
	}
	p = spec.ApplyDefaults(p)
	if err := spec.CheckRequired(p, "power"); err != nil {
		return 0, err
	}
	if err := p.Validate(); err != nil {
		return 0, err
	}

	es := p.Get("es")
	objective := func(pi float64) float64 {
		v, err := e.mdes(spec, p.With("power", pi))
		if err != nil {
			return math.NaN()
		}
		return v - es
	}

	const edge = 1e-9
	alpha := p.Get("alpha")
	root, err := bisect(objective, alpha+edge, 1-edge, 1e-12, "power")
	if err != nil {
		return 0, err
	}
	return root, nil
}

// SampleSize solves for the design's designated count parameter via a
// continuous relaxation, then rounds up to the smallest integer whose MDES
// meets the target. Rounding is conservative: never down.
func (e *Engine) SampleSize(id string, p design.Params) (int, error) {
	spec, err := design.Lookup(id)
	if err != nil {
		return 0, err
	}
	p = spec.ApplyDefaults(p)
	target := spec.SampleSizeFor
	if err := spec.CheckRequired(p, target); err != nil {
		return 0, err
	}
	if err := p.Validate(); err != nil {
		return 0, err
	}

	es := p.Get("es")
	objective := func(x float64) float64 {
		v, err := e.mdes(spec, p.With(target, x))
		if err != nil {
			return math.NaN()
		}
		return v - es
	}

	min := countMinimum(target)
	if v := objective(min); math.IsNaN(v) {
		return 0, core.NewNonFiniteError("sample size objective")
	} else if v <= 0 {
		// The design minimum already detects the target effect.
		return int(min), nil
	}

	// Grow the upper bracket until the MDES drops below the target.
	hi := math.Max(2*min, 16)
	for objective(hi) > 0 {
		hi *= 2
		if hi > math.MaxInt32 {
			return 0, core.NewNonConvergenceError("sample size", maxBisectIterations)
		}
	}

	root, err := bisect(objective, min, hi, 1e-7, "sample size")
	if err != nil {
		return 0, err
	}
	return e.roundUp(spec, p, target, es, root, int(min))
}

// roundUp picks the smallest integer count meeting the target effect size.
// The relative tolerance forgives floating-point noise when the continuous
// root lies on an integer.
func (e *Engine) roundUp(spec *design.Spec, p design.Params, target string, es, root float64, min int) (int, error) {
	c := int(math.Floor(root))
	if c < min {
		c = min
	}
	v, err := e.mdes(spec, p.With(target, float64(c)))
	if err != nil {
		return 0, err
	}
	if v <= es*(1+1e-9) {
		return c, nil
	}
	return c + 1, nil
}

// Computed derives the multiplier triple and degrees of freedom for the
// computed-values panel. Not consulted by the three modes themselves.
func (e *Engine) Computed(id string, p design.Params) (Multiplier, error) {
	spec, err := design.Lookup(id)
	if err != nil {
		return Multiplier{}, err
	}
	p = spec.ApplyDefaults(p)
	if err := p.Validate(); err != nil {
		return Multiplier{}, err
	}
	df := spec.DF(p)
	m, t1, t2 := multiplierAt(p.Get("alpha"), p.Get("power"), float64(df), int(p.Get("tails")))
	out := Multiplier{M: m, T1: t1, T2: t2, DF: df}
	if !out.IsFinite() {
		return out, core.NewNonFiniteError("multiplier")
	}
	return out, nil
}

// mdes evaluates the formula table at a prepared parameter set. Non-finite
// intermediates surface as ErrNonFinite, never as a silent zero.
func (e *Engine) mdes(spec *design.Spec, p design.Params) (float64, error) {
	df := spec.DFContinuous(p)
	m, _, _ := multiplierAt(p.Get("alpha"), p.Get("power"), df, int(p.Get("tails")))
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return 0, core.NewNonFiniteError("multiplier")
	}
	v := spec.MDES(m, p)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, core.NewNonFiniteError("effect size")
	}
	return v, nil
}

// countMinimum is the smallest admissible value for a solved count parameter.
func countMinimum(name string) float64 {
	if meta, ok := design.Meta(name); ok {
		return meta.Min
	}
	return 2
}
