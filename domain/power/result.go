package power

import (
	"gopower/domain/core"
	"gopower/domain/design"
)

// Mode selects which quantity a calculation solves for.
type Mode string

const (
	ModeEffectSize Mode = "effect_size"
	ModePower      Mode = "power"
	ModeSampleSize Mode = "sample_size"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeEffectSize, ModePower, ModeSampleSize:
		return Mode(s), nil
	}
	return "", core.NewRangeError("mode", 0, "one of effect_size, power, sample_size")
}

// Result is one completed calculation: the requested quantity, the derived
// multiplier, and the parameter set that produced it. For the ITS design in
// effect-size mode, WithComparison carries the companion variant's MDES.
type Result struct {
	ID             core.CalculationID `json:"id"`
	Design         design.ID          `json:"design"`
	Mode           Mode               `json:"mode"`
	Value          float64            `json:"value"`
	WithComparison *float64           `json:"with_comparison,omitempty"`
	Multiplier     Multiplier         `json:"multiplier"`
	Params         design.Params      `json:"params"`
}

// Calculate runs one calculation end to end and assembles the Result,
// including the computed-values panel. This is the entrypoint the
// presentation adapters consume.
func (e *Engine) Calculate(mode Mode, id string, p design.Params) (*Result, error) {
	res := &Result{
		ID:     core.CalculationID(core.NewID()),
		Design: design.ID(id),
		Mode:   mode,
		Params: p.Clone(),
	}

	// The computed panel reflects the solved configuration, so the solved
	// quantity is folded back into the parameter set before deriving it.
	solved := p

	switch mode {
	case ModeEffectSize:
		v, err := e.EffectSize(id, p)
		if err != nil {
			return nil, err
		}
		res.Value = v
		if companion, ok := e.itsCompanion(id, p); ok {
			res.WithComparison = &companion
		}
	case ModePower:
		v, err := e.Power(id, p)
		if err != nil {
			return nil, err
		}
		res.Value = v
		solved = p.With("power", v)
	case ModeSampleSize:
		v, err := e.SampleSize(id, p)
		if err != nil {
			return nil, err
		}
		res.Value = float64(v)
		if spec, err := design.Lookup(id); err == nil {
			solved = p.With(spec.SampleSizeFor, float64(v))
		}
	default:
		return nil, core.NewRangeError("mode", 0, "a recognized calculation mode")
	}

	m, err := e.Computed(id, solved)
	if err != nil {
		return nil, err
	}
	res.Multiplier = m
	return res, nil
}

// itsCompanion computes the with-comparison MDES alongside a no-comparison
// ITS calculation when the comparison ratio was supplied.
func (e *Engine) itsCompanion(id string, p design.Params) (float64, bool) {
	if design.ID(id) != design.ITSNoC || !p.Has("q") {
		return 0, false
	}
	v, err := e.EffectSize(string(design.ITSWC), p)
	if err != nil {
		return 0, false
	}
	return v, true
}
