package design

import (
	"math"
	"strconv"

	"gopower/domain/core"
)

// Params maps parameter names to numeric values for one calculation.
// A Params value is built per request, consumed once, and discarded.
type Params map[string]float64

// Get returns the value for name, or the registered default when absent.
func (p Params) Get(name string) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	if meta, ok := paramTable[name]; ok && meta.HasDefault {
		return meta.Default
	}
	return math.NaN()
}

// GetOr returns the value for name, or fallback when absent.
func (p Params) GetOr(name string, fallback float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return fallback
}

// Has reports whether name was explicitly supplied.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// With returns a copy with name bound to value.
func (p Params) With(name string, value float64) Params {
	out := p.Clone()
	out[name] = value
	return out
}

// ParamMeta describes one parameter: display strings for the presentation
// layer and the plausibility bounds used for InvalidRange validation.
type ParamMeta struct {
	Label      string
	Comment    string
	Default    float64
	HasDefault bool
	Min        float64
	Max        float64
	MinOpen    bool // true when the lower bound itself is invalid
	MaxOpen    bool
	Integer    bool
}

// paramTable is the read-only parameter registry. Bounds mirror the
// mathematically valid domain, not the narrower UI input ranges.
var paramTable = map[string]ParamMeta{
	"alpha": {
		Label:      "Alpha Level (α)",
		Comment:    "Probability of a Type I error",
		Default:    0.05,
		HasDefault: true,
		Min:        0, Max: 1, MinOpen: true, MaxOpen: true,
	},
	"tails": {
		Label:      "Two-tailed or One-tailed Test?",
		Comment:    "2 for two-tailed, 1 for one-tailed",
		Default:    2,
		HasDefault: true,
		Min:        1, Max: 2, Integer: true,
	},
	"power": {
		Label:      "Power (1-β)",
		Comment:    "Statistical power (1-probability of a Type II error)",
		Default:    0.80,
		HasDefault: true,
		Min:        0, Max: 1, MinOpen: true, MaxOpen: true,
	},
	"es": {
		Label:      "MRES = MDES",
		Comment:    "Minimum Relevant Effect Size = Minimum Detectable Effect Size",
		Default:    0.20,
		HasDefault: true,
		Min:        0, Max: math.Inf(1), MinOpen: true,
	},
	"p": {
		Label:      "P",
		Comment:    "Proportion of sample randomized to treatment: nT / (nT + nC)",
		Default:    0.50,
		HasDefault: true,
		Min:        0, Max: 1, MinOpen: true, MaxOpen: true,
	},
	"g": {
		Label:      "g*",
		Comment:    "Number of covariates",
		Default:    0,
		HasDefault: true,
		Min:        0, Max: math.Inf(1), Integer: true,
	},
	"n": {
		Label:   "n (Average Block/Cluster Size)",
		Comment: "Mean number of Level 1 units per Level 2 cluster (harmonic mean recommended)",
		Min:     1, Max: math.Inf(1), Integer: true,
	},
	"J": {
		Label:   "J (Sample Size [# of Blocks])",
		Comment: "Number of Level 2 units in the sample",
		Min:     2, Max: math.Inf(1), Integer: true,
	},
	"K": {
		Label:   "K (Sample Size [# of Level 3 units])",
		Comment: "Number of Level 3 units",
		Min:     2, Max: math.Inf(1), Integer: true,
	},
	"L": {
		Label:   "L (Sample Size [# of Level 4 units])",
		Comment: "Number of Level 4 units",
		Min:     2, Max: math.Inf(1), Integer: true,
	},
	"r21": {
		Label:      "R²₁",
		Comment:    "Proportion of variance in Level 1 outcome explained by Block and Level 1 covariates",
		HasDefault: true,
		Min:        0, Max: 1, MaxOpen: true,
	},
	"r22": {
		Label:      "R²₂",
		Comment:    "Proportion of variance in Level 2 outcome explained by Level 2 covariates",
		HasDefault: true,
		Min:        0, Max: 1, MaxOpen: true,
	},
	"r23": {
		Label:      "R²₃",
		Comment:    "Proportion of variance in Level 3 outcome explained by Level 3 covariates",
		HasDefault: true,
		Min:        0, Max: 1, MaxOpen: true,
	},
	"r24": {
		Label:      "R²₄",
		Comment:    "Proportion of variance in Level 4 outcome explained by Level 4 covariates",
		HasDefault: true,
		Min:        0, Max: 1, MaxOpen: true,
	},
	"rho2": {
		Label:   "ρ₂ (ICC)",
		Comment: "Proportion of variance in outcome between Level 2 clusters",
		Min:     0, Max: 1, MaxOpen: true,
	},
	"rho3": {
		Label:   "ρ₃ (ICC3)",
		Comment: "Proportion of variance among Level 3 units",
		Min:     0, Max: 1, MaxOpen: true,
	},
	"rho4": {
		Label:   "ρ₄ (ICC4)",
		Comment: "Proportion of variance among Level 4 units",
		Min:     0, Max: 1, MaxOpen: true,
	},
	"omega2": {
		Label:   "ω₂",
		Comment: "Treatment effect heterogeneity across Level 2 units, standardized by Level-2 outcome variability",
		Min:     0, Max: math.Inf(1),
	},
	"omega3": {
		Label:   "ω₃",
		Comment: "Treatment effect heterogeneity across Level 3 units, standardized by Level-3 outcome variability",
		Min:     0, Max: math.Inf(1),
	},
	"omega4": {
		Label:   "ω₄",
		Comment: "Treatment effect heterogeneity across Level 4 units, standardized by Level-4 outcome variability",
		Min:     0, Max: math.Inf(1),
	},
	"r2t2": {
		Label:      "R²T₂",
		Comment:    "Proportion of between-block variance in treatment effect explained by Level 2 covariates",
		HasDefault: true,
		Min:        0, Max: 1, MaxOpen: true,
	},
	"r2t3": {
		Label:      "R²T₃",
		Comment:    "Proportion of between-block variance in treatment effect explained by Level 3 covariates",
		HasDefault: true,
		Min:        0, Max: 1, MaxOpen: true,
	},
	"r2t4": {
		Label:      "R²T₄",
		Comment:    "Proportion of between-block variance in treatment effect explained by Level 4 covariates",
		HasDefault: true,
		Min:        0, Max: 1, MaxOpen: true,
	},
	"design_effect": {
		Label:   "Design Effect",
		Comment: "Variance-inflation multiplier, estimated from ρ_TS or other assumptions",
		Min:     0, Max: math.Inf(1), MinOpen: true,
	},
	"T": {
		Label:   "T (number of baseline years)",
		Comment: "Number of years prior to intervention establishing the baseline trend",
		Min:     2, Max: math.Inf(1), Integer: true,
	},
	"tf": {
		Label:   "tf (follow-up year of interest)",
		Comment: "Year in which outcomes are compared (0 = treatment year, 1 = first year after, ...)",
		Min:     0, Max: math.Inf(1), Integer: true,
	},
	"q": {
		Label:   "Ratio of comparison units to experimental units (q)",
		Comment: "(# comparison units / # program units) at block level",
		Min:     1, Max: math.Inf(1), Integer: true,
	},
}

// Meta returns the registered metadata for a parameter name.
func Meta(name string) (ParamMeta, bool) {
	m, ok := paramTable[name]
	return m, ok
}

// ApplyDefaults returns a copy of p with the registered default filled in for
// every defaulted parameter the spec recognizes, plus the effect size.
func (s *Spec) ApplyDefaults(p Params) Params {
	out := p.Clone()
	for _, name := range s.ParamOrder {
		meta := paramTable[name]
		if meta.HasDefault && !out.Has(name) {
			out[name] = meta.Default
		}
	}
	if !out.Has("es") {
		out["es"] = paramTable["es"].Default
	}
	return out
}

// CheckRequired verifies that every non-defaulted parameter the spec names is
// present, skipping any names in skip (the solved-for quantity of the current
// mode). Returns ErrMissingParameter on the first absent one.
func (s *Spec) CheckRequired(p Params, skip ...string) error {
	skipped := func(name string) bool {
		for _, sk := range skip {
			if sk == name {
				return true
			}
		}
		return false
	}
	for _, name := range s.ParamOrder {
		if paramTable[name].HasDefault || skipped(name) {
			continue
		}
		if !p.Has(name) {
			return core.NewMissingParameterError(string(s.ID), name)
		}
	}
	return nil
}

// Validate checks every supplied parameter against its registered bounds.
// Unknown names are ignored; the spec decides which names matter.
func (p Params) Validate() error {
	for name, v := range p {
		meta, ok := paramTable[name]
		if !ok {
			continue
		}
		if math.IsNaN(v) {
			return core.NewRangeError(name, v, "a finite number")
		}
		if v < meta.Min || (meta.MinOpen && v == meta.Min) {
			return core.NewRangeError(name, v, boundsString(meta))
		}
		if v > meta.Max || (meta.MaxOpen && v == meta.Max) {
			return core.NewRangeError(name, v, boundsString(meta))
		}
		if meta.Integer && v != math.Trunc(v) {
			return core.NewRangeError(name, v, "an integer")
		}
	}
	return nil
}

func boundsString(meta ParamMeta) string {
	lo, hi := "[", "]"
	if meta.MinOpen {
		lo = "("
	}
	if meta.MaxOpen {
		hi = ")"
	}
	min := strconv.FormatFloat(meta.Min, 'g', -1, 64)
	if math.IsInf(meta.Max, 1) {
		return lo + min + ", +inf)"
	}
	return lo + min + ", " + strconv.FormatFloat(meta.Max, 'g', -1, 64) + hi
}
