package ports

import (
	"gopower/domain/design"
	"gopower/domain/power"
)

// Calculator runs power-analysis calculations for registered designs
type Calculator interface {
	Calculate(mode power.Mode, designID string, params design.Params) (*power.Result, error)
	EffectSize(designID string, params design.Params) (float64, error)
	Power(designID string, params design.Params) (float64, error)
	SampleSize(designID string, params design.Params) (int, error)
	Computed(designID string, params design.Params) (power.Multiplier, error)
}
