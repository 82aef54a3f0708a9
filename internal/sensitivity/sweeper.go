// Package sensitivity sweeps one input parameter across a range and
// recomputes a calculation at every point, producing the curves behind
// sensitivity plots and tables.
package sensitivity

import (
	"context"
	"encoding/json"
	"math"
	"sync"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/semaphore"

	"gopower/domain/core"
	"gopower/domain/design"
	"gopower/domain/power"
	"gopower/internal"
	"gopower/internal/config"
	"gopower/internal/errors"
	"gopower/ports"
)

var logger = internal.DefaultLogger.WithComponent("sweep")

// Request describes one sweep: vary Param from From to To over Steps evenly
// spaced points, holding Base fixed, and evaluate Mode at each point.
type Request struct {
	Design string        `json:"design"`
	Mode   power.Mode    `json:"mode"`
	Param  string        `json:"param"`
	From   float64       `json:"from"`
	To     float64       `json:"to"`
	Steps  int           `json:"steps"`
	Base   design.Params `json:"base"`
}

// Point is one evaluated sweep position. Value is NaN where the calculation
// could not converge; input errors abort the whole sweep instead.
type Point struct {
	X     float64 `json:"x"`
	Value float64 `json:"value"`
}

type pointJSON struct {
	X     float64  `json:"x"`
	Value *float64 `json:"value"`
}

// MarshalJSON encodes an infeasible point's value as null; NaN has no JSON
// representation and would fail the whole encode.
func (p Point) MarshalJSON() ([]byte, error) {
	out := pointJSON{X: p.X}
	if !math.IsNaN(p.Value) {
		out.Value = &p.Value
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores null values to NaN.
func (p *Point) UnmarshalJSON(data []byte) error {
	var in pointJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	p.X = in.X
	p.Value = math.NaN()
	if in.Value != nil {
		p.Value = *in.Value
	}
	return nil
}

// Summary aggregates the finite values of a curve.
type Summary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Finite int     `json:"finite"`
}

// Curve is a completed sweep.
type Curve struct {
	Design  design.ID  `json:"design"`
	Mode    power.Mode `json:"mode"`
	Param   string     `json:"param"`
	Points  []Point    `json:"points"`
	Summary Summary    `json:"summary"`
}

// Sweeper evaluates sweep requests with bounded concurrency.
type Sweeper struct {
	calc ports.Calculator
	sem  *semaphore.Weighted
	cfg  config.SensitivityConfig
}

// NewSweeper creates a sweeper backed by the given calculator.
func NewSweeper(calc ports.Calculator, cfg config.SensitivityConfig) *Sweeper {
	return &Sweeper{
		calc: calc,
		sem:  semaphore.NewWeighted(cfg.MaxConcurrent),
		cfg:  cfg,
	}
}

// Run evaluates every sweep point concurrently and assembles the curve.
// Points are returned in axis order regardless of completion order.
func (s *Sweeper) Run(ctx context.Context, req Request) (*Curve, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	spec, err := design.Lookup(req.Design)
	if err != nil {
		return nil, err
	}
	meta, _ := design.Meta(req.Param)

	points := make([]Point, req.Steps)
	errs := make([]error, req.Steps)
	step := (req.To - req.From) / float64(req.Steps-1)

	var wg sync.WaitGroup
	for i := 0; i < req.Steps; i++ {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil, errors.Wrap(err, "sweep cancelled")
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer s.sem.Release(1)
			x := req.From + float64(i)*step
			if meta.Integer {
				// Count parameters only take whole values; snap the grid
				// instead of rejecting non-integral positions.
				x = math.Round(x)
			}
			points[i] = Point{X: x, Value: math.NaN()}

			v, err := s.evaluate(req.Mode, string(spec.ID), req.Base.With(req.Param, x))
			if err != nil {
				if core.IsNumericError(err) {
					return
				}
				errs[i] = err
				return
			}
			points[i].Value = v
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, errors.Wrap(err, "sweep point failed")
		}
	}

	summary := summarize(points)
	logger.Debug("%s sweep of %s for %s: %d points, %d finite",
		req.Mode, req.Param, spec.ID, req.Steps, summary.Finite)

	return &Curve{
		Design:  spec.ID,
		Mode:    req.Mode,
		Param:   req.Param,
		Points:  points,
		Summary: summary,
	}, nil
}

func (s *Sweeper) evaluate(mode power.Mode, id string, p design.Params) (float64, error) {
	switch mode {
	case power.ModeEffectSize:
		return s.calc.EffectSize(id, p)
	case power.ModePower:
		return s.calc.Power(id, p)
	case power.ModeSampleSize:
		n, err := s.calc.SampleSize(id, p)
		return float64(n), err
	}
	return 0, errors.InvalidInput("unrecognized sweep mode")
}

func (s *Sweeper) validate(req Request) error {
	if req.Steps < 2 {
		return errors.InvalidInput("sweep needs at least 2 steps")
	}
	if req.Steps > s.cfg.MaxPoints {
		return errors.InvalidInput("sweep exceeds the configured point limit")
	}
	if !(req.From < req.To) {
		return errors.InvalidInput("sweep range must satisfy from < to")
	}
	if _, ok := design.Meta(req.Param); !ok {
		return errors.InvalidInput("unknown sweep parameter " + req.Param)
	}
	return nil
}

// summarize reduces the finite sweep values. An all-NaN curve yields a
// zero-valued summary with Finite == 0.
func summarize(points []Point) Summary {
	finite := make([]float64, 0, len(points))
	for _, pt := range points {
		if !math.IsNaN(pt.Value) && !math.IsInf(pt.Value, 0) {
			finite = append(finite, pt.Value)
		}
	}
	if len(finite) == 0 {
		return Summary{}
	}

	min, _ := stats.Min(finite)
	max, _ := stats.Max(finite)
	mean, _ := stats.Mean(finite)
	median, _ := stats.Median(finite)
	return Summary{Min: min, Max: max, Mean: mean, Median: median, Finite: len(finite)}
}
