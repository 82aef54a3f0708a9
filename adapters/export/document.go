// Package export renders completed calculations into downloadable documents:
// CSV, JSON, Excel workbooks, LaTeX tables, markdown/HTML reports, and a
// copy-paste methods paragraph.
package export

import (
	"fmt"
	"strings"
	"time"

	"gopower/domain/core"
	"gopower/domain/design"
	"gopower/domain/power"
	"gopower/internal/errors"
)

// Metadata identifies the tool run that produced a document.
type Metadata struct {
	Tool            string `json:"tool"`
	GeneratedAt     string `json:"generated_at"`
	DesignModel     string `json:"design_model"`
	DesignName      string `json:"design_name"`
	CalculationType string `json:"calculation_type"`
}

// ResultLine is the headline number of a document.
type ResultLine struct {
	Label string  `json:"type"`
	Value float64 `json:"value"`
}

// Parameter is one labeled input value, kept in worksheet order.
type Parameter struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Document is the flattened, presentation-ready view of a calculation
// result. Every renderer draws from the same document so the formats never
// disagree about what was computed.
type Document struct {
	ID             core.ExportID    `json:"id"`
	Metadata       Metadata         `json:"metadata"`
	Result         ResultLine       `json:"result"`
	WithComparison *float64         `json:"value_with_comparison,omitempty"`
	Computed       power.Multiplier `json:"computed_values"`
	Parameters     []Parameter      `json:"parameters"`

	spec   *design.Spec
	params design.Params
}

// resultLabel maps a calculation mode to its headline label.
func resultLabel(mode power.Mode, spec *design.Spec) string {
	switch mode {
	case power.ModeEffectSize:
		return "MDES"
	case power.ModePower:
		return "Power"
	case power.ModeSampleSize:
		return fmt.Sprintf("Minimum Required Sample Size (%s)", spec.SampleSizeFor)
	}
	return string(mode)
}

func calculationType(mode power.Mode) string {
	switch mode {
	case power.ModeEffectSize:
		return "Minimum Detectable Effect Size"
	case power.ModePower:
		return "Statistical Power"
	case power.ModeSampleSize:
		return "Minimum Required Sample Size"
	}
	return string(mode)
}

// NewDocument flattens a calculation result for rendering. Parameters appear
// in the design's worksheet order with defaults filled in; the solved-for
// quantity is carried in the result line, not the parameter list.
func NewDocument(res *power.Result, toolName string) (*Document, error) {
	spec, err := design.Lookup(string(res.Design))
	if err != nil {
		return nil, errors.Wrap(err, "export document")
	}

	params := spec.ApplyDefaults(res.Params)

	names := make([]string, 0, len(spec.ParamOrder)+1)
	for _, name := range spec.ParamOrder {
		if res.Mode == power.ModeSampleSize && name == spec.SampleSizeFor {
			continue
		}
		names = append(names, name)
	}
	if res.Mode != power.ModeEffectSize {
		names = append(names, "es")
	}

	listed := make([]Parameter, 0, len(names))
	for _, name := range names {
		meta, ok := design.Meta(name)
		if !ok {
			continue
		}
		listed = append(listed, Parameter{
			Name:  name,
			Label: meta.Label,
			Value: params.Get(name),
		})
	}

	return &Document{
		ID: core.ExportID(core.NewID()),
		Metadata: Metadata{
			Tool:            toolName,
			GeneratedAt:     time.Now().Format(time.RFC3339),
			DesignModel:     spec.Model,
			DesignName:      spec.Name,
			CalculationType: calculationType(res.Mode),
		},
		Result: ResultLine{
			Label: resultLabel(res.Mode, spec),
			Value: res.Value,
		},
		WithComparison: res.WithComparison,
		Computed:       res.Multiplier,
		Parameters:     listed,
		spec:           spec,
		params:         params,
	}, nil
}

// Filename builds a timestamped download name for the given extension.
func (d *Document) Filename(ext string) string {
	stamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("powerup_%s_%s.%s", strings.ToLower(d.Metadata.DesignName), stamp, ext)
}

// fmtValue trims a float for display: four decimals, no trailing zeros.
func fmtValue(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
