// Package design defines the catalog of supported research designs and the
// closed-form algebra attached to each: degrees of freedom, the minimum
// detectable effect size (MDES) formula, and parameter metadata.
//
// The catalog follows the PowerUp! model numbering (Dong & Maynard, 2013).
// Every entry is immutable, process-wide static data; nothing here mutates
// after package init.
package design

import (
	"gopower/domain/core"
)

// ID identifies a design variant. Spelling is significant and matches the
// lower-snake-case identifiers used by the reference tool.
type ID string

const (
	IRA     ID = "ira"
	BIRA21C ID = "bira2_1c"
	BIRA21F ID = "bira2_1f"
	BIRA21R ID = "bira2_1r"
	BIRA31R ID = "bira3_1r"
	BIRA41R ID = "bira4_1r"
	CRA22R  ID = "cra2_2r"
	CRA33R  ID = "cra3_3r"
	CRA44R  ID = "cra4_4r"
	BCRA32F ID = "bcra3_2f"
	BCRA32R ID = "bcra3_2r"
	BCRA42R ID = "bcra4_2r"
	BCRA43F ID = "bcra4_3f"
	BCRA43R ID = "bcra4_3r"
	RD21F   ID = "rd2_1f"
	RD21R   ID = "rd2_1r"
	RDC2R   ID = "rdc_2r"
	RDC3R   ID = "rdc_3r"
	RD32F   ID = "rd3_2f"
	ITSNoC  ID = "its_nocompare"
	ITSWC   ID = "its_wcompare"
)

// Category groups designs the way the reference workbook's contents sheet does.
type Category string

const (
	CategoryIndividual     Category = "Individual Random Assignment Designs"
	CategoryBlockedIndiv   Category = "Blocked Individual Random Assignment Designs"
	CategoryCluster        Category = "Simple Cluster Random Assignment Designs"
	CategoryBlockedCluster Category = "Blocked Cluster Random Assignment Designs"
	CategoryRegDiscont     Category = "Regression Discontinuity Designs"
	CategoryTimeSeries     Category = "Interrupted Time-Series Designs"
)

// ITSVariant distinguishes the two structural variants of the interrupted
// time-series design. Zero value means the design is not an ITS design.
type ITSVariant int

const (
	ITSNone ITSVariant = iota
	ITSNoComparison
	ITSWithComparison
)

// Spec is the immutable record describing one design variant.
type Spec struct {
	ID       ID
	Model    string // workbook model number, e.g. "3.1"
	Name     string // display name, e.g. "CRA2_2r"
	FullName string
	Category Category

	// ParamOrder lists the recognized parameters in worksheet order.
	ParamOrder []string

	// SampleSizeFor names the count parameter solved for in sample-size mode.
	SampleSizeFor string

	// UsesDesignEffect is true for regression-discontinuity designs, which
	// take an externally supplied variance-inflation factor.
	UsesDesignEffect bool

	ITS ITSVariant
}

// registry holds all design specs in workbook order.
var registry = []Spec{
	{
		ID:            IRA,
		Model:         "1.0",
		Name:          "IRA",
		FullName:      "Individual Random Assignment (IRA) Designs—Completely Randomized Controlled Trials",
		Category:      CategoryIndividual,
		ParamOrder:    []string{"alpha", "tails", "power", "p", "r21", "g", "n"},
		SampleSizeFor: "n",
	},
	{
		ID:            BIRA21C,
		Model:         "2.1",
		Name:          "BIRA2_1c",
		FullName:      "2-Level Constant Effects Blocked Individual Random Assignment (BIRA2_1c) Designs—Individuals Randomized within Blocks",
		Category:      CategoryBlockedIndiv,
		ParamOrder:    []string{"alpha", "tails", "power", "p", "r21", "g", "n", "J"},
		SampleSizeFor: "J",
	},
	{
		ID:            BIRA21F,
		Model:         "2.2",
		Name:          "BIRA2_1f",
		FullName:      "2-Level Fixed Effects Blocked Individual Random Assignment (BIRA2_1f) Designs—Individuals Randomized within Blocks",
		Category:      CategoryBlockedIndiv,
		ParamOrder:    []string{"alpha", "tails", "power", "p", "r21", "g", "n", "J"},
		SampleSizeFor: "J",
	},
	{
		ID:            BIRA21R,
		Model:         "2.3",
		Name:          "BIRA2_1r",
		FullName:      "2-Level Random Effects Blocked Individual Random Assignment (BIRA2_1r) Designs—Individuals Randomized within Blocks",
		Category:      CategoryBlockedIndiv,
		ParamOrder:    []string{"alpha", "tails", "power", "rho2", "omega2", "p", "r21", "r2t2", "g", "n", "J"},
		SampleSizeFor: "J",
	},
	{
		ID:            BIRA31R,
		Model:         "2.4",
		Name:          "BIRA3_1r",
		FullName:      "3-Level Random Effects Blocked Individual Random Assignment (BIRA3_1r) Designs—Individuals Randomized within Blocks",
		Category:      CategoryBlockedIndiv,
		ParamOrder:    []string{"alpha", "tails", "power", "rho3", "rho2", "omega3", "omega2", "p", "r21", "r2t2", "r2t3", "g", "n", "J", "K"},
		SampleSizeFor: "K",
	},
	{
		ID:            BIRA41R,
		Model:         "2.5",
		Name:          "BIRA4_1r",
		FullName:      "4-Level Random Effects Blocked Individual Random Assignment (BIRA4_1r) Designs—Individuals Randomized within Blocks",
		Category:      CategoryBlockedIndiv,
		ParamOrder:    []string{"alpha", "tails", "power", "rho4", "rho3", "rho2", "omega4", "omega3", "omega2", "p", "r21", "r2t2", "r2t3", "r2t4", "g", "n", "J", "K", "L"},
		SampleSizeFor: "L",
	},
	{
		ID:            CRA22R,
		Model:         "3.1",
		Name:          "CRA2_2r",
		FullName:      "Two-Level Cluster Random Assignment Design (CRA2_2r)—Treatment at Level 2",
		Category:      CategoryCluster,
		ParamOrder:    []string{"alpha", "tails", "power", "rho2", "p", "r21", "r22", "g", "n", "J"},
		SampleSizeFor: "J",
	},
	{
		ID:            CRA33R,
		Model:         "3.2",
		Name:          "CRA3_3r",
		FullName:      "Three-Level Cluster Random Assignment Design (CRA3_3r)—Treatment at Level 3",
		Category:      CategoryCluster,
		ParamOrder:    []string{"alpha", "tails", "power", "rho3", "rho2", "p", "r21", "r22", "r23", "g", "n", "J", "K"},
		SampleSizeFor: "K",
	},
	{
		ID:            CRA44R,
		Model:         "3.3",
		Name:          "CRA4_4r",
		FullName:      "Four-Level Cluster Random Assignment Design (CRA4_4r)—Treatment at Level 4",
		Category:      CategoryCluster,
		ParamOrder:    []string{"alpha", "tails", "power", "rho4", "rho3", "rho2", "p", "r21", "r22", "r23", "r24", "g", "n", "J", "K", "L"},
		SampleSizeFor: "L",
	},
	{
		ID:            BCRA32F,
		Model:         "4.1",
		Name:          "BCRA3_2f",
		FullName:      "3-Level Fixed Effects Blocked Cluster Random Assignment Designs (BCRA3_2f)—Treatment at Level 2",
		Category:      CategoryBlockedCluster,
		ParamOrder:    []string{"alpha", "tails", "power", "rho2", "p", "r21", "r22", "g", "n", "J", "K"},
		SampleSizeFor: "K",
	},
	{
		ID:            BCRA32R,
		Model:         "4.2",
		Name:          "BCRA3_2r",
		FullName:      "3-Level Random Effects Blocked Cluster Random Assignment Designs (BCRA3_2r)—Treatment at Level 2",
		Category:      CategoryBlockedCluster,
		ParamOrder:    []string{"alpha", "tails", "power", "rho3", "rho2", "omega3", "p", "r21", "r22", "r2t3", "g", "n", "J", "K"},
		SampleSizeFor: "K",
	},
	{
		ID:            BCRA42R,
		Model:         "4.3",
		Name:          "BCRA4_2r",
		FullName:      "4-Level Random Effects Blocked Cluster Random Assignment Designs (BCRA4_2r)—Treatment at Level 2",
		Category:      CategoryBlockedCluster,
		ParamOrder:    []string{"alpha", "tails", "power", "rho4", "rho3", "rho2", "omega4", "omega3", "p", "r21", "r22", "r2t3", "r2t4", "g", "n", "J", "K", "L"},
		SampleSizeFor: "L",
	},
	{
		ID:            BCRA43F,
		Model:         "4.4",
		Name:          "BCRA4_3f",
		FullName:      "4-Level Fixed Effects Blocked Cluster Random Assignment Designs (BCRA4_3f)—Treatment at Level 3",
		Category:      CategoryBlockedCluster,
		ParamOrder:    []string{"alpha", "tails", "power", "rho3", "rho2", "p", "r21", "r22", "r23", "g", "n", "J", "K", "L"},
		SampleSizeFor: "L",
	},
	{
		ID:            BCRA43R,
		Model:         "4.5",
		Name:          "BCRA4_3r",
		FullName:      "4-Level Random Effects Blocked Cluster Random Assignment Designs (BCRA4_3r)—Treatment at Level 3",
		Category:      CategoryBlockedCluster,
		ParamOrder:    []string{"alpha", "tails", "power", "rho4", "rho3", "rho2", "omega4", "p", "r21", "r22", "r23", "r2t4", "g", "n", "J", "K", "L"},
		SampleSizeFor: "L",
	},
	{
		ID:               RD21F,
		Model:            "5.1",
		Name:             "RD2_1f",
		FullName:         "2-Level Fixed Effects Regression Discontinuity Design (RD2_1f)",
		Category:         CategoryRegDiscont,
		ParamOrder:       []string{"alpha", "tails", "power", "p", "r21", "g", "n", "J", "design_effect"},
		SampleSizeFor:    "J",
		UsesDesignEffect: true,
	},
	{
		ID:               RD21R,
		Model:            "5.2",
		Name:             "RD2_1r",
		FullName:         "2-Level Regression Discontinuity Designs with Random Block Effects (RD2_1r)",
		Category:         CategoryRegDiscont,
		ParamOrder:       []string{"alpha", "tails", "power", "rho2", "omega2", "p", "r21", "r2t2", "g", "n", "J", "design_effect"},
		SampleSizeFor:    "J",
		UsesDesignEffect: true,
	},
	{
		ID:               RDC2R,
		Model:            "5.3",
		Name:             "RDC_2r",
		FullName:         "Two-Level Regression Discontinuity Designs (RDC_2r)—Treatment at Level 2",
		Category:         CategoryRegDiscont,
		ParamOrder:       []string{"alpha", "tails", "power", "rho2", "p", "r21", "r22", "g", "n", "J", "design_effect"},
		SampleSizeFor:    "J",
		UsesDesignEffect: true,
	},
	{
		ID:               RDC3R,
		Model:            "5.4",
		Name:             "RDC_3r",
		FullName:         "3-Level Regression Discontinuity Designs (RDC_3r)—Treatment at Level 3",
		Category:         CategoryRegDiscont,
		ParamOrder:       []string{"alpha", "tails", "power", "rho3", "rho2", "p", "r21", "r22", "r23", "g", "n", "J", "K", "design_effect"},
		SampleSizeFor:    "K",
		UsesDesignEffect: true,
	},
	{
		ID:               RD32F,
		Model:            "5.5",
		Name:             "RD3_2f",
		FullName:         "3-Level Fixed Effects Blocked Regression Discontinuity Design (RD3_2f)—Treatment at Level 2",
		Category:         CategoryRegDiscont,
		ParamOrder:       []string{"alpha", "tails", "power", "rho2", "p", "r21", "r22", "g", "n", "J", "K", "design_effect"},
		SampleSizeFor:    "K",
		UsesDesignEffect: true,
	},
	{
		ID:            ITSNoC,
		Model:         "6.0",
		Name:          "ITS",
		FullName:      "3-Level HLM Interrupted Time-Series Design (ITS): Studies with Random Cohort Effects and Constant Level-3 Effects",
		Category:      CategoryTimeSeries,
		ParamOrder:    []string{"alpha", "tails", "power", "rho2", "T", "n", "K", "r22", "tf", "g"},
		SampleSizeFor: "K",
		ITS:           ITSNoComparison,
	},
	{
		ID:            ITSWC,
		Model:         "6.0",
		Name:          "ITS (with comparison)",
		FullName:      "3-Level HLM Interrupted Time-Series Design (ITS) with Comparison Units",
		Category:      CategoryTimeSeries,
		ParamOrder:    []string{"alpha", "tails", "power", "rho2", "T", "n", "K", "r22", "tf", "g", "q"},
		SampleSizeFor: "K",
		ITS:           ITSWithComparison,
	},
}

var byID = func() map[ID]*Spec {
	m := make(map[ID]*Spec, len(registry))
	for i := range registry {
		m[registry[i].ID] = &registry[i]
	}
	return m
}()

// Lookup returns the spec for a design id.
func Lookup(id string) (*Spec, error) {
	spec, ok := byID[ID(id)]
	if !ok {
		return nil, core.NewUnknownDesignError(id)
	}
	return spec, nil
}

// All returns the full catalog in workbook order.
func All() []Spec {
	out := make([]Spec, len(registry))
	copy(out, registry)
	return out
}

// ByCategory returns the designs in one category, preserving order.
func ByCategory(c Category) []Spec {
	var out []Spec
	for _, s := range registry {
		if s.Category == c {
			out = append(out, s)
		}
	}
	return out
}

// Categories returns the category list in workbook order.
func Categories() []Category {
	return []Category{
		CategoryIndividual,
		CategoryBlockedIndiv,
		CategoryCluster,
		CategoryBlockedCluster,
		CategoryRegDiscont,
		CategoryTimeSeries,
	}
}
