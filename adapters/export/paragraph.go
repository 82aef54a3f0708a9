package export

import (
	"fmt"
	"strings"
)

// AcademicParagraph writes a copy-paste methods paragraph describing the
// analysis, mirroring the prose conventions of published power analyses.
func AcademicParagraph(doc *Document) string {
	p := doc.params
	spec := doc.spec

	tails := int(p.Get("tails"))
	tailWord := "two-tailed"
	if tails == 1 {
		tailWord = "one-tailed"
	}

	var sentences []string

	sentences = append(sentences, fmt.Sprintf(
		"An a priori power analysis was conducted for a %s (Model %s) to determine the %s (Dong & Maynard, 2013).",
		spec.FullName, spec.Model, strings.ToLower(doc.Metadata.CalculationType)))

	test := fmt.Sprintf("Assuming a %s test with α = %s and 1−β = %.2f, with %d%% of participants assigned to the treatment condition",
		tailWord, fmtValue(p.Get("alpha")), p.Get("power"), int(p.Get("p")*100))
	if g := int(p.Get("g")); g > 0 {
		plural := ""
		if g != 1 {
			plural = "s"
		}
		test += fmt.Sprintf(" and %d covariate%s included in the model", g, plural)
	}
	sentences = append(sentences, test+".")

	if parts := structureParts(doc); len(parts) > 0 {
		sentences = append(sentences,
			"The multilevel structure of the data was characterized by "+strings.Join(parts, ", and ")+".")
	}

	if parts := varianceParts(doc); len(parts) > 0 {
		sentences = append(sentences,
			"Covariate variance explained was assumed to be "+strings.Join(parts, ", ")+".")
	}

	if doc.Result.Label != "MDES" && hasParam(doc, "es") {
		sentences = append(sentences, fmt.Sprintf(
			"The target minimum relevant effect size was set to δ = %.3f.", p.Get("es")))
	}

	if parts := allocationParts(doc); len(parts) > 0 {
		sentences = append(sentences,
			"The assumed sample allocation was "+strings.Join(parts, ", ")+".")
	}

	sentences = append(sentences, fmt.Sprintf(
		"Under these conditions, %s. The analysis used a %s t-distribution with ν = %d degrees of freedom, "+
			"yielding a multiplier of M = %.2f (T₁ = %.2f, T₂ = %.2f).",
		resultPhrase(doc), tailWord, doc.Computed.DF, doc.Computed.M, doc.Computed.T1, doc.Computed.T2))

	return strings.Join(sentences, " ")
}

func resultPhrase(doc *Document) string {
	label := doc.Result.Label
	switch {
	case strings.Contains(label, "MDES") || strings.Contains(label, "Effect"):
		return fmt.Sprintf(
			"the minimum detectable effect size was δ = %.4f (expressed as a standardized mean difference)",
			doc.Result.Value)
	case strings.Contains(label, "Sample") || strings.Contains(label, "Size"):
		return fmt.Sprintf("the minimum required sample size was %s = %d units",
			doc.spec.SampleSizeFor, int(doc.Result.Value+0.5))
	}
	return fmt.Sprintf("the estimated statistical power was 1−β = %.4f", doc.Result.Value)
}

// structureParts collects the ICC and heterogeneity phrases for the levels
// the design actually models.
func structureParts(doc *Document) []string {
	var parts []string
	levels := []struct{ label, rho, omega string }{
		{"Level 2", "rho2", "omega2"},
		{"Level 3", "rho3", "omega3"},
		{"Level 4", "rho4", "omega4"},
	}
	for _, lev := range levels {
		if hasParam(doc, lev.rho) {
			parts = append(parts, fmt.Sprintf("an intraclass correlation of ρ = %.2f at %s",
				doc.params.Get(lev.rho), lev.label))
		}
	}
	for _, lev := range levels {
		if hasParam(doc, lev.omega) {
			parts = append(parts, fmt.Sprintf("treatment effect heterogeneity of ω = %.2f at %s",
				doc.params.Get(lev.omega), lev.label))
		}
	}
	return parts
}

func varianceParts(doc *Document) []string {
	var parts []string
	for _, r2 := range []struct{ label, name string }{
		{"Level 1", "r21"}, {"Level 2", "r22"}, {"Level 3", "r23"}, {"Level 4", "r24"},
	} {
		if hasParam(doc, r2.name) && doc.params.Get(r2.name) > 0 {
			parts = append(parts, fmt.Sprintf("R² = %.2f at %s", doc.params.Get(r2.name), r2.label))
		}
	}
	return parts
}

func allocationParts(doc *Document) []string {
	var parts []string
	for _, c := range []struct{ name, phrase string }{
		{"n", "n = %d participants per cluster"},
		{"J", "J = %d Level-2 units"},
		{"K", "K = %d Level-3 units"},
		{"L", "L = %d Level-4 units"},
	} {
		if hasParam(doc, c.name) {
			parts = append(parts, fmt.Sprintf(c.phrase, int(doc.params.Get(c.name))))
		}
	}
	return parts
}

// hasParam reports whether the document lists the named parameter, i.e. the
// design recognizes it and it was not the solved-for quantity.
func hasParam(doc *Document, name string) bool {
	for _, p := range doc.Parameters {
		if p.Name == name {
			return true
		}
	}
	return false
}
