package export

import (
	"fmt"
	"strings"
)

// latexSymbols maps parameter names to their notation in the published
// formula tables.
var latexSymbols = map[string]string{
	"alpha":         `\alpha`,
	"tails":         `t_{\text{tails}}`,
	"power":         `1-\beta`,
	"es":            `\delta`,
	"p":             `P`,
	"n":             `n`,
	"J":             `J`,
	"K":             `K`,
	"L":             `L`,
	"g":             `g^{*}`,
	"r21":           `R^{2}_{1}`,
	"r22":           `R^{2}_{2}`,
	"r23":           `R^{2}_{3}`,
	"r24":           `R^{2}_{4}`,
	"rho2":          `\rho_{2}`,
	"rho3":          `\rho_{3}`,
	"rho4":          `\rho_{4}`,
	"omega2":        `\omega_{2}`,
	"omega3":        `\omega_{3}`,
	"omega4":        `\omega_{4}`,
	"r2t2":          `R^{2}_{T2}`,
	"r2t3":          `R^{2}_{T3}`,
	"r2t4":          `R^{2}_{T4}`,
	"design_effect": `\mathrm{DE}`,
	"T":             `T`,
	"tf":            `t_{f}`,
	"q":             `q`,
}

// resultSymbol picks the headline symbol and its long name.
func resultSymbol(label string) (sym, full string) {
	switch {
	case strings.Contains(label, "MDES") || strings.Contains(label, "Effect"):
		return `\hat{\delta}_{\min}`, "Minimum Detectable Effect Size"
	case strings.Contains(label, "Sample") || strings.Contains(label, "Size"):
		return `\hat{N}_{\min}`, "Minimum Required Sample Size"
	}
	return `\hat{\pi}`, "Statistical Power"
}

// renderLaTeX produces a publication-ready results table.
func renderLaTeX(doc *Document) []byte {
	var rows []string
	tails := 2.0
	for _, p := range doc.Parameters {
		if p.Name == "tails" {
			tails = p.Value
		}
		sym, ok := latexSymbols[p.Name]
		if !ok {
			sym = p.Name
		}
		rows = append(rows, fmt.Sprintf(`        & $%s$ & %s & %s \\`, sym, latexEscape(p.Label), fmtValue(p.Value)))
	}

	resultSym, resultFull := resultSymbol(doc.Result.Label)
	tailWord := "two"
	if tails == 1 {
		tailWord = "one"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\\begin{table}[ht]\n\\centering\n")
	fmt.Fprintf(&b, "\\caption{Power Analysis Results: %s (Model %s) --- %s}\n",
		doc.Metadata.DesignName, doc.Metadata.DesignModel, doc.Metadata.CalculationType)
	fmt.Fprintf(&b, "\\label{tab:power-analysis-%s}\n", strings.ToLower(doc.Metadata.DesignName))
	b.WriteString("\\begin{tabular}{llll}\n\\hline\n")
	b.WriteString("\\textbf{Section} & \\textbf{Symbol} & \\textbf{Description} & \\textbf{Value} \\\\\n\\hline\n")
	b.WriteString("\\multicolumn{4}{l}{\\textit{Input Parameters}} \\\\\n")
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n\\hline\n\\multicolumn{4}{l}{\\textit{Computed Values}} \\\\\n")
	fmt.Fprintf(&b, "        & $M$ & Multiplier ($T_1 + T_2$) & %s \\\\\n", fmtValue(doc.Computed.M))
	fmt.Fprintf(&b, "        & $T_1$ & Critical value (precision) & %s \\\\\n", fmtValue(doc.Computed.T1))
	fmt.Fprintf(&b, "        & $T_2$ & Non-centrality value (power) & %s \\\\\n", fmtValue(doc.Computed.T2))
	fmt.Fprintf(&b, "        & $\\nu$ & Degrees of freedom & %d \\\\\n", doc.Computed.DF)
	b.WriteString("\\hline\n\\multicolumn{4}{l}{\\textit{Result}} \\\\\n")
	fmt.Fprintf(&b, "        & $%s$ & %s & \\textbf{%s} \\\\\n", resultSym, resultFull, fmtValue(doc.Result.Value))
	if doc.WithComparison != nil {
		fmt.Fprintf(&b, "        & $\\hat{\\delta}_{\\min}^{+}$ & MDES (with comparison) & %s \\\\\n",
			fmtValue(*doc.WithComparison))
	}
	b.WriteString("\\hline\n\\end{tabular}\n")
	b.WriteString("\\vspace{4pt}\n\\begin{minipage}{\\linewidth}\n")
	fmt.Fprintf(&b, "\\small\\textit{Note.} The multiplier $M = T_1 + T_2$ where $T_1 = t_{1-\\alpha/k,\\,\\nu}$\n"+
		"and $T_2 = t_{1-\\beta,\\,\\nu}$ under a %s-tailed $t$-distribution with $\\nu$ degrees of freedom.\n", tailWord)
	b.WriteString("\\end{minipage}\n\\end{table}\n")

	return []byte(b.String())
}

// latexEscape guards the handful of special characters that appear in
// parameter labels.
func latexEscape(s string) string {
	r := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"#", `\#`,
		"_", `\_`,
		"²", `$^{2}$`,
		"α", `$\alpha$`,
		"β", `$\beta$`,
		"ρ", `$\rho$`,
		"ω", `$\omega$`,
		"₁", `$_{1}$`,
		"₂", `$_{2}$`,
		"₃", `$_{3}$`,
		"₄", `$_{4}$`,
	)
	return r.Replace(s)
}
