package export

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderMarkdown writes a self-contained report with the result, computed
// values, parameter table, and methods paragraph.
func renderMarkdown(doc *Document) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Power Analysis Report\n\n")
	fmt.Fprintf(&b, "**%s (Model %s)** — %s\n\n", doc.Metadata.DesignName, doc.Metadata.DesignModel, doc.Metadata.CalculationType)
	fmt.Fprintf(&b, "Generated %s by %s.\n\n", doc.Metadata.GeneratedAt, doc.Metadata.Tool)

	fmt.Fprintf(&b, "## Result\n\n")
	fmt.Fprintf(&b, "| %s | **%s** |\n|---|---|\n", doc.Result.Label, fmtValue(doc.Result.Value))
	if doc.WithComparison != nil {
		fmt.Fprintf(&b, "| MDES (with comparison) | %s |\n", fmtValue(*doc.WithComparison))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Computed Values\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| M (Multiplier) | %s |\n", fmtValue(doc.Computed.M))
	fmt.Fprintf(&b, "| T1 (Precision) | %s |\n", fmtValue(doc.Computed.T1))
	fmt.Fprintf(&b, "| T2 (Power) | %s |\n", fmtValue(doc.Computed.T2))
	fmt.Fprintf(&b, "| df | %d |\n\n", doc.Computed.DF)

	fmt.Fprintf(&b, "## Parameters\n\n")
	b.WriteString("| Parameter | Description | Value |\n|---|---|---|\n")
	for _, p := range doc.Parameters {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", p.Name, p.Label, fmtValue(p.Value))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Methods Paragraph\n\n%s\n", AcademicParagraph(doc))

	return []byte(b.String())
}

// renderHTML converts the markdown report to a standalone HTML fragment.
func renderHTML(doc *Document) []byte {
	md := renderMarkdown(doc)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML(md, p, renderer)
}
