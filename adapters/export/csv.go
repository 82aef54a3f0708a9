package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
)

// renderCSV writes the sectioned two-column layout of the original workbook
// exports: metadata, result, computed values, then parameters.
func renderCSV(doc *Document) ([]byte, error) {
	rows := [][]string{
		{"Field", "Value"},
		{"=== POWERUP! RESULTS ===", ""},
		{"Generated", doc.Metadata.GeneratedAt},
		{"Design Model", doc.Metadata.DesignModel},
		{"Design Name", doc.Metadata.DesignName},
		{"Calculation Type", doc.Metadata.CalculationType},
		{"", ""},
		{"=== RESULT ===", ""},
		{doc.Result.Label, fmtValue(doc.Result.Value)},
	}
	if doc.WithComparison != nil {
		rows = append(rows, []string{"MDES (with comparison)", fmtValue(*doc.WithComparison)})
	}

	rows = append(rows,
		[]string{"", ""},
		[]string{"=== COMPUTED VALUES ===", ""},
		[]string{"M (Multiplier)", fmtValue(doc.Computed.M)},
		[]string{"T1 (Precision)", fmtValue(doc.Computed.T1)},
		[]string{"T2 (Power)", fmtValue(doc.Computed.T2)},
		[]string{"df", strconv.Itoa(doc.Computed.DF)},
		[]string{"", ""},
		[]string{"=== PARAMETERS ===", ""},
	)
	for _, p := range doc.Parameters {
		rows = append(rows, []string{p.Name, fmtValue(p.Value)})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderJSON emits the document verbatim, indented for readability.
func renderJSON(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
