package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// renderExcel builds a three-sheet workbook: Summary, Parameters, and
// Computed Values.
func renderExcel(doc *Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return nil, err
	}

	summary := [][]interface{}{
		{"Field", "Value"},
		{"Design Model", doc.Metadata.DesignModel},
		{"Design Name", doc.Metadata.DesignName},
		{"Calculation Type", doc.Metadata.CalculationType},
		{"Result Type", doc.Result.Label},
		{"Result Value", doc.Result.Value},
		{"Generated At", doc.Metadata.GeneratedAt},
	}
	if doc.WithComparison != nil {
		summary = append(summary, []interface{}{"MDES (with comparison)", *doc.WithComparison})
	}
	if err := writeSheet(f, "Summary", summary); err != nil {
		return nil, err
	}

	params := [][]interface{}{{"Parameter", "Label", "Value"}}
	for _, p := range doc.Parameters {
		params = append(params, []interface{}{p.Name, p.Label, p.Value})
	}
	if _, err := f.NewSheet("Parameters"); err != nil {
		return nil, err
	}
	if err := writeSheet(f, "Parameters", params); err != nil {
		return nil, err
	}

	computed := [][]interface{}{
		{"Metric", "Value"},
		{"M (Multiplier)", doc.Computed.M},
		{"T1 (Precision)", doc.Computed.T1},
		{"T2 (Power)", doc.Computed.T2},
		{"df", doc.Computed.DF},
	}
	if _, err := f.NewSheet("Computed Values"); err != nil {
		return nil, err
	}
	if err := writeSheet(f, "Computed Values", computed); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("cell %s!%s: %w", sheet, cell, err)
			}
		}
	}
	// Widen the first column enough for the section labels.
	return f.SetColWidth(sheet, "A", "A", 28)
}
