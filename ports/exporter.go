package ports

import (
	"gopower/domain/power"
)

// ExportFormat selects a rendering of a calculation result
type ExportFormat string

const (
	FormatCSV       ExportFormat = "csv"
	FormatJSON      ExportFormat = "json"
	FormatExcel     ExportFormat = "xlsx"
	FormatLaTeX     ExportFormat = "latex"
	FormatMarkdown  ExportFormat = "markdown"
	FormatHTML      ExportFormat = "html"
	FormatParagraph ExportFormat = "paragraph"
)

// Export is a rendered result ready for download or writing to disk
type Export struct {
	Filename string
	MIME     string
	Data     []byte
}

// Exporter renders calculation results into downloadable documents
type Exporter interface {
	Render(result *power.Result, format ExportFormat) (*Export, error)
	Formats() []ExportFormat
}
