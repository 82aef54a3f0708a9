package export

import (
	"gopower/domain/power"
	"gopower/internal/errors"
	"gopower/ports"
)

// Service renders calculation results into the supported export formats.
// Implements ports.Exporter.
type Service struct {
	toolName string
}

// NewService creates an export service. toolName appears in document
// metadata and report headers.
func NewService(toolName string) *Service {
	if toolName == "" {
		toolName = "gopower"
	}
	return &Service{toolName: toolName}
}

var mimeTypes = map[ports.ExportFormat]string{
	ports.FormatCSV:       "text/csv",
	ports.FormatJSON:      "application/json",
	ports.FormatExcel:     "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	ports.FormatLaTeX:     "text/plain",
	ports.FormatMarkdown:  "text/markdown",
	ports.FormatHTML:      "text/html",
	ports.FormatParagraph: "text/plain",
}

var extensions = map[ports.ExportFormat]string{
	ports.FormatCSV:       "csv",
	ports.FormatJSON:      "json",
	ports.FormatExcel:     "xlsx",
	ports.FormatLaTeX:     "tex",
	ports.FormatMarkdown:  "md",
	ports.FormatHTML:      "html",
	ports.FormatParagraph: "txt",
}

// Formats lists the supported export formats in menu order.
func (s *Service) Formats() []ports.ExportFormat {
	return []ports.ExportFormat{
		ports.FormatCSV,
		ports.FormatJSON,
		ports.FormatExcel,
		ports.FormatLaTeX,
		ports.FormatMarkdown,
		ports.FormatHTML,
		ports.FormatParagraph,
	}
}

// Render flattens the result into a document and dispatches to the
// format-specific renderer.
func (s *Service) Render(result *power.Result, format ports.ExportFormat) (*ports.Export, error) {
	doc, err := NewDocument(result, s.toolName)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case ports.FormatCSV:
		data, err = renderCSV(doc)
	case ports.FormatJSON:
		data, err = renderJSON(doc)
	case ports.FormatExcel:
		data, err = renderExcel(doc)
	case ports.FormatLaTeX:
		data = renderLaTeX(doc)
	case ports.FormatMarkdown:
		data = renderMarkdown(doc)
	case ports.FormatHTML:
		data = renderHTML(doc)
	case ports.FormatParagraph:
		data = []byte(AcademicParagraph(doc))
	default:
		return nil, errors.InvalidInput("unsupported export format " + string(format))
	}
	if err != nil {
		return nil, errors.ExportFailed(string(format), err)
	}

	return &ports.Export{
		Filename: doc.Filename(extensions[format]),
		MIME:     mimeTypes[format],
		Data:     data,
	}, nil
}
