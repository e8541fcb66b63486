package domain

import "strings"

// Methodology selects how the processing API estimates emissions.
type Methodology string

const (
	MethodologySpend    Methodology = "spend"
	MethodologyActivity Methodology = "activity"
)

// DefaultMethodology is preselected on every fresh or reset form.
const DefaultMethodology = MethodologySpend

// Methodologies lists the accepted values in display order.
var Methodologies = []Methodology{MethodologySpend, MethodologyActivity}

// Label returns the human-readable name shown in forms.
func (m Methodology) Label() string {
	switch m {
	case MethodologySpend:
		return "Spend"
	case MethodologyActivity:
		return "Activity"
	default:
		return string(m)
	}
}

// ParseMethodology validates a form value. An empty value selects the default.
func ParseMethodology(s string) (Methodology, error) {
	switch Methodology(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultMethodology, nil
	case MethodologySpend:
		return MethodologySpend, nil
	case MethodologyActivity:
		return MethodologyActivity, nil
	default:
		return "", ErrInvalidMethodology
	}
}

// ExportFormat represents a download format for the curated row set.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ExportContentTypes maps ExportFormat to the response media type.
var ExportContentTypes = map[ExportFormat]string{
	ExportFormatCSV:  "text/csv; charset=utf-8",
	ExportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ParseExportFormat validates a format query value. Empty selects CSV.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", ExportFormatCSV:
		return ExportFormatCSV, nil
	case ExportFormatXLSX:
		return ExportFormatXLSX, nil
	default:
		return "", ErrUnsupportedExportFormat
	}
}

// Media types accepted for submissions.
const (
	ContentTypePDF = "application/pdf"
	ContentTypeZIP = "application/zip"
)

// Default client-side size limits.
const (
	DefaultMaxPDFBytes int64 = 50 * 1024 * 1024
	DefaultMaxZIPBytes int64 = 100 * 1024 * 1024
)
