package enums

import "fmt"

// ExportFormat selects the artifact type produced by an export.
type ExportFormat string

const (
	ExportFormatImage ExportFormat = "image"
	ExportFormatPDF   ExportFormat = "pdf"
)

var validExportFormats = []ExportFormat{
	ExportFormatImage,
	ExportFormatPDF,
}

// String implements fmt.Stringer.
func (e ExportFormat) String() string {
	return string(e)
}

// Extension returns the artifact filename extension for the format.
func (e ExportFormat) Extension() string {
	switch e {
	case ExportFormatPDF:
		return "pdf"
	default:
		return "png"
	}
}

// ContentType returns the MIME type of the rendered artifact.
func (e ExportFormat) ContentType() string {
	switch e {
	case ExportFormatPDF:
		return "application/pdf"
	default:
		return "image/png"
	}
}

// IsValid reports whether the value is a known ExportFormat.
func (e ExportFormat) IsValid() bool {
	for _, candidate := range validExportFormats {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseExportFormat converts raw input into an ExportFormat.
func ParseExportFormat(value string) (ExportFormat, error) {
	for _, candidate := range validExportFormats {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid export format %q", value)
}
