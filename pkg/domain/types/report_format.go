package types

import "fmt"

// ReportFormat is the output format of a rendered report
type ReportFormat string

const (
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatPDF  ReportFormat = "pdf"
)

func (f ReportFormat) IsValid() bool {
	return f == ReportFormatXLSX || f == ReportFormatPDF
}

// ContentType returns the MIME type of the format
func (f ReportFormat) ContentType() string {
	switch f {
	case ReportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ReportFormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

func (f ReportFormat) String() string {
	return string(f)
}

func ParseReportFormat(s string) (ReportFormat, error) {
	f := ReportFormat(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid report format: %s", s)
	}
	return f, nil
}
