package export

import "fmt"

// Format selects an output encoding.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// Dataset is a titled table. Each row holds one value per header.
type Dataset struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// File is a rendered export ready to be served.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// ParseFormat normalises a user supplied format, defaulting to CSV.
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported export format %q", raw)
}

// Render encodes data in format and names the file after base.
func Render(format Format, base string, data Dataset) (*File, error) {
	switch format {
	case FormatCSV:
		body, err := NewCSVExporter().Render(data)
		if err != nil {
			return nil, err
		}
		return &File{Name: base + ".csv", ContentType: "text/csv; charset=utf-8", Body: body}, nil
	case FormatPDF:
		body, err := NewPDFExporter().Render(data)
		if err != nil {
			return nil, err
		}
		return &File{Name: base + ".pdf", ContentType: "application/pdf", Body: body}, nil
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}
