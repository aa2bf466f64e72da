// Package report renders expense summaries as terminal tables and exports them
// to CSV, JSON and PDF.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/expense-tracker/backend/internal/application/usecase/dashboard"
)

// Format names an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatPDF   Format = "pdf"
)

// Formats lists every supported output format.
func Formats() []Format {
	return []Format{FormatTable, FormatCSV, FormatJSON, FormatPDF}
}

// ParseFormat parses a format name, ignoring case.
func ParseFormat(value string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported report format %q", value)
}

// Report is a summary together with the context needed to present it.
type Report struct {
	Title       string
	Summary     *dashboard.Summary
	Location    *time.Location
	GeneratedAt time.Time
}

// Write encodes r to w in the requested format.
func Write(w io.Writer, r Report, format Format) error {
	if r.Summary == nil {
		return fmt.Errorf("report has no summary")
	}
	if r.Location == nil {
		r.Location = time.UTC
	}

	switch format {
	case FormatTable:
		_, err := io.WriteString(w, RenderTable(r))
		return err
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatPDF:
		return WritePDF(w, r)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

func (r Report) period() string {
	return fmt.Sprintf("%s to %s (%s)",
		r.Summary.Start.Format(time.DateOnly),
		r.Summary.End.Format(time.DateOnly),
		r.Location,
	)
}

func (r Report) title() string {
	if r.Title != "" {
		return r.Title
	}
	return "Expense Summary"
}
