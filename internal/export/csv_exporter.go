package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSVOptions configures CSV export behavior
type CSVOptions struct {
	Delimiter       rune   `json:"delimiter"`
	UseCRLF         bool   `json:"use_crlf"`
	IncludeHeader   bool   `json:"include_header"`
	TimestampFormat string `json:"timestamp_format"`
}

// DefaultCSVOptions returns default CSV export options
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter:       ',',
		IncludeHeader:   true,
		TimestampFormat: historyTimestampFormat,
	}
}

// CSVExporter exports check history to CSV
type CSVExporter struct {
	options CSVOptions
}

// NewCSVExporter creates a CSV exporter
func NewCSVExporter(options CSVOptions) *CSVExporter {
	if options.Delimiter == 0 {
		options.Delimiter = ','
	}
	if options.TimestampFormat == "" {
		options.TimestampFormat = historyTimestampFormat
	}
	return &CSVExporter{options: options}
}

// Export writes the rows as CSV
func (e *CSVExporter) Export(w io.Writer, rows []HistoryRow) error {
	writer := csv.NewWriter(w)
	writer.Comma = e.options.Delimiter
	writer.UseCRLF = e.options.UseCRLF

	if e.options.IncludeHeader {
		if err := writer.Write(historyHeader); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for _, row := range rows {
		record := []string{
			row.CheckedAt.Format(e.options.TimestampFormat),
			row.Subject,
			row.Confidence,
			strconv.Itoa(row.TotalResults),
			strconv.Itoa(row.PhotoMatches),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
