package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDFOptions configures PDF export
type PDFOptions struct {
	Title          string   `json:"title"`
	Author         string   `json:"author,omitempty"`
	FontFamily     string   `json:"font_family"`
	FontSize       float64  `json:"font_size"`
	TitleFontSize  float64  `json:"title_font_size"`
	HeaderColor    PDFColor `json:"header_color"`
	AlternateRows  bool     `json:"alternate_rows"`
	AlternateColor PDFColor `json:"alternate_color"`
	IncludeDate    bool     `json:"include_date"`
}

// PDFColor represents an RGB color
type PDFColor struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// DefaultPDFOptions returns default PDF export options
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		Title:          "Safety Check History",
		FontFamily:     "Arial",
		FontSize:       10,
		TitleFontSize:  16,
		HeaderColor:    PDFColor{R: 68, G: 114, B: 196},
		AlternateRows:  true,
		AlternateColor: PDFColor{R: 242, G: 242, B: 242},
		IncludeDate:    true,
	}
}

// PDFExporter exports check history to PDF
type PDFExporter struct {
	options PDFOptions
}

// NewPDFExporter creates a PDF exporter
func NewPDFExporter(options PDFOptions) *PDFExporter {
	return &PDFExporter{options: options}
}

// Export writes the rows as a PDF document
func (e *PDFExporter) Export(w io.Writer, rows []HistoryRow) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAuthor(e.options.Author, false)
	pdf.AddPage()

	pdf.SetFont(e.options.FontFamily, "B", e.options.TitleFontSize)
	pdf.CellFormat(0, 10, e.options.Title, "", 1, "C", false, 0, "")

	if e.options.IncludeDate {
		pdf.SetFont(e.options.FontFamily, "", e.options.FontSize)
		pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	colWidths := []float64{35, 65, 30, 25, 25}

	// Header row
	pdf.SetFont(e.options.FontFamily, "B", e.options.FontSize)
	pdf.SetFillColor(e.options.HeaderColor.R, e.options.HeaderColor.G, e.options.HeaderColor.B)
	pdf.SetTextColor(255, 255, 255)
	for i, header := range historyHeader {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(e.options.FontFamily, "", e.options.FontSize)
	pdf.SetTextColor(0, 0, 0)
	for i, row := range rows {
		fill := false
		if e.options.AlternateRows && i%2 == 1 {
			pdf.SetFillColor(e.options.AlternateColor.R, e.options.AlternateColor.G, e.options.AlternateColor.B)
			fill = true
		}
		cells := []string{
			row.CheckedAt.Format(historyTimestampFormat),
			row.Subject,
			row.Confidence,
			strconv.Itoa(row.TotalResults),
			strconv.Itoa(row.PhotoMatches),
		}
		for j, cell := range cells {
			pdf.CellFormat(colWidths[j], 7, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
