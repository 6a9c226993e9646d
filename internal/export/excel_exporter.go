package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelOptions configures Excel export behavior
type ExcelOptions struct {
	SheetName     string `json:"sheet_name"`
	IncludeHeader bool   `json:"include_header"`
	FreezeHeader  bool   `json:"freeze_header"`
	AutoFilter    bool   `json:"auto_filter"`
}

// DefaultExcelOptions returns default Excel export options
func DefaultExcelOptions() ExcelOptions {
	return ExcelOptions{
		SheetName:     "History",
		IncludeHeader: true,
		FreezeHeader:  true,
		AutoFilter:    true,
	}
}

// ExcelExporter exports check history to an Excel workbook
type ExcelExporter struct {
	options ExcelOptions
}

// NewExcelExporter creates an Excel exporter
func NewExcelExporter(options ExcelOptions) *ExcelExporter {
	if options.SheetName == "" {
		options.SheetName = "History"
	}
	return &ExcelExporter{options: options}
}

// Export writes the rows as an xlsx workbook
func (e *ExcelExporter) Export(w io.Writer, rows []HistoryRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := e.options.SheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	rowNum := 1
	if e.options.IncludeHeader {
		headerStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		})
		if err != nil {
			return fmt.Errorf("failed to create header style: %w", err)
		}
		for col, header := range historyHeader {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(sheet, cell, header); err != nil {
				return fmt.Errorf("failed to write header: %w", err)
			}
			_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
		}
		rowNum++
	}

	for _, row := range rows {
		values := []interface{}{
			row.CheckedAt.Format(historyTimestampFormat),
			row.Subject,
			row.Confidence,
			row.TotalResults,
			row.PhotoMatches,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}
		rowNum++
	}

	if e.options.FreezeHeader && e.options.IncludeHeader {
		_ = f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	}
	if e.options.AutoFilter && rowNum > 1 {
		lastCell, _ := excelize.CoordinatesToCellName(len(historyHeader), rowNum-1)
		_ = f.AutoFilter(sheet, "A1:"+lastCell, nil)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
