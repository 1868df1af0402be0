package reporting

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"hotelier/internal/models"

	"github.com/xuri/excelize/v2"
)

// TableExporter provides raw table dumps for the audit workbook.
type TableExporter interface {
	GetTableNames(ctx context.Context) ([]string, error)
	GetTableData(ctx context.Context, tableName string) ([]map[string]interface{}, []string, error)
}

// ExcelWriter builds a multi-sheet workbook.
type ExcelWriter struct {
	file         *excelize.File
	currentSheet string
	currentRow   int
}

// NewExcelWriter creates an empty workbook.
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{
		file: excelize.NewFile(),
	}
}

// AddSheet adds a new sheet with the given name.
func (w *ExcelWriter) AddSheet(name string) error {
	// Excel limits sheet names to 31 chars
	if len(name) > 31 {
		name = name[:31]
	}

	if w.currentSheet == "" {
		w.file.SetSheetName("Sheet1", name)
	} else {
		if _, err := w.file.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	w.currentSheet = name
	w.currentRow = 1
	return nil
}

// WriteHeader writes bold column headers to the current sheet.
func (w *ExcelWriter) WriteHeader(columns []string) error {
	if w.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, col); err != nil {
			return err
		}
	}

	style, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, w.currentRow)
		endCell, _ := excelize.CoordinatesToCellName(len(columns), w.currentRow)
		_ = w.file.SetCellStyle(w.currentSheet, startCell, endCell, style)
	}

	w.currentRow++
	return nil
}

// WriteRow writes a data row to the current sheet.
func (w *ExcelWriter) WriteRow(row []interface{}) error {
	if w.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, val := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, val); err != nil {
			return err
		}
	}

	w.currentRow++
	return nil
}

// Save writes the workbook to wr.
func (w *ExcelWriter) Save(wr io.Writer) error {
	return w.file.Write(wr)
}

// Close releases resources.
func (w *ExcelWriter) Close() error {
	return w.file.Close()
}

// ExportRevenueReport writes a one-sheet workbook with the KPI rows.
func ExportRevenueReport(report *models.RevenueReport, history []models.HistoryRow, wr io.Writer) error {
	excel := NewExcelWriter()
	defer excel.Close()

	if err := excel.AddSheet("Revenue"); err != nil {
		return err
	}
	if err := excel.WriteHeader([]string{"Metric", "Value"}); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Period", report.StartDate + " to " + report.EndDate},
		{"Period Days", report.PeriodDays},
		{"Rooms", report.TotalRooms},
		{"Total Revenue", report.TotalRevenue},
		{"Occupied Nights", report.OccupiedNights},
		{"Available Nights", report.AvailableNights},
		{"Occupancy Rate %", report.OccupancyRate},
		{"ADR", report.ADR},
		{"RevPAR", report.RevPAR},
	}
	for _, row := range rows {
		if err := excel.WriteRow(row); err != nil {
			return err
		}
	}

	if len(history) > 0 {
		if err := excel.AddSheet("Reservations"); err != nil {
			return err
		}
		if err := excel.WriteHeader([]string{"Booking", "Room", "Type", "Guest", "Check-In", "Check-Out", "Bill", "Paid"}); err != nil {
			return err
		}
		for _, h := range history {
			paid := "No"
			if h.IsPaid {
				paid = "Yes"
			}
			if err := excel.WriteRow([]interface{}{
				h.BookingID, strconv.FormatInt(h.RoomNumber, 10), h.RoomType,
				h.GuestName, h.CheckIn, h.CheckOut, h.Bill, paid,
			}); err != nil {
				return err
			}
		}
	}

	return excel.Save(wr)
}

// ExportTables dumps every audit table into its own sheet.
func ExportTables(ctx context.Context, exporter TableExporter, wr io.Writer) error {
	tables, err := exporter.GetTableNames(ctx)
	if err != nil {
		return fmt.Errorf("get table names: %w", err)
	}

	excel := NewExcelWriter()
	defer excel.Close()

	for _, tableName := range tables {
		data, columns, err := exporter.GetTableData(ctx, tableName)
		if err != nil {
			return fmt.Errorf("get table data %s: %w", tableName, err)
		}

		if err := excel.AddSheet(tableName); err != nil {
			return err
		}
		if err := excel.WriteHeader(columns); err != nil {
			return err
		}

		for _, row := range data {
			rowData := make([]interface{}, len(columns))
			for i, col := range columns {
				rowData[i] = row[col]
			}
			if err := excel.WriteRow(rowData); err != nil {
				return err
			}
		}
	}

	return excel.Save(wr)
}
