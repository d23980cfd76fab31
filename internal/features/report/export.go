package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const (
	ExportCSV  = "csv"
	ExportXLSX = "xlsx"
)

var exportColumns = []string{"reportId", "scope", "metrics", "generatedDate"}

func (s *ReportServiceImpl) ExportReports(ctx context.Context, format string) ([]byte, string, error) {
	reports, err := s.ReportRepo.List(ctx)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("reports_%s", s.now().Format("20060102_150405"))
	switch format {
	case ExportCSV, "":
		data, err := reportsToCSV(reports)
		return data, filename + ".csv", err
	case ExportXLSX:
		data, err := reportsToExcel(reports)
		return data, filename + ".xlsx", err
	default:
		return nil, "", fmt.Errorf("unsupported format: %s", format)
	}
}

func reportRecord(r Report) []string {
	return []string{strconv.FormatInt(r.ReportID, 10), r.Scope, r.Metrics, r.GeneratedDate.String()}
}

func reportsToCSV(reports []Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportColumns); err != nil {
		return nil, err
	}
	for _, r := range reports {
		if err := writer.Write(reportRecord(r)); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func reportsToExcel(reports []Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Reports"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, r := range reports {
		values := []any{r.ReportID, r.Scope, r.Metrics, r.GeneratedDate.String()}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 40)
	f.SetColWidth(sheetName, "D", "D", 14)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
