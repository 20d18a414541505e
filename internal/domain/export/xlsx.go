package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"reportdesk/internal/domain/compile"
	"reportdesk/internal/domain/reports"
)

// CompiledXLSX renders a roll-up as a worksheet, one row per source.
func CompiledXLSX(compiled compile.CompiledReport) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Compiled Report"
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	f.SetCellValue(sheet, "A1", compiled.Title)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Period: %s to %s",
		compiled.DateRangeStart.Format("2006-01-02"), compiled.DateRangeEnd.Format("2006-01-02")))

	f.SetCellValue(sheet, "A4", "Source")
	f.SetCellValue(sheet, "B4", "Content")
	f.SetCellStyle(sheet, "A4", "B4", headerStyle)
	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "B", 90)

	row := 5
	for _, section := range compiledSections(compiled) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), section.heading)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), section.body)
		row++
	}

	return flushXLSX(f)
}

// ReportsXLSX renders a report listing, one row per report.
func ReportsXLSX(list []reports.Report) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Reports"
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	headers := []string{"Title", "Type", "Status", "Date", "Submitted", "Locked", "Content"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", last, headerStyle)
	f.SetColWidth(sheet, "A", "A", 35)
	f.SetColWidth(sheet, "G", "G", 80)

	for i, r := range list {
		row := i + 2
		submitted := ""
		if r.SubmittedAt != nil {
			submitted = r.SubmittedAt.Format("2006-01-02 15:04")
		}
		locked := "no"
		if r.IsLocked {
			locked = "yes"
		}
		values := []any{r.Title, r.Type, r.Status, r.Date.Format("2006-01-02"), submitted, locked, ExtractText(r.Content)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return flushXLSX(f)
}

func flushXLSX(f *excelize.File) ([]byte, error) {
	defer f.Close()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
