package report

import (
	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

// renderXLSX writes the report as an Excel workbook with a single
// sheet. Detail rows replace the grouped summary when present.
func renderXLSX(groups []*Group, details []DetailRow, includeCosts bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	if details != nil {
		if err := writeDetailSheet(f, details, includeCosts); err != nil {
			return nil, err
		}
	} else {
		if err := writeSummarySheet(f, groups, includeCosts); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, groups []*Group, includeCosts bool) error {
	if err := writeRow(f, 1, summaryHeader(includeCosts)); err != nil {
		return err
	}

	for i, g := range groups {
		row := i + 2
		cells := []interface{}{g.Key, g.TotalHours, g.EntryCount}
		if includeCosts {
			cells = append(cells, costValue(g.TotalCosts))
		}
		if err := writeCells(f, row, cells); err != nil {
			return err
		}
	}

	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "D", 12)
	return nil
}

func writeDetailSheet(f *excelize.File, details []DetailRow, includeCosts bool) error {
	if err := writeRow(f, 1, detailHeader(includeCosts)); err != nil {
		return err
	}

	for i, d := range details {
		row := i + 2
		cells := []interface{}{
			d.Date, d.StartTime, d.EndTime, d.Hours, d.BreakMinutes,
			d.Description, d.Employee, d.Project, d.Status,
		}
		if includeCosts {
			cells = append(cells, costValue(d.HourlyRate), costValue(d.Cost))
		}
		if err := writeCells(f, row, cells); err != nil {
			return err
		}
	}

	f.SetColWidth(sheetName, "A", "C", 12)
	f.SetColWidth(sheetName, "F", "F", 30)
	f.SetColWidth(sheetName, "G", "H", 18)
	return nil
}

func writeRow(f *excelize.File, row int, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return writeCells(f, row, cells)
}

func writeCells(f *excelize.File, row int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func costValue(cost *float64) float64 {
	if cost == nil {
		return 0
	}
	return *cost
}
