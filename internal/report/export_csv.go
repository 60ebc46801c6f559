package report

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// renderCSV writes the report as CSV. A UTF-8 BOM is prepended so
// spreadsheet tools pick up the encoding. When detail rows are present
// they replace the grouped summary.
func renderCSV(groups []*Group, details []DetailRow, includeCosts bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)

	if details != nil {
		if err := w.Write(detailHeader(includeCosts)); err != nil {
			return nil, err
		}
		for _, row := range details {
			if err := w.Write(detailRecord(row, includeCosts)); err != nil {
				return nil, err
			}
		}
	} else {
		if err := w.Write(summaryHeader(includeCosts)); err != nil {
			return nil, err
		}
		for _, g := range groups {
			if err := w.Write(summaryRecord(g, includeCosts)); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func summaryHeader(includeCosts bool) []string {
	header := []string{"Period", "Total Hours", "Entry Count"}
	if includeCosts {
		header = append(header, "Costs")
	}
	return header
}

func summaryRecord(g *Group, includeCosts bool) []string {
	record := []string{
		g.Key,
		formatHours(g.TotalHours),
		strconv.Itoa(g.EntryCount),
	}
	if includeCosts {
		record = append(record, formatCost(g.TotalCosts))
	}
	return record
}

func detailHeader(includeCosts bool) []string {
	header := []string{"Date", "Start", "End", "Hours", "Break", "Description", "Employee", "Project", "Status"}
	if includeCosts {
		header = append(header, "Rate", "Cost")
	}
	return header
}

func detailRecord(row DetailRow, includeCosts bool) []string {
	record := []string{
		row.Date,
		row.StartTime,
		row.EndTime,
		formatHours(row.Hours),
		strconv.Itoa(row.BreakMinutes),
		row.Description,
		row.Employee,
		row.Project,
		row.Status,
	}
	if includeCosts {
		record = append(record, formatCost(row.HourlyRate), formatCost(row.Cost))
	}
	return record
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 2, 64)
}

func formatCost(cost *float64) string {
	if cost == nil {
		return "0.00"
	}
	return strconv.FormatFloat(*cost, 'f', 2, 64)
}
