package report

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

// renderPDF writes the report as a PDF document. Detail rows replace
// the grouped summary when present.
func renderPDF(groups []*Group, details []DetailRow, query Query) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("Time Report", props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(10, func() {
			m.Col(12, func() {
				dateRange := fmt.Sprintf("%s - %s",
					query.StartDate.Format("2006-01-02"),
					query.EndDate.Format("2006-01-02"))
				m.Text(dateRange, props.Text{
					Top:   3,
					Align: consts.Center,
					Size:  12,
				})
			})
		})
	})

	if details != nil {
		renderDetailTable(m, details, query.IncludeCosts)
	} else {
		renderSummaryTable(m, groups, query.IncludeCosts)
	}

	renderGrandTotal(m, groups)

	buf, err := m.Output()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderSummaryTable(m pdf.Maroto, groups []*Group, includeCosts bool) {
	headers := summaryHeader(includeCosts)
	gridSizes := []uint{6, 3, 3}
	if includeCosts {
		gridSizes = []uint{4, 3, 2, 3}
	}

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, summaryRecord(g, includeCosts))
	}

	renderTable(m, headers, rows, gridSizes)
}

func renderDetailTable(m pdf.Maroto, details []DetailRow, includeCosts bool) {
	headers := []string{"Date", "Start", "End", "Hours", "Employee", "Project"}
	gridSizes := []uint{2, 2, 2, 2, 2, 2}
	if includeCosts {
		headers = append(headers, "Cost")
		gridSizes = []uint{2, 1, 1, 2, 2, 2, 2}
	}

	rows := make([][]string, 0, len(details))
	for _, d := range details {
		row := []string{d.Date, d.StartTime, d.EndTime, formatHours(d.Hours), d.Employee, d.Project}
		if includeCosts {
			row = append(row, formatCost(d.Cost))
		}
		rows = append(rows, row)
	}

	renderTable(m, headers, rows, gridSizes)
}

func renderTable(m pdf.Maroto, headers []string, rows [][]string, gridSizes []uint) {
	m.TableList(headers, rows, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      10,
			GridSizes: gridSizes,
		},
		ContentProp: props.TableListContent{
			Size:      9,
			GridSizes: gridSizes,
		},
		Align:                consts.Center,
		AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
		HeaderContentSpace:   1,
		Line:                 false,
	})
}

func renderGrandTotal(m pdf.Maroto, groups []*Group) {
	var totalHours float64
	totalEntries := 0
	for _, g := range groups {
		totalHours += g.TotalHours
		totalEntries += g.EntryCount
	}

	m.Row(20, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Total: %s hours over %s entries",
				formatHours(totalHours), strconv.Itoa(totalEntries)), props.Text{
				Top:   10,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  12,
			})
		})
	})
}
