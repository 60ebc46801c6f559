package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/zeitwerk/zeitwerk/internal/timeentry"
)

// Grouping dimensions
const (
	GroupByDay     = "day"
	GroupByWeek    = "week"
	GroupByMonth   = "month"
	GroupByProject = "project"
	GroupByUser    = "user"
)

// Sentinel keys for entries missing the grouping attribute
const (
	keyNoProject   = "no project"
	keyUnknownUser = "unknown"
)

// Group is one aggregated bucket of a report.
type Group struct {
	Key        string                 `json:"key"`
	Entries    []*timeentry.TimeEntry `json:"entries"`
	EntryCount int                    `json:"entry_count"`
	TotalHours float64                `json:"total_hours"`
	TotalCosts *float64               `json:"total_costs,omitempty"`
}

// DetailRow is one flattened line of the admin detail view.
type DetailRow struct {
	Date         string   `json:"date"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	Hours        float64  `json:"hours"`
	BreakMinutes int      `json:"break_minutes"`
	Description  string   `json:"description"`
	Employee     string   `json:"employee"`
	Project      string   `json:"project"`
	Status       string   `json:"status"`
	HourlyRate   *float64 `json:"hourly_rate,omitempty"`
	Cost         *float64 `json:"cost,omitempty"`
}

// ValidGroupBy reports whether dim is a known grouping dimension.
func ValidGroupBy(dim string) bool {
	switch dim {
	case GroupByDay, GroupByWeek, GroupByMonth, GroupByProject, GroupByUser:
		return true
	}
	return false
}

// Aggregate buckets entries by the chosen dimension in a single pass.
// Group order follows first appearance of each key in the input, not a
// sort. Running entries land in their bucket but contribute zero hours.
// Costs are only computed when includeCosts is set; a missing hourly
// rate counts as zero.
func Aggregate(entries []*timeentry.TimeEntry, groupBy string, includeCosts bool) []*Group {
	groups := make(map[string]*Group)
	order := make([]*Group, 0)

	for _, e := range entries {
		key := groupKey(e, groupBy)
		g, ok := groups[key]
		if !ok {
			g = &Group{Key: key}
			groups[key] = g
			order = append(order, g)
		}

		hours := e.NetHours()
		g.Entries = append(g.Entries, e)
		g.EntryCount++
		g.TotalHours += hours

		if includeCosts {
			if g.TotalCosts == nil {
				g.TotalCosts = new(float64)
			}
			*g.TotalCosts += hours * hourlyRate(e)
		}
	}

	return order
}

// Flatten emits one row per entry for the line-level detail view.
func Flatten(entries []*timeentry.TimeEntry, includeCosts bool) []DetailRow {
	rows := make([]DetailRow, 0, len(entries))
	for _, e := range entries {
		row := DetailRow{
			Date:         e.Date.Format("2006-01-02"),
			StartTime:    e.StartTime.Format("15:04"),
			BreakMinutes: e.BreakMinutes,
			Hours:        e.NetHours(),
			Description:  e.Description,
			Employee:     employeeName(e),
			Project:      projectName(e),
			Status:       e.Status,
		}
		if e.EndTime != nil {
			row.EndTime = e.EndTime.Format("15:04")
		}
		if includeCosts {
			rate := hourlyRate(e)
			cost := row.Hours * rate
			row.HourlyRate = &rate
			row.Cost = &cost
		}
		rows = append(rows, row)
	}
	return rows
}

func groupKey(e *timeentry.TimeEntry, groupBy string) string {
	switch groupBy {
	case GroupByWeek:
		return sundayOf(e.Date).Format("2006-01-02")
	case GroupByMonth:
		return e.Date.Format("2006-01")
	case GroupByProject:
		return projectName(e)
	case GroupByUser:
		return employeeName(e)
	default:
		return e.Date.Format("2006-01-02")
	}
}

// sundayOf returns the Sunday on or before d. The report week starts on
// Sunday; the balance week starts on Monday. The mismatch is inherited
// behavior that downstream reports rely on, so it stays.
func sundayOf(d time.Time) time.Time {
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func projectName(e *timeentry.TimeEntry) string {
	if e.Project == nil || e.Project.Name == "" {
		return keyNoProject
	}
	return e.Project.Name
}

func employeeName(e *timeentry.TimeEntry) string {
	if e.User == nil {
		return keyUnknownUser
	}
	name := strings.TrimSpace(fmt.Sprintf("%s %s", e.User.FirstName, e.User.LastName))
	if name == "" {
		return keyUnknownUser
	}
	return name
}

func hourlyRate(e *timeentry.TimeEntry) float64 {
	if e.User == nil || e.User.HourlyRate == nil {
		return 0
	}
	return *e.User.HourlyRate
}
