package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zeitwerk/zeitwerk/internal/timeentry"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func closedEntry(date time.Time, hours float64, breakMinutes int) *timeentry.TimeEntry {
	start := date.Add(9 * time.Hour)
	end := start.Add(time.Duration(hours*float64(time.Hour)) + time.Duration(breakMinutes)*time.Minute)
	return &timeentry.TimeEntry{
		UserID:       1,
		Date:         date,
		StartTime:    start,
		EndTime:      &end,
		BreakMinutes: breakMinutes,
	}
}

func withUser(e *timeentry.TimeEntry, first, last string, rate *float64) *timeentry.TimeEntry {
	e.User = &timeentry.UserRef{ID: e.UserID, FirstName: first, LastName: last, HourlyRate: rate}
	return e
}

func withProject(e *timeentry.TimeEntry, name string) *timeentry.TimeEntry {
	e.Project = &timeentry.ProjectRef{ID: 1, Name: name}
	return e
}

func TestAggregateByDayPartitionsEntries(t *testing.T) {
	entries := []*timeentry.TimeEntry{
		closedEntry(day(2024, 1, 1), 7.5, 30),
		closedEntry(day(2024, 1, 1), 1, 0),
		closedEntry(day(2024, 1, 2), 4, 0),
	}

	groups := Aggregate(entries, GroupByDay, false)

	assert.Len(t, groups, 2)

	total := 0
	var hours float64
	for _, g := range groups {
		total += g.EntryCount
		hours += g.TotalHours
	}
	assert.Equal(t, len(entries), total)

	var expected float64
	for _, e := range entries {
		expected += e.NetHours()
	}
	assert.InDelta(t, expected, hours, 1e-9)
}

func TestAggregateSingleDayScenario(t *testing.T) {
	// 09:00-17:00 with a 30 minute break is 7.5 hours
	e := closedEntry(day(2024, 1, 1), 7.5, 30)

	groups := Aggregate([]*timeentry.TimeEntry{e}, GroupByDay, false)

	assert.Len(t, groups, 1)
	assert.Equal(t, "2024-01-01", groups[0].Key)
	assert.InDelta(t, 7.5, groups[0].TotalHours, 1e-9)
	assert.Nil(t, groups[0].TotalCosts)
}

func TestAggregateCosts(t *testing.T) {
	rate := 20.0
	e := withUser(closedEntry(day(2024, 1, 1), 7.5, 30), "Jane", "Doe", &rate)

	groups := Aggregate([]*timeentry.TimeEntry{e}, GroupByDay, true)

	assert.Len(t, groups, 1)
	if assert.NotNil(t, groups[0].TotalCosts) {
		assert.InDelta(t, 150.0, *groups[0].TotalCosts, 1e-9)
	}
}

func TestAggregateCostsMissingRateCountsZero(t *testing.T) {
	e := withUser(closedEntry(day(2024, 1, 1), 8, 0), "Jane", "Doe", nil)

	groups := Aggregate([]*timeentry.TimeEntry{e}, GroupByUser, true)

	if assert.NotNil(t, groups[0].TotalCosts) {
		assert.Zero(t, *groups[0].TotalCosts)
	}
}

func TestAggregateByWeekIsSundayAligned(t *testing.T) {
	// Monday 2024-01-15 belongs to the week starting Sunday 2024-01-14
	groups := Aggregate([]*timeentry.TimeEntry{closedEntry(day(2024, 1, 15), 8, 0)}, GroupByWeek, false)

	assert.Equal(t, "2024-01-14", groups[0].Key)

	// Sunday maps onto itself
	groups = Aggregate([]*timeentry.TimeEntry{closedEntry(day(2024, 1, 14), 2, 0)}, GroupByWeek, false)
	assert.Equal(t, "2024-01-14", groups[0].Key)
}

func TestAggregateByMonth(t *testing.T) {
	groups := Aggregate([]*timeentry.TimeEntry{closedEntry(day(2024, 1, 31), 8, 0)}, GroupByMonth, false)
	assert.Equal(t, "2024-01", groups[0].Key)
}

func TestAggregateSentinelKeys(t *testing.T) {
	noProject := closedEntry(day(2024, 1, 1), 1, 0)
	tagged := withProject(closedEntry(day(2024, 1, 1), 1, 0), "Client Work")

	groups := Aggregate([]*timeentry.TimeEntry{noProject, tagged}, GroupByProject, false)
	assert.Equal(t, "no project", groups[0].Key)
	assert.Equal(t, "Client Work", groups[1].Key)

	anonymous := closedEntry(day(2024, 1, 1), 1, 0)
	groups = Aggregate([]*timeentry.TimeEntry{anonymous}, GroupByUser, false)
	assert.Equal(t, "unknown", groups[0].Key)
}

func TestAggregateFirstSeenOrder(t *testing.T) {
	entries := []*timeentry.TimeEntry{
		closedEntry(day(2024, 1, 3), 1, 0),
		closedEntry(day(2024, 1, 1), 1, 0),
		closedEntry(day(2024, 1, 3), 1, 0),
		closedEntry(day(2024, 1, 2), 1, 0),
	}

	groups := Aggregate(entries, GroupByDay, false)

	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	assert.Equal(t, []string{"2024-01-03", "2024-01-01", "2024-01-02"}, keys)
}

func TestAggregateRunningEntryContributesZeroHours(t *testing.T) {
	running := &timeentry.TimeEntry{
		UserID:    1,
		Date:      day(2024, 1, 1),
		StartTime: day(2024, 1, 1).Add(9 * time.Hour),
		IsRunning: true,
	}

	groups := Aggregate([]*timeentry.TimeEntry{running}, GroupByDay, false)

	assert.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].EntryCount)
	assert.Zero(t, groups[0].TotalHours)
}

func TestFlatten(t *testing.T) {
	rate := 20.0
	e := withProject(withUser(closedEntry(day(2024, 1, 1), 7.5, 30), "Jane", "Doe", &rate), "Client Work")
	e.Status = "approved"

	rows := Flatten([]*timeentry.TimeEntry{e}, true)

	assert.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "2024-01-01", row.Date)
	assert.Equal(t, "09:00", row.StartTime)
	assert.Equal(t, "17:00", row.EndTime)
	assert.InDelta(t, 7.5, row.Hours, 1e-9)
	assert.Equal(t, 30, row.BreakMinutes)
	assert.Equal(t, "Jane Doe", row.Employee)
	assert.Equal(t, "Client Work", row.Project)
	assert.Equal(t, "approved", row.Status)
	if assert.NotNil(t, row.Cost) {
		assert.InDelta(t, 150.0, *row.Cost, 1e-9)
	}
}
