package timeentry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zeitwerk/zeitwerk/internal/timeentry"
)

func ts(hour, min int) time.Time {
	return time.Date(2024, 1, 15, hour, min, 0, 0, time.UTC)
}

func closedEntry(id int64, start, end time.Time, breakMinutes int) *timeentry.TimeEntry {
	return &timeentry.TimeEntry{
		ID:           id,
		UserID:       1,
		Date:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    start,
		EndTime:      &end,
		BreakMinutes: breakMinutes,
	}
}

func TestNetHours(t *testing.T) {
	tests := []struct {
		name         string
		start        time.Time
		end          time.Time
		breakMinutes int
		want         float64
	}{
		{"two hours with half hour break", ts(9, 0), ts(11, 0), 30, 1.5},
		{"full work day", ts(9, 0), ts(17, 0), 30, 7.5},
		{"no break", ts(9, 0), ts(17, 0), 0, 8},
		{"end before start clamps to zero", ts(10, 0), ts(9, 0), 0, 0},
		{"break longer than span clamps to zero", ts(9, 0), ts(9, 30), 60, 0},
		{"zero length range", ts(9, 0), ts(9, 0), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := timeentry.NetHours(tt.start, tt.end, tt.breakMinutes)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestNetHoursShiftInvariant(t *testing.T) {
	// duration(s, s+2h, 30) = 1.5 regardless of s
	for _, hour := range []int{0, 6, 12, 22} {
		start := ts(hour, 0)
		end := start.Add(2 * time.Hour)
		assert.InDelta(t, 1.5, timeentry.NetHours(start, end, 30), 1e-9)
	}
}

func TestEntryNetHoursRunning(t *testing.T) {
	running := &timeentry.TimeEntry{
		StartTime: ts(9, 0),
		IsRunning: true,
	}
	assert.Zero(t, running.NetHours())
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		a      *timeentry.TimeEntry
		b      *timeentry.TimeEntry
		expect bool
	}{
		{
			"contained range overlaps",
			closedEntry(1, ts(10, 0), ts(11, 0), 0),
			closedEntry(2, ts(10, 30), ts(11, 30), 0),
			true,
		},
		{
			"touching boundary does not overlap",
			closedEntry(1, ts(10, 0), ts(11, 0), 0),
			closedEntry(2, ts(11, 0), ts(12, 0), 0),
			false,
		},
		{
			"disjoint ranges",
			closedEntry(1, ts(8, 0), ts(9, 0), 0),
			closedEntry(2, ts(13, 0), ts(14, 0), 0),
			false,
		},
		{
			"identical ranges overlap",
			closedEntry(1, ts(9, 0), ts(17, 0), 0),
			closedEntry(2, ts(9, 0), ts(17, 0), 0),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.a.Overlaps(tt.b))
			// overlap is symmetric
			assert.Equal(t, tt.expect, tt.b.Overlaps(tt.a))
		})
	}
}

func TestOverlapsIgnoresRunningEntries(t *testing.T) {
	closed := closedEntry(1, ts(9, 0), ts(17, 0), 0)
	running := &timeentry.TimeEntry{ID: 2, StartTime: ts(10, 0), IsRunning: true}

	assert.False(t, closed.Overlaps(running))
	assert.False(t, running.Overlaps(closed))
}

func TestHasOverlapSkipsOwnRow(t *testing.T) {
	existing := []*timeentry.TimeEntry{
		closedEntry(7, ts(9, 0), ts(12, 0), 0),
	}

	// editing entry 7 against itself is fine
	edited := closedEntry(7, ts(9, 30), ts(11, 0), 0)
	assert.False(t, timeentry.HasOverlap(edited, existing))

	// a different entry in the same range conflicts
	candidate := closedEntry(0, ts(9, 30), ts(11, 0), 0)
	assert.True(t, timeentry.HasOverlap(candidate, existing))
}

func TestUpdateDTOValidate(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	end := ts(17, 0)

	valid := timeentry.UpdateTimeEntryDTO{
		Date:      date,
		StartTime: ts(9, 0),
		EndTime:   &end,
	}
	// err must be the untyped nil interface, not a typed-nil *AppError
	assert.NoError(t, valid.Validate())

	open := timeentry.UpdateTimeEntryDTO{
		Date:      date,
		StartTime: ts(9, 0),
	}
	assert.NoError(t, open.Validate())

	before := ts(8, 0)
	inverted := timeentry.UpdateTimeEntryDTO{
		Date:      date,
		StartTime: ts(9, 0),
		EndTime:   &before,
	}
	assert.Error(t, inverted.Validate())
}
