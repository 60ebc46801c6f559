package balance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zeitwerk/zeitwerk/internal/balance"
	"github.com/zeitwerk/zeitwerk/internal/timeentry"
)

// Wednesday 2024-01-17; the week runs Mon 2024-01-15 through Sun 2024-01-21.
var now = time.Date(2024, 1, 17, 14, 0, 0, 0, time.UTC)

func entryOn(date time.Time, hours float64) *timeentry.TimeEntry {
	start := date.Add(9 * time.Hour)
	end := start.Add(time.Duration(hours * float64(time.Hour)))
	return &timeentry.TimeEntry{
		UserID:    1,
		Date:      date,
		StartTime: start,
		EndTime:   &end,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeTodayWindow(t *testing.T) {
	// exactly the target worked today balances to zero
	entries := []*timeentry.TimeEntry{entryOn(day(2024, 1, 17), 8)}

	b := balance.Compute(entries, 8, now)

	assert.InDelta(t, 8.0, b.Today.Worked, 1e-9)
	assert.InDelta(t, 8.0, b.Today.Target, 1e-9)
	assert.InDelta(t, 0.0, b.Today.Balance, 1e-9)
}

func TestComputeWeekWindow(t *testing.T) {
	entries := []*timeentry.TimeEntry{
		entryOn(day(2024, 1, 15), 8), // Monday, this week
		entryOn(day(2024, 1, 16), 8), // Tuesday, this week
		entryOn(day(2024, 1, 14), 8), // Sunday, previous week
	}

	b := balance.Compute(entries, 8, now)

	assert.InDelta(t, 16.0, b.Week.Worked, 1e-9)
	assert.InDelta(t, 40.0, b.Week.Target, 1e-9)
	assert.InDelta(t, -24.0, b.Week.Balance, 1e-9)
}

func TestComputeMonthWindowUsesFixedTarget(t *testing.T) {
	entries := []*timeentry.TimeEntry{
		entryOn(day(2024, 1, 2), 8),
		entryOn(day(2024, 1, 3), 8),
		entryOn(day(2023, 12, 28), 8), // previous month
	}

	b := balance.Compute(entries, 8, now)

	assert.InDelta(t, 16.0, b.Month.Worked, 1e-9)
	// fixed x22 approximation, not January's literal weekday count
	assert.InDelta(t, 176.0, b.Month.Target, 1e-9)
}

func TestComputeRunningEntriesContributeZero(t *testing.T) {
	running := &timeentry.TimeEntry{
		UserID:    1,
		Date:      day(2024, 1, 17),
		StartTime: day(2024, 1, 17).Add(9 * time.Hour),
		IsRunning: true,
	}
	entries := []*timeentry.TimeEntry{running, entryOn(day(2024, 1, 17), 4)}

	b := balance.Compute(entries, 8, now)

	assert.InDelta(t, 4.0, b.Today.Worked, 1e-9)
}

func TestComputeTotalCountsWeekdaysOnly(t *testing.T) {
	// first entry Monday 2024-01-15, now Wednesday 2024-01-17: three weekdays
	entries := []*timeentry.TimeEntry{
		entryOn(day(2024, 1, 15), 8),
		entryOn(day(2024, 1, 16), 8),
		entryOn(day(2024, 1, 17), 8),
	}

	b := balance.Compute(entries, 8, now)

	assert.InDelta(t, 24.0, b.Total.Worked, 1e-9)
	assert.InDelta(t, 24.0, b.Total.Target, 1e-9)
	assert.InDelta(t, 0.0, b.Total.Balance, 1e-9)
}

func TestComputeEmptyHistory(t *testing.T) {
	b := balance.Compute(nil, 8, now)

	assert.Zero(t, b.Total.Worked)
	assert.Zero(t, b.Total.Target)
	assert.InDelta(t, -8.0, b.Today.Balance, 1e-9)
}

func TestComputeWeekendCarriesNoExtraTarget(t *testing.T) {
	// Saturday work counts toward worked hours but the weekly target stays x5
	saturday := day(2024, 1, 13)
	sundayNow := time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)

	b := balance.Compute([]*timeentry.TimeEntry{entryOn(saturday, 6)}, 8, sundayNow)

	assert.InDelta(t, 6.0, b.Week.Worked, 1e-9)
	assert.InDelta(t, 40.0, b.Week.Target, 1e-9)
}
