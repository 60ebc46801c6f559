package balance

import (
	"time"

	"github.com/zeitwerk/zeitwerk/internal/timeentry"
)

// WindowBalance is one window of the overtime account: hours actually
// worked, the target for the window, and the signed delta. Positive
// delta is overtime, negative is undertime.
type WindowBalance struct {
	Worked  float64 `json:"worked"`
	Target  float64 `json:"target"`
	Balance float64 `json:"balance"`
}

// Balances is the full overtime account of one user.
type Balances struct {
	Today WindowBalance `json:"today"`
	Week  WindowBalance `json:"week"`
	Month WindowBalance `json:"month"`
	Total WindowBalance `json:"total"`
}

// Compute derives all four balance windows from a user's complete entry
// history. Running entries contribute zero worked hours. Windows bucket
// by the entry date, not the start instant.
//
// Targets: day = targetHoursPerDay; week = x5 over a Monday-start week,
// weekends carry no target; month = x22, a fixed approximation rather
// than the weekday count of the calendar month. The all-time target
// counts the actual weekdays (Mon-Fri) from the earliest entry date
// through today; holidays are not subtracted.
func Compute(entries []*timeentry.TimeEntry, targetHoursPerDay int, now time.Time) Balances {
	target := float64(targetHoursPerDay)

	today := dateOnly(now)
	weekStart := mondayOf(today)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	var workedToday, workedWeek, workedMonth, workedTotal float64
	var earliest time.Time

	for _, e := range entries {
		hours := e.NetHours()
		d := dateOnly(e.Date)

		workedTotal += hours
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
		if d.Equal(today) {
			workedToday += hours
		}
		if !d.Before(weekStart) && !d.After(today) {
			workedWeek += hours
		}
		if !d.Before(monthStart) && !d.After(today) {
			workedMonth += hours
		}
	}

	totalTarget := 0.0
	if !earliest.IsZero() {
		totalTarget = float64(countWeekdays(earliest, today)) * target
	}

	return Balances{
		Today: window(workedToday, target),
		Week:  window(workedWeek, target*5),
		Month: window(workedMonth, target*22),
		Total: window(workedTotal, totalTarget),
	}
}

func window(worked, target float64) WindowBalance {
	return WindowBalance{Worked: worked, Target: target, Balance: worked - target}
}

// mondayOf returns the Monday of the week containing d.
func mondayOf(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// countWeekdays counts Mon-Fri days in the inclusive range [from, to].
func countWeekdays(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
