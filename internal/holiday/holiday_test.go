package holiday

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOccursOn(t *testing.T) {
	tests := []struct {
		name    string
		holiday Holiday
		date    time.Time
		expect  bool
	}{
		{
			"recurring matches any year",
			Holiday{Name: "Labour Day", Date: day(2020, time.May, 1), IsRecurring: true},
			day(2024, time.May, 1),
			true,
		},
		{
			"recurring rejects other days",
			Holiday{Name: "Labour Day", Date: day(2020, time.May, 1), IsRecurring: true},
			day(2024, time.May, 2),
			false,
		},
		{
			"one-off matches only its own year",
			Holiday{Name: "Company Anniversary", Date: day(2024, time.June, 12)},
			day(2024, time.June, 12),
			true,
		},
		{
			"one-off rejects the same day next year",
			Holiday{Name: "Company Anniversary", Date: day(2024, time.June, 12)},
			day(2025, time.June, 12),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.holiday.OccursOn(tt.date))
		})
	}
}

type stubRepository struct {
	holidays []*Holiday
}

func (s *stubRepository) Create(h *Holiday) error            { return nil }
func (s *stubRepository) GetByID(id int64) (*Holiday, error) { return nil, ErrHolidayNotFound }
func (s *stubRepository) GetAll() ([]*Holiday, error)        { return s.holidays, nil }
func (s *stubRepository) Update(h *Holiday) error            { return nil }
func (s *stubRepository) Delete(id int64) error              { return nil }

func TestOccurringOnFiltersRecurrence(t *testing.T) {
	repo := &stubRepository{holidays: []*Holiday{
		{ID: 1, Name: "New Year's Day", Date: day(2020, time.January, 1), IsRecurring: true},
		{ID: 2, Name: "Company Anniversary", Date: day(2023, time.January, 1)},
		{ID: 3, Name: "Christmas Day", Date: day(2020, time.December, 25), IsRecurring: true},
	}}
	service := NewService(repo, slog.Default())

	matched, err := service.OccurringOn(day(2024, time.January, 1))
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "New Year's Day", matched[0].Name)

	matched, err = service.OccurringOn(day(2023, time.January, 1))
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	matched, err = service.OccurringOn(day(2024, time.March, 15))
	require.NoError(t, err)
	assert.Empty(t, matched)
}
