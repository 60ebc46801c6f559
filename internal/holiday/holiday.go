package holiday

import (
	"time"

	"github.com/zeitwerk/zeitwerk/internal"
	holidayDatamodel "github.com/zeitwerk/zeitwerk/internal/core/datamodel/holiday"
)

// Holiday is a company-wide non-working day. Recurring holidays repeat
// every year on the same month and day.
type Holiday struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	IsRecurring bool      `json:"is_recurring"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var ErrHolidayNotFound = internal.NewNotFoundError("Holiday not found", internal.ErrCodeHolidayNotFound)

// OccursOn reports whether the holiday falls on the given date,
// accounting for yearly recurrence.
func (h *Holiday) OccursOn(date time.Time) bool {
	if h.IsRecurring {
		return h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
	}
	return h.Date.Year() == date.Year() &&
		h.Date.Month() == date.Month() &&
		h.Date.Day() == date.Day()
}

func ToDataModel(h *Holiday) *holidayDatamodel.Holiday {
	return &holidayDatamodel.Holiday{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date,
		IsRecurring: h.IsRecurring,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

func FromDataModel(h *holidayDatamodel.Holiday) *Holiday {
	return &Holiday{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date,
		IsRecurring: h.IsRecurring,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

func FromDataModelSlice(holidays []*holidayDatamodel.Holiday) []*Holiday {
	result := make([]*Holiday, len(holidays))
	for i, h := range holidays {
		result[i] = FromDataModel(h)
	}
	return result
}
