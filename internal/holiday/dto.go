package holiday

import (
	"time"

	"github.com/zeitwerk/zeitwerk/internal/core/common/validation"
)

type CreateHolidayDTO struct {
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	IsRecurring bool      `json:"is_recurring"`
}

func (dto CreateHolidayDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("date", dto.Date).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateHolidayDTO struct {
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	IsRecurring bool      `json:"is_recurring"`
}

func (dto UpdateHolidayDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("date", dto.Date).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
