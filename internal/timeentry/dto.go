package timeentry

import (
	"time"

	"github.com/zeitwerk/zeitwerk/internal"
	"github.com/zeitwerk/zeitwerk/internal/core/common/validation"
)

// CreateTimeEntryDTO is the request payload for manually logging a
// closed time range. Timer-started entries go through StartTimerDTO.
type CreateTimeEntryDTO struct {
	UserID       *int64     `json:"user_id,omitempty"`
	ProjectID    *int64     `json:"project_id,omitempty"`
	Date         time.Time  `json:"date"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	BreakMinutes int        `json:"break_minutes"`
	Description  string     `json:"description"`
	Status       string     `json:"status,omitempty"`
}

func (dto CreateTimeEntryDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("date", dto.Date).Required()
	v.Field("start_time", dto.StartTime).Required()
	v.Field("description", dto.Description).MaxLength(500)
	v.Field("status", dto.Status).OneOf(StatusDraft, StatusSubmitted, StatusApproved, StatusRejected)
	if err := v.Validate(); err != nil {
		return err
	}
	if err := validation.ValidateBreakMinutes(dto.BreakMinutes); err != nil {
		return err
	}
	if err := validation.ValidateTimeRange(dto.StartTime, dto.EndTime); err != nil {
		return err
	}
	if dto.EndTime == nil {
		return internal.NewValidationFieldError("end_time", "end_time is required for manual entries", internal.ErrCodeInvalidTimeRange)
	}
	return nil
}

// UpdateTimeEntryDTO carries a full replacement of the editable fields.
type UpdateTimeEntryDTO struct {
	ProjectID    *int64     `json:"project_id,omitempty"`
	Date         time.Time  `json:"date"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	BreakMinutes int        `json:"break_minutes"`
	Description  string     `json:"description"`
	Status       string     `json:"status,omitempty"`
}

func (dto UpdateTimeEntryDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("date", dto.Date).Required()
	v.Field("start_time", dto.StartTime).Required()
	v.Field("description", dto.Description).MaxLength(500)
	v.Field("status", dto.Status).OneOf(StatusDraft, StatusSubmitted, StatusApproved, StatusRejected)
	if err := v.Validate(); err != nil {
		return err
	}
	if err := validation.ValidateBreakMinutes(dto.BreakMinutes); err != nil {
		return err
	}
	if err := validation.ValidateTimeRange(dto.StartTime, dto.EndTime); err != nil {
		return err
	}
	return nil
}

// StartTimerDTO is the request payload for starting a running entry.
type StartTimerDTO struct {
	ProjectID   *int64 `json:"project_id,omitempty"`
	Description string `json:"description"`
}

func (dto StartTimerDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("description", dto.Description).MaxLength(500)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ListQuery holds the decoded filters of GET /time-entries.
type ListQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
	UserID    *int64
	ShowAll   bool
}
