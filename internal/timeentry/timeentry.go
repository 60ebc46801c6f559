package timeentry

import (
	"time"

	"github.com/zeitwerk/zeitwerk/internal"
	timeentryDatamodel "github.com/zeitwerk/zeitwerk/internal/core/datamodel/timeentry"
)

// Entry statuses
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

// UserRef is the embedded owner view on a listed entry.
type UserRef struct {
	ID                int64    `json:"id"`
	FirstName         string   `json:"first_name"`
	LastName          string   `json:"last_name"`
	HourlyRate        *float64 `json:"hourly_rate,omitempty"`
	TargetHoursPerDay int      `json:"target_hours_per_day"`
}

// ProjectRef is the embedded project view on a listed entry.
type ProjectRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type TimeEntry struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"user_id"`
	ProjectID    *int64      `json:"project_id,omitempty"`
	Date         time.Time   `json:"date"`
	StartTime    time.Time   `json:"start_time"`
	EndTime      *time.Time  `json:"end_time,omitempty"`
	BreakMinutes int         `json:"break_minutes"`
	Description  string      `json:"description"`
	Status       string      `json:"status"`
	IsRunning    bool        `json:"is_running"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	User         *UserRef    `json:"user,omitempty"`
	Project      *ProjectRef `json:"project,omitempty"`
}

// Domain errors
var (
	ErrEntryNotFound  = internal.NewNotFoundError("Time entry not found", internal.ErrCodeEntryNotFound)
	ErrEntryOverlap   = internal.NewValidationError("Time range overlaps an existing entry", internal.ErrCodeEntryOverlap)
	ErrNoRunningTimer = internal.NewValidationError("No running timer", internal.ErrCodeNoRunningTimer)
	ErrNotEntryOwner  = internal.NewForbiddenError("Not the owner of this time entry", internal.ErrCodeUnauthorizedEntry)
)

// NetHours computes the worked hours of a closed range net of break time.
// Negative results (break longer than the span, end before start) clamp
// to zero instead of erroring.
func NetHours(start, end time.Time, breakMinutes int) float64 {
	raw := end.Sub(start).Hours()
	net := raw - float64(breakMinutes)/60.0
	if net < 0 {
		return 0
	}
	return net
}

// NetHours returns the entry's worked hours. Running entries (no end
// time) contribute zero; balances and reports only count closed entries.
func (e *TimeEntry) NetHours() float64 {
	if e.EndTime == nil {
		return 0
	}
	return NetHours(e.StartTime, *e.EndTime, e.BreakMinutes)
}

// HasBothTimes reports whether the entry is a closed range.
func (e *TimeEntry) HasBothTimes() bool {
	return e.EndTime != nil
}

// Overlaps reports whether two closed ranges intersect. Intervals are
// half-open [start, end): touching endpoints do not overlap. Entries
// missing an end time never overlap anything.
func (e *TimeEntry) Overlaps(other *TimeEntry) bool {
	if !e.HasBothTimes() || !other.HasBothTimes() {
		return false
	}
	return e.StartTime.Before(*other.EndTime) && other.StartTime.Before(*e.EndTime)
}

// HasOverlap checks a candidate entry against the owner's existing
// entries on the same date. The candidate's own row (by ID) is skipped
// so edits don't collide with themselves.
func HasOverlap(candidate *TimeEntry, existing []*TimeEntry) bool {
	for _, other := range existing {
		if other.ID != 0 && other.ID == candidate.ID {
			continue
		}
		if candidate.Overlaps(other) {
			return true
		}
	}
	return false
}

func ToDataModel(e *TimeEntry) *timeentryDatamodel.TimeEntry {
	return &timeentryDatamodel.TimeEntry{
		ID:           e.ID,
		UserID:       e.UserID,
		ProjectID:    e.ProjectID,
		Date:         e.Date,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		BreakMinutes: e.BreakMinutes,
		Description:  e.Description,
		Status:       e.Status,
		IsRunning:    e.IsRunning,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func FromDataModel(e *timeentryDatamodel.TimeEntry) *TimeEntry {
	return &TimeEntry{
		ID:           e.ID,
		UserID:       e.UserID,
		ProjectID:    e.ProjectID,
		Date:         e.Date,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		BreakMinutes: e.BreakMinutes,
		Description:  e.Description,
		Status:       e.Status,
		IsRunning:    e.IsRunning,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func FromDataModelSlice(entries []*timeentryDatamodel.TimeEntry) []*TimeEntry {
	result := make([]*TimeEntry, len(entries))
	for i, e := range entries {
		result[i] = FromDataModel(e)
	}
	return result
}
