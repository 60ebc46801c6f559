package timeentry

import (
	"log/slog"
	"time"

	"github.com/zeitwerk/zeitwerk/internal"
	"github.com/zeitwerk/zeitwerk/internal/auth"
	"github.com/zeitwerk/zeitwerk/internal/observability/metrics"
)

// Repository defines the data access methods the service needs. The
// *Checked writes re-validate the overlap rule inside the same
// transaction as the write; the pre-check in the service only exists
// for fast feedback and is not the enforcement mechanism.
type Repository interface {
	CreateChecked(entry *TimeEntry) error
	UpdateChecked(entry *TimeEntry) error
	GetByID(id int64) (*TimeEntry, error)
	GetForUserOnDate(userID int64, date time.Time) ([]*TimeEntry, error)
	Search(query ListQuery) ([]*TimeEntry, error)
	GetRunning(userID int64) (*TimeEntry, error)
	StartTimer(entry *TimeEntry, now time.Time) (started *TimeEntry, stopped *TimeEntry, err error)
	StopRunning(userID int64, now time.Time) (*TimeEntry, error)
	Delete(id int64) error
}

// Service handles time entry business logic: CRUD with ownership
// checks, the overlap rule, and the timer state transitions.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new time entry service
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// List returns entries in the requested window. Non-admins only ever
// see their own entries regardless of the query flags.
func (s *Service) List(actor *auth.User, query ListQuery) ([]*TimeEntry, error) {
	if !actor.IsAdmin() {
		uid := actor.ID
		query.UserID = &uid
		query.ShowAll = false
	} else if !query.ShowAll && query.UserID == nil {
		uid := actor.ID
		query.UserID = &uid
	}

	entries, err := s.repo.Search(query)
	if err != nil {
		s.logger.Error("failed to list time entries", "error", err, "actor_id", actor.ID)
		return nil, err
	}
	return entries, nil
}

// GetRunning returns the actor's running entry, or nil when idle.
func (s *Service) GetRunning(actor *auth.User) (*TimeEntry, error) {
	entry, err := s.repo.GetRunning(actor.ID)
	if err != nil {
		s.logger.Error("failed to get running entry", "error", err, "actor_id", actor.ID)
		return nil, err
	}
	return entry, nil
}

// Create logs a manually entered closed range. The range must not
// overlap any existing entry of the owner on the same date.
func (s *Service) Create(actor *auth.User, dto CreateTimeEntryDTO) (*TimeEntry, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("time entry validation failed", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	ownerID := actor.ID
	if dto.UserID != nil {
		ownerID = *dto.UserID
	}
	if !actor.CanActFor(ownerID) {
		s.logger.Warn("create denied: not entry owner", "actor_id", actor.ID, "owner_id", ownerID)
		return nil, ErrNotEntryOwner
	}

	status := dto.Status
	if status == "" {
		status = StatusDraft
	}

	now := s.now()
	entry := &TimeEntry{
		UserID:       ownerID,
		ProjectID:    dto.ProjectID,
		Date:         dateOnly(dto.Date),
		StartTime:    dto.StartTime,
		EndTime:      dto.EndTime,
		BreakMinutes: dto.BreakMinutes,
		Description:  dto.Description,
		Status:       status,
		IsRunning:    false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.checkOverlap(entry); err != nil {
		return nil, err
	}

	if err := s.repo.CreateChecked(entry); err != nil {
		s.logger.Error("failed to create time entry", "error", err, "owner_id", ownerID)
		return nil, err
	}

	s.logger.Info("time entry created",
		"entry_id", entry.ID,
		"owner_id", ownerID,
		"date", entry.Date.Format("2006-01-02"),
		"hours", entry.NetHours())

	return entry, nil
}

// Update edits an entry through the generic path. Editing the running
// entry is permitted; giving it an end time stops it.
func (s *Service) Update(actor *auth.User, id int64, dto UpdateTimeEntryDTO) (*TimeEntry, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("time entry validation failed", "error", err, "entry_id", id)
		return nil, err
	}

	entry, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.CanActFor(entry.UserID) {
		s.logger.Warn("update denied: not entry owner", "actor_id", actor.ID, "entry_id", id)
		return nil, ErrNotEntryOwner
	}

	if dto.EndTime == nil && !entry.IsRunning {
		return nil, internal.NewValidationFieldError("end_time", "end_time is required on a stopped entry", internal.ErrCodeInvalidTimeRange)
	}

	wasRunning := entry.IsRunning

	entry.ProjectID = dto.ProjectID
	entry.Date = dateOnly(dto.Date)
	entry.StartTime = dto.StartTime
	entry.EndTime = dto.EndTime
	entry.BreakMinutes = dto.BreakMinutes
	entry.Description = dto.Description
	if dto.Status != "" {
		entry.Status = dto.Status
	}
	if dto.EndTime != nil {
		entry.IsRunning = false
	}
	entry.UpdatedAt = s.now()

	if entry.HasBothTimes() {
		if err := s.checkOverlap(entry); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateChecked(entry); err != nil {
		s.logger.Error("failed to update time entry", "error", err, "entry_id", id)
		return nil, err
	}

	if wasRunning && !entry.IsRunning {
		metrics.DecrementRunningTimers()
	}

	s.logger.Info("time entry updated", "entry_id", entry.ID, "actor_id", actor.ID)
	return entry, nil
}

// Delete removes an entry. The running entry may be deleted like any
// other; the timer simply ends up idle.
func (s *Service) Delete(actor *auth.User, id int64) error {
	entry, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if !actor.CanActFor(entry.UserID) {
		s.logger.Warn("delete denied: not entry owner", "actor_id", actor.ID, "entry_id", id)
		return ErrNotEntryOwner
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete time entry", "error", err, "entry_id", id)
		return err
	}

	if entry.IsRunning {
		metrics.DecrementRunningTimers()
	}

	s.logger.Info("time entry deleted", "entry_id", id, "actor_id", actor.ID)
	return nil
}

// StartTimer opens a running entry for the actor. A previously running
// entry is silently closed at the new start instant; the repository
// performs both writes in one transaction so two concurrent starts
// cannot leave two running rows.
func (s *Service) StartTimer(actor *auth.User, dto StartTimerDTO) (*TimeEntry, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	entry := &TimeEntry{
		UserID:      actor.ID,
		ProjectID:   dto.ProjectID,
		Date:        dateOnly(now),
		StartTime:   now,
		Description: dto.Description,
		Status:      StatusDraft,
		IsRunning:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	started, stopped, err := s.repo.StartTimer(entry, now)
	if err != nil {
		metrics.ObserveTimerTransition("start", "error")
		s.logger.Error("failed to start timer", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	metrics.ObserveTimerTransition("start", "ok")
	if stopped == nil {
		metrics.IncrementRunningTimers()
	}

	if stopped != nil {
		s.logger.Info("previous timer stopped implicitly",
			"stopped_entry_id", stopped.ID,
			"actor_id", actor.ID)
	}
	s.logger.Info("timer started", "entry_id", started.ID, "actor_id", actor.ID)

	return started, nil
}

// StopTimer closes the actor's running entry. Stopping with no running
// entry is an error, not a no-op.
func (s *Service) StopTimer(actor *auth.User) (*TimeEntry, error) {
	now := s.now()
	stopped, err := s.repo.StopRunning(actor.ID, now)
	if err != nil {
		metrics.ObserveTimerTransition("stop", "error")
		s.logger.Error("failed to stop timer", "error", err, "actor_id", actor.ID)
		return nil, err
	}
	if stopped == nil {
		metrics.ObserveTimerTransition("stop", "no_running_timer")
		return nil, ErrNoRunningTimer
	}

	metrics.ObserveTimerTransition("stop", "ok")
	metrics.DecrementRunningTimers()

	s.logger.Info("timer stopped",
		"entry_id", stopped.ID,
		"actor_id", actor.ID,
		"hours", stopped.NetHours())

	return stopped, nil
}

func (s *Service) checkOverlap(entry *TimeEntry) error {
	existing, err := s.repo.GetForUserOnDate(entry.UserID, entry.Date)
	if err != nil {
		s.logger.Error("failed to load entries for overlap check", "error", err, "owner_id", entry.UserID)
		return err
	}
	if HasOverlap(entry, existing) {
		s.logger.Warn("overlapping time range rejected",
			"owner_id", entry.UserID,
			"date", entry.Date.Format("2006-01-02"))
		return ErrEntryOverlap
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
