package postgres

import (
	"time"

	"github.com/zeitwerk/zeitwerk/internal/core/datamodel/project"
	timeentryDatamodel "github.com/zeitwerk/zeitwerk/internal/core/datamodel/timeentry"
	"github.com/zeitwerk/zeitwerk/internal/core/datamodel/user"
	"github.com/zeitwerk/zeitwerk/internal/timeentry"
	"gorm.io/gorm"
)

// TimeEntryRepository implements the timeentry.Repository interface using GORM
type TimeEntryRepository struct {
	db *gorm.DB
}

// NewTimeEntryRepository creates a new time entry repository
func NewTimeEntryRepository(db *gorm.DB) timeentry.Repository {
	return &TimeEntryRepository{db: db}
}

// CreateChecked inserts a new entry after re-checking the overlap rule
// inside the insert transaction. The service pre-check is advisory;
// this is where the rule actually holds under concurrency.
func (r *TimeEntryRepository) CreateChecked(entry *timeentry.TimeEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := checkOverlapLocked(tx, entry); err != nil {
			return err
		}
		dm := timeentry.ToDataModel(entry)
		if err := tx.Create(dm).Error; err != nil {
			return err
		}
		entry.ID = dm.ID
		return nil
	})
}

// UpdateChecked saves an edited entry after re-checking the overlap rule
// in the same transaction, excluding the entry's own row.
func (r *TimeEntryRepository) UpdateChecked(entry *timeentry.TimeEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if entry.HasBothTimes() {
			if err := checkOverlapLocked(tx, entry); err != nil {
				return err
			}
		}
		return tx.Save(timeentry.ToDataModel(entry)).Error
	})
}

// GetByID retrieves a time entry by its ID
func (r *TimeEntryRepository) GetByID(id int64) (*timeentry.TimeEntry, error) {
	var dm timeentryDatamodel.TimeEntry
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, timeentry.ErrEntryNotFound
		}
		return nil, err
	}
	return timeentry.FromDataModel(&dm), nil
}

// GetForUserOnDate retrieves all of a user's entries on one calendar day
func (r *TimeEntryRepository) GetForUserOnDate(userID int64, date time.Time) ([]*timeentry.TimeEntry, error) {
	var dms []*timeentryDatamodel.TimeEntry
	err := r.db.Where("user_id = ? AND entry_date = ?", userID, date).
		Order("start_time ASC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return timeentry.FromDataModelSlice(dms), nil
}

// Search retrieves entries matching the filter, newest first, with the
// owner and project references attached.
func (r *TimeEntryRepository) Search(query timeentry.ListQuery) ([]*timeentry.TimeEntry, error) {
	q := r.db.Model(&timeentryDatamodel.TimeEntry{})
	if query.UserID != nil {
		q = q.Where("user_id = ?", *query.UserID)
	}
	if query.StartDate != nil {
		q = q.Where("entry_date >= ?", *query.StartDate)
	}
	if query.EndDate != nil {
		q = q.Where("entry_date <= ?", *query.EndDate)
	}

	var dms []*timeentryDatamodel.TimeEntry
	if err := q.Order("entry_date DESC, start_time DESC").Find(&dms).Error; err != nil {
		return nil, err
	}

	entries := timeentry.FromDataModelSlice(dms)
	if err := r.attachRefs(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetRunning returns the user's running entry, or nil when there is none
func (r *TimeEntryRepository) GetRunning(userID int64) (*timeentry.TimeEntry, error) {
	var dm timeentryDatamodel.TimeEntry
	err := r.db.Where("user_id = ? AND is_running = ?", userID, true).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return timeentry.FromDataModel(&dm), nil
}

// StartTimer closes any running entry of the user at the start instant
// and inserts the new running entry, all in one transaction. Together
// with the partial unique index on (user_id) WHERE is_running this
// keeps at most one running row per user.
func (r *TimeEntryRepository) StartTimer(entry *timeentry.TimeEntry, now time.Time) (*timeentry.TimeEntry, *timeentry.TimeEntry, error) {
	var stopped *timeentry.TimeEntry

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var running timeentryDatamodel.TimeEntry
		err := tx.Where("user_id = ? AND is_running = ?", entry.UserID, true).First(&running).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}
		if err == nil {
			running.EndTime = &now
			running.IsRunning = false
			running.UpdatedAt = now
			if err := tx.Save(&running).Error; err != nil {
				return err
			}
			stopped = timeentry.FromDataModel(&running)
		}

		dm := timeentry.ToDataModel(entry)
		if err := tx.Create(dm).Error; err != nil {
			return err
		}
		entry.ID = dm.ID
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return entry, stopped, nil
}

// StopRunning closes the user's running entry at the given instant.
// Returns nil, nil when there is nothing to stop.
func (r *TimeEntryRepository) StopRunning(userID int64, now time.Time) (*timeentry.TimeEntry, error) {
	var stopped *timeentry.TimeEntry

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var running timeentryDatamodel.TimeEntry
		err := tx.Where("user_id = ? AND is_running = ?", userID, true).First(&running).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}

		running.EndTime = &now
		running.IsRunning = false
		running.UpdatedAt = now
		if err := tx.Save(&running).Error; err != nil {
			return err
		}
		stopped = timeentry.FromDataModel(&running)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stopped, nil
}

// Delete removes a time entry
func (r *TimeEntryRepository) Delete(id int64) error {
	return r.db.Delete(&timeentryDatamodel.TimeEntry{}, id).Error
}

// checkOverlapLocked counts closed entries of the same user on the same
// date whose half-open range intersects the candidate's. Runs inside
// the caller's transaction.
func checkOverlapLocked(tx *gorm.DB, entry *timeentry.TimeEntry) error {
	if !entry.HasBothTimes() {
		return nil
	}

	var count int64
	err := tx.Model(&timeentryDatamodel.TimeEntry{}).
		Where("user_id = ? AND entry_date = ?", entry.UserID, entry.Date).
		Where("end_time IS NOT NULL").
		Where("start_time < ? AND end_time > ?", *entry.EndTime, entry.StartTime).
		Where("id <> ?", entry.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return timeentry.ErrEntryOverlap
	}
	return nil
}

// attachRefs batch-loads the owner and project rows referenced by the
// result set and attaches the trimmed-down views.
func (r *TimeEntryRepository) attachRefs(entries []*timeentry.TimeEntry) error {
	if len(entries) == 0 {
		return nil
	}

	userIDs := make([]int64, 0, len(entries))
	projectIDs := make([]int64, 0, len(entries))
	seenUsers := make(map[int64]bool)
	seenProjects := make(map[int64]bool)
	for _, e := range entries {
		if !seenUsers[e.UserID] {
			seenUsers[e.UserID] = true
			userIDs = append(userIDs, e.UserID)
		}
		if e.ProjectID != nil && !seenProjects[*e.ProjectID] {
			seenProjects[*e.ProjectID] = true
			projectIDs = append(projectIDs, *e.ProjectID)
		}
	}

	var users []user.User
	if err := r.db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return err
	}
	userRefs := make(map[int64]*timeentry.UserRef, len(users))
	for i := range users {
		u := users[i]
		userRefs[u.ID] = &timeentry.UserRef{
			ID:                u.ID,
			FirstName:         u.FirstName,
			LastName:          u.LastName,
			HourlyRate:        u.HourlyRate,
			TargetHoursPerDay: u.TargetHoursPerDay,
		}
	}

	projectRefs := make(map[int64]*timeentry.ProjectRef)
	if len(projectIDs) > 0 {
		var projects []project.Project
		if err := r.db.Where("id IN ?", projectIDs).Find(&projects).Error; err != nil {
			return err
		}
		for i := range projects {
			p := projects[i]
			projectRefs[p.ID] = &timeentry.ProjectRef{
				ID:    p.ID,
				Name:  p.Name,
				Color: p.Color,
			}
		}
	}

	for _, e := range entries {
		e.User = userRefs[e.UserID]
		if e.ProjectID != nil {
			e.Project = projectRefs[*e.ProjectID]
		}
	}
	return nil
}
