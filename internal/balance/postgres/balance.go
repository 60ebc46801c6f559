package postgres

import (
	"github.com/zeitwerk/zeitwerk/internal/balance"
	timeentryDatamodel "github.com/zeitwerk/zeitwerk/internal/core/datamodel/timeentry"
	userDatamodel "github.com/zeitwerk/zeitwerk/internal/core/datamodel/user"
	"github.com/zeitwerk/zeitwerk/internal/timeentry"
	"github.com/zeitwerk/zeitwerk/internal/user"
	"gorm.io/gorm"
)

// BalanceRepository implements the balance.Repository read surface using GORM
type BalanceRepository struct {
	db *gorm.DB
}

// NewBalanceRepository creates a new balance repository
func NewBalanceRepository(db *gorm.DB) balance.Repository {
	return &BalanceRepository{db: db}
}

// GetAllForUser loads the user's complete entry history, oldest first
func (r *BalanceRepository) GetAllForUser(userID int64) ([]*timeentry.TimeEntry, error) {
	var dms []*timeentryDatamodel.TimeEntry
	err := r.db.Where("user_id = ?", userID).
		Order("entry_date ASC, start_time ASC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return timeentry.FromDataModelSlice(dms), nil
}

// GetTargetHours returns the user's daily target hours
func (r *BalanceRepository) GetTargetHours(userID int64) (int, error) {
	var dm userDatamodel.User
	err := r.db.Select("target_hours_per_day").Where("id = ?", userID).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, user.ErrUserNotFound
		}
		return 0, err
	}
	return dm.TargetHoursPerDay, nil
}
