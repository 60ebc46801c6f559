package timeentry

import "time"

// TimeEntry is the persistence model for logged working time.
// EndTime is null while the entry is running.
type TimeEntry struct {
	ID           int64      `gorm:"primaryKey"`
	UserID       int64      `gorm:"column:user_id;not null;index"`
	ProjectID    *int64     `gorm:"column:project_id;index"`
	Date         time.Time  `gorm:"column:entry_date;type:date;not null;index"`
	StartTime    time.Time  `gorm:"column:start_time;not null"`
	EndTime      *time.Time `gorm:"column:end_time"`
	BreakMinutes int        `gorm:"column:break_minutes;default:0"`
	Description  string     `gorm:"column:description"`
	Status       string     `gorm:"column:status;default:draft"`
	IsRunning    bool       `gorm:"column:is_running;default:false"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}
