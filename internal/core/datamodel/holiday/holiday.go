package holiday

import "time"

// Holiday is the persistence model for public holidays. Recurring
// holidays repeat yearly on the same month and day.
type Holiday struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Date        time.Time `gorm:"column:holiday_date;type:date;not null"`
	IsRecurring bool      `gorm:"column:is_recurring;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Holiday) TableName() string {
	return "holidays"
}
