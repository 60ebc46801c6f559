package user

import "time"

// User is the persistence model for application accounts.
type User struct {
	ID                int64      `gorm:"primaryKey"`
	Email             string     `gorm:"column:email;uniqueIndex;not null"`
	FirstName         string     `gorm:"column:first_name"`
	LastName          string     `gorm:"column:last_name"`
	PasswordHash      string     `gorm:"column:password_hash;not null"`
	Role              string     `gorm:"column:role;default:employee"`
	HourlyRate        *float64   `gorm:"column:hourly_rate;type:decimal(10,2)"`
	TargetHoursPerDay int        `gorm:"column:target_hours_per_day;default:8"`
	GroupID           *int64     `gorm:"column:group_id"`
	IsActive          bool       `gorm:"column:is_active;default:true"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt         *time.Time `gorm:"column:deleted_at"`
}

func (User) TableName() string {
	return "users"
}
