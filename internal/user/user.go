package user

import (
	"time"

	"github.com/zeitwerk/zeitwerk/internal"
	userDatamodel "github.com/zeitwerk/zeitwerk/internal/core/datamodel/user"
)

// User is the full account profile. The password hash never leaves the
// persistence layer through this type's JSON form.
type User struct {
	ID                int64     `json:"id"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	PasswordHash      string    `json:"-"`
	Role              string    `json:"role"`
	HourlyRate        *float64  `json:"hourly_rate,omitempty"`
	TargetHoursPerDay int       `json:"target_hours_per_day"`
	GroupID           *int64    `json:"group_id,omitempty"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

var (
	ErrUserNotFound = internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	ErrEmailTaken   = internal.NewValidationError("Email already in use", internal.ErrCodeEmailTaken)
)

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		PasswordHash:      u.PasswordHash,
		Role:              u.Role,
		HourlyRate:        u.HourlyRate,
		TargetHoursPerDay: u.TargetHoursPerDay,
		GroupID:           u.GroupID,
		IsActive:          u.IsActive,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		PasswordHash:      u.PasswordHash,
		Role:              u.Role,
		HourlyRate:        u.HourlyRate,
		TargetHoursPerDay: u.TargetHoursPerDay,
		GroupID:           u.GroupID,
		IsActive:          u.IsActive,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func FromDataModelSlice(users []*userDatamodel.User) []*User {
	result := make([]*User, len(users))
	for i, u := range users {
		result[i] = FromDataModel(u)
	}
	return result
}
