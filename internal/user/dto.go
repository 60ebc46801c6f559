package user

import (
	"strings"

	"github.com/zeitwerk/zeitwerk/internal"
	"github.com/zeitwerk/zeitwerk/internal/auth"
	"github.com/zeitwerk/zeitwerk/internal/core/common/validation"
)

type CreateUserDTO struct {
	Email             string   `json:"email"`
	FirstName         string   `json:"first_name"`
	LastName          string   `json:"last_name"`
	Password          string   `json:"password"`
	Role              string   `json:"role"`
	HourlyRate        *float64 `json:"hourly_rate,omitempty"`
	TargetHoursPerDay int      `json:"target_hours_per_day"`
	GroupID           *int64   `json:"group_id,omitempty"`
}

func (dto CreateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", dto.Email).Required().MaxLength(255)
	v.Field("first_name", dto.FirstName).Required().MaxLength(100)
	v.Field("last_name", dto.LastName).Required().MaxLength(100)
	v.Field("password", dto.Password).Required().MinLength(8)
	v.Field("role", dto.Role).OneOf(auth.RoleEmployee, auth.RoleAdmin)
	if err := v.Validate(); err != nil {
		return err
	}
	return validateTargetHours(dto.TargetHoursPerDay)
}

type UpdateUserDTO struct {
	Email             string   `json:"email"`
	FirstName         string   `json:"first_name"`
	LastName          string   `json:"last_name"`
	Password          string   `json:"password,omitempty"`
	Role              string   `json:"role"`
	HourlyRate        *float64 `json:"hourly_rate,omitempty"`
	TargetHoursPerDay int      `json:"target_hours_per_day"`
	GroupID           *int64   `json:"group_id,omitempty"`
	IsActive          *bool    `json:"is_active,omitempty"`
}

func (dto UpdateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", dto.Email).Required().MaxLength(255)
	v.Field("first_name", dto.FirstName).Required().MaxLength(100)
	v.Field("last_name", dto.LastName).Required().MaxLength(100)
	v.Field("role", dto.Role).OneOf(auth.RoleEmployee, auth.RoleAdmin)
	if dto.Password != "" {
		v.Field("password", dto.Password).MinLength(8)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return validateTargetHours(dto.TargetHoursPerDay)
}

func validateTargetHours(hours int) error {
	v := validation.NewValidator()
	v.Field("target_hours_per_day", int64(hours)).
		MinInt(1, internal.ErrCodeValidationFailed).
		MaxInt(24, internal.ErrCodeValidationFailed)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
