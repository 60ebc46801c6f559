package project

import (
	"github.com/zeitwerk/zeitwerk/internal/core/common/validation"
)

type CreateProjectDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func (dto CreateProjectDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("description", dto.Description).MaxLength(500)
	v.Field("color", dto.Color).MaxLength(20)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateProjectDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

func (dto UpdateProjectDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("description", dto.Description).MaxLength(500)
	v.Field("color", dto.Color).MaxLength(20)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
