package group

import (
	"github.com/zeitwerk/zeitwerk/internal/core/common/validation"
)

type CreateGroupDTO struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (dto CreateGroupDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("color", dto.Color).MaxLength(20)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateGroupDTO struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func (dto UpdateGroupDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("color", dto.Color).MaxLength(20)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
