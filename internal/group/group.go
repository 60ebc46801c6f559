package group

import (
	"time"

	"github.com/zeitwerk/zeitwerk/internal"
	groupDatamodel "github.com/zeitwerk/zeitwerk/internal/core/datamodel/group"
)

// Group is a team users can be assigned to, used for filtering admin
// views. Group names are unique among active groups.
type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrGroupNotFound  = internal.NewNotFoundError("Group not found", internal.ErrCodeGroupNotFound)
	ErrGroupNameTaken = internal.NewValidationError("Group name already in use", internal.ErrCodeGroupNameTaken)
)

func ToDataModel(g *Group) *groupDatamodel.Group {
	return &groupDatamodel.Group{
		ID:        g.ID,
		Name:      g.Name,
		Color:     g.Color,
		IsActive:  g.IsActive,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func FromDataModel(g *groupDatamodel.Group) *Group {
	return &Group{
		ID:        g.ID,
		Name:      g.Name,
		Color:     g.Color,
		IsActive:  g.IsActive,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func FromDataModelSlice(groups []*groupDatamodel.Group) []*Group {
	result := make([]*Group, len(groups))
	for i, g := range groups {
		result[i] = FromDataModel(g)
	}
	return result
}
