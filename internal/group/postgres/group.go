package postgres

import (
	groupDatamodel "github.com/zeitwerk/zeitwerk/internal/core/datamodel/group"
	"github.com/zeitwerk/zeitwerk/internal/group"
	"gorm.io/gorm"
)

// GroupRepository implements the group.Repository interface using GORM
type GroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) group.Repository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(g *group.Group) error {
	dm := group.ToDataModel(g)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	g.ID = dm.ID
	return nil
}

func (r *GroupRepository) GetByID(id int64) (*group.Group, error) {
	var dm groupDatamodel.Group
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, group.ErrGroupNotFound
		}
		return nil, err
	}
	return group.FromDataModel(&dm), nil
}

func (r *GroupRepository) GetByName(name string) (*group.Group, error) {
	var dm groupDatamodel.Group
	err := r.db.Where("name = ?", name).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, group.ErrGroupNotFound
		}
		return nil, err
	}
	return group.FromDataModel(&dm), nil
}

func (r *GroupRepository) GetAll(includeInactive bool) ([]*group.Group, error) {
	q := r.db.Order("name ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}

	var dms []*groupDatamodel.Group
	if err := q.Find(&dms).Error; err != nil {
		return nil, err
	}
	return group.FromDataModelSlice(dms), nil
}

func (r *GroupRepository) Update(g *group.Group) error {
	return r.db.Save(group.ToDataModel(g)).Error
}
