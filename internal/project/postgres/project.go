package postgres

import (
	projectDatamodel "github.com/zeitwerk/zeitwerk/internal/core/datamodel/project"
	"github.com/zeitwerk/zeitwerk/internal/project"
	"gorm.io/gorm"
)

// ProjectRepository implements the project.Repository interface using GORM
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) project.Repository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(p *project.Project) error {
	dm := project.ToDataModel(p)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	p.ID = dm.ID
	return nil
}

func (r *ProjectRepository) GetByID(id int64) (*project.Project, error) {
	var dm projectDatamodel.Project
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, project.ErrProjectNotFound
		}
		return nil, err
	}
	return project.FromDataModel(&dm), nil
}

func (r *ProjectRepository) GetAll(includeInactive bool) ([]*project.Project, error) {
	q := r.db.Order("name ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}

	var dms []*projectDatamodel.Project
	if err := q.Find(&dms).Error; err != nil {
		return nil, err
	}
	return project.FromDataModelSlice(dms), nil
}

func (r *ProjectRepository) Update(p *project.Project) error {
	return r.db.Save(project.ToDataModel(p)).Error
}
