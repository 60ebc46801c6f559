package project

import (
	"log/slog"
	"time"
)

// Repository defines the data access methods the service needs
type Repository interface {
	Create(p *Project) error
	GetByID(id int64) (*Project, error)
	GetAll(includeInactive bool) ([]*Project, error)
	Update(p *Project) error
}

// Service handles project management. Listing filters on the active
// flag; deactivation stands in for deletion.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns projects, active only by default.
func (s *Service) List(includeInactive bool) ([]*Project, error) {
	projects, err := s.repo.GetAll(includeInactive)
	if err != nil {
		s.logger.Error("failed to list projects", "error", err)
		return nil, err
	}
	return projects, nil
}

func (s *Service) GetByID(id int64) (*Project, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(dto CreateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &Project{
		Name:        dto.Name,
		Description: dto.Description,
		Color:       dto.Color,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(p); err != nil {
		s.logger.Error("failed to create project", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("project created", "project_id", p.ID, "name", p.Name)
	return p, nil
}

func (s *Service) Update(id int64, dto UpdateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	p.Name = dto.Name
	p.Description = dto.Description
	p.Color = dto.Color
	if dto.IsActive != nil {
		p.IsActive = *dto.IsActive
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(p); err != nil {
		s.logger.Error("failed to update project", "error", err, "project_id", id)
		return nil, err
	}

	s.logger.Info("project updated", "project_id", p.ID)
	return p, nil
}

// Deactivate soft-deletes a project.
func (s *Service) Deactivate(id int64) error {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	p.IsActive = false
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(p); err != nil {
		s.logger.Error("failed to deactivate project", "error", err, "project_id", id)
		return err
	}

	s.logger.Info("project deactivated", "project_id", id)
	return nil
}
