package group

import (
	"log/slog"
	"time"
)

// Repository defines the data access methods the service needs
type Repository interface {
	Create(g *Group) error
	GetByID(id int64) (*Group, error)
	GetByName(name string) (*Group, error)
	GetAll(includeInactive bool) ([]*Group, error)
	Update(g *Group) error
}

// Service handles group management.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new group service
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(includeInactive bool) ([]*Group, error) {
	groups, err := s.repo.GetAll(includeInactive)
	if err != nil {
		s.logger.Error("failed to list groups", "error", err)
		return nil, err
	}
	return groups, nil
}

func (s *Service) GetByID(id int64) (*Group, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(dto CreateGroupDTO) (*Group, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkNameFree(dto.Name, 0); err != nil {
		return nil, err
	}

	now := time.Now()
	g := &Group{
		Name:      dto.Name,
		Color:     dto.Color,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(g); err != nil {
		s.logger.Error("failed to create group", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("group created", "group_id", g.ID, "name", g.Name)
	return g, nil
}

func (s *Service) Update(id int64, dto UpdateGroupDTO) (*Group, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	g, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.checkNameFree(dto.Name, id); err != nil {
		return nil, err
	}

	g.Name = dto.Name
	g.Color = dto.Color
	if dto.IsActive != nil {
		g.IsActive = *dto.IsActive
	}
	g.UpdatedAt = time.Now()

	if err := s.repo.Update(g); err != nil {
		s.logger.Error("failed to update group", "error", err, "group_id", id)
		return nil, err
	}

	s.logger.Info("group updated", "group_id", g.ID)
	return g, nil
}

// Deactivate soft-deletes a group; member users keep their assignment.
func (s *Service) Deactivate(id int64) error {
	g, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	g.IsActive = false
	g.UpdatedAt = time.Now()

	if err := s.repo.Update(g); err != nil {
		s.logger.Error("failed to deactivate group", "error", err, "group_id", id)
		return err
	}

	s.logger.Info("group deactivated", "group_id", id)
	return nil
}

func (s *Service) checkNameFree(name string, selfID int64) error {
	existing, err := s.repo.GetByName(name)
	if err != nil {
		if err == ErrGroupNotFound {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrGroupNameTaken
	}
	return nil
}
