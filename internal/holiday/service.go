package holiday

import (
	"log/slog"
	"time"
)

// Repository defines the data access methods the service needs
type Repository interface {
	Create(h *Holiday) error
	GetByID(id int64) (*Holiday, error)
	GetAll() ([]*Holiday, error)
	Update(h *Holiday) error
	Delete(id int64) error
}

// Service handles holiday management. Holidays are plain rows without
// soft delete; removing one has no effect on logged entries.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new holiday service
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List() ([]*Holiday, error) {
	holidays, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list holidays", "error", err)
		return nil, err
	}
	return holidays, nil
}

// OccurringOn returns the holidays falling on the given date, expanding
// yearly recurrence.
func (s *Service) OccurringOn(date time.Time) ([]*Holiday, error) {
	holidays, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list holidays", "error", err)
		return nil, err
	}

	matched := make([]*Holiday, 0, len(holidays))
	for _, h := range holidays {
		if h.OccursOn(date) {
			matched = append(matched, h)
		}
	}
	return matched, nil
}

func (s *Service) GetByID(id int64) (*Holiday, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(dto CreateHolidayDTO) (*Holiday, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	h := &Holiday{
		Name:        dto.Name,
		Date:        dto.Date,
		IsRecurring: dto.IsRecurring,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(h); err != nil {
		s.logger.Error("failed to create holiday", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("holiday created", "holiday_id", h.ID, "name", h.Name)
	return h, nil
}

func (s *Service) Update(id int64, dto UpdateHolidayDTO) (*Holiday, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	h, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	h.Name = dto.Name
	h.Date = dto.Date
	h.IsRecurring = dto.IsRecurring
	h.UpdatedAt = time.Now()

	if err := s.repo.Update(h); err != nil {
		s.logger.Error("failed to update holiday", "error", err, "holiday_id", id)
		return nil, err
	}

	s.logger.Info("holiday updated", "holiday_id", h.ID)
	return h, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete holiday", "error", err, "holiday_id", id)
		return err
	}

	s.logger.Info("holiday deleted", "holiday_id", id)
	return nil
}
