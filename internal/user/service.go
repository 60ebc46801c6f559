package user

import (
	"log/slog"
	"time"

	"github.com/zeitwerk/zeitwerk/internal/auth"
)

// Repository defines the data access methods the service needs
type Repository interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	GetAll(includeInactive bool) ([]*User, error)
	Update(u *User) error
}

// Service handles account management. Passwords are hashed here before
// they reach the repository; deactivation stands in for deletion so
// entry history stays attributable.
type Service struct {
	repo       Repository
	logger     *slog.Logger
	bcryptCost int
}

// NewService creates a new user service
func NewService(repo Repository, logger *slog.Logger, bcryptCost int) *Service {
	return &Service{
		repo:       repo,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

func (s *Service) List(includeInactive bool) ([]*User, error) {
	users, err := s.repo.GetAll(includeInactive)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := normalizeEmail(dto.Email)
	if err := s.checkEmailFree(email, 0); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	role := dto.Role
	if role == "" {
		role = auth.RoleEmployee
	}
	target := dto.TargetHoursPerDay
	if target == 0 {
		target = 8
	}

	now := time.Now()
	u := &User{
		Email:             email,
		FirstName:         dto.FirstName,
		LastName:          dto.LastName,
		PasswordHash:      hash,
		Role:              role,
		HourlyRate:        dto.HourlyRate,
		TargetHoursPerDay: target,
		GroupID:           dto.GroupID,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", email)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "email", u.Email, "role", u.Role)
	return u, nil
}

func (s *Service) Update(id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(dto.Email)
	if err := s.checkEmailFree(email, id); err != nil {
		return nil, err
	}

	u.Email = email
	u.FirstName = dto.FirstName
	u.LastName = dto.LastName
	u.Role = dto.Role
	u.HourlyRate = dto.HourlyRate
	u.TargetHoursPerDay = dto.TargetHoursPerDay
	u.GroupID = dto.GroupID
	if dto.IsActive != nil {
		u.IsActive = *dto.IsActive
	}
	if dto.Password != "" {
		hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
		if err != nil {
			s.logger.Error("failed to hash password", "error", err)
			return nil, err
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", u.ID)
	return u, nil
}

// Deactivate locks the account out. The user's entries stay in place.
func (s *Service) Deactivate(id int64) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	u.IsActive = false
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to deactivate user", "error", err, "user_id", id)
		return err
	}

	s.logger.Info("user deactivated", "user_id", id)
	return nil
}

func (s *Service) checkEmailFree(email string, selfID int64) error {
	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		if err == ErrUserNotFound {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrEmailTaken
	}
	return nil
}
