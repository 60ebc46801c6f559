package balance

import (
	"log/slog"
	"time"

	"github.com/zeitwerk/zeitwerk/internal"
	"github.com/zeitwerk/zeitwerk/internal/auth"
	"github.com/zeitwerk/zeitwerk/internal/timeentry"
)

// Repository is the read surface the balance engine needs: the full
// entry history and the daily target of one user.
type Repository interface {
	GetAllForUser(userID int64) ([]*timeentry.TimeEntry, error)
	GetTargetHours(userID int64) (int, error)
}

// Service computes overtime balances on demand. Stateless aside from
// its collaborators; all windows derive from one history fetch.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new balance service
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// BalancesFor computes the overtime account of the given user. Admins
// may ask for any user, everyone else only for themselves.
func (s *Service) BalancesFor(actor *auth.User, userID int64) (*Balances, error) {
	if !actor.CanActFor(userID) {
		s.logger.Warn("balance denied: not own account", "actor_id", actor.ID, "user_id", userID)
		return nil, internal.ErrAdminRequired
	}

	target, err := s.repo.GetTargetHours(userID)
	if err != nil {
		s.logger.Error("failed to load target hours", "error", err, "user_id", userID)
		return nil, err
	}

	entries, err := s.repo.GetAllForUser(userID)
	if err != nil {
		s.logger.Error("failed to load entry history", "error", err, "user_id", userID)
		return nil, err
	}

	balances := Compute(entries, target, s.now())
	return &balances, nil
}
