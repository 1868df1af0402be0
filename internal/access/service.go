// Package access provides the capability checks at the presentation
// boundary: who may log in, and which roles reach the admin panel.
package access

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"hotelier/internal/metrics"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// ErrThrottled is returned when a username has exceeded the login rate.
var ErrThrottled = errors.New("too many login attempts, try again later")

// UserRepository is the user-store surface the access service needs.
type UserRepository interface {
	CheckCredentials(ctx context.Context, username, password string) (bool, string, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service implements login and role checks.
type Service struct {
	users  UserRepository
	logger zerolog.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewService creates an access control service.
func NewService(users UserRepository, logger zerolog.Logger) *Service {
	return &Service{
		users:    users,
		logger:   logger.With().Str("component", "access").Logger(),
		limiters: make(map[string]*rate.Limiter),
	}
}

// limiter returns the per-username attempt limiter: a burst of 5, refilling
// one attempt every 2 seconds.
func (s *Service) limiter(username string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	lim, ok := s.limiters[username]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(0.5), 5)
		s.limiters[username] = lim
	}
	return lim
}

// Login authenticates a user and returns their role. Attempts are throttled
// per username; a failed password is not distinguished from an unknown
// username.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if !s.limiter(username).Allow() {
		s.logger.Warn().Str("username", username).Msg("login throttled")
		return "", ErrThrottled
	}

	ok, role, err := s.users.CheckCredentials(ctx, username, password)
	if err != nil {
		return "", fmt.Errorf("checking credentials: %w", err)
	}
	if !ok {
		metrics.IncAuthFailure()
		s.logger.Warn().Str("username", username).Msg("login failed")
		return "", &AccessDeniedError{Reason: "Invalid username or password."}
	}

	s.logger.Info().Str("username", username).Str("role", role).Msg("login ok")
	return role, nil
}

// CanManage reports whether the user may open the admin panel.
func (s *Service) CanManage(ctx context.Context, username string) (bool, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return user != nil && user.Role == models.RoleAdmin, nil
}

// RequireRole fails with AccessDeniedError unless the user holds one of the
// given roles.
func (s *Service) RequireRole(ctx context.Context, username string, roles ...string) error {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("checking role: %w", err)
	}
	if user != nil {
		for _, role := range roles {
			if user.Role == role {
				return nil
			}
		}
	}
	return &AccessDeniedError{Reason: "This action requires a different role."}
}

// AccessDeniedError is returned when access is denied.
type AccessDeniedError struct {
	Reason string
}

func (e *AccessDeniedError) Error() string {
	return e.Reason
}

// IsAccessDenied checks if error is access denied.
func IsAccessDenied(err error) bool {
	var denied *AccessDeniedError
	return errors.As(err, &denied)
}
