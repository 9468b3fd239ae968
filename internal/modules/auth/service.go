package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"studiobook/internal/middleware"
	"studiobook/internal/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

const (
	maxFailedLoginAttempts = 5
	lockoutDuration        = 15 * time.Minute
)

// Service authenticates the single studio administrator configured through
// ADMIN_EMAIL and ADMIN_PASSWORD_HASH.
type Service struct {
	adminEmail   string
	passwordHash []byte
	jwt          tokenIssuer
	now          func() time.Time

	mu          sync.Mutex
	failed      int
	lockedUntil time.Time
}

func NewService(adminEmail, passwordHash string, jwt tokenIssuer) *Service {
	return &Service{
		adminEmail:   strings.ToLower(strings.TrimSpace(adminEmail)),
		passwordHash: []byte(passwordHash),
		jwt:          jwt,
		now:          time.Now,
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if s.adminEmail == "" || len(s.passwordHash) == 0 {
		return nil, ErrLoginDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Before(s.lockedUntil) {
		return nil, ErrAccountLocked
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	log := logger.FromContext(ctx)

	// The hash is checked even for an unknown email so both paths cost the same.
	hashErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if email != s.adminEmail {
		// Only guesses at the admin password count toward the lockout.
		log.Warn().Str("email", email).Msg("Login with unknown email")
		return nil, ErrInvalidCredentials
	}
	if hashErr != nil {
		s.failed++
		if s.failed >= maxFailedLoginAttempts {
			s.failed = 0
			s.lockedUntil = now.Add(lockoutDuration)
			log.Warn().Str("email", email).Time("locked_until", s.lockedUntil).Msg("Admin login locked")
			return nil, ErrAccountLocked
		}
		log.Warn().Str("email", email).Int("failed_attempts", s.failed).Msg("Admin login failed")
		return nil, ErrInvalidCredentials
	}
	s.failed = 0

	token, expires, err := s.jwt.GenerateToken(s.adminEmail, middleware.RoleAdmin)
	if err != nil {
		return nil, err
	}

	log.Info().Str("email", s.adminEmail).Msg("Admin logged in")
	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expires,
		Email:       s.adminEmail,
		Role:        middleware.RoleAdmin,
	}, nil
}
