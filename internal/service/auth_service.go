package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"shopcore/internal/domain"
	"shopcore/internal/repository"
	"shopcore/internal/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", domain.ErrUnauthorized)
	ErrAccountDeactivated = fmt.Errorf("%w: account is deactivated", domain.ErrUnauthorized)
	ErrUsernameTaken      = fmt.Errorf("%w: username is already in use", domain.ErrConflict)
	ErrEmailTaken         = fmt.Errorf("%w: email is already registered", domain.ErrConflict)
)

// MinPasswordLength is the minimum accepted password length on registration.
const MinPasswordLength = 6

// AuthService defines the interface for authentication business logic.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	Register(ctx context.Context, username, email, password string) (*domain.User, string, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	HashPassword(password string) string
	VerifyPassword(password, passwordHash string) bool
}

type authService struct {
	users  repository.UserRepository
	tokens token.Issuer
	logger *zap.Logger
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(users repository.UserRepository, tokens token.Issuer, logger *zap.Logger) AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Login verifies the credentials, records the login time and issues a token.
// Unknown users, deactivated accounts and wrong passwords all fail as
// unauthorized.
func (s *authService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	if strings.TrimSpace(username) == "" {
		return nil, "", domain.NewValidationError("username", "username is required")
	}
	if strings.TrimSpace(password) == "" {
		return nil, "", domain.NewValidationError("password", "password is required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Debug("Login attempt for unknown username", zap.String("username", username))
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsActive() {
		s.logger.Warn("Login attempt for deactivated account", zap.String("user_id", user.ID().String()))
		return nil, "", ErrAccountDeactivated
	}

	if !s.VerifyPassword(password, user.PasswordHash()) {
		s.logger.Debug("Login attempt with wrong password", zap.String("user_id", user.ID().String()))
		return nil, "", ErrInvalidCredentials
	}

	// The read above and the update below take the store lock separately;
	// two concurrent logins can persist a stale timestamp. The field is
	// advisory, so the race is tolerated.
	user.UpdateLastLogin()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to record last login: %w", err)
	}

	tokenString, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID().String()),
		zap.String("role", user.Role()),
	)

	return user, tokenString, nil
}

// Register creates a new account with role "User" and issues a token for it.
// Username and email uniqueness are checked ignoring case.
func (s *authService) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	if strings.TrimSpace(username) == "" {
		return nil, "", domain.NewValidationError("username", "username is required")
	}
	if strings.TrimSpace(email) == "" {
		return nil, "", domain.NewValidationError("email", "email is required")
	}
	if strings.TrimSpace(password) == "" {
		return nil, "", domain.NewValidationError("password", "password is required")
	}
	if len(password) < MinPasswordLength {
		return nil, "", domain.NewValidationError("password", fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	taken, err := s.users.Exists(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, "", ErrUsernameTaken
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	user, err := domain.NewUser(username, email, s.HashPassword(password), "User")
	if err != nil {
		return nil, "", err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	tokenString, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID().String()),
		zap.String("username", user.Username()),
	)

	return user, tokenString, nil
}

// GetUserByID retrieves a user by ID without mutating anything.
func (s *authService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// HashPassword computes the password digest. See the package-level function.
func (s *authService) HashPassword(password string) string {
	return HashPassword(password)
}

// VerifyPassword recomputes the digest and compares it to the stored hash.
func (s *authService) VerifyPassword(password, passwordHash string) bool {
	return HashPassword(password) == passwordHash
}

// HashPassword returns the base64-encoded SHA-256 digest of the password
// bytes. This is a single unsalted pass with no work factor, so equal
// passwords always produce equal digests. Kept for compatibility with hashes
// already stored; do not mistake it for a password-hardening KDF.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return base64.StdEncoding.EncodeToString(sum[:])
}
