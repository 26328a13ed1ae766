package service

import (
	"context"
	"fmt"

	"shopcore/internal/domain"
	"shopcore/internal/repository"
)

// Default accounts for local development and demos. The wiring layer decides
// whether to seed them.
var defaultAccounts = []struct {
	username string
	email    string
	password string
	role     string
}{
	{username: "admin", email: "admin@lms.com", password: "admin123", role: "Admin"},
	{username: "user", email: "user@lms.com", password: "user123", role: "User"},
}

// SeedDefaultUsers creates the default admin and user accounts, skipping any
// username that already exists.
func SeedDefaultUsers(ctx context.Context, users repository.UserRepository) error {
	for _, acc := range defaultAccounts {
		taken, err := users.Exists(ctx, acc.username)
		if err != nil {
			return fmt.Errorf("failed to check seed user %q: %w", acc.username, err)
		}
		if taken {
			continue
		}

		user, err := domain.NewUser(acc.username, acc.email, HashPassword(acc.password), acc.role)
		if err != nil {
			return fmt.Errorf("failed to build seed user %q: %w", acc.username, err)
		}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create seed user %q: %w", acc.username, err)
		}
	}

	return nil
}
