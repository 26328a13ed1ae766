package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"shopcore/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = fmt.Errorf("user %w", domain.ErrNotFound)
	ErrNilUser      = fmt.Errorf("%w: nil user", domain.ErrInvalidArgument)
)

// UserRepository defines the interface for user data access.
// Username and email lookups are case-insensitive.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Exists(ctx context.Context, username string) (bool, error)
}

// userRepository is the in-memory adapter. A single mutex guards the backing
// map; every operation holds it for its full duration and never blocks on
// anything else while doing so. Reads hand out copies taken under the lock.
type userRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

// NewUserRepository creates an empty in-memory UserRepository.
func NewUserRepository() UserRepository {
	return &userRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

// Create stores a copy of the user.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil {
		return ErrNilUser
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *user
	r.users[user.ID()] = &cp
	return nil
}

// Update replaces the stored user with the same ID.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if user == nil {
		return ErrNilUser
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID()]; !ok {
		return ErrUserNotFound
	}

	cp := *user
	r.users[user.ID()] = &cp
	return nil
}

// Delete removes the user and reports whether it was present.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false, nil
	}

	delete(r.users, id)
	return true, nil
}

// FindByID retrieves a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	cp := *user
	return &cp, nil
}

// FindByUsername retrieves a user by username, ignoring case.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Username(), username) {
			cp := *user
			return &cp, nil
		}
	}

	return nil, ErrUserNotFound
}

// FindByEmail retrieves a user by email, ignoring case.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email(), email) {
			cp := *user
			return &cp, nil
		}
	}

	return nil, ErrUserNotFound
}

// FindAll returns a snapshot copy of all users, never a live view.
func (r *userRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		cp := *user
		users = append(users, &cp)
	}

	return users, nil
}

// Exists reports whether a user with the given username exists, ignoring case.
func (r *userRepository) Exists(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Username(), username) {
			return true, nil
		}
	}

	return false, nil
}
