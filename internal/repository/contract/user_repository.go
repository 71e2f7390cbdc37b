package contract

import (
	"context"
	"errors"

	"airport-assistant-be/internal/entity"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository interface {
	// Create fails with ErrUserExists when the username is taken; the stored record is left as is.
	Create(ctx context.Context, user *entity.User) error
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	// Update replaces an existing record and fails with ErrUserNotFound otherwise.
	Update(ctx context.Context, user *entity.User) error
}
