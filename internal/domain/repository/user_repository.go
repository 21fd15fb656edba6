package repository

import (
	"context"
	"errors"

	"github.com/ipdr-analysis/auth-server/internal/domain/entity"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateIdentity = errors.New("username or email already exists")
)

// UserRepository defines the credential store contract.
// Lookups return ErrNotFound when nothing matches.
type UserRepository interface {
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// Create fails with ErrDuplicateIdentity if the username or email is taken.
	Create(ctx context.Context, u *entity.User) error
	// Update replaces the record with the same ID, or fails with ErrNotFound.
	Update(ctx context.Context, u *entity.User) error
}
