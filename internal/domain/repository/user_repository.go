package repository

import (
	"context"
	"errors"

	"github.com/cvbuilder/api/internal/domain/entity"
)

// ErrNotFound is returned by lookups when no row matches. Callers distinguish
// it from transport failures with errors.Is.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByProviderID(ctx context.Context, providerID string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}
