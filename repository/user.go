package repository

import (
	"context"

	"github.com/taskloop/backend/domain"
)

// UserRepository stores the local mirror of identity-provider accounts.
// Reads return (nil, nil) when no record matches.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}
