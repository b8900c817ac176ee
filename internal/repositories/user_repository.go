package repositories

import (
	"context"

	"storefront/internal/models"
)

// UserRepository defines the interface for admin account access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
