package repositories

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/query"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	List(ctx context.Context, filter query.ReviewFilter) ([]models.Review, error)
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) (*models.Review, error)
}
