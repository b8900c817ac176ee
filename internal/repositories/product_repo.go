package repositories

import (
	"context"
	"errors"

	"storefront/internal/models"
	"storefront/internal/query"
)

// ErrNotFound is returned when a row with the requested id does not exist.
var ErrNotFound = errors.New("record not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, filter query.ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Summaries(ctx context.Context, ids []uint) (map[uint]models.ProductSummary, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) (*models.Product, error)
}
