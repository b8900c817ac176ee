package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/models"
	"storefront/internal/query"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List returns the products matching filter, ordered and paginated.
func (r *GORMProductRepository) List(ctx context.Context, filter query.ProductFilter) ([]models.Product, error) {
	products := []models.Product{}
	tx := query.Apply(r.db.WithContext(ctx).Model(&models.Product{}), "products", filter)
	if err := tx.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Exists reports whether a product with the given ID is stored.
func (r *GORMProductRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product %d: %w", id, err)
	}
	return count > 0, nil
}

// Summaries loads the review projection for each of ids that still exists.
func (r *GORMProductRepository) Summaries(ctx context.Context, ids []uint) (map[uint]models.ProductSummary, error) {
	out := make(map[uint]models.ProductSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.ProductSummary
	err := r.db.WithContext(ctx).
		Select("id", "name", "price", "category", "subcategory").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load product summaries: %w", err)
	}
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

// Create inserts a new product. ID and timestamps are assigned by the store.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes every column of product and refreshes UpdatedAt.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(product).Select("*").Omit("id", "created_at").Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product together with its reviews and returns the
// removed product.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load product %d: %w", id, err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete reviews of product %d: %w", id, err)
		}
		if err := tx.Delete(&models.Product{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete product %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}
