package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/models"
	"storefront/internal/query"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// List returns the reviews matching filter, ordered and paginated.
func (r *GORMReviewRepository) List(ctx context.Context, filter query.ReviewFilter) ([]models.Review, error) {
	reviews := []models.Review{}
	tx := query.Apply(r.db.WithContext(ctx).Model(&models.Review{}), "reviews", filter)
	if err := tx.Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// GetByID retrieves a single review by its ID.
func (r *GORMReviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review by ID %d: %w", id, err)
	}
	return &review, nil
}

// Create inserts a new review.
func (r *GORMReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update writes the mutable columns of review.
func (r *GORMReviewRepository) Update(ctx context.Context, review *models.Review) error {
	res := r.db.WithContext(ctx).Model(review).
		Select("rating", "comment", "helpful_count").
		Updates(review)
	if res.Error != nil {
		return fmt.Errorf("failed to update review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a review and returns the removed row.
func (r *GORMReviewRepository) Delete(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load review %d: %w", id, err)
		}
		if err := tx.Delete(&models.Review{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete review %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}
