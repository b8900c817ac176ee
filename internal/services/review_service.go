package services

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/apperror"
	"storefront/internal/models"
	"storefront/internal/query"
	"storefront/internal/repositories"
)

// ReviewService handles business logic related to reviews.
type ReviewService struct {
	reviews   repositories.ReviewRepository
	products  repositories.ProductRepository
	publisher EventPublisher
	logger    *slog.Logger
}

// NewReviewService creates a new ReviewService. publisher may be nil.
func NewReviewService(reviews repositories.ReviewRepository, products repositories.ProductRepository, publisher EventPublisher, logger *slog.Logger) *ReviewService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewService{
		reviews:   reviews,
		products:  products,
		publisher: publisher,
		logger:    logger,
	}
}

// ListReviews returns the reviews matching filter, each with its product
// projection.
func (s *ReviewService) ListReviews(ctx context.Context, filter query.ReviewFilter) ([]models.ReviewWithProduct, error) {
	reviews, err := s.reviews.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return s.withProducts(ctx, reviews)
}

// GetReview retrieves a single review with its product projection.
func (s *ReviewService) GetReview(ctx context.Context, id uint) (*models.ReviewWithProduct, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, reviewLookupError(err)
	}
	enriched, err := s.withProducts(ctx, []models.Review{*review})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

// CreateReview validates req, checks that the product exists and inserts
// the review. The existence check and the insert are separate statements.
func (s *ReviewService) CreateReview(ctx context.Context, req *CreateReviewRequest) (*models.Review, error) {
	req.normalize()
	if err := check(req); err != nil {
		return nil, err
	}

	productID := uint(*req.ProductID)
	exists, err := s.products.Exists(ctx, productID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !exists {
		return nil, apperror.Validation(apperror.CodeProductNotFound, "Product not found")
	}

	review := &models.Review{
		ProductID:    productID,
		ReviewerName: *req.ReviewerName,
		Rating:       *req.Rating,
		Comment:      blankToNil(req.Comment),
	}
	if req.HelpfulCount != nil {
		review.HelpfulCount = *req.HelpfulCount
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, apperror.Internal(err)
	}
	publish(s.publisher, s.logger, EventReviewCreated, review)
	return review, nil
}

// UpdateReview applies the supplied rating, comment and helpfulCount.
func (s *ReviewService) UpdateReview(ctx context.Context, id uint, req *UpdateReviewRequest) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, reviewLookupError(err)
	}

	if req.empty() {
		return nil, apperror.Validation(apperror.CodeNoUpdates, "No valid fields to update")
	}
	if err := check(req); err != nil {
		return nil, err
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = blankToNil(req.Comment)
	}
	if req.HelpfulCount != nil {
		review.HelpfulCount = *req.HelpfulCount
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, reviewLookupError(err)
	}
	publish(s.publisher, s.logger, EventReviewUpdated, review)
	return review, nil
}

// DeleteReview removes a review and returns it.
func (s *ReviewService) DeleteReview(ctx context.Context, id uint) (*models.Review, error) {
	review, err := s.reviews.Delete(ctx, id)
	if err != nil {
		return nil, reviewLookupError(err)
	}
	publish(s.publisher, s.logger, EventReviewDeleted, review)
	return review, nil
}

func (s *ReviewService) withProducts(ctx context.Context, reviews []models.Review) ([]models.ReviewWithProduct, error) {
	ids := make([]uint, 0, len(reviews))
	seen := make(map[uint]bool, len(reviews))
	for _, r := range reviews {
		if !seen[r.ProductID] {
			seen[r.ProductID] = true
			ids = append(ids, r.ProductID)
		}
	}
	summaries, err := s.products.Summaries(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	out := make([]models.ReviewWithProduct, len(reviews))
	for i, r := range reviews {
		out[i] = models.ReviewWithProduct{Review: r}
		if summary, ok := summaries[r.ProductID]; ok {
			out[i].Product = &summary
		}
	}
	return out, nil
}

func reviewLookupError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperror.NotFound("Review not found")
	}
	return apperror.Internal(err)
}
