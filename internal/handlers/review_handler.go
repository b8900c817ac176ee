package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/query"
	"storefront/internal/services"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	service *services.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the review routes. guard, when non-nil, is
// applied to the write routes only.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	writes := []fiber.Handler{}
	if guard != nil {
		writes = append(writes, guard)
	}
	router.Get("/reviews", h.HandleGetReviews)
	router.Post("/reviews", append(writes, h.HandleCreateReview)...)
	router.Put("/reviews", append(writes, h.HandleUpdateReview)...)
	router.Delete("/reviews", append(writes, h.HandleDeleteReview)...)
}

// HandleGetReviews returns one review when ?id= is present, otherwise the
// filtered listing. Every review carries its product projection.
func (h *ReviewHandler) HandleGetReviews(c *fiber.Ctx) error {
	if c.Query("id") != "" {
		id, err := requiredID(c)
		if err != nil {
			return respondError(c, h.logger, err)
		}
		review, err := h.service.GetReview(c.UserContext(), id)
		if err != nil {
			return respondError(c, h.logger, err)
		}
		return c.JSON(review)
	}

	filter, err := query.ParseReviewFilter(queryParams(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	reviews, err := h.service.ListReviews(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(reviews)
}

// HandleCreateReview creates a review for an existing product.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	var req services.CreateReviewRequest
	if err := decodeBody(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	review, err := h.service.CreateReview(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleUpdateReview applies a partial update to an existing review.
func (h *ReviewHandler) HandleUpdateReview(c *fiber.Ctx) error {
	id, err := requiredID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req services.UpdateReviewRequest
	if err := decodeBody(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	review, err := h.service.UpdateReview(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(review)
}

// HandleDeleteReview deletes a review.
func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	id, err := requiredID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	review, err := h.service.DeleteReview(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"message": "Review deleted successfully",
		"review":  review,
	})
}
