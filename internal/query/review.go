package query

import (
	"strconv"

	"storefront/internal/apperror"
)

var reviewSortColumns = map[string]string{
	"rating":       "rating",
	"helpfulCount": "helpful_count",
	"createdAt":    "created_at",
}

// ReviewFilter is a parsed review listing request.
type ReviewFilter struct {
	ProductID *uint
	Rating    *int
	Search    string
	Sort      Sort
	Page      Page
}

// ParseReviewFilter validates the review listing parameters. Unlike
// pagination, a malformed productId or rating is rejected.
func ParseReviewFilter(p Params) (ReviewFilter, error) {
	f := ReviewFilter{
		Search: p.Get("search"),
		Sort:   parseSort(p, reviewSortColumns),
		Page:   parsePage(p),
	}

	if raw := p.Get("productId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return ReviewFilter{}, apperror.Validation(apperror.CodeInvalidProductID, "Valid product ID is required")
		}
		pid := uint(id)
		f.ProductID = &pid
	}
	if raw := p.Get("rating"); raw != "" {
		r, err := strconv.Atoi(raw)
		if err != nil || r < 1 || r > 5 {
			return ReviewFilter{}, apperror.Validation(apperror.CodeInvalidRating, "Rating must be between 1-5")
		}
		f.Rating = &r
	}
	return f, nil
}

// Predicates returns the active review conditions.
func (f ReviewFilter) Predicates() []Predicate {
	var preds []Predicate
	if f.ProductID != nil {
		preds = append(preds, equals("product_id", *f.ProductID))
	}
	if f.Rating != nil {
		preds = append(preds, equals("rating", *f.Rating))
	}
	if f.Search != "" {
		preds = append(preds, containsAny(f.Search, "reviewer_name", "comment"))
	}
	return preds
}

func (f ReviewFilter) Ordering() Sort { return f.Sort }

func (f ReviewFilter) Window() Page { return f.Page }
