package services

import "storefront/internal/apperror"

var reviewRules = fieldRules{
	"productId": {
		code: apperror.CodeInvalidProductID, message: "Product ID must be a positive integer",
		missingCode: apperror.CodeMissingProductID, missingMessage: "Product ID is required",
	},
	"reviewerName": {
		code: apperror.CodeInvalidReviewerName, message: "Reviewer name must be between 2-100 characters",
		missingCode: apperror.CodeMissingReviewerName, missingMessage: "Reviewer name is required",
	},
	"rating": {
		code: apperror.CodeInvalidRating, message: "Rating must be an integer between 1-5",
		missingCode: apperror.CodeMissingRating, missingMessage: "Rating is required",
	},
	"comment": {
		code: apperror.CodeInvalidComment, message: "Comment must be a string",
		tagCodes: map[string]fieldRule{
			"max": {code: apperror.CodeCommentTooLong, message: "Comment must not exceed 1000 characters"},
		},
	},
	"helpfulCount": {code: apperror.CodeInvalidHelpfulCount, message: "Helpful count must be a non-negative integer"},
}

// CreateReviewRequest is the body of a review creation.
type CreateReviewRequest struct {
	bodyState `json:"-" validate:"-"`

	ProductID    *int    `json:"productId" validate:"required,gt=0"`
	ReviewerName *string `json:"reviewerName" validate:"required,min=2,max=100"`
	Rating       *int    `json:"rating" validate:"required,min=1,max=5"`
	Comment      *string `json:"comment" validate:"omitempty,max=1000"`
	HelpfulCount *int    `json:"helpfulCount" validate:"omitempty,min=0"`
}

func (r *CreateReviewRequest) rules() fieldRules { return reviewRules }

// normalize drops values that count as not supplied: a blank name and a
// zero productId or rating. The comment is trimmed only after its length
// has been checked.
func (r *CreateReviewRequest) normalize() {
	r.ReviewerName = blankToNil(r.ReviewerName)
	r.ProductID = zeroToNil(r.ProductID)
	r.Rating = zeroToNil(r.Rating)
}

func zeroToNil(n *int) *int {
	if n != nil && *n == 0 {
		return nil
	}
	return n
}

// UpdateReviewRequest is the body of a partial review update.
type UpdateReviewRequest struct {
	bodyState `json:"-" validate:"-"`

	Rating       *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment      *string `json:"comment" validate:"omitempty,max=1000"`
	HelpfulCount *int    `json:"helpfulCount" validate:"omitempty,min=0"`
}

func (r *UpdateReviewRequest) rules() fieldRules { return reviewRules }

func (r *UpdateReviewRequest) empty() bool {
	return len(r.badType) == 0 && r.Rating == nil && r.Comment == nil && r.HelpfulCount == nil
}
