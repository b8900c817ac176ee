// Package apperror defines the error taxonomy shared by the query builder,
// the services and the HTTP handlers.
package apperror

import (
	"errors"
	"net/http"
)

// Error codes reported in the "code" field of an error response.
const (
	CodeInvalidID           = "INVALID_ID"
	CodeInvalidBody         = "INVALID_BODY"
	CodeNoUpdates           = "NO_UPDATES"
	CodeInvalidPriceRange   = "INVALID_PRICE_RANGE"
	CodeInvalidName         = "INVALID_NAME"
	CodeInvalidPrice        = "INVALID_PRICE"
	CodeInvalidCategory     = "INVALID_CATEGORY"
	CodeInvalidSubcategory  = "INVALID_SUBCATEGORY"
	CodeInvalidFabric       = "INVALID_FABRIC"
	CodeInvalidSizes        = "INVALID_SIZES"
	CodeInvalidColors       = "INVALID_COLORS"
	CodeInvalidImages       = "INVALID_IMAGES"
	CodeInvalidStock        = "INVALID_STOCK_QUANTITY"
	CodeInvalidFeatured     = "INVALID_FEATURED"
	CodeMissingProductID    = "MISSING_PRODUCT_ID"
	CodeMissingReviewerName = "MISSING_REVIEWER_NAME"
	CodeMissingRating       = "MISSING_RATING"
	CodeInvalidProductID    = "INVALID_PRODUCT_ID"
	CodeInvalidReviewerName = "INVALID_REVIEWER_NAME"
	CodeInvalidRating       = "INVALID_RATING"
	CodeInvalidComment      = "INVALID_COMMENT"
	CodeCommentTooLong      = "COMMENT_TOO_LONG"
	CodeInvalidHelpfulCount = "INVALID_HELPFUL_COUNT"
	CodeProductNotFound     = "PRODUCT_NOT_FOUND"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeUnauthorized        = "UNAUTHORIZED"
)

// Error is an error that knows how it should be reported to a client.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed or out-of-constraint input.
func Validation(code, message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: code, Message: message}
}

// NotFound reports an identifier that does not resolve to a row.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Unauthorized reports a missing or rejected credential.
func Unauthorized(code, message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: code, Message: message}
}

// Internal wraps an unexpected failure. The message carries the underlying
// error text.
func Internal(err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Message: "Internal server error: " + err.Error(),
		Err:     err,
	}
}

// From returns err as an *Error, wrapping anything unrecognised as Internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// IsCode reports whether err is an *Error carrying code.
func IsCode(err error, code string) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == code
}
