package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/apperror"
	"storefront/internal/models"
	"storefront/internal/services"
)

func TestDecodeRejectsNonObjectBodies(t *testing.T) {
	for _, body := range []string{`{"name":`, `[1,2]`, `"text"`, ``} {
		err := services.Decode(&services.CreateProductRequest{}, []byte(body))
		assert.True(t, apperror.IsCode(err, apperror.CodeInvalidBody), "body %q", body)
	}
}

func TestDecodeNullMeansNotSupplied(t *testing.T) {
	var req services.UpdateReviewRequest
	require.NoError(t, services.Decode(&req, []byte(`{"rating":null,"comment":null}`)))
	assert.Nil(t, req.Rating)
	assert.Nil(t, req.Comment)
}

func TestCreateProductWrongTypeReportedInFieldOrder(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"string price", `{"name":"Silk Saree","price":"cheap","category":"women","subcategory":"sarees","fabric":"silk","sizes":["S"],"colors":["red"],"images":["x"]}`, apperror.CodeInvalidPrice},
		{"earlier invalid field wins", `{"name":"ab","price":"cheap"}`, apperror.CodeInvalidName},
		{"earlier missing field wins", `{"price":10,"featured":"yes"}`, apperror.CodeInvalidName},
		{"wrong type before later failure", `{"name":"Silk Saree","price":"cheap","category":"pets"}`, apperror.CodeInvalidPrice},
		{"fractional stock", `{"name":"Silk Saree","price":10,"category":"women","subcategory":"sarees","fabric":"silk","sizes":["S"],"colors":["red"],"images":["x"],"stockQuantity":2.5}`, apperror.CodeInvalidStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := services.NewProductService(mockRepo, nil, discardLogger)

			var req services.CreateProductRequest
			require.NoError(t, services.Decode(&req, []byte(tt.body)))
			_, err := service.CreateProduct(context.Background(), &req)

			assert.True(t, apperror.IsCode(err, tt.code), "want %s, got %v", tt.code, err)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateReviewWrongTypeAfterMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"missing name beats wrong-typed product", `{"productId":"abc","rating":3}`, apperror.CodeMissingReviewerName},
		{"wrong-typed product", `{"productId":"abc","reviewerName":"Priya","rating":3}`, apperror.CodeInvalidProductID},
		{"fractional rating", `{"productId":1,"reviewerName":"Priya","rating":4.5}`, apperror.CodeInvalidRating},
		{"numeric comment", `{"productId":1,"reviewerName":"Priya","rating":4,"comment":12}`, apperror.CodeInvalidComment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, reviews, products := newReviewService()

			var req services.CreateReviewRequest
			require.NoError(t, services.Decode(&req, []byte(tt.body)))
			_, err := service.CreateReview(context.Background(), &req)

			assert.True(t, apperror.IsCode(err, tt.code), "want %s, got %v", tt.code, err)
			products.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
			reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateWithOnlyWrongTypedFieldIsNotEmpty(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, discardLogger)
	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Product{ID: 1}, nil).Once()

	var req services.UpdateProductRequest
	require.NoError(t, services.Decode(&req, []byte(`{"featured":"yes"}`)))
	_, err := service.UpdateProduct(context.Background(), 1, &req)

	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidFeatured), "got %v", err)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
