package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/server"
	"storefront/internal/services"
)

const testJWTSecret = "test_jwt_secret"

type testApp struct {
	app *fiber.App
	db  *gorm.DB
}

// setupApp builds the full application over a private in-memory SQLite
// database.
func setupApp(t *testing.T, authRequired bool) *testApp {
	t.Helper()

	db, err := database.Open(database.Config{
		Driver:   database.DriverSQLite,
		DSN:      "file:" + uuid.New().String() + "?mode=memory&cache=shared",
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	app := server.New(server.Deps{
		DB:           db,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		AuthRequired: authRequired,
		JWTSecret:    testJWTSecret,
		TokenTTL:     time.Hour,
	})
	return &testApp{app: app, db: db}
}

func (a *testApp) do(t *testing.T, method, target string, body any, headers ...string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func productBody(name, category string, price float64) map[string]any {
	return map[string]any{
		"name":        name,
		"price":       price,
		"category":    category,
		"subcategory": "festive",
		"fabric":      "silk",
		"sizes":       []string{"S"},
		"colors":      []string{"red"},
		"images":      []string{"http://x/1.jpg"},
	}
}

func (a *testApp) createProduct(t *testing.T, body map[string]any) models.Product {
	t.Helper()
	status, raw := a.do(t, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode[models.Product](t, raw)
}

func TestCreateProductAppliesDefaults(t *testing.T) {
	a := setupApp(t, false)

	body := map[string]any{
		"name":        "Silk Saree",
		"price":       2499,
		"category":    "women",
		"subcategory": "sarees",
		"fabric":      "silk",
		"sizes":       []string{"S"},
		"colors":      []string{"red"},
		"images":      []string{"http://x/1.jpg"},
	}
	created := a.createProduct(t, body)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 0, created.StockQuantity)
	assert.False(t, created.Featured)
	assert.Nil(t, created.Description)

	status, raw := a.do(t, http.MethodGet, fmt.Sprintf("/api/products?id=%d", created.ID), nil)
	require.Equal(t, http.StatusOK, status)
	fetched := decode[models.Product](t, raw)
	assert.Equal(t, "Silk Saree", fetched.Name)
	assert.Equal(t, 2499.0, fetched.Price)
	assert.Equal(t, []string{"S"}, fetched.Sizes)
	assert.Equal(t, []string{"http://x/1.jpg"}, fetched.Images)
}

func TestCreateProductRejectsInvalidBodies(t *testing.T) {
	a := setupApp(t, false)

	tests := []struct {
		name string
		body any
		code string
	}{
		{"short name", productBody("ab", "men", 10), "INVALID_NAME"},
		{"bad category", productBody("Kurta", "pets", 10), "INVALID_CATEGORY"},
		{"string price", `{"name":"Kurta","price":"cheap"}`, "INVALID_PRICE"},
		{"short name before string price", func() map[string]any {
			b := productBody("ab", "men", 10)
			b["price"] = "cheap"
			return b
		}(), "INVALID_NAME"},
		{"missing name before string featured", func() map[string]any {
			b := productBody("Kurta", "men", 10)
			delete(b, "name")
			b["featured"] = "yes"
			return b
		}(), "INVALID_NAME"},
		{"object sizes", func() map[string]any {
			b := productBody("Kurta", "men", 10)
			b["sizes"] = map[string]any{"S": true}
			return b
		}(), "INVALID_SIZES"},
		{"fractional stock", func() map[string]any {
			b := productBody("Kurta", "men", 10)
			b["stockQuantity"] = 2.5
			return b
		}(), "INVALID_STOCK_QUANTITY"},
		{"not json", `{"name":`, "INVALID_BODY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := a.do(t, http.MethodPost, "/api/products", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.code, decode[errorBody](t, raw).Code)
		})
	}

	var count int64
	require.NoError(t, a.db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListProductsFilterSortAndLimit(t *testing.T) {
	a := setupApp(t, false)

	for i, price := range []float64{900, 300, 700, 100, 500, 200, 800} {
		a.createProduct(t, productBody(fmt.Sprintf("Kids Dress %d", i), "kids", price))
	}
	a.createProduct(t, productBody("Silk Saree", "women", 50))

	status, raw := a.do(t, http.MethodGet, "/api/products?category=kids&sort=price&order=asc&limit=5", nil)
	require.Equal(t, http.StatusOK, status)
	products := decode[[]models.Product](t, raw)
	require.Len(t, products, 5)
	prices := make([]float64, len(products))
	for i, p := range products {
		assert.Equal(t, "kids", p.Category)
		prices[i] = p.Price
	}
	assert.Equal(t, []float64{100, 200, 300, 500, 700}, prices)

	status, raw = a.do(t, http.MethodGet, "/api/products?minPrice=200&maxPrice=700&search=DRESS", nil)
	require.Equal(t, http.StatusOK, status)
	for _, p := range decode[[]models.Product](t, raw) {
		assert.GreaterOrEqual(t, p.Price, 200.0)
		assert.LessOrEqual(t, p.Price, 700.0)
	}

	status, raw = a.do(t, http.MethodGet, "/api/products?limit=1000", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Product](t, raw), 8)

	status, raw = a.do(t, http.MethodGet, "/api/products?minPrice=abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_PRICE_RANGE", decode[errorBody](t, raw).Code)
}

func TestGetProductRejectsInvalidID(t *testing.T) {
	a := setupApp(t, false)

	for _, target := range []string{"/api/products?id=abc", "/api/products?id=-1", "/api/products?id=0"} {
		status, raw := a.do(t, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, status, target)
		assert.Equal(t, "INVALID_ID", decode[errorBody](t, raw).Code, target)
	}

	status, raw := a.do(t, http.MethodGet, "/api/products?id=424242", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Product not found", decode[errorBody](t, raw).Error)
}

func TestUpdateProduct(t *testing.T) {
	a := setupApp(t, false)
	created := a.createProduct(t, productBody("Silk Saree", "women", 2499))
	target := fmt.Sprintf("/api/products?id=%d", created.ID)

	status, raw := a.do(t, http.MethodPut, target, map[string]any{"price": 1999, "featured": true})
	require.Equal(t, http.StatusOK, status, string(raw))
	updated := decode[models.Product](t, raw)
	assert.Equal(t, 1999.0, updated.Price)
	assert.True(t, updated.Featured)
	assert.Equal(t, "Silk Saree", updated.Name)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	status, raw = a.do(t, http.MethodPut, target, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "NO_UPDATES", decode[errorBody](t, raw).Code)

	status, raw = a.do(t, http.MethodPut, target, map[string]any{"sizes": []string{}})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_SIZES", decode[errorBody](t, raw).Code)

	status, _ = a.do(t, http.MethodPut, "/api/products?id=999999", map[string]any{"price": 10})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteProductCascadesToReviews(t *testing.T) {
	a := setupApp(t, false)
	product := a.createProduct(t, productBody("Silk Saree", "women", 2499))

	status, raw := a.do(t, http.MethodPost, "/api/reviews", map[string]any{
		"productId": product.ID, "reviewerName": "Priya", "rating": 5,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	review := decode[models.Review](t, raw)

	status, raw = a.do(t, http.MethodDelete, fmt.Sprintf("/api/products?id=%d", product.ID), nil)
	require.Equal(t, http.StatusOK, status)
	deleted := decode[struct {
		Message string         `json:"message"`
		Product models.Product `json:"product"`
	}](t, raw)
	assert.Equal(t, "Product deleted successfully", deleted.Message)
	assert.Equal(t, product.ID, deleted.Product.ID)

	status, _ = a.do(t, http.MethodGet, fmt.Sprintf("/api/reviews?id=%d", review.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = a.do(t, http.MethodDelete, fmt.Sprintf("/api/products?id=%d", product.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateReviewForMissingProduct(t *testing.T) {
	a := setupApp(t, false)

	status, raw := a.do(t, http.MethodPost, "/api/reviews", map[string]any{
		"productId": 999999, "reviewerName": "Al", "rating": 5,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decode[errorBody](t, raw).Code)

	var count int64
	require.NoError(t, a.db.Model(&models.Review{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateReviewValidationOrder(t *testing.T) {
	a := setupApp(t, false)

	status, raw := a.do(t, http.MethodPost, "/api/reviews", map[string]any{"productId": -1, "rating": 9})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "MISSING_REVIEWER_NAME", decode[errorBody](t, raw).Code)

	status, raw = a.do(t, http.MethodPost, "/api/reviews", map[string]any{
		"productId": 1, "reviewerName": "Al", "rating": 5, "comment": strings.Repeat("x", 1001),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "COMMENT_TOO_LONG", decode[errorBody](t, raw).Code)

	status, raw = a.do(t, http.MethodPost, "/api/reviews", `{"productId":"abc","rating":3}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "MISSING_REVIEWER_NAME", decode[errorBody](t, raw).Code)

	status, raw = a.do(t, http.MethodPost, "/api/reviews", `{"productId":"abc","reviewerName":"Al","rating":3}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_PRODUCT_ID", decode[errorBody](t, raw).Code)

	status, raw = a.do(t, http.MethodPost, "/api/reviews", map[string]any{"productId": 1, "reviewerName": "Al", "rating": 0})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "MISSING_RATING", decode[errorBody](t, raw).Code)

	status, raw = a.do(t, http.MethodPost, "/api/reviews", map[string]any{
		"productId": 1, "reviewerName": "Al", "rating": 5, "comment": strings.Repeat("x", 1000) + "   ",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "COMMENT_TOO_LONG", decode[errorBody](t, raw).Code)

	status, raw = a.do(t, http.MethodPost, "/api/reviews", `productId=1`, "Content-Type", "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", decode[errorBody](t, raw).Code)
}

func TestReviewLifecycle(t *testing.T) {
	a := setupApp(t, false)
	product := a.createProduct(t, productBody("Embroidered Kurta Set", "men", 4999))

	status, raw := a.do(t, http.MethodPost, "/api/reviews", map[string]any{
		"productId": product.ID, "reviewerName": "  Rohan ", "rating": 4, "comment": "Great fit",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	review := decode[models.Review](t, raw)
	assert.Equal(t, "Rohan", review.ReviewerName)
	assert.Equal(t, 0, review.HelpfulCount)

	status, raw = a.do(t, http.MethodGet, fmt.Sprintf("/api/reviews?productId=%d&rating=4", product.ID), nil)
	require.Equal(t, http.StatusOK, status)
	listed := decode[[]models.ReviewWithProduct](t, raw)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].Product)
	assert.Equal(t, "Embroidered Kurta Set", listed[0].Product.Name)
	assert.Equal(t, 4999.0, listed[0].Product.Price)

	target := fmt.Sprintf("/api/reviews?id=%d", review.ID)
	status, raw = a.do(t, http.MethodPut, target, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "NO_UPDATES", decode[errorBody](t, raw).Code)

	status, raw = a.do(t, http.MethodPut, target, map[string]any{"helpfulCount": 3, "comment": ""})
	require.Equal(t, http.StatusOK, status, string(raw))
	updated := decode[models.Review](t, raw)
	assert.Equal(t, 3, updated.HelpfulCount)
	assert.Nil(t, updated.Comment)

	status, raw = a.do(t, http.MethodGet, "/api/reviews?rating=7", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_RATING", decode[errorBody](t, raw).Code)

	status, raw = a.do(t, http.MethodDelete, target, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "Review deleted successfully")

	status, _ = a.do(t, http.MethodDelete, target, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdateMissingReviewIsNotFound(t *testing.T) {
	a := setupApp(t, false)

	status, raw := a.do(t, http.MethodPut, "/api/reviews?id=1", map[string]any{})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Review not found", decode[errorBody](t, raw).Error)
}

func TestAdminGuard(t *testing.T) {
	a := setupApp(t, true)

	auth := services.NewAuthService(repositories.NewGORMUserRepository(a.db), testJWTSecret, time.Hour)
	_, err := auth.EnsureAdmin(context.Background(), "admin@example.com", "admin123")
	require.NoError(t, err)

	// Reads stay public
	status, _ := a.do(t, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusOK, status)

	status, raw := a.do(t, http.MethodPost, "/api/products", productBody("Silk Saree", "women", 2499))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", decode[errorBody](t, raw).Code)

	status, _ = a.do(t, http.MethodPost, "/api/products", productBody("Silk Saree", "women", 2499),
		"Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, raw = a.do(t, http.MethodPost, "/api/auth/login", map[string]any{"email": "admin@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", decode[errorBody](t, raw).Code)

	status, raw = a.do(t, http.MethodPost, "/api/auth/login", map[string]any{"email": "admin@example.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, status, string(raw))
	token := decode[map[string]string](t, raw)["token"]
	require.NotEmpty(t, token)

	status, raw = a.do(t, http.MethodPost, "/api/products", productBody("Silk Saree", "women", 2499),
		"Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusCreated, status, string(raw))
}

func TestHealth(t *testing.T) {
	a := setupApp(t, false)

	status, raw := a.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	body := decode[map[string]string](t, raw)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "connected", body["database"])
}
