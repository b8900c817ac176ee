package services

import "storefront/internal/apperror"

var productRules = fieldRules{
	"name":          {code: apperror.CodeInvalidName, message: "Name is required and must be at least 3 characters"},
	"description":   {code: apperror.CodeInvalidBody, message: "Description must be a string"},
	"price":         {code: apperror.CodeInvalidPrice, message: "Price is required and must be a positive number"},
	"category":      {code: apperror.CodeInvalidCategory, message: "Category is required and must be one of: men, women, kids"},
	"subcategory":   {code: apperror.CodeInvalidSubcategory, message: "Subcategory is required and cannot be empty"},
	"fabric":        {code: apperror.CodeInvalidFabric, message: "Fabric is required and cannot be empty"},
	"sizes":         {code: apperror.CodeInvalidSizes, message: "Sizes must be an array with at least 1 item"},
	"colors":        {code: apperror.CodeInvalidColors, message: "Colors must be an array with at least 1 item"},
	"images":        {code: apperror.CodeInvalidImages, message: "Images must be an array with at least 1 item"},
	"stockQuantity": {code: apperror.CodeInvalidStock, message: "Stock quantity must be a non-negative integer"},
	"featured":      {code: apperror.CodeInvalidFeatured, message: "Featured must be a boolean"},
}

// CreateProductRequest is the body of a product creation.
type CreateProductRequest struct {
	bodyState `json:"-" validate:"-"`

	Name          *string   `json:"name" validate:"required,min=3"`
	Description   *string   `json:"description"`
	Price         *float64  `json:"price" validate:"required,gt=0"`
	Category      *string   `json:"category" validate:"required,oneof=men women kids"`
	Subcategory   *string   `json:"subcategory" validate:"required,min=1"`
	Fabric        *string   `json:"fabric" validate:"required,min=1"`
	Sizes         *[]string `json:"sizes" validate:"required,min=1"`
	Colors        *[]string `json:"colors" validate:"required,min=1"`
	Images        *[]string `json:"images" validate:"required,min=1"`
	StockQuantity *int      `json:"stockQuantity" validate:"omitempty,min=0"`
	Featured      *bool     `json:"featured"`
}

func (r *CreateProductRequest) rules() fieldRules { return productRules }

func (r *CreateProductRequest) normalize() {
	r.Name = trimPtr(r.Name)
	r.Description = blankToNil(r.Description)
	r.Subcategory = trimPtr(r.Subcategory)
	r.Fabric = trimPtr(r.Fabric)
}

// UpdateProductRequest is the body of a partial product update. Nil fields
// were not supplied and are left untouched.
type UpdateProductRequest struct {
	bodyState `json:"-" validate:"-"`

	Name          *string   `json:"name" validate:"omitempty,min=3"`
	Description   *string   `json:"description"`
	Price         *float64  `json:"price" validate:"omitempty,gt=0"`
	Category      *string   `json:"category" validate:"omitempty,oneof=men women kids"`
	Subcategory   *string   `json:"subcategory" validate:"omitempty,min=1"`
	Fabric        *string   `json:"fabric" validate:"omitempty,min=1"`
	Sizes         *[]string `json:"sizes" validate:"omitempty,min=1"`
	Colors        *[]string `json:"colors" validate:"omitempty,min=1"`
	Images        *[]string `json:"images" validate:"omitempty,min=1"`
	StockQuantity *int      `json:"stockQuantity" validate:"omitempty,min=0"`
	Featured      *bool     `json:"featured"`
}

func (r *UpdateProductRequest) rules() fieldRules { return productRules }

func (r *UpdateProductRequest) normalize() {
	r.Name = trimPtr(r.Name)
	r.Description = trimPtr(r.Description)
	r.Subcategory = trimPtr(r.Subcategory)
	r.Fabric = trimPtr(r.Fabric)
}

func (r *UpdateProductRequest) empty() bool {
	return len(r.badType) == 0 && r.Name == nil && r.Description == nil && r.Price == nil &&
		r.Category == nil && r.Subcategory == nil && r.Fabric == nil &&
		r.Sizes == nil && r.Colors == nil && r.Images == nil &&
		r.StockQuantity == nil && r.Featured == nil
}
