package models

import "time"

// Categories accepted for a product.
const (
	CategoryMen   = "men"
	CategoryWomen = "women"
	CategoryKids  = "kids"
)

// Product represents a garment in the catalog.
type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Description   *string   `json:"description"`
	Price         float64   `json:"price" gorm:"not null"`
	Category      string    `json:"category" gorm:"not null;index"`
	Subcategory   string    `json:"subcategory" gorm:"not null;index"`
	Fabric        string    `json:"fabric" gorm:"not null"`
	Sizes         []string  `json:"sizes" gorm:"type:text;serializer:json;not null"`
	Colors        []string  `json:"colors" gorm:"type:text;serializer:json;not null"`
	Images        []string  `json:"images" gorm:"type:text;serializer:json;not null"`
	StockQuantity int       `json:"stockQuantity" gorm:"not null;default:0"`
	Featured      bool      `json:"featured" gorm:"not null;default:false"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ProductSummary is the reduced view of a product embedded in review reads.
type ProductSummary struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
}

// TableName maps the projection onto the products table.
func (ProductSummary) TableName() string {
	return "products"
}

// Summary returns the projection of p.
func (p Product) Summary() ProductSummary {
	return ProductSummary{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Subcategory: p.Subcategory,
	}
}
