package models

import "time"

// Review is a customer review of a product.
type Review struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ProductID    uint      `json:"productId" gorm:"not null;index"`
	ReviewerName string    `json:"reviewerName" gorm:"not null"`
	Rating       int       `json:"rating" gorm:"not null"`
	Comment      *string   `json:"comment"`
	HelpfulCount int       `json:"helpfulCount" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ReviewWithProduct is a review enriched with its parent product. Product is
// nil when the referenced row no longer exists.
type ReviewWithProduct struct {
	Review
	Product *ProductSummary `json:"product"`
}
