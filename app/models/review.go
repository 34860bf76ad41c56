package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductReview is purchase-verified feedback. The (product, user, order)
// triple is unique and the referenced order must be a delivered order of
// the user containing the product — enforced by the review service, with
// the unique index as the backstop.
type ProductReview struct {
	gorm.Model
	ProductID uint   `gorm:"uniqueIndex:idx_review_once;not null" json:"product_id"`
	UserID    uint   `gorm:"uniqueIndex:idx_review_once;not null" json:"user_id"`
	OrderID   uint   `gorm:"uniqueIndex:idx_review_once;not null" json:"order_id"`
	Rating    int    `gorm:"not null" json:"rating"`
	Review    string `gorm:"type:text;not null" json:"review"`
}

// ProductQuestion is pre-purchase Q&A. Anyone authenticated may ask;
// the owning seller answers.
type ProductQuestion struct {
	gorm.Model
	ProductID    uint       `gorm:"index;not null" json:"product_id"`
	UserID       uint       `gorm:"index;not null" json:"user_id"`
	Question     string     `gorm:"type:text;not null" json:"question"`
	Answer       string     `gorm:"type:text" json:"answer"`
	AnsweredByID *uint      `json:"answered_by_id"`
	IsAnswered   bool       `gorm:"default:false" json:"is_answered"`
	AnsweredAt   *time.Time `json:"answered_at"`
}
