package models

import "gorm.io/gorm"

// Category codes used across the catalogue. Stored as short codes, expanded
// to labels at the API edge.
var Categories = map[string]string{
	"F":  "Fruits",
	"V":  "Vegetables",
	"DF": "Dairy",
	"M":  "Meat",
	"FH": "Fish",
	"B":  "Bakery",
}

// Product represents a product in the catalogue.
//
// DiscountedPrice is the selling price: every cart and order computation uses
// it. RegularPrice is informational (strike-through pricing).
type Product struct {
	gorm.Model
	SellerID        *uint   `gorm:"index" json:"seller_id"` // nullable: products survive seller deletion
	Title           string  `gorm:"size:255;not null;index" json:"title"`
	Slug            string  `gorm:"size:280;index" json:"slug"`
	Description     string  `gorm:"type:text" json:"description"`
	RegularPrice    float64 `gorm:"not null;default:0" json:"regular_price"`
	DiscountedPrice float64 `gorm:"not null;default:0" json:"discounted_price"`
	Category        string  `gorm:"size:10;not null;index" json:"category"`
	Image           string  `gorm:"size:255" json:"image"`
	IsFeatured      bool    `gorm:"default:false" json:"is_featured"`
	Tags            []Tag   `gorm:"many2many:product_tags" json:"tags,omitempty"`
}

// Tag labels products for filtering ("organic", "seasonal", ...).
type Tag struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}
